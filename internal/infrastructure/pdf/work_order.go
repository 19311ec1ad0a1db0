// Package pdf genera la orden de trabajo imprimible de un servicio.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Lubricentro + sucursal  │  N° Servicio + Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + DNI + Tel  │  VEHÍCULO: Patente + km       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Tipo | Descripción | Observaciones | Productos       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Precio de referencia / Empleados / QR con el número         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/lubricentro-api/internal/application/servicing"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
)

var _ servicing.WorkOrderRenderer = (*WorkOrderRenderer)(nil)

var (
	colorPrimary = &props.Color{Red: 196, Green: 90, Blue: 0}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// WorkOrderRenderer arma la orden de trabajo con Maroto v2.
type WorkOrderRenderer struct {
	shopName string
}

// NewWorkOrderRenderer construye el renderer; shopName encabeza cada orden.
func NewWorkOrderRenderer(shopName string) *WorkOrderRenderer {
	return &WorkOrderRenderer{shopName: nonEmpty(shopName, "Lubricentro")}
}

// RenderWorkOrder genera el PDF del servicio y devuelve sus bytes.
func (g *WorkOrderRenderer) RenderWorkOrder(ctx context.Context, s *entity.Service) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de trabajo "+s.Number, true).
		WithAuthor(g.shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(itemsHeaderRow())
	m.AddRows(itemRows(s.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRows(s)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar orden de trabajo: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *WorkOrderRenderer) headerRow(s *entity.Service) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.shopName, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Sucursal: "+nonEmpty(s.BranchName, "-"), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("ORDEN DE TRABAJO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(s.Number, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Fecha: "+s.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func partiesRow(s *entity.Service) core.Row {
	var client, clientInfo, vehicle, vehicleInfo string
	if c := s.Client; c != nil {
		client = c.FullName()
		clientInfo = fmt.Sprintf("DNI: %s   |   Tel: %s", nonEmpty(c.DNI, "-"), nonEmpty(c.Phone, "-"))
	}
	if v := s.Vehicle; v != nil {
		vehicle = v.Patente
		vehicleInfo = fmt.Sprintf("%s %s %s   |   %s km", v.Brand, v.Model, yearLabel(v.Year), formatThousands(int64(v.Mileage)))
	}
	block := func(title, main, detail string) core.Col {
		return col.New(6).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(main, "-"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(detail, props.Text{Size: 8, Top: 12, Color: colorGray}),
		)
	}
	return row.New(18).Add(
		block("CLIENTE", client, clientInfo),
		block("VEHÍCULO", vehicle, vehicleInfo),
	)
}

func itemsHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Tipo de servicio", 3),
		h("Descripción", 3),
		h("Observaciones", 3),
		h("Productos", 3),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func itemRows(items []entity.ServiceItem) []core.Row {
	cell := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Top: 1, Left: 1, Right: 1}))
	}
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		notes := strings.TrimSpace(strings.Join([]string{it.Notes, it.Remarks}, "\n"))
		rows = append(rows, row.New(10).Add(
			cell(nonEmpty(it.ServiceTypeName, fmt.Sprintf("#%d", it.ServiceTypeID)), 3),
			cell(it.Description, 3),
			cell(nonEmpty(notes, "-"), 3),
			cell(productsLabel(it.Products), 3),
		))
	}
	return rows
}

func footerRows(s *entity.Service) []core.Row {
	price := "-"
	if s.ReferencePrice.Valid {
		price = formatMoney(s.ReferencePrice.Decimal)
	}
	names := make([]string, 0, len(s.Employees))
	for _, e := range s.Employees {
		names = append(names, strings.TrimSpace(e.FirstName+" "+e.LastName))
	}
	return []core.Row{
		row.New(40).Add(
			col.New(8).Add(
				text.New("Precio de referencia: "+price, props.Text{Style: fontstyle.Bold, Size: 10, Top: 2, Color: colorPrimary}),
				text.New("Atendido por: "+nonEmpty(strings.Join(names, ", "), "-"), props.Text{Size: 8, Top: 10, Color: colorGray}),
				text.New("Observaciones: "+nonEmpty(s.Notes, "-"), props.Text{Size: 8, Top: 16, Color: colorGray}),
				text.New("Firma del cliente: ______________________", props.Text{Size: 8, Top: 32}),
			),
			col.New(4).Add(code.NewQr(s.Number, props.Rect{Percent: 80, Center: true})),
		),
	}
}

func productsLabel(products []entity.ServiceProduct) string {
	if len(products) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(products))
	for _, p := range products {
		label := p.Name
		if p.OwnStock {
			label += " (lubricentro)"
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "\n")
}

func yearLabel(year int) string {
	if year <= 0 {
		return ""
	}
	return fmt.Sprintf("(%d)", year)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney "$ 25.000,50": miles con punto y dos decimales con coma.
func formatMoney(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return "$ " + sign + groupThousands(intPart) + "," + frac
}

func formatThousands(n int64) string {
	if n < 0 {
		return "-" + groupThousands(fmt.Sprint(-n))
	}
	return groupThousands(fmt.Sprint(n))
}

// groupThousands inserta puntos de miles en un string de dígitos ("1000000" -> "1.000.000").
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
