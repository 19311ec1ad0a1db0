package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
)

func TestRenderWorkOrder_GeneraPDF(t *testing.T) {
	s := &entity.Service{
		ID:             1,
		Number:         "SERV-00001",
		BranchName:     "Centro",
		Notes:          "Cliente espera en el local",
		ReferencePrice: decimal.NewNullDecimal(decimal.RequireFromString("25000.5")),
		CreatedAt:      time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		Client:         &entity.Client{FirstName: "Juan", LastName: "Pérez", DNI: "30111222"},
		Vehicle:        &entity.Vehicle{Patente: "AB123CD", Brand: "Ford", Model: "Ka", Year: 2015, Mileage: 120500},
		Employees:      []entity.Employee{{FirstName: "Ana", LastName: "López"}},
		Items: []entity.ServiceItem{{
			ServiceTypeName: "Cambio de aceite",
			Description:     "Aceite 10W40",
			Products:        []entity.ServiceProduct{{Name: "Filtro", OwnStock: true}},
		}},
	}

	out, err := NewWorkOrderRenderer("Lubricentro Test").RenderWorkOrder(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderWorkOrder_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewWorkOrderRenderer("").RenderWorkOrder(ctx, &entity.Service{Number: "SERV-00001"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$ 25.000,50", formatMoney(decimal.RequireFromString("25000.5")))
	assert.Equal(t, "$ 0,00", formatMoney(decimal.Zero))
	assert.Equal(t, "$ 999.999,99", formatMoney(decimal.RequireFromString("999999.99")))
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "120.500", formatThousands(120500))
	assert.Equal(t, "999", formatThousands(999))
	assert.Equal(t, "1.000.000", groupThousands("1000000"))
}
