package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/pkg/textnorm"
)

// MaxReferencePrice tope de precio_referencia.
var MaxReferencePrice = decimal.RequireFromString("999999.99")

// ServiceProductRequest producto de un ítem.
type ServiceProductRequest struct {
	Name     string `json:"nombre"`
	OwnStock bool   `json:"es_nuestro"`
}

// ServiceItemRequest ítem de un servicio.
type ServiceItemRequest struct {
	ServiceTypeID int64                   `json:"tipo_servicio_id"`
	Description   string                  `json:"descripcion"`
	Notes         string                  `json:"observaciones"`
	Remarks       string                  `json:"notas"`
	Products      []ServiceProductRequest `json:"productos"`
}

// ServiceRequest alta y reemplazo de un servicio con sus ítems, productos y empleados.
type ServiceRequest struct {
	ClientID       int64                `json:"cliente_id"`
	VehicleID      int64                `json:"vehiculo_id"`
	BranchID       int64                `json:"sucursal_id"`
	Description    string               `json:"descripcion"`
	Notes          string               `json:"observaciones"`
	ReferencePrice *decimal.Decimal     `json:"precio_referencia"`
	Employees      []int64              `json:"empleados"`
	Items          []ServiceItemRequest `json:"items"`
}

// Validate reporta todas las violaciones juntas.
func (r *ServiceRequest) Validate() error {
	var v domain.Validator
	v.Check(r.ClientID > 0, "cliente_id", "ID de cliente inválido")
	v.Check(r.VehicleID > 0, "vehiculo_id", "ID de vehículo inválido")
	v.Check(r.BranchID > 0, "sucursal_id", "ID de sucursal inválido")
	v.Check(maxLen(r.Description, 1000), "descripcion", "La descripción no puede tener más de 1000 caracteres")
	v.Check(maxLen(r.Notes, 1000), "observaciones", "Las observaciones no pueden tener más de 1000 caracteres")
	if r.ReferencePrice != nil {
		p := *r.ReferencePrice
		v.Check(!p.IsNegative() && p.LessThanOrEqual(MaxReferencePrice), "precio_referencia",
			"El precio de referencia debe ser un número positivo menor a $999,999.99")
	}
	for _, id := range r.Employees {
		if id < 1 {
			v.Check(false, "empleados", "Todos los IDs de empleados deben ser números enteros positivos")
			break
		}
	}
	v.Check(len(r.Items) > 0, "items", "Debe incluir al menos un item")
	for i, it := range r.Items {
		field := fmt.Sprintf("items[%d]", i)
		v.Check(it.ServiceTypeID > 0, field+".tipo_servicio_id", "ID de tipo de servicio inválido")
		v.Check(maxLen(it.Notes, 500), field+".observaciones", "Las observaciones del item no pueden tener más de 500 caracteres")
		v.Check(maxLen(it.Remarks, 500), field+".notas", "Las notas del item no pueden tener más de 500 caracteres")
		for j, p := range it.Products {
			v.Check(lenBetween(textnorm.CollapseSpaces(p.Name), 1, 200), fmt.Sprintf("%s.productos[%d].nombre", field, j),
				"El nombre del producto debe tener entre 1 y 200 caracteres")
		}
	}
	return v.Err()
}

// ToEntity construye el agregado a persistir (sin número ni IDs).
func (r *ServiceRequest) ToEntity() *entity.Service {
	s := &entity.Service{
		ClientID:    r.ClientID,
		VehicleID:   r.VehicleID,
		BranchID:    r.BranchID,
		Description: textnorm.CollapseSpaces(r.Description),
		Notes:       r.Notes,
		Active:      true,
		EmployeeIDs: uniqueIDs(r.Employees),
		Items:       make([]entity.ServiceItem, 0, len(r.Items)),
	}
	if r.ReferencePrice != nil {
		s.ReferencePrice = decimal.NewNullDecimal(r.ReferencePrice.Round(2))
	}
	for _, it := range r.Items {
		item := entity.ServiceItem{
			ServiceTypeID: it.ServiceTypeID,
			Description:   textnorm.CollapseSpaces(it.Description),
			Notes:         it.Notes,
			Remarks:       it.Remarks,
		}
		if item.Description == "" {
			item.Description = entity.DefaultItemDescription
		}
		for _, p := range it.Products {
			item.Products = append(item.Products, entity.ServiceProduct{Name: textnorm.CollapseSpaces(p.Name), OwnStock: p.OwnStock})
		}
		s.Items = append(s.Items, item)
	}
	return s
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// ServiceProductResponse salida de un producto.
type ServiceProductResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"nombre"`
	OwnStock bool   `json:"es_nuestro"`
}

// ServiceItemResponse salida de un ítem.
type ServiceItemResponse struct {
	ID              int64                    `json:"id"`
	ServiceTypeID   int64                    `json:"tipo_servicio_id"`
	ServiceTypeName string                   `json:"tipo_servicio_nombre,omitempty"`
	Description     string                   `json:"descripcion"`
	Notes           string                   `json:"observaciones"`
	Remarks         string                   `json:"notas"`
	Products        []ServiceProductResponse `json:"productos"`
}

// ServiceEmployeeResponse empleado asignado.
type ServiceEmployeeResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Position  string `json:"cargo"`
}

// ServiceResponse salida de un servicio. Los ítems y empleados solo se incluyen en el detalle.
type ServiceResponse struct {
	ID             int64                     `json:"id"`
	Number         string                    `json:"numero"`
	ClientID       int64                     `json:"cliente_id"`
	VehicleID      int64                     `json:"vehiculo_id"`
	BranchID       int64                     `json:"sucursal_id"`
	Description    string                    `json:"descripcion"`
	Notes          string                    `json:"observaciones"`
	ReferencePrice *decimal.Decimal          `json:"precio_referencia"`
	Active         bool                      `json:"activo"`
	CreatedAt      time.Time                 `json:"created_at"`
	UpdatedAt      time.Time                 `json:"updated_at"`
	ClientName     string                    `json:"cliente_nombre,omitempty"`
	ClientLastName string                    `json:"cliente_apellido,omitempty"`
	ClientDNI      string                    `json:"cliente_dni,omitempty"`
	ClientPhone    string                    `json:"cliente_telefono,omitempty"`
	Patente        string                    `json:"patente,omitempty"`
	Brand          string                    `json:"marca,omitempty"`
	Model          string                    `json:"modelo,omitempty"`
	Year           int                       `json:"año,omitempty"`
	Mileage        int                       `json:"kilometraje,omitempty"`
	BranchName     string                    `json:"sucursal_nombre,omitempty"`
	ItemsCount     int                       `json:"items_count"`
	Employees      []ServiceEmployeeResponse `json:"empleados,omitempty"`
	Items          []ServiceItemResponse     `json:"items,omitempty"`
}

// NewServiceResponse mapea el agregado con los datos de lectura disponibles.
func NewServiceResponse(s *entity.Service) ServiceResponse {
	out := ServiceResponse{
		ID:          s.ID,
		Number:      s.Number,
		ClientID:    s.ClientID,
		VehicleID:   s.VehicleID,
		BranchID:    s.BranchID,
		Description: s.Description,
		Notes:       s.Notes,
		Active:      s.Active,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		BranchName:  s.BranchName,
		ItemsCount:  s.ItemsCount,
	}
	if s.ReferencePrice.Valid {
		p := s.ReferencePrice.Decimal
		out.ReferencePrice = &p
	}
	if s.Client != nil {
		out.ClientName = s.Client.FirstName
		out.ClientLastName = s.Client.LastName
		out.ClientDNI = s.Client.DNI
		out.ClientPhone = s.Client.Phone
	}
	if s.Vehicle != nil {
		out.Patente = s.Vehicle.Patente
		out.Brand = s.Vehicle.Brand
		out.Model = s.Vehicle.Model
		out.Year = s.Vehicle.Year
		out.Mileage = s.Vehicle.Mileage
	}
	for _, e := range s.Employees {
		out.Employees = append(out.Employees, ServiceEmployeeResponse{ID: e.ID, FirstName: e.FirstName, LastName: e.LastName, Position: e.Position})
	}
	for _, it := range s.Items {
		item := ServiceItemResponse{
			ID:              it.ID,
			ServiceTypeID:   it.ServiceTypeID,
			ServiceTypeName: it.ServiceTypeName,
			Description:     it.Description,
			Notes:           it.Notes,
			Remarks:         it.Remarks,
			Products:        make([]ServiceProductResponse, 0, len(it.Products)),
		}
		for _, p := range it.Products {
			item.Products = append(item.Products, ServiceProductResponse{ID: p.ID, Name: p.Name, OwnStock: p.OwnStock})
		}
		out.Items = append(out.Items, item)
	}
	if out.ItemsCount == 0 {
		out.ItemsCount = len(s.Items)
	}
	return out
}

// ServiceStatsResponse estadísticas de servicios activos.
type ServiceStatsResponse struct {
	Total int64 `json:"total"`
	Today int64 `json:"hoy"`
	Week  int64 `json:"semana"`
	Month int64 `json:"mes"`
}

// ServiceListQuery filtros de GET /servicios.
type ServiceListQuery struct {
	PageRequest
	ClientID  int64 `query:"clienteId"`
	VehicleID int64 `query:"vehiculoId"`
}
