package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lubricentro-api/internal/application/dto"
	"github.com/jhoicas/lubricentro-api/internal/application/usecase"
)

// VehicleHandler maneja /api/vehiculos.
type VehicleHandler struct {
	uc *usecase.VehicleUseCase
}

// NewVehicleHandler construye el handler.
func NewVehicleHandler(uc *usecase.VehicleUseCase) *VehicleHandler {
	return &VehicleHandler{uc: uc}
}

// List godoc
// @Summary      Listar vehículos activos
// @Tags         vehiculos
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "Página"
// @Param        limit   query  int     false  "Tamaño de página"
// @Param        search  query  string  false  "Patente, marca, modelo o cliente"
// @Success      200     {object}  dto.SuccessResponse{data=[]dto.VehicleResponse}
// @Router       /api/vehiculos [get]
func (h *VehicleHandler) List(c *fiber.Ctx) error {
	p, err := pageQuery(c)
	if err != nil {
		return err
	}
	page, err := h.uc.List(c.UserContext(), p)
	if err != nil {
		return err
	}
	return paged(c, page)
}

// GetByID godoc
// @Summary      Obtener vehículo
// @Tags         vehiculos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del vehículo"
// @Success      200  {object}  dto.SuccessResponse{data=dto.VehicleResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vehiculos/{id} [get]
func (h *VehicleHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// ByClient godoc
// @Summary      Vehículos activos de un cliente
// @Tags         vehiculos
// @Produce      json
// @Security     BearerAuth
// @Param        clienteId  path  int  true  "ID del cliente"
// @Success      200        {object}  dto.SuccessResponse{data=[]dto.VehicleResponse}
// @Router       /api/vehiculos/cliente/{clienteId} [get]
func (h *VehicleHandler) ByClient(c *fiber.Ctx) error {
	id, err := paramID(c, "clienteId")
	if err != nil {
		return err
	}
	out, err := h.uc.ByClient(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// Create godoc
// @Summary      Crear vehículo
// @Tags         vehiculos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.VehicleRequest  true  "Datos del vehículo"
// @Success      201   {object}  dto.SuccessResponse{data=dto.VehicleResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse  "CLIENT_NOT_FOUND"
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vehiculos [post]
func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	var in dto.VehicleRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return created(c, out, "Vehículo creado")
}

// Update godoc
// @Summary      Actualizar vehículo
// @Tags         vehiculos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                 true  "ID del vehículo"
// @Param        body  body  dto.VehicleRequest  true  "Datos del vehículo"
// @Success      200   {object}  dto.SuccessResponse{data=dto.VehicleResponse}
// @Router       /api/vehiculos/{id} [put]
func (h *VehicleHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.VehicleRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// UpdateMileage godoc
// @Summary      Actualizar kilometraje
// @Description  El kilometraje no puede disminuir.
// @Tags         vehiculos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                 true  "ID del vehículo"
// @Param        body  body  dto.MileageRequest  true  "kilometraje"
// @Success      200   {object}  dto.SuccessResponse{data=dto.VehicleResponse}
// @Failure      400   {object}  dto.ErrorResponse  "MILEAGE_DECREASE"
// @Router       /api/vehiculos/{id}/kilometraje [patch]
func (h *VehicleHandler) UpdateMileage(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.MileageRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateMileage(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// Delete godoc
// @Summary      Eliminar vehículo (baja lógica)
// @Tags         vehiculos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del vehículo"
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/vehiculos/{id} [delete]
func (h *VehicleHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return message(c, "Vehículo eliminado")
}
