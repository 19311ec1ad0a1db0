package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lubricentro-api/internal/application/dto"
	"github.com/jhoicas/lubricentro-api/internal/application/servicing"
)

// ServiceHandler maneja /api/servicios: el agregado servicio con ítems, productos y empleados.
type ServiceHandler struct {
	uc        *servicing.ServiceUseCase
	workOrder *servicing.WorkOrderUseCase
}

// NewServiceHandler construye el handler.
func NewServiceHandler(uc *servicing.ServiceUseCase, workOrder *servicing.WorkOrderUseCase) *ServiceHandler {
	return &ServiceHandler{uc: uc, workOrder: workOrder}
}

// List godoc
// @Summary      Listar servicios
// @Tags         servicios
// @Produce      json
// @Security     BearerAuth
// @Param        page        query  int     false  "Página"
// @Param        limit       query  int     false  "Tamaño de página"
// @Param        search      query  string  false  "Número, descripción, cliente o patente"
// @Param        clienteId   query  int     false  "Filtrar por cliente"
// @Param        vehiculoId  query  int     false  "Filtrar por vehículo"
// @Success      200         {object}  dto.SuccessResponse{data=[]dto.ServiceResponse}
// @Router       /api/servicios [get]
func (h *ServiceHandler) List(c *fiber.Ctx) error {
	var q dto.ServiceListQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.ErrBadRequest
	}
	page, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return err
	}
	return paged(c, page)
}

// Stats godoc
// @Summary      Estadísticas de servicios
// @Tags         servicios
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SuccessResponse{data=dto.ServiceStatsResponse}
// @Router       /api/servicios/estadisticas [get]
func (h *ServiceHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, out)
}

// ByClient godoc
// @Summary      Historial de servicios de un cliente
// @Tags         servicios
// @Produce      json
// @Security     BearerAuth
// @Param        clienteId  path  int  true  "ID del cliente"
// @Success      200        {object}  dto.SuccessResponse{data=[]dto.ServiceResponse}
// @Router       /api/servicios/cliente/{clienteId} [get]
func (h *ServiceHandler) ByClient(c *fiber.Ctx) error {
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

// ByPatente godoc
// @Summary      Historial de servicios de un vehículo
// @Tags         servicios
// @Produce      json
// @Security     BearerAuth
// @Param        patente  path  string  true  "Patente"
// @Success      200      {object}  dto.SuccessResponse{data=[]dto.ServiceResponse}
// @Router       /api/servicios/vehiculo/{patente} [get]
func (h *ServiceHandler) ByPatente(c *fiber.Ctx) error {
	out, err := h.uc.ByPatente(c.UserContext(), c.Params("patente"))
	if err != nil {
		return err
	}
	return ok(c, out)
}

// GetByID godoc
// @Summary      Detalle de un servicio
// @Tags         servicios
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del servicio"
// @Success      200  {object}  dto.SuccessResponse{data=dto.ServiceResponse}
// @Failure      404  {object}  dto.ErrorResponse  "SERVICIO_NOT_FOUND"
// @Router       /api/servicios/{id} [get]
func (h *ServiceHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// WorkOrder godoc
// @Summary      Orden de trabajo en PDF
// @Tags         servicios
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del servicio"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/servicios/{id}/pdf [get]
func (h *ServiceHandler) WorkOrder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	pdf, name, err := h.workOrder.Download(c.UserContext(), id)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(pdf)
}

// Create godoc
// @Summary      Crear servicio
// @Description  Asigna el próximo número SERV-NNNNN y escribe ítems, productos y empleados en una transacción.
// @Tags         servicios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ServiceRequest  true  "Servicio con ítems"
// @Success      201   {object}  dto.SuccessResponse{data=dto.ServiceResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/servicios [post]
func (h *ServiceHandler) Create(c *fiber.Ctx) error {
	var in dto.ServiceRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return created(c, out, "Servicio creado")
}

// Update godoc
// @Summary      Reemplazar servicio
// @Description  Reemplaza cabecera, ítems, productos y empleados. El número se conserva.
// @Tags         servicios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                 true  "ID del servicio"
// @Param        body  body  dto.ServiceRequest  true  "Servicio con ítems"
// @Success      200   {object}  dto.SuccessResponse{data=dto.ServiceResponse}
// @Router       /api/servicios/{id} [put]
func (h *ServiceHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.ServiceRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// Delete godoc
// @Summary      Eliminar servicio
// @Tags         servicios
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del servicio"
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/servicios/{id} [delete]
func (h *ServiceHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return message(c, "Servicio eliminado")
}
