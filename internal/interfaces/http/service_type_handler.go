package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lubricentro-api/internal/application/dto"
	"github.com/jhoicas/lubricentro-api/internal/application/usecase"
)

// ServiceTypeHandler maneja /api/tipos-servicios.
type ServiceTypeHandler struct {
	uc *usecase.ServiceTypeUseCase
}

func NewServiceTypeHandler(uc *usecase.ServiceTypeUseCase) *ServiceTypeHandler {
	return &ServiceTypeHandler{uc: uc}
}

// List godoc
// @Summary  Listar tipos de servicio
// @Tags     tipos-servicios
// @Security BearerAuth
// @Param    page    query  int     false  "Página"
// @Param    limit   query  int     false  "Tamaño de página"
// @Param    search  query  string  false  "Nombre o descripción"
// @Success  200     {object}  dto.SuccessResponse{data=[]dto.ServiceTypeResponse}
// @Router   /api/tipos-servicios [get]
func (h *ServiceTypeHandler) List(c *fiber.Ctx) error {
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

// Search godoc
// @Summary  Autocompletar tipos de servicio
// @Tags     tipos-servicios
// @Security BearerAuth
// @Param    q    query  string  true  "Término"
// @Success  200  {object}  dto.SuccessResponse{data=[]dto.ServiceTypeResponse}
// @Router   /api/tipos-servicios/search [get]
func (h *ServiceTypeHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	return ok(c, out)
}

// GetByID godoc
// @Summary  Obtener tipo de servicio
// @Tags     tipos-servicios
// @Security BearerAuth
// @Param    id   path  int  true  "ID"
// @Success  200  {object}  dto.SuccessResponse{data=dto.ServiceTypeResponse}
// @Router   /api/tipos-servicios/{id} [get]
func (h *ServiceTypeHandler) GetByID(c *fiber.Ctx) error {
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

// Create godoc
// @Summary  Crear tipo de servicio
// @Tags     tipos-servicios
// @Accept   json
// @Security BearerAuth
// @Param    body  body  dto.ServiceTypeRequest  true  "nombre, descripcion"
// @Success  201   {object}  dto.SuccessResponse{data=dto.ServiceTypeResponse}
// @Router   /api/tipos-servicios [post]
func (h *ServiceTypeHandler) Create(c *fiber.Ctx) error {
	var in dto.ServiceTypeRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return created(c, out, "Tipo de servicio creado")
}

// Update godoc
// @Summary  Actualizar tipo de servicio
// @Tags     tipos-servicios
// @Accept   json
// @Security BearerAuth
// @Param    id    path  int                     true  "ID"
// @Param    body  body  dto.ServiceTypeRequest  true  "nombre, descripcion"
// @Success  200   {object}  dto.SuccessResponse{data=dto.ServiceTypeResponse}
// @Router   /api/tipos-servicios/{id} [put]
func (h *ServiceTypeHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.ServiceTypeRequest
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
// @Summary  Eliminar tipo de servicio
// @Tags     tipos-servicios
// @Security BearerAuth
// @Param    id   path  int  true  "ID"
// @Success  200  {object}  dto.SuccessResponse
// @Failure  409  {object}  dto.ErrorResponse  "SERVICE_TYPE_IN_USE"
// @Router   /api/tipos-servicios/{id} [delete]
func (h *ServiceTypeHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return message(c, "Tipo de servicio eliminado")
}
