package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lubricentro-api/internal/application/dto"
	"github.com/jhoicas/lubricentro-api/internal/application/usecase"
)

// EmployeeHandler maneja /api/empleados.
type EmployeeHandler struct {
	uc *usecase.EmployeeUseCase
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// List godoc
// @Summary      Listar empleados
// @Tags         empleados
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "Página"
// @Param        limit   query  int     false  "Tamaño de página"
// @Param        search  query  string  false  "Nombre, apellido, DNI o cargo"
// @Success      200     {object}  dto.SuccessResponse{data=[]dto.EmployeeResponse}
// @Router       /api/empleados [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
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

// ListActive godoc
// @Summary      Empleados activos (para selects)
// @Tags         empleados
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SuccessResponse{data=[]dto.EmployeeResponse}
// @Router       /api/empleados/activos [get]
func (h *EmployeeHandler) ListActive(c *fiber.Ctx) error {
	out, err := h.uc.ListActive(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, out)
}

// ByBranch godoc
// @Summary      Empleados activos de una sucursal
// @Tags         empleados
// @Produce      json
// @Security     BearerAuth
// @Param        sucursalId  path  int  true  "ID de la sucursal"
// @Success      200         {object}  dto.SuccessResponse{data=[]dto.EmployeeResponse}
// @Failure      404         {object}  dto.ErrorResponse
// @Router       /api/empleados/sucursal/{sucursalId} [get]
func (h *EmployeeHandler) ByBranch(c *fiber.Ctx) error {
	id, err := paramID(c, "sucursalId")
	if err != nil {
		return err
	}
	out, err := h.uc.ByBranch(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// GetByID godoc
// @Summary      Obtener empleado
// @Tags         empleados
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del empleado"
// @Success      200  {object}  dto.SuccessResponse{data=dto.EmployeeResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/empleados/{id} [get]
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Crear empleado
// @Tags         empleados
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.EmployeeRequest  true  "Datos del empleado"
// @Success      201   {object}  dto.SuccessResponse{data=dto.EmployeeResponse}
// @Router       /api/empleados [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.EmployeeRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return created(c, out, "Empleado creado")
}

// Update godoc
// @Summary      Actualizar empleado
// @Tags         empleados
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                  true  "ID del empleado"
// @Param        body  body  dto.EmployeeRequest  true  "Datos del empleado"
// @Success      200   {object}  dto.SuccessResponse{data=dto.EmployeeResponse}
// @Router       /api/empleados/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.EmployeeRequest
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
// @Summary      Eliminar empleado
// @Tags         empleados
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del empleado"
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/empleados/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return message(c, "Empleado eliminado")
}
