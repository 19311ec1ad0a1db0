package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lubricentro-api/internal/application/dto"
	"github.com/jhoicas/lubricentro-api/internal/application/usecase"
)

// BranchHandler maneja /api/sucursales.
type BranchHandler struct {
	uc *usecase.BranchUseCase
}

func NewBranchHandler(uc *usecase.BranchUseCase) *BranchHandler {
	return &BranchHandler{uc: uc}
}

// List godoc
// @Summary  Listar sucursales
// @Tags     sucursales
// @Security BearerAuth
// @Param    page    query  int     false  "Página"
// @Param    limit   query  int     false  "Tamaño de página"
// @Param    search  query  string  false  "Nombre o dirección"
// @Success  200     {object}  dto.SuccessResponse{data=[]dto.BranchResponse}
// @Router   /api/sucursales [get]
func (h *BranchHandler) List(c *fiber.Ctx) error {
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
// @Summary  Sucursales activas
// @Tags     sucursales
// @Security BearerAuth
// @Success  200  {object}  dto.SuccessResponse{data=[]dto.BranchResponse}
// @Router   /api/sucursales/activas [get]
func (h *BranchHandler) ListActive(c *fiber.Ctx) error {
	out, err := h.uc.ListActive(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, out)
}

// GetByID godoc
// @Summary  Obtener sucursal
// @Tags     sucursales
// @Security BearerAuth
// @Param    id   path  int  true  "ID de la sucursal"
// @Success  200  {object}  dto.SuccessResponse{data=dto.BranchResponse}
// @Failure  404  {object}  dto.ErrorResponse
// @Router   /api/sucursales/{id} [get]
func (h *BranchHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary  Crear sucursal
// @Tags     sucursales
// @Accept   json
// @Security BearerAuth
// @Param    body  body  dto.BranchRequest  true  "Datos de la sucursal"
// @Success  201   {object}  dto.SuccessResponse{data=dto.BranchResponse}
// @Failure  409   {object}  dto.ErrorResponse
// @Router   /api/sucursales [post]
func (h *BranchHandler) Create(c *fiber.Ctx) error {
	var in dto.BranchRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return created(c, out, "Sucursal creada")
}

// Update godoc
// @Summary  Actualizar sucursal
// @Tags     sucursales
// @Accept   json
// @Security BearerAuth
// @Param    id    path  int                true  "ID de la sucursal"
// @Param    body  body  dto.BranchRequest  true  "Datos de la sucursal"
// @Success  200   {object}  dto.SuccessResponse{data=dto.BranchResponse}
// @Router   /api/sucursales/{id} [put]
func (h *BranchHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.BranchRequest
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
// @Summary  Eliminar sucursal
// @Tags     sucursales
// @Security BearerAuth
// @Param    id   path  int  true  "ID de la sucursal"
// @Success  200  {object}  dto.SuccessResponse
// @Failure  409  {object}  dto.ErrorResponse  "BRANCH_IN_USE"
// @Router   /api/sucursales/{id} [delete]
func (h *BranchHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return message(c, "Sucursal eliminada")
}
