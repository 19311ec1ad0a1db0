package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lubricentro-api/internal/application/dto"
	"github.com/jhoicas/lubricentro-api/internal/application/usecase"
)

// ClientHandler maneja /api/clientes.
type ClientHandler struct {
	uc *usecase.ClientUseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *usecase.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// List godoc
// @Summary      Listar clientes activos
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "Página (default 1)"
// @Param        limit   query  int     false  "Tamaño de página (1..100, default 10)"
// @Param        search  query  string  false  "Nombre, apellido, DNI, teléfono o email"
// @Success      200     {object}  dto.SuccessResponse{data=[]dto.ClientResponse}
// @Router       /api/clientes [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
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
// @Summary      Obtener cliente con sus vehículos activos
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del cliente"
// @Success      200  {object}  dto.SuccessResponse{data=dto.ClientResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [get]
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Crear cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ClientRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.SuccessResponse{data=dto.ClientResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clientes [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.ClientRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return created(c, out, "Cliente creado")
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                true  "ID del cliente"
// @Param        body  body  dto.ClientRequest  true  "Datos del cliente"
// @Success      200   {object}  dto.SuccessResponse{data=dto.ClientResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.ClientRequest
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
// @Summary      Eliminar cliente (baja lógica)
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del cliente"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      409  {object}  dto.ErrorResponse  "VEHICLES_ASSOCIATED"
// @Router       /api/clientes/{id} [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return message(c, "Cliente eliminado")
}
