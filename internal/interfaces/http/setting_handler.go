package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lubricentro-api/internal/application/dto"
	"github.com/jhoicas/lubricentro-api/internal/application/usecase"
)

// SettingHandler maneja /api/configuracion (solo ADMIN).
type SettingHandler struct {
	uc *usecase.SettingUseCase
}

func NewSettingHandler(uc *usecase.SettingUseCase) *SettingHandler {
	return &SettingHandler{uc: uc}
}

// List godoc
// @Summary  Listar configuración
// @Tags     configuracion
// @Security BearerAuth
// @Success  200  {object}  dto.SuccessResponse{data=[]dto.SettingResponse}
// @Router   /api/configuracion [get]
func (h *SettingHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, out)
}

// ByCategory godoc
// @Summary  Configuración de una categoría
// @Tags     configuracion
// @Security BearerAuth
// @Param    categoria  path  string  true  "Categoría"
// @Success  200        {object}  dto.SuccessResponse{data=[]dto.SettingResponse}
// @Router   /api/configuracion/categoria/{categoria} [get]
func (h *SettingHandler) ByCategory(c *fiber.Ctx) error {
	out, err := h.uc.ByCategory(c.UserContext(), c.Params("categoria"))
	if err != nil {
		return err
	}
	return ok(c, out)
}

// Create godoc
// @Summary  Crear parámetro
// @Tags     configuracion
// @Accept   json
// @Security BearerAuth
// @Param    body  body  dto.SettingRequest  true  "categoria, clave, valor, tipo"
// @Success  201   {object}  dto.SuccessResponse{data=dto.SettingResponse}
// @Failure  409   {object}  dto.ErrorResponse
// @Router   /api/configuracion [post]
func (h *SettingHandler) Create(c *fiber.Ctx) error {
	var in dto.SettingRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return created(c, out, "Parámetro creado")
}

// BulkUpsert godoc
// @Summary      Guardar varios parámetros
// @Description  Alta o actualización por (categoria, clave) en una única transacción.
// @Tags         configuracion
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  dto.BulkSettingsRequest  true  "configuraciones"
// @Success      200   {object}  dto.SuccessResponse{data=[]dto.SettingResponse}
// @Router       /api/configuracion [put]
func (h *SettingHandler) BulkUpsert(c *fiber.Ctx) error {
	var in dto.BulkSettingsRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.BulkUpsert(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.SuccessResponse{Success: true, Data: out, Message: "Configuración guardada"})
}

// Delete godoc
// @Summary  Eliminar parámetro
// @Tags     configuracion
// @Security BearerAuth
// @Param    id   path  int  true  "ID"
// @Success  200  {object}  dto.SuccessResponse
// @Router   /api/configuracion/{id} [delete]
func (h *SettingHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return message(c, "Parámetro eliminado")
}
