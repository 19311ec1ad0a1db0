package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lubricentro-api/internal/application/dto"
	"github.com/jhoicas/lubricentro-api/internal/domain"
)

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(dto.SuccessResponse{Success: true, Data: data})
}

func created(c *fiber.Ctx, data any, message string) error {
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{Success: true, Data: data, Message: message})
}

func message(c *fiber.Ctx, msg string) error {
	return c.JSON(dto.SuccessResponse{Success: true, Message: msg})
}

func paged[T any](c *fiber.Ctx, page *dto.Page[T]) error {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	return c.JSON(dto.SuccessResponse{Success: true, Data: items, Pagination: &page.Pagination})
}

// paramID lee un parámetro de ruta entero positivo.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id < 1 {
		return 0, &domain.ValidationError{Fields: []domain.FieldError{{Field: name, Message: "Debe ser un número entero positivo"}}}
	}
	return id, nil
}

func pageQuery(c *fiber.Ctx) (dto.PageRequest, error) {
	var p dto.PageRequest
	if err := c.QueryParser(&p); err != nil {
		return p, fiber.ErrBadRequest
	}
	return p, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.ErrBadRequest
	}
	return nil
}
