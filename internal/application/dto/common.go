package dto

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Límites de paginación.
const (
	DefaultLimit   = 10
	MaxLimit       = 100
	MaxSearchRunes = 100
)

// PageRequest paginación y búsqueda para listados (?page=1&limit=10&search=).
type PageRequest struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Search string `query:"search"`
}

// Normalize aplica defaults y límites: page >= 1, limit en [1,100], search recortado.
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	p.Search = strings.TrimSpace(p.Search)
	if utf8.RuneCountInString(p.Search) > MaxSearchRunes {
		p.Search = string([]rune(p.Search)[:MaxSearchRunes])
	}
}

// Offset filas a saltear.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination metadatos de página en respuestas.
type Pagination struct {
	Total       int `json:"total"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
}

// NewPagination calcula los metadatos a partir del total de filas.
func NewPagination(p PageRequest, total int) Pagination {
	pages := 0
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return Pagination{Total: total, TotalPages: pages, CurrentPage: p.Page, Limit: p.Limit}
}

// Page resultado paginado de un listado.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// SuccessResponse envoltorio de respuestas exitosas.
type SuccessResponse struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ErrorBody detalle de un error HTTP.
type ErrorBody struct {
	Message   string    `json:"message"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
	Details   any       `json:"details,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// NewErrorResponse construye el cuerpo de error con timestamp actual (UTC).
func NewErrorResponse(code, message string, details any) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   ErrorBody{Message: message, Code: code, Timestamp: time.Now().UTC(), Details: details},
	}
}

// MessageResponse respuesta simple con un mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}
