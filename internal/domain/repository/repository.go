package repository

// ListParams paginación y búsqueda comunes a los listados.
type ListParams struct {
	Search string // término libre; vacío = sin filtro
	Limit  int
	Offset int
}
