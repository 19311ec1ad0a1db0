package usecase

import (
	"github.com/jhoicas/lubricentro-api/internal/application/dto"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
)

func listParams(p *dto.PageRequest) repository.ListParams {
	p.Normalize()
	return repository.ListParams{Search: p.Search, Limit: p.Limit, Offset: p.Offset()}
}

func mapAll[E any, R any](list []*E, fn func(*E) R) []R {
	out := make([]R, 0, len(list))
	for _, e := range list {
		out = append(out, fn(e))
	}
	return out
}
