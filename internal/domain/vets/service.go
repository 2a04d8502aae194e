package vets

import (
	"context"

	"petclinic/internal/platform/pagination"
)

// PageSize del listado HTML de vets.
const PageSize = 5

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List y Page devuelven las especialidades de cada vet ordenadas por nombre,
// sin importar el orden del backend (o de lo que haya quedado en cache).
func (s *Service) List(ctx context.Context) ([]Vet, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return sortSpecialties(list), nil
}

func (s *Service) Page(ctx context.Context, page pagination.Request) (pagination.Page[Vet], error) {
	p, err := s.repo.FindPage(ctx, page)
	if err != nil {
		return p, err
	}
	p.Items = sortSpecialties(p.Items)
	return p, nil
}

func sortSpecialties(list []Vet) []Vet {
	out := make([]Vet, len(list))
	for i, v := range list {
		v.Specialties = v.SortedSpecialties()
		out[i] = v
	}
	return out
}
