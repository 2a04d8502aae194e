package memory

import (
	"context"
	"sort"
	"sync"

	"petclinic/internal/domain/vets"
	"petclinic/internal/platform/pagination"
)

type vetRepo struct {
	mu   sync.RWMutex
	list []vets.Vet
}

func NewVetRepo(seed []vets.Vet) *vetRepo {
	list := make([]vets.Vet, 0, len(seed))
	for _, v := range seed {
		v.Specialties = v.SortedSpecialties()
		list = append(list, v)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return &vetRepo{list: list}
}

func (r *vetRepo) FindAll(ctx context.Context) ([]vets.Vet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.copyAll(), nil
}

func (r *vetRepo) FindPage(ctx context.Context, page pagination.Request) (pagination.Page[vets.Vet], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return pagination.Slice(r.copyAll(), page), nil
}

func (r *vetRepo) copyAll() []vets.Vet {
	out := make([]vets.Vet, 0, len(r.list))
	for _, v := range r.list {
		v.Specialties = append([]vets.Specialty{}, v.Specialties...)
		out = append(out, v)
	}
	return out
}
