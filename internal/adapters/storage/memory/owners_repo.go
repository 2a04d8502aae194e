package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"petclinic/internal/domain/owners"
	"petclinic/internal/platform/pagination"
)

type ownerRepo struct {
	mu   sync.RWMutex
	byID map[int]owners.Owner

	types []owners.PetType

	nextOwnerID int
	nextPetID   int
	nextVisitID int
}

func NewOwnerRepo(types []owners.PetType) *ownerRepo {
	return &ownerRepo{
		byID:        make(map[int]owners.Owner),
		types:       append([]owners.PetType(nil), types...),
		nextOwnerID: 1,
		nextPetID:   1,
		nextVisitID: 1,
	}
}

func (r *ownerRepo) FindByID(ctx context.Context, id int) (owners.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return owners.Owner{}, owners.ErrNotFound
	}
	return o.Clone(), nil
}

func (r *ownerRepo) FindByLastNameStartingWith(ctx context.Context, prefix string, page pagination.Request) (pagination.Page[owners.Owner], error) {
	return r.find(func(o owners.Owner) bool { return strings.HasPrefix(o.LastName, prefix) }, page), nil
}

func (r *ownerRepo) FindAll(ctx context.Context, page pagination.Request) (pagination.Page[owners.Owner], error) {
	return r.find(func(owners.Owner) bool { return true }, page), nil
}

func (r *ownerRepo) find(match func(owners.Owner) bool, page pagination.Request) pagination.Page[owners.Owner] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]owners.Owner, 0)
	for _, o := range r.byID {
		if match(o) {
			out = append(out, o.Clone())
		}
	}

	// Orden estable por id (mismo orden que el adapter postgres)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return pagination.Slice(out, page)
}

func (r *ownerRepo) FindPetTypes(ctx context.Context) ([]owners.PetType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]owners.PetType(nil), r.types...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Save asigna ids a owner, pets y visits nuevos y reemplaza el agregado completo.
func (r *ownerRepo) Save(ctx context.Context, o owners.Owner) (owners.Owner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o = o.Clone()
	if o.IsNew() {
		o.ID = r.nextOwnerID
		r.nextOwnerID++
	} else if _, exists := r.byID[o.ID]; !exists {
		return owners.Owner{}, owners.ErrNotFound
	}

	for i := range o.Pets {
		p := &o.Pets[i]
		if !r.knownType(p.Type) {
			return owners.Owner{}, fmt.Errorf("pet %q: unknown pet type %q", p.Name, p.Type.Name)
		}
		if p.IsNew() {
			p.ID = r.nextPetID
			r.nextPetID++
		}
		for j := range p.Visits {
			if p.Visits[j].ID == 0 {
				p.Visits[j].ID = r.nextVisitID
				r.nextVisitID++
			}
		}
	}

	r.byID[o.ID] = o
	return o.Clone(), nil
}

func (r *ownerRepo) knownType(t owners.PetType) bool {
	for _, known := range r.types {
		if known.ID == t.ID {
			return true
		}
	}
	return false
}

// bump mantiene los contadores por encima de los ids sembrados.
func (r *ownerRepo) bump(o owners.Owner) {
	if o.ID >= r.nextOwnerID {
		r.nextOwnerID = o.ID + 1
	}
	for _, p := range o.Pets {
		if p.ID >= r.nextPetID {
			r.nextPetID = p.ID + 1
		}
		for _, v := range p.Visits {
			if v.ID >= r.nextVisitID {
				r.nextVisitID = v.ID + 1
			}
		}
	}
}
