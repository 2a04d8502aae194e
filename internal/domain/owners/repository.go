package owners

import (
	"context"
	"errors"

	"petclinic/internal/platform/pagination"
)

// ErrNotFound lo devuelven los adapters cuando el owner no existe.
var ErrNotFound = errors.New("owner not found")

type Repository interface {
	FindByID(ctx context.Context, id int) (Owner, error)
	FindByLastNameStartingWith(ctx context.Context, prefix string, page pagination.Request) (pagination.Page[Owner], error)
	FindAll(ctx context.Context, page pagination.Request) (pagination.Page[Owner], error)
	FindPetTypes(ctx context.Context) ([]PetType, error)

	// Save persiste el agregado completo y devuelve la versión con ids asignados.
	Save(ctx context.Context, o Owner) (Owner, error)
}
