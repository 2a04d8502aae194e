package vets

import (
	"context"

	"petclinic/internal/platform/pagination"
)

type Repository interface {
	FindAll(ctx context.Context) ([]Vet, error)
	FindPage(ctx context.Context, page pagination.Request) (pagination.Page[Vet], error)
}
