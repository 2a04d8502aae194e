package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"petclinic/internal/domain/vets"
	"petclinic/internal/platform/pagination"
)

type VetsRepo struct {
	db *sql.DB
}

func NewVetsRepo(db *sql.DB) *VetsRepo {
	return &VetsRepo{db: db}
}

func (r *VetsRepo) FindAll(ctx context.Context) ([]vets.Vet, error) {
	return r.query(ctx, `SELECT id, first_name, last_name FROM vets ORDER BY id`)
}

func (r *VetsRepo) FindPage(ctx context.Context, page pagination.Request) (pagination.Page[vets.Vet], error) {
	out := pagination.Page[vets.Vet]{Number: page.Number, Size: page.Size}

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vets`).Scan(&out.TotalItems); err != nil {
		return out, fmt.Errorf("count vets: %w", err)
	}

	items, err := r.query(ctx, `
		SELECT id, first_name, last_name
		FROM vets
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, page.Size, page.Offset())
	if err != nil {
		return out, err
	}
	out.Items = items
	return out, nil
}

func (r *VetsRepo) query(ctx context.Context, q string, args ...any) ([]vets.Vet, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vets.Vet, 0)
	index := map[int]int{}
	ids := make([]int64, 0)
	for rows.Next() {
		var v vets.Vet
		if err := rows.Scan(&v.ID, &v.FirstName, &v.LastName); err != nil {
			return nil, err
		}
		v.Specialties = []vets.Specialty{}
		index[v.ID] = len(out)
		ids = append(ids, int64(v.ID))
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}

	srows, err := r.db.QueryContext(ctx, `
		SELECT vs.vet_id, s.id, s.name
		FROM vet_specialties vs
		JOIN specialties s ON s.id = vs.specialty_id
		WHERE vs.vet_id = ANY($1)
		ORDER BY s.name
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("load specialties: %w", err)
	}
	defer srows.Close()

	for srows.Next() {
		var (
			vetID int
			s     vets.Specialty
		)
		if err := srows.Scan(&vetID, &s.ID, &s.Name); err != nil {
			return nil, err
		}
		i := index[vetID]
		out[i].Specialties = append(out[i].Specialties, s)
	}
	return out, srows.Err()
}
