package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"petclinic/internal/domain/owners"
	"petclinic/internal/platform/pagination"
)

type OwnersRepo struct {
	db *sql.DB
}

func NewOwnersRepo(db *sql.DB) *OwnersRepo {
	return &OwnersRepo{db: db}
}

// queryer es lo común entre *sql.DB y *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *OwnersRepo) FindByID(ctx context.Context, id int) (owners.Owner, error) {
	var o owners.Owner
	err := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, address, city, telephone
		FROM owners
		WHERE id = $1
	`, id).Scan(&o.ID, &o.FirstName, &o.LastName, &o.Address, &o.City, &o.Telephone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return owners.Owner{}, owners.ErrNotFound
		}
		return owners.Owner{}, err
	}

	list := []owners.Owner{o}
	if err := loadPets(ctx, r.db, list); err != nil {
		return owners.Owner{}, err
	}
	return list[0], nil
}

func (r *OwnersRepo) FindByLastNameStartingWith(ctx context.Context, prefix string, page pagination.Request) (pagination.Page[owners.Owner], error) {
	return r.findPage(ctx, `WHERE last_name LIKE $1`, []any{escapeLike(prefix) + "%"}, page)
}

func (r *OwnersRepo) FindAll(ctx context.Context, page pagination.Request) (pagination.Page[owners.Owner], error) {
	return r.findPage(ctx, "", nil, page)
}

func (r *OwnersRepo) findPage(ctx context.Context, where string, args []any, page pagination.Request) (pagination.Page[owners.Owner], error) {
	out := pagination.Page[owners.Owner]{Number: page.Number, Size: page.Size, Items: []owners.Owner{}}

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM owners `+where, args...).Scan(&out.TotalItems); err != nil {
		return out, fmt.Errorf("count owners: %w", err)
	}
	if out.TotalItems == 0 {
		return out, nil
	}

	n := len(args)
	q := fmt.Sprintf(`
		SELECT id, first_name, last_name, address, city, telephone
		FROM owners
		%s
		ORDER BY id
		LIMIT $%d OFFSET $%d
	`, where, n+1, n+2)

	rows, err := r.db.QueryContext(ctx, q, append(args, page.Size, page.Offset())...)
	if err != nil {
		return out, err
	}
	defer rows.Close()

	for rows.Next() {
		var o owners.Owner
		if err := rows.Scan(&o.ID, &o.FirstName, &o.LastName, &o.Address, &o.City, &o.Telephone); err != nil {
			return out, err
		}
		out.Items = append(out.Items, o)
	}
	if err := rows.Err(); err != nil {
		return out, err
	}

	if err := loadPets(ctx, r.db, out.Items); err != nil {
		return out, err
	}
	return out, nil
}

func (r *OwnersRepo) FindPetTypes(ctx context.Context) ([]owners.PetType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]owners.PetType, 0)
	for rows.Next() {
		var t owners.PetType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Save persiste el agregado completo en una transacción.
// Pets y visits nuevos (id 0) se insertan; los existentes se actualizan. Las visits no se editan.
func (r *OwnersRepo) Save(ctx context.Context, o owners.Owner) (owners.Owner, error) {
	o = o.Clone()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return owners.Owner{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if o.IsNew() {
		err = tx.QueryRowContext(ctx, `
			INSERT INTO owners (first_name, last_name, address, city, telephone)
			VALUES ($1,$2,$3,$4,$5)
			RETURNING id
		`, o.FirstName, o.LastName, o.Address, o.City, o.Telephone).Scan(&o.ID)
		if err != nil {
			return owners.Owner{}, fmt.Errorf("insert owner: %w", err)
		}
	} else {
		res, err := tx.ExecContext(ctx, `
			UPDATE owners
			SET
				first_name = $2,
				last_name = $3,
				address = $4,
				city = $5,
				telephone = $6
			WHERE id = $1
		`, o.ID, o.FirstName, o.LastName, o.Address, o.City, o.Telephone)
		if err != nil {
			return owners.Owner{}, fmt.Errorf("update owner %d: %w", o.ID, err)
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return owners.Owner{}, owners.ErrNotFound
		}
	}

	for i := range o.Pets {
		if err := savePet(ctx, tx, o.ID, &o.Pets[i]); err != nil {
			return owners.Owner{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return owners.Owner{}, err
	}
	return o, nil
}

func savePet(ctx context.Context, tx *sql.Tx, ownerID int, p *owners.Pet) error {
	if p.IsNew() {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO pets (name, birth_date, type_id, owner_id)
			VALUES ($1,$2,$3,$4)
			RETURNING id
		`, p.Name, toNullDate(p.BirthDate), p.Type.ID, ownerID).Scan(&p.ID)
		if err != nil {
			return fmt.Errorf("insert pet %q: %w", p.Name, err)
		}
	} else {
		res, err := tx.ExecContext(ctx, `
			UPDATE pets
			SET
				name = $3,
				birth_date = $4,
				type_id = $5
			WHERE id = $1 AND owner_id = $2
		`, p.ID, ownerID, p.Name, toNullDate(p.BirthDate), p.Type.ID)
		if err != nil {
			return fmt.Errorf("update pet %d: %w", p.ID, err)
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return fmt.Errorf("update pet %d: %w", p.ID, owners.ErrPetNotFound)
		}
	}

	for j := range p.Visits {
		v := &p.Visits[j]
		if v.ID != 0 {
			continue
		}
		err := tx.QueryRowContext(ctx, `
			INSERT INTO visits (pet_id, visit_date, description)
			VALUES ($1,$2,$3)
			RETURNING id
		`, p.ID, toNullDate(v.Date), v.Description).Scan(&v.ID)
		if err != nil {
			return fmt.Errorf("insert visit for pet %d: %w", p.ID, err)
		}
	}
	return nil
}

// loadPets completa pets (con tipo) y visits de los owners dados, en orden de id.
func loadPets(ctx context.Context, q queryer, list []owners.Owner) error {
	if len(list) == 0 {
		return nil
	}

	ownerIDs := make([]int64, 0, len(list))
	index := make(map[int]int, len(list))
	for i, o := range list {
		ownerIDs = append(ownerIDs, int64(o.ID))
		index[o.ID] = i
		list[i].Pets = nil
	}

	rows, err := q.QueryContext(ctx, `
		SELECT p.id, p.owner_id, p.name, p.birth_date, t.id, t.name
		FROM pets p
		JOIN types t ON t.id = p.type_id
		WHERE p.owner_id = ANY($1)
		ORDER BY p.id
	`, ownerIDs)
	if err != nil {
		return fmt.Errorf("load pets: %w", err)
	}
	defer rows.Close()

	type petRef struct{ owner, pet int }
	refs := map[int]petRef{}
	petIDs := make([]int64, 0)

	for rows.Next() {
		var (
			p       owners.Pet
			ownerID int
			birth   sql.NullTime
		)
		if err := rows.Scan(&p.ID, &ownerID, &p.Name, &birth, &p.Type.ID, &p.Type.Name); err != nil {
			return err
		}
		if birth.Valid {
			p.BirthDate = birth.Time
		}

		oi := index[ownerID]
		list[oi].Pets = append(list[oi].Pets, p)
		refs[p.ID] = petRef{owner: oi, pet: len(list[oi].Pets) - 1}
		petIDs = append(petIDs, int64(p.ID))
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(petIDs) == 0 {
		return nil
	}

	vrows, err := q.QueryContext(ctx, `
		SELECT id, pet_id, visit_date, description
		FROM visits
		WHERE pet_id = ANY($1)
		ORDER BY id
	`, petIDs)
	if err != nil {
		return fmt.Errorf("load visits: %w", err)
	}
	defer vrows.Close()

	for vrows.Next() {
		var (
			v     owners.Visit
			petID int
			date  sql.NullTime
			desc  sql.NullString
		)
		if err := vrows.Scan(&v.ID, &petID, &date, &desc); err != nil {
			return err
		}
		if date.Valid {
			v.Date = date.Time
		}
		v.Description = desc.String

		ref := refs[petID]
		pet := &list[ref.owner].Pets[ref.pet]
		pet.Visits = append(pet.Visits, v)
	}
	return vrows.Err()
}

// escapeLike: el prefijo es literal, % y _ no son comodines.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
