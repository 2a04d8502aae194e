//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"petclinic/internal/domain/owners"
	"petclinic/internal/platform/pagination"
)

func setupPostgresContainer(t *testing.T) (*sql.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("petclinic_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := Open(ctx, dsn)
	require.NoError(t, err)

	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Seed(ctx, db))

	cleanup := func() {
		_ = db.Close()
		_ = pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func TestOwnersRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewOwnersRepo(db)
	ctx := context.Background()

	t.Run("seed is idempotent", func(t *testing.T) {
		require.NoError(t, Seed(ctx, db))
		page, err := repo.FindAll(ctx, pagination.NewRequest(1, 5))
		require.NoError(t, err)
		assert.Equal(t, 10, page.TotalItems)
		assert.Len(t, page.Items, 5)
	})

	t.Run("load aggregate", func(t *testing.T) {
		o, err := repo.FindByID(ctx, 6)
		require.NoError(t, err)
		assert.Equal(t, "Coleman", o.LastName)
		require.Len(t, o.Pets, 2)
		assert.Equal(t, "Samantha", o.Pets[0].Name)
		assert.Equal(t, "cat", o.Pets[0].Type.Name)
		require.Len(t, o.Pets[0].Visits, 2)
		assert.Equal(t, "rabies shot", o.Pets[0].Visits[0].Description)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 999)
		assert.ErrorIs(t, err, owners.ErrNotFound)
	})

	t.Run("prefix search is literal and case-sensitive", func(t *testing.T) {
		page, err := repo.FindByLastNameStartingWith(ctx, "Davis", pagination.NewRequest(1, 5))
		require.NoError(t, err)
		assert.Equal(t, 2, page.TotalItems)

		page, err = repo.FindByLastNameStartingWith(ctx, "davis", pagination.NewRequest(1, 5))
		require.NoError(t, err)
		assert.Equal(t, 0, page.TotalItems)

		page, err = repo.FindByLastNameStartingWith(ctx, "%", pagination.NewRequest(1, 5))
		require.NoError(t, err)
		assert.Equal(t, 0, page.TotalItems)
	})

	t.Run("save new aggregate then add pet and visit", func(t *testing.T) {
		types, err := repo.FindPetTypes(ctx)
		require.NoError(t, err)
		require.Len(t, types, 6)

		saved, err := repo.Save(ctx, owners.Owner{
			FirstName: "Joe", LastName: "Bloggs", Address: "123 Caramel Street", City: "London", Telephone: "1316761638",
		})
		require.NoError(t, err)
		assert.Equal(t, 11, saved.ID)

		saved.AddPet(owners.Pet{Name: "Betty", BirthDate: time.Date(2015, 2, 12, 0, 0, 0, 0, time.UTC), Type: types[0]})
		saved, err = repo.Save(ctx, saved)
		require.NoError(t, err)
		require.Len(t, saved.Pets, 1)
		petID := saved.Pets[0].ID
		assert.NotZero(t, petID)

		require.True(t, saved.AddVisit(petID, owners.Visit{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Description: "checkup"}))
		_, err = repo.Save(ctx, saved)
		require.NoError(t, err)

		again, err := repo.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		require.Len(t, again.Pets, 1)
		assert.Equal(t, "Betty", again.Pets[0].Name)
		assert.Equal(t, "2015-02-12", again.Pets[0].BirthDate.Format(owners.DateLayout))
		require.Len(t, again.Pets[0].Visits, 1)
		assert.Equal(t, "checkup", again.Pets[0].Visits[0].Description)
	})

	t.Run("update missing owner", func(t *testing.T) {
		_, err := repo.Save(ctx, owners.Owner{ID: 999, LastName: "Ghost"})
		assert.ErrorIs(t, err, owners.ErrNotFound)
	})
}

func TestVetsRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewVetsRepo(db)
	ctx := context.Background()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 6)
	assert.Equal(t, "Douglas", all[2].LastName)
	assert.Len(t, all[2].Specialties, 2)
	assert.NotNil(t, all[0].Specialties)

	page, err := repo.FindPage(ctx, pagination.NewRequest(2, 5))
	require.NoError(t, err)
	assert.Equal(t, 6, page.TotalItems)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Jenkins", page.Items[0].LastName)
}
