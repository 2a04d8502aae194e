package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petclinic/internal/domain/owners"
	"petclinic/internal/platform/pagination"
)

func TestOwnerRepo_SeededFranklin(t *testing.T) {
	r := NewSeededOwnerRepo()

	o, err := r.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "George", o.FirstName)
	assert.Equal(t, "110 W. Liberty St.", o.Address)
	require.Len(t, o.Pets, 1)
	assert.Equal(t, "Leo", o.Pets[0].Name)
}

func TestOwnerRepo_NotFound(t *testing.T) {
	r := NewSeededOwnerRepo()

	_, err := r.FindByID(context.Background(), 404)
	assert.ErrorIs(t, err, owners.ErrNotFound)

	_, err = r.Save(context.Background(), owners.Owner{ID: 404, LastName: "Ghost"})
	assert.ErrorIs(t, err, owners.ErrNotFound)
}

func TestOwnerRepo_SaveAssignsIDsAfterSeed(t *testing.T) {
	r := NewSeededOwnerRepo()
	ctx := context.Background()

	saved, err := r.Save(ctx, owners.Owner{
		FirstName: "Joe", LastName: "Bloggs", Address: "x", City: "y", Telephone: "1",
		Pets: []owners.Pet{{Name: "Betty", Type: PetTypes[5], Visits: []owners.Visit{{Description: "first"}}}},
	})
	require.NoError(t, err)
	assert.Equal(t, 11, saved.ID)
	assert.Equal(t, 14, saved.Pets[0].ID)
	assert.Equal(t, 5, saved.Pets[0].Visits[0].ID)
}

func TestOwnerRepo_SaveRejectsUnknownType(t *testing.T) {
	r := NewSeededOwnerRepo()

	_, err := r.Save(context.Background(), owners.Owner{
		LastName: "Bloggs",
		Pets:     []owners.Pet{{Name: "Rex", Type: owners.PetType{ID: 99, Name: "dragon"}}},
	})
	assert.Error(t, err)
}

func TestOwnerRepo_ReturnsCopies(t *testing.T) {
	r := NewSeededOwnerRepo()
	ctx := context.Background()

	o, err := r.FindByID(ctx, 6)
	require.NoError(t, err)
	o.Pets[0].Visits[0].Description = "changed"
	o.Pets = nil

	again, err := r.FindByID(ctx, 6)
	require.NoError(t, err)
	require.Len(t, again.Pets, 2)
	assert.Equal(t, "rabies shot", again.Pets[0].Visits[0].Description)
}

func TestOwnerRepo_FindByLastNamePaged(t *testing.T) {
	r := NewSeededOwnerRepo()
	ctx := context.Background()

	page, err := r.FindByLastNameStartingWith(ctx, "Davis", pagination.NewRequest(1, 5))
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalItems)
	assert.Equal(t, []int{2, 4}, ids(page.Items))

	none, err := r.FindByLastNameStartingWith(ctx, "davis", pagination.NewRequest(1, 5))
	require.NoError(t, err)
	assert.Equal(t, 0, none.TotalItems)

	all, err := r.FindAll(ctx, pagination.NewRequest(3, 4))
	require.NoError(t, err)
	assert.Equal(t, 10, all.TotalItems)
	assert.Equal(t, 3, all.TotalPages())
	assert.Equal(t, []int{9, 10}, ids(all.Items))
}

func TestOwnerRepo_PetTypesSortedByName(t *testing.T) {
	r := NewSeededOwnerRepo()

	types, err := r.FindPetTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, types, 6)
	assert.Equal(t, "bird", types[0].Name)
	assert.Equal(t, "snake", types[5].Name)
}

func TestOwnerRepo_ConcurrentSaves(t *testing.T) {
	r := NewOwnerRepo(PetTypes)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.Save(ctx, owners.Owner{LastName: "Concurrent"})
		}()
	}
	wg.Wait()

	page, err := r.FindByLastNameStartingWith(ctx, "Con", pagination.NewRequest(1, 50))
	require.NoError(t, err)
	assert.Equal(t, 20, page.TotalItems)
}

func ids(list []owners.Owner) []int {
	out := make([]int, 0, len(list))
	for _, o := range list {
		out = append(out, o.ID)
	}
	return out
}
