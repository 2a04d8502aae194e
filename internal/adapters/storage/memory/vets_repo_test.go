package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petclinic/internal/platform/pagination"
)

func TestVetRepo_FindAllAndPage(t *testing.T) {
	r := NewVetRepo(SeedVets())
	ctx := context.Background()

	all, err := r.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 6)
	assert.Equal(t, "Carter", all[0].LastName)
	assert.NotNil(t, all[0].Specialties)
	assert.Equal(t, 2, all[2].NrOfSpecialties())
	assert.Equal(t, "dentistry", all[2].Specialties[0].Name)
	assert.Equal(t, "surgery", all[2].Specialties[1].Name)

	page, err := r.FindPage(ctx, pagination.NewRequest(2, 5))
	require.NoError(t, err)
	assert.Equal(t, 6, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages())
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Jenkins", page.Items[0].LastName)
	assert.NotNil(t, page.Items[0].Specialties)
}
