package product

import (
	"testing"

	"github.com/amirasaad/storefront/pkg/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p, err := New(" Mug ", "ceramic", "kitchen", 1299, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "Mug", p.Name)
	assert.Equal(t, StatusDraft, p.Status)

	_, err = New("", "", "", 1, uuid.New())
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = New("Mug", "", "", -1, uuid.New())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestApplyAndPublish(t *testing.T) {
	p, err := New("Mug", "", "", 100, uuid.New())
	require.NoError(t, err)

	name, price := "Big Mug", int64(250)
	require.NoError(t, p.Apply(Patch{Name: &name, PriceCents: &price}))
	assert.Equal(t, "Big Mug", p.Name)
	assert.Equal(t, int64(250), p.PriceCents)

	empty := " "
	assert.ErrorIs(t, p.Apply(Patch{Name: &empty}), domain.ErrValidation)

	p.Publish()
	assert.Equal(t, StatusPublished, p.Status)
}
