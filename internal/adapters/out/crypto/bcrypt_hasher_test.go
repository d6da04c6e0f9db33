package crypto_test

import (
	"strings"
	"testing"

	"routehub/internal/adapters/out/crypto"
	"routehub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h, err := crypto.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := h.Hash("s3cret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$04$"))
	assert.True(t, h.Matches(hash, "s3cret-pass"))
	assert.False(t, h.Matches(hash, "other"))
}

func TestBcryptHasher_SaltsEachHash(t *testing.T) {
	h, err := crypto.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	first, err := h.Hash("same")
	require.NoError(t, err)
	second, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestNewBcryptHasher_Cost(t *testing.T) {
	_, err := crypto.NewBcryptHasher(0)
	require.NoError(t, err)

	_, err = crypto.NewBcryptHasher(bcrypt.MaxCost + 1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = crypto.NewBcryptHasher(2)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
