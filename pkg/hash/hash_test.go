package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	hashed, err := h.Hash("secret123")
	require.NoError(t, err)
	require.NotEmpty(t, hashed)
	assert.NotEqual(t, "secret123", hashed)

	assert.True(t, h.Verify("secret123", hashed))
}

func TestVerify_WrongPassword(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	hashed, err := h.Hash("secret123")
	require.NoError(t, err)

	assert.False(t, h.Verify("secret124", hashed))
	assert.False(t, h.Verify("", hashed))
}

func TestVerify_MalformedHash(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	assert.False(t, h.Verify("secret123", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("secret123", ""))
}

func TestVerify_AcceptsOtherCost(t *testing.T) {
	t.Parallel()

	// A hash produced under a different work factor still verifies; bcrypt
	// carries the cost inside the hash string.
	low, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	h := NewBcryptHasher(bcrypt.DefaultCost)
	assert.True(t, h.Verify("secret123", string(low)))
}

func TestNewBcryptHasher_CostOutOfRange(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(-1)
	hashed, err := h.Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
