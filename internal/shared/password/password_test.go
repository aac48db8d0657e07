package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewHasher_ClampsCost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cost int
		want int
	}{
		{"below min", 1, bcrypt.MinCost},
		{"in range", 8, 8},
		{"above max", 99, bcrypt.MaxCost},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NewHasher(tt.cost).cost)
		})
	}
}

func TestHasher_HashAndCompare(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	hashed, err := h.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hashed)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	assert.True(t, h.Compare(hashed, "password123"))
	assert.False(t, h.Compare(hashed, "wrong-password"))
}

func TestHasher_HashIsSalted(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)
	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHasher_CompareEmptyHash(t *testing.T) {
	t.Parallel()

	assert.False(t, NewHasher(bcrypt.MinCost).Compare("", "password123"))
}

func TestHasher_HashTooLong(t *testing.T) {
	t.Parallel()

	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}

	_, err := NewHasher(bcrypt.MinCost).Hash(string(long))
	assert.Error(t, err)
}
