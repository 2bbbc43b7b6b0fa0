package id

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shareHashPattern = regexp.MustCompile(`^[0-9a-f]{8}$`)

func TestGenerate_Uniqueness(t *testing.T) {
	ids := make(map[string]bool)
	count := 1000

	for range count {
		id, err := Generate("test")
		require.NoError(t, err)
		assert.False(t, ids[id], "ID should be unique: %s", id)
		ids[id] = true
	}

	assert.Len(t, ids, count)
}

func TestGenerate_Format(t *testing.T) {
	for _, prefix := range []string{"user", "content", "category", "tag"} {
		t.Run(prefix, func(t *testing.T) {
			id, err := Generate(prefix)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(id, prefix+"-"))
			// prefix + hyphen + 21 char nanoid
			assert.Len(t, id, len(prefix)+1+21)
		})
	}
}

func TestMustGenerate(t *testing.T) {
	assert.NotPanics(t, func() {
		id := MustGenerate("user")
		assert.True(t, strings.HasPrefix(id, "user-"))
	})
}

func TestShareHash_Shape(t *testing.T) {
	for range 500 {
		hash, err := ShareHash()
		require.NoError(t, err)
		assert.Regexp(t, shareHashPattern, hash)
		assert.True(t, IsShareHash(hash))
	}
}

func TestShareHash_UsesWholeAlphabet(t *testing.T) {
	seen := make(map[rune]bool)
	for range 200 {
		hash, err := ShareHash()
		require.NoError(t, err)
		for _, c := range hash {
			seen[c] = true
		}
	}

	assert.Len(t, seen, 16)
}

func TestIsShareHash(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"abc12345", true},
		{"00000000", true},
		{"ffffffff", true},
		{"ABC12345", false},
		{"abc1234", false},
		{"abc123456", false},
		{"abc1234g", false},
		{"", false},
		{"../etc/p", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsShareHash(tt.input))
		})
	}
}
