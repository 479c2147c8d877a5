package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, r := range Roles {
		parsed, err := ParseRole(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}

	_, err := ParseRole("wizard")
	assert.Error(t, err)
	_, err = ParseRole("")
	assert.Error(t, err)
	_, err = ParseRole("Farmer") // case-sensitive
	assert.Error(t, err)
}
