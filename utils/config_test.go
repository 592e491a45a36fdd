package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInts(t *testing.T) {
	out, err := ParseInts("3 4 6 3")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4, 6, 3}, out)

	out, err = ParseInts("  1\t2  ")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, out)

	_, err = ParseInts("1 two 3")
	assert.Error(t, err)
}

func TestParseShape(t *testing.T) {
	out, err := ParseShape("1 64 64")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 64, 64}, out)

	_, err = ParseShape("")
	assert.Error(t, err)
	_, err = ParseShape("1 0 64")
	assert.Error(t, err)
	_, err = ParseShape("1 -2 64")
	assert.Error(t, err)
}
