package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePage(t *testing.T) {
	assert.Equal(t, 1, ResolvePage("", 250, 100))
	assert.Equal(t, 1, ResolvePage("abc", 250, 100))
	assert.Equal(t, 1, ResolvePage("0", 250, 100))
	assert.Equal(t, 2, ResolvePage("2", 250, 100))
	assert.Equal(t, 3, ResolvePage("3", 250, 100))
	assert.Equal(t, 3, ResolvePage("99", 250, 100))
	assert.Equal(t, 1, ResolvePage("5", 0, 100))
}

func TestCalculatePaginationInfo(t *testing.T) {
	info := CalculatePaginationInfo(250, 2, 100)
	assert.Equal(t, 3, info.TotalPages)
	assert.True(t, info.HasNext)
	assert.True(t, info.HasPrevious)

	empty := CalculatePaginationInfo(0, 1, 100)
	assert.Equal(t, 1, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrevious)

	assert.Equal(t, 100, CalculateOffset(2, 100))
}
