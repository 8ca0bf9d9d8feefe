package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClamps(t *testing.T) {
	tests := []struct {
		number, size int
		want         Page
		offset       int
	}{
		{0, 0, Page{Number: 1, Size: DefaultSize}, 0},
		{3, 10, Page{Number: 3, Size: 10}, 20},
		{2, 500, Page{Number: 2, Size: MaxSize}, MaxSize},
		{-4, -1, Page{Number: 1, Size: DefaultSize}, 0},
	}
	for _, tt := range tests {
		got := New(tt.number, tt.size)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.offset, got.Offset())
	}
}

func TestNewListing(t *testing.T) {
	listing := NewListing([]string{"a"}, New(2, 10), 21)
	assert.Equal(t, 3, listing.Meta.TotalPages)
	assert.True(t, listing.Meta.HasNext)
	assert.True(t, listing.Meta.HasPrev)

	empty := NewListing(nil, New(1, 10), 0)
	assert.Zero(t, empty.Meta.TotalPages)
	assert.False(t, empty.Meta.HasNext)
	assert.False(t, empty.Meta.HasPrev)
}
