package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		raw      string
		wantNum  int
		wantLen  int
		numPages int
	}{
		{"first page", 13, "", 1, 10, 2},
		{"second page holds the remainder", 13, "2", 2, 3, 2},
		{"non numeric falls back to first", 13, "abc", 1, 10, 2},
		{"beyond range clamps to last", 13, "99", 2, 3, 2},
		{"negative clamps to first", 13, "-4", 1, 10, 2},
		{"empty listing still has one page", 0, "3", 1, 0, 1},
		{"exact multiple", 20, "2", 2, 10, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(tt.total, 10, tt.raw)
			assert.Equal(t, tt.wantNum, p.Number)
			assert.Equal(t, tt.wantLen, p.Len())
			assert.Equal(t, tt.numPages, p.NumPages)
		})
	}
}

func TestPage_Navigation(t *testing.T) {
	p := Paginate(95, 10, "5")
	assert.Equal(t, 40, p.Offset())
	assert.Equal(t, 10, p.Limit())
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())
	assert.Equal(t, 4, p.PrevNumber())
	assert.Equal(t, 6, p.NextNumber())
	assert.Equal(t, []int{3, 4, 5, 6, 7}, p.PageRange(5))

	last := Paginate(95, 10, "10")
	assert.False(t, last.HasNext())
	assert.Equal(t, []int{6, 7, 8, 9, 10}, last.PageRange(5))
	assert.Equal(t, 5, last.Len())

	assert.Equal(t, []int{1}, Paginate(0, 10, "").PageRange(5))
}
