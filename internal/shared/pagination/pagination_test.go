package pagination

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		page int
		size int
		sort string
		want Request
	}{
		{"defaults", 0, 0, "", Request{Page: 0, Size: DefaultSize, Direction: Asc}},
		{"negative page clamps to zero", -3, 10, "", Request{Page: 0, Size: 10, Direction: Asc}},
		{"size capped", 1, 1000, "", Request{Page: 1, Size: MaxSize, Direction: Asc}},
		{"field only", 2, 5, "title", Request{Page: 2, Size: 5, Sort: "title", Direction: Asc}},
		{"field with desc", 0, 5, "createdAt,desc", Request{Page: 0, Size: 5, Sort: "createdAt", Direction: Desc}},
		{"direction is case insensitive", 0, 5, " id , DESC ", Request{Page: 0, Size: 5, Sort: "id", Direction: Desc}},
		{"unknown direction falls back to asc", 0, 5, "id,sideways", Request{Page: 0, Size: 5, Sort: "id", Direction: Asc}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NewRequest(tt.page, tt.size, tt.sort))
		})
	}
}

func TestRequest_Offset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, NewRequest(0, 10, "").Offset())
	assert.Equal(t, 30, NewRequest(3, 10, "").Offset())
}

func TestNewPage(t *testing.T) {
	t.Parallel()

	req := NewRequest(1, 2, "")

	p := NewPage([]int{3, 4}, req, 5)
	assert.Equal(t, []int{3, 4}, p.Content)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 2, p.Size)
	assert.Equal(t, int64(5), p.TotalElements)
	assert.Equal(t, 3, p.TotalPages)

	empty := NewPage[int](nil, req, 0)
	assert.NotNil(t, empty.Content, "content should be an empty slice, not nil")
	assert.Equal(t, 0, empty.TotalPages)
}

func TestMap(t *testing.T) {
	t.Parallel()

	p := NewPage([]int{1, 2}, NewRequest(0, 2, ""), 4)
	mapped := Map(p, strconv.Itoa)

	assert.Equal(t, []string{"1", "2"}, mapped.Content)
	assert.Equal(t, p.TotalElements, mapped.TotalElements)
	assert.Equal(t, p.TotalPages, mapped.TotalPages)
}
