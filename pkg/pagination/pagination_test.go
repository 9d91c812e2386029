package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantPage    int
		wantPerPage int
		wantOffset  int
	}{
		{"defaults", "", 1, 20, 0},
		{"custom values", "?page=3&per_page=50", 3, 50, 100},
		{"negative page", "?page=-1", 1, 20, 0},
		{"zero page", "?page=0", 1, 20, 0},
		{"non numeric", "?page=abc&per_page=xyz", 1, 20, 0},
		{"per page over cap", "?per_page=101", 1, 20, 0},
		{"per page at cap", "?page=2&per_page=100", 2, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := FromRequest(httptest.NewRequest(http.MethodGet, "/products"+tt.query, nil))
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPerPage, p.PerPage)
			assert.Equal(t, tt.wantOffset, p.Offset)
		})
	}
}

func TestPaginate_MiddlePage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	res := Paginate(items, Params{Page: 2, PerPage: 3})

	assert.Equal(t, []int{4, 5, 6}, res.Data)
	assert.Equal(t, 7, res.TotalCount)
	assert.Equal(t, 3, res.TotalPages)
	assert.True(t, res.HasNext)
	assert.True(t, res.HasPrev)
}

func TestPaginate_LastPartialPage(t *testing.T) {
	res := Paginate([]int{1, 2, 3, 4, 5, 6, 7}, Params{Page: 3, PerPage: 3})

	assert.Equal(t, []int{7}, res.Data)
	assert.False(t, res.HasNext)
}

func TestPaginate_PastEnd(t *testing.T) {
	res := Paginate([]string{"a", "b"}, Params{Page: 5, PerPage: 10})

	require.NotNil(t, res.Data)
	assert.Empty(t, res.Data)
	assert.Equal(t, 2, res.TotalCount)
	assert.Equal(t, 1, res.TotalPages)
}

func TestPaginate_DoesNotAliasInput(t *testing.T) {
	items := []int{1, 2, 3}
	res := Paginate(items, Params{Page: 1, PerPage: 2})

	res.Data[0] = 99
	assert.Equal(t, 1, items[0])
}

func TestPaginate_ZeroParamsUseDefaults(t *testing.T) {
	res := Paginate([]int{1, 2}, Params{})

	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 20, res.PerPage)
	assert.Equal(t, []int{1, 2}, res.Data)
}

func TestNewResult_EmptyData(t *testing.T) {
	res := NewResult[int](nil, 0, DefaultParams())

	assert.NotNil(t, res.Data)
	assert.Equal(t, 0, res.TotalPages)
	assert.False(t, res.HasNext)
	assert.False(t, res.HasPrev)
}
