package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterClause(t *testing.T) {
	tests := []struct {
		filter  Filter
		want    string
		wantErr bool
	}{
		{Where("salon_id", Eq, 1), "salon_id = ?", false},
		{Where("start_time", Lt, nil), "start_time < ?", false},
		{Where("status", Ne, "cancelled"), "status <> ?", false},
		{Where("status", In, []string{"pending"}), "status IN ?", false},
		{Where("id; DROP TABLE x", Eq, 1), "", true},
		{Where("Name", Eq, 1), "", true},
		{Where("name", Op("LIKE"), "%a%"), "", true},
	}

	for _, tt := range tests {
		got, err := tt.filter.clause()
		if tt.wantErr {
			assert.Error(t, err, tt.filter.Field)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestOrderClause(t *testing.T) {
	got, err := Order{Field: "start_time"}.clause()
	require.NoError(t, err)
	assert.Equal(t, "start_time ASC", got)

	got, err = Order{Field: "created_at", Desc: true}.clause()
	require.NoError(t, err)
	assert.Equal(t, "created_at DESC", got)

	_, err = Order{Field: "1=1"}.clause()
	assert.Error(t, err)
}

func TestQueryNormalized(t *testing.T) {
	q := Query{}.normalized()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultLimit, q.Limit)
	assert.Equal(t, 0, q.offset())

	q = Query{Page: 3, Limit: 1000}.normalized()
	assert.Equal(t, MaxLimit, q.Limit)
	assert.Equal(t, 2*MaxLimit, q.offset())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, totalPages(0, 50))
	assert.Equal(t, 1, totalPages(50, 50))
	assert.Equal(t, 2, totalPages(51, 50))
	assert.Equal(t, 0, totalPages(10, 0))
}

func TestSearchClause(t *testing.T) {
	cl, args, err := Search{Term: " Ana ", Fields: []string{"name", "email"}}.clause()
	require.NoError(t, err)
	assert.Equal(t, "(LOWER(name) LIKE ? OR LOWER(email) LIKE ?)", cl)
	assert.Equal(t, []any{"%ana%", "%ana%"}, args)

	_, _, err = Search{Term: "x"}.clause()
	assert.Error(t, err)

	_, _, err = Search{Term: "x", Fields: []string{"name) OR (1=1"}}.clause()
	assert.Error(t, err)
}
