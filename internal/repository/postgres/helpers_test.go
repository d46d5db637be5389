package postgres

import (
	"testing"

	"github.com/gestia/gestia/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestOrderByClause(t *testing.T) {
	allowed := map[string]bool{"created_at": true, "name": true}

	tests := []struct {
		name     string
		filter   types.Filter
		expected string
	}{
		{
			name:     "whitelisted column defaults to desc",
			filter:   types.Filter{Sort: "name"},
			expected: "name DESC",
		},
		{
			name:     "whitelisted column asc",
			filter:   types.Filter{Sort: "created_at", Order: types.OrderAsc},
			expected: "created_at ASC",
		},
		{
			name:     "order is case insensitive",
			filter:   types.Filter{Sort: "name", Order: "ASC"},
			expected: "name ASC",
		},
		{
			name:     "empty sort falls back",
			filter:   types.Filter{},
			expected: "created_at DESC",
		},
		{
			name:     "unknown column falls back",
			filter:   types.Filter{Sort: "stock"},
			expected: "created_at DESC",
		},
		{
			name:     "hostile input never reaches the clause",
			filter:   types.Filter{Sort: "name; DROP TABLE clients--", Order: "asc"},
			expected: "created_at DESC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, orderByClause(tt.filter, allowed, "created_at DESC"))
		})
	}
}
