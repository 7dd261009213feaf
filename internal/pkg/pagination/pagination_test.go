package pagination_test

import (
	"testing"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParams(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantLimit int
	}{
		{name: "should default a zero limit", page: 1, limit: 0, wantLimit: pagination.DefaultLimit},
		{name: "should default a negative limit", page: 1, limit: -5, wantLimit: pagination.DefaultLimit},
		{name: "should cap large limits", page: 2, limit: 1000, wantLimit: pagination.MaxLimit},
		{name: "should keep limits in range", page: 3, limit: 10, wantLimit: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := pagination.NewParams(tt.page, tt.limit)

			require.NoError(t, err)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}

	t.Run("should reject pages below one", func(t *testing.T) {
		_, err := pagination.NewParams(0, 10)

		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestParams_Offset(t *testing.T) {
	p, err := pagination.NewParams(3, 20)
	require.NoError(t, err)

	assert.Equal(t, 40, p.Offset())
}

func TestNewPage(t *testing.T) {
	p, err := pagination.NewParams(1, 10)
	require.NoError(t, err)

	page := pagination.NewPage[string](nil, p, 0)

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 10, page.Limit)
}
