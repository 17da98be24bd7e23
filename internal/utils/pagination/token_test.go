package pagination_test

import (
	"testing"
	"time"

	"github.com/budgetin-app/budgetin_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	date := time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 5, 17, 13, 45, 12, 987654321, time.UTC)

	token := pagination.EncodeToken(date, createdAt)
	gotDate, gotCreatedAt, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, date.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreatedAt))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	cases := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"no separator", "bm8gc2VwYXJhdG9y"}, // "no separator"
		{"bad timestamps", "Zm9vfGJhcg=="},   // "foo|bar"
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := pagination.DecodeToken(tc.token)
			assert.Error(t, err)
		})
	}
}
