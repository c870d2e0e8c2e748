package pagination_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/fintrack/fintrack_app/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 6, 15, 10, 30, 45, 123456789, time.UTC)

	token := pagination.EncodeToken(date, createdAt)

	gotDate, gotCreatedAt, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, date.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreatedAt))
}

func TestDecodeTokenInvalid(t *testing.T) {
	testCases := []struct {
		name  string
		token string
	}{
		{name: "not base64", token: "%%%not-base64%%%"},
		{name: "missing separator", token: base64.StdEncoding.EncodeToString([]byte("2025-06-15T00:00:00Z"))},
		{name: "bad date", token: base64.StdEncoding.EncodeToString([]byte("yesterday|2025-06-15T10:30:45Z"))},
		{name: "bad created_at", token: base64.StdEncoding.EncodeToString([]byte("2025-06-15T00:00:00Z|later"))},
		{name: "empty", token: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := pagination.DecodeToken(tc.token)
			assert.Error(t, err)
		})
	}
}
