package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetContactID(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)

	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Params = gin.Params{{Key: "contact_id", Value: "12"}}

	contactID, err := GetContactID(ctx)

	require.NoError(t, err)
	assert.Equal(t, uint(12), contactID)
}

func TestGetContactIDInvalid(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)

	tests := []struct {
		name  string
		value string
	}{
		{name: "missing", value: ""},
		{name: "not a number", value: "abc"},
		{name: "negative", value: "-1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
			if tt.value != "" {
				ctx.Params = gin.Params{{Key: "contact_id", Value: tt.value}}
			}

			_, err := GetContactID(ctx)

			assert.Error(t, err)
		})
	}
}

func TestNormalizeLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "https passes through", input: "https://example.com/me", want: "https://example.com/me"},
		{name: "bare hostname upgraded", input: "example.com/me", want: "https://example.com/me"},
		{name: "trailing slash trimmed", input: "https://example.com/me/", want: "https://example.com/me"},
		{name: "whitespace trimmed", input: "  https://example.com  ", want: "https://example.com"},
		{name: "empty rejected", input: "", wantErr: true},
		{name: "blank rejected", input: "   ", wantErr: true},
		{name: "ftp rejected", input: "ftp://example.com", wantErr: true},
		{name: "javascript rejected", input: "javascript:alert(1)", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NormalizeLink(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
