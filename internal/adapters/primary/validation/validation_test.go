package validation

import (
	"net/http/httptest"
	"testing"

	"github.com/lorrc/response-metrics-backend/internal/core/domain"
	apperrors "github.com/lorrc/response-metrics-backend/internal/core/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_OneOf(t *testing.T) {
	v := NewValidator()
	v.OneOf("anchor", "latest", []string{"latest", "today"})
	assert.False(t, v.HasErrors())

	v = NewValidator()
	v.OneOf("anchor", "tomorrow", []string{"latest", "today"})
	require.True(t, v.HasErrors())
	assert.Contains(t, v.Errors().Errors, "anchor")

	// Empty values are left to Required
	v = NewValidator()
	v.OneOf("anchor", "", []string{"latest", "today"})
	assert.False(t, v.HasErrors())
}

func TestValidator_Date(t *testing.T) {
	v := NewValidator()
	v.Date("start", "2024-03-01")
	assert.False(t, v.HasErrors())

	v = NewValidator()
	v.Date("start", "01/03/2024")
	assert.True(t, v.HasErrors())
}

func TestParseDateQueryParam(t *testing.T) {
	req := httptest.NewRequest("GET", "/?start=2024-03-01", nil)
	d, err := ParseDateQueryParam(req, "start")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, domain.Date("2024-03-01"), *d)

	// Missing is not an error
	d, err = ParseDateQueryParam(req, "end")
	require.NoError(t, err)
	assert.Nil(t, d)

	req = httptest.NewRequest("GET", "/?start=yesterday", nil)
	_, err = ParseDateQueryParam(req, "start")
	assert.ErrorIs(t, err, apperrors.ErrMalformedDate)
}

func TestParseIntQueryParam(t *testing.T) {
	req := httptest.NewRequest("GET", "/?preset=14&bad=abc&negative=-3", nil)

	assert.Equal(t, 14, ParseIntQueryParam(req, "preset", 30))
	assert.Equal(t, 30, ParseIntQueryParam(req, "missing", 30))
	assert.Equal(t, 30, ParseIntQueryParam(req, "bad", 30))
	assert.Equal(t, 30, ParseIntQueryParam(req, "negative", 30))
}
