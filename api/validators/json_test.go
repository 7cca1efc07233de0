package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	pkgerrors "github.com/jkengne/boutique-pos-backend/pkg/errors"
)

type samplePayload struct {
	Name  string `json:"name" validate:"required"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

func TestDecodeJSONBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"BAG001","limit":10}`))

	var payload samplePayload
	require.NoError(t, DecodeJSONBody(r, &payload))
	require.Equal(t, "BAG001", payload.Name)
	require.Equal(t, 10, payload.Limit)
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x","bogus":true}`))

	var payload samplePayload
	err := DecodeJSONBody(r, &payload)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestDecodeJSONBodyReportsFieldErrors(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"limit":500}`))

	var payload samplePayload
	err := DecodeJSONBody(r, &payload)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)

	details, ok := appErr.Details().(map[string]string)
	require.True(t, ok)
	require.Equal(t, "is required", details["name"])
	require.Equal(t, "must be at most 100", details["limit"])
}

func TestSanitizeString(t *testing.T) {
	require.Equal(t, "abc", SanitizeString("  abc  ", 0))
	require.Equal(t, "ab", SanitizeString("abcd", 2))
}
