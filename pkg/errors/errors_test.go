package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseErrorFormatting(t *testing.T) {
	err := &ParseError{Format: "csv", File: "placemarks.csv", Message: "missing column folder"}
	assert.Equal(t, "parse error in csv file placemarks.csv: missing column folder", err.Error())

	bare := &ParseError{Format: "json", Message: "unrecognized response shape"}
	assert.Equal(t, "json parse error: unrecognized response shape", bare.Error())
}

func TestWrapParseUnwraps(t *testing.T) {
	cause := stderrors.New("boom")
	err := WrapParse("csv", "in.csv", cause)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)

	assert.NoError(t, WrapParse("csv", "in.csv", nil))
}

func TestAPIErrorUnavailable(t *testing.T) {
	down := &APIError{Endpoint: "/water_refill_stations", StatusCode: 503, Message: "unexpected status"}
	assert.ErrorIs(t, down, ErrUnavailable)

	missing := &APIError{Endpoint: "/water_refill_stations", StatusCode: 404, Message: "unexpected status"}
	assert.NotErrorIs(t, missing, ErrUnavailable)
}

func TestWrapPersistence(t *testing.T) {
	cause := stderrors.New("disk full")
	err := WrapPersistence("out/plan.json", cause)
	require.Error(t, err)

	var persistErr *PersistenceError
	require.ErrorAs(t, err, &persistErr)
	assert.Equal(t, "out/plan.json", persistErr.Path)
	assert.ErrorIs(t, err, cause)

	assert.NoError(t, WrapPersistence("out/plan.json", nil))
}

func TestIsNoAPIKey(t *testing.T) {
	assert.True(t, IsNoAPIKey(ErrNoAPIKey))
	assert.False(t, IsNoAPIKey(ErrNoData))

	wrapped := &LookupError{Message: "no key", Err: ErrNoAPIKey}
	assert.True(t, IsNoAPIKey(wrapped))
}
