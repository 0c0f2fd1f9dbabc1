package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/warehouse-inventory/pkg/apperror"
)

func TestRespondErrorMapsTaxonomy(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{apperror.NotFound("Item %s not found", "x"), http.StatusNotFound, "Item x not found"},
		{apperror.InsufficientStock("Insufficient stock. Current: 1, Requested: 2"), http.StatusUnprocessableEntity, "Insufficient stock. Current: 1, Requested: 2"},
		{apperror.Internal(errors.New("pq: boom"), "failed to list items"), http.StatusInternalServerError, "Internal server error"},
		{errors.New("raw"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		RespondError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)

		assert.Equal(t, tc.status, rec.Code)
		var body Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, tc.message, body.Error)
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"bolt"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "bolt", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	err := DecodeJSON(req, &dst)
	assert.True(t, errors.Is(err, apperror.ErrInvalidArgument))
}

func TestPagination(t *testing.T) {
	limit, offset, err := Pagination(httptest.NewRequest(http.MethodGet, "/?limit=20&page=3", nil))
	require.NoError(t, err)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 40, offset)

	limit, offset, err = Pagination(httptest.NewRequest(http.MethodGet, "/?offset=5", nil))
	require.NoError(t, err)
	assert.Zero(t, limit)
	assert.Equal(t, 5, offset)

	_, _, err = Pagination(httptest.NewRequest(http.MethodGet, "/?limit=abc", nil))
	assert.True(t, errors.Is(err, apperror.ErrInvalidArgument))
}

func TestDateRange(t *testing.T) {
	start, end, err := DateRange(httptest.NewRequest(http.MethodGet, "/?start_date=2024-01-01&end_date=2024-01-31", nil))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *start)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC), *end)

	start, _, err = DateRange(httptest.NewRequest(http.MethodGet, "/?start_date=2024-02-01T10:00:00Z", nil))
	require.NoError(t, err)
	assert.Equal(t, 10, start.Hour())

	_, _, err = DateRange(httptest.NewRequest(http.MethodGet, "/?start_date=2024-02-01&end_date=2024-01-01", nil))
	assert.Error(t, err)

	_, _, err = DateRange(httptest.NewRequest(http.MethodGet, "/?start_date=yesterday", nil))
	assert.Error(t, err)
}
