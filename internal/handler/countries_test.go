package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Euphoric-Coder/Travel-Insights/internal/countries"
	"github.com/Euphoric-Coder/Travel-Insights/internal/handler"
)

// mockCountryLister is a test double for handler.CountryLister.
type mockCountryLister struct {
	list func(ctx context.Context) ([]countries.Option, error)
}

func (m *mockCountryLister) List(ctx context.Context) ([]countries.Option, error) {
	return m.list(ctx)
}

var _ handler.CountryLister = (*mockCountryLister)(nil)

// ---- GET /api/countries ----------------------------------------------------

func TestListCountries_200(t *testing.T) {
	lister := &mockCountryLister{
		list: func(_ context.Context) ([]countries.Option, error) {
			return []countries.Option{
				{Value: "italy", Label: "Italy"},
				{Value: "japan", Label: "Japan"},
			}, nil
		},
	}

	rec := doRequest(newHTTPHandler(serverDeps{countries: lister}), http.MethodGet, "/api/countries", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got []countries.Option
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, "italy", got[0].Value)
	assert.Equal(t, "Italy", got[0].Label)
}

func TestListCountries_200_EmptyOnUpstreamFailure(t *testing.T) {
	lister := &mockCountryLister{
		list: func(_ context.Context) ([]countries.Option, error) {
			return nil, errors.New("upstream down")
		},
	}

	rec := doRequest(newHTTPHandler(serverDeps{countries: lister}), http.MethodGet, "/api/countries", nil)

	// A directory outage degrades to an empty selector, never an error page.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
