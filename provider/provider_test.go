package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPQueryExecutorExecute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "{ hero { name } }", req.Query)
		w.Header().Set("Content-Type", "application/json")
		fmtWrite(w, `{"data": {"hero": {"name": "R2-D2"}}}`)
	}))
	defer srv.Close()

	exec := &HTTPQueryExecutor{Endpoint: srv.URL, Client: srv.Client()}
	data, err := exec.Execute(context.Background(), "{ hero { name } }", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"hero": {"name": "R2-D2"}}`, string(data))
}

func TestHTTPQueryExecutorExecuteReportsGraphQLErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmtWrite(w, `{"data": null, "errors": [{"message": "hero not found"}]}`)
	}))
	defer srv.Close()

	exec := &HTTPQueryExecutor{Endpoint: srv.URL, Client: srv.Client()}
	_, err := exec.Execute(context.Background(), "{ hero { name } }", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hero not found")
}

func TestHTTPSchemaProviderFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmtWrite(w, `{"data": {"__schema": {"queryType": {"name": "Query"}, "mutationType": null, "subscriptionType": null, "types": []}}}`)
	}))
	defer srv.Close()

	p := &HTTPSchemaProvider{Endpoint: srv.URL, Client: srv.Client()}
	doc, err := p.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Query", doc.Schema.QueryType.Name)
}

func TestHTTPQueryExecutorSendsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer xyz", r.Header.Get("Authorization"))
		fmtWrite(w, `{"data": {}}`)
	}))
	defer srv.Close()

	exec := &HTTPQueryExecutor{Endpoint: srv.URL, Client: srv.Client(), Headers: map[string]string{"Authorization": "Bearer xyz"}}
	_, err := exec.Execute(context.Background(), "{ ok }", nil)
	require.NoError(t, err)
}

func fmtWrite(w http.ResponseWriter, s string) {
	_, _ = w.Write([]byte(s))
}
