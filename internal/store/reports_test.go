// internal/store/reports_test.go
package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "venture-agents/internal/common/errors"
	"venture-agents/internal/common/logger"
)

func newTestReportStore(t *testing.T, handler http.HandlerFunc) *ReportStore {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{server.URL},
	})
	require.NoError(t, err)

	return NewReportStore(client, "research-reports", logger.NewTestLogger(t))
}

func TestReportStore_Index(t *testing.T) {
	var capturedPath string
	var capturedBody ReportDoc

	store := newTestReportStore(t, func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&capturedBody))
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	id, err := store.Index(context.Background(), "eco pet store", map[string]interface{}{
		"market_positioning": map[string]interface{}{"landscape_summary": "crowded"},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Contains(t, capturedPath, "/research-reports/_doc/")
	assert.Equal(t, "eco pet store", capturedBody.Idea)
	assert.Contains(t, capturedBody.Report, "market_positioning")
}

func TestReportStore_Index_ServerError(t *testing.T) {
	store := newTestReportStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	})

	_, err := store.Index(context.Background(), "eco pet store", map[string]interface{}{})

	require.Error(t, err)
	stdErr, ok := err.(*commonerrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, commonerrors.ErrCodeReportIndexFailed, stdErr.Code)
}

func TestReportStore_Search(t *testing.T) {
	store := newTestReportStore(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "query")

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"hits": {
				"hits": [
					{"_source": {"id": "rep-1", "idea": "eco pet store", "report": {"summary": "good"}}},
					{"_source": {"id": "rep-2", "idea": "pet food truck", "report": {"summary": "niche"}}}
				]
			}
		}`))
	})

	docs, err := store.Search(context.Background(), "pet", 5)

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "rep-1", docs[0].ID)
	assert.Equal(t, "eco pet store", docs[0].Idea)
}

func TestReportStore_Search_NoHits(t *testing.T) {
	store := newTestReportStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hits":{"hits":[]}}`))
	})

	docs, err := store.Search(context.Background(), "unrelated", 5)

	require.NoError(t, err)
	assert.Empty(t, docs)
}
