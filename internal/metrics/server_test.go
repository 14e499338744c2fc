package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestHandlerServesMetricsAndHealth(t *testing.T) {
	BatchInc("Probe")
	RecordsAdd("Probe", "live", 2)
	LastIndexedBlockSet("Probe", 42)
	QueryDurationObserve("Probe", 0.25)

	srv := httptest.NewServer(NewServer("", nil).Handler())
	defer srv.Close()

	status, body := get(t, srv.URL+"/health")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "OK", body)

	status, body = get(t, srv.URL+"/metrics")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, `nouns_indexer_batches_total{event="Probe"} 1`)
	require.Contains(t, body, `nouns_indexer_records_total{event="Probe",path="live"} 2`)
	require.Contains(t, body, `nouns_indexer_last_indexed_block{event="Probe"} 42`)
	require.Contains(t, body, `nouns_indexer_query_duration_seconds_count{event="Probe"} 1`)
}

func TestDisabledServer(t *testing.T) {
	s := NewServer("", nil)
	s.Start()
	require.NoError(t, s.Stop(context.Background()))
}
