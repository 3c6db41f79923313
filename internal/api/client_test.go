package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Mehak261124/AI-IDS/internal/errors"
	"github.com/Mehak261124/AI-IDS/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, Options{Logger: logger.Noop()}), srv
}

func TestNewNormalizesBase(t *testing.T) {
	c := New("http://127.0.0.1:8000/", Options{Logger: logger.Noop()})
	assert.Equal(t, "http://127.0.0.1:8000", c.Base())
}

func TestStartLive(t *testing.T) {
	var gotMethod, gotPath string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "live_capture_started"}`))
	}))

	err := c.StartLive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/start_live", gotPath)
}

func TestStopLive(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/stop_live", r.URL.Path)
		w.Write([]byte(`{"status": "live_capture_stopped"}`))
	}))

	assert.NoError(t, c.StopLive(context.Background()))
}

func TestStartLiveServerError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "capture backend unavailable"}`))
	}))

	err := c.StartLive(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrAPI))
	assert.Contains(t, err.Error(), "capture backend unavailable")
}

func TestStartLiveConnectionRefused(t *testing.T) {
	// Point at a server that is already closed
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, Options{Logger: logger.Noop()})
	err := c.StartLive(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrAPI))
}

func TestLiveStatusFull(t *testing.T) {
	payload := `{
		"running": true,
		"flows": 12,
		"summary": {"BENIGN": 8, "ANOMALY": 1, "ATTACK": 3},
		"attack_types": {"DDoS": 2, "PortScan": 1},
		"last_capture": "2024-05-02 10:00:00",
		"all_flows": [
			{"Src IP": "10.0.0.2", "Src Port": 443, "Label": "BENIGN"},
			{"Src IP": "10.0.0.9", "Src Port": 31337, "Label": "ATTACK", "Attack_Type": "DDoS"}
		]
	}`
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/live_status", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))

	status, err := c.LiveStatus(context.Background())
	require.NoError(t, err)

	assert.True(t, status.Running)
	assert.Equal(t, 12, status.Flows)
	assert.Equal(t, Summary{Benign: 8, Anomaly: 1, Attack: 3}, status.Summary)
	assert.Equal(t, 12, status.Summary.Total())
	assert.Equal(t, map[string]int{"DDoS": 2, "PortScan": 1}, status.AttackTypes)
	assert.Equal(t, "2024-05-02 10:00:00", status.LastCapture)
	require.Len(t, status.AllFlows, 2)
	assert.Equal(t, "BENIGN", status.AllFlows[0].Label())
	assert.Equal(t, "DDoS", status.AllFlows[1].AttackType())
}

func TestLiveStatusMinimalPayload(t *testing.T) {
	// A freshly started server reports almost nothing; missing fields
	// must decode to zero values instead of failing.
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"running": false, "last_capture": null}`))
	}))

	status, err := c.LiveStatus(context.Background())
	require.NoError(t, err)

	assert.False(t, status.Running)
	assert.Zero(t, status.Flows)
	assert.Zero(t, status.Summary)
	assert.Nil(t, status.AttackTypes)
	assert.Empty(t, status.LastCapture)
	assert.Nil(t, status.AllFlows)
}

func TestHealth(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.Write([]byte(`{"status": "healthy", "timestamp": 1714641600.5}`))
	}))

	h, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", h.Status)
	assert.InDelta(t, 1714641600.5, h.Timestamp, 0.001)
}

func TestHealthDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, Options{Logger: logger.Noop()})
	_, err := c.Health(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not responding")
}

func TestDownloadURL(t *testing.T) {
	c := New("http://127.0.0.1:8000", Options{Logger: logger.Noop()})

	assert.Equal(t,
		"http://127.0.0.1:8000/download/live_predictions.csv",
		c.DownloadURL(LivePredictionsFile))
	assert.Equal(t,
		"http://127.0.0.1:8000/download/report%201.csv",
		c.DownloadURL("report 1.csv"))
}

func TestDownload(t *testing.T) {
	content := "Label,Attack_Type\nBENIGN,\nATTACK,DDoS\n"
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/download/"+LivePredictionsFile, r.URL.Path)
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(content))
	}))

	dir := t.TempDir()
	path, n, err := c.Download(context.Background(), LivePredictionsFile, dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, LivePredictionsFile), path)
	assert.Equal(t, int64(len(content)), n)

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(saved))
}

func TestDownloadNotFound(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "File not found"}`))
	}))

	_, _, err := c.Download(context.Background(), "missing.csv", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrDownload))
	assert.Contains(t, err.Error(), "missing.csv")
}

func TestDownloadStripsPathComponents(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("data"))
	}))

	dir := t.TempDir()
	path, _, err := c.Download(context.Background(), "nested/name.csv", dir)
	require.NoError(t, err)

	// Only the basename lands in dir
	assert.Equal(t, filepath.Join(dir, "name.csv"), path)
}

func TestPredict(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/predict", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "sample.csv", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "success",
			"filename": "sample.csv",
			"file_type": ".csv",
			"file_size_bytes": 64,
			"total_flows": 3,
			"summary": {"BENIGN": 2, "ATTACK": 1},
			"attack_types": {"PortScan": 1},
			"download_csv": "/download/predictions_output.csv",
			"data_preview": [{"Label": "BENIGN"}],
			"all_flows": [{"Label": "BENIGN"}, {"Label": "BENIGN"}, {"Label": "ATTACK"}]
		}`))
	}))

	dir := t.TempDir()
	sample := filepath.Join(dir, "sample.csv")
	require.NoError(t, os.WriteFile(sample, []byte("col\n1\n"), 0644))

	result, err := c.Predict(context.Background(), sample)
	require.NoError(t, err)

	assert.Equal(t, "success", result.Status)
	assert.Equal(t, 3, result.TotalFlows)
	assert.Equal(t, 2, result.Summary.Benign)
	assert.Equal(t, 1, result.Summary.Attack)
	assert.Len(t, result.AllFlows, 3)
	assert.Equal(t, "/download/predictions_output.csv", result.DownloadCSV)
}

func TestPredictRejectsUnsupportedExtension(t *testing.T) {
	c := New("http://127.0.0.1:8000", Options{Logger: logger.Noop()})

	_, err := c.Predict(context.Background(), "notes.txt")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInput))
	assert.Contains(t, err.Error(), ".txt")
}

func TestPredictMissingFile(t *testing.T) {
	c := New("http://127.0.0.1:8000", Options{Logger: logger.Noop()})

	_, err := c.Predict(context.Background(), "/nonexistent/capture.pcap")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInput))
}

func TestPredictServerRejection(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "No flows could be extracted from the capture"}`))
	}))

	dir := t.TempDir()
	sample := filepath.Join(dir, "empty.pcap")
	require.NoError(t, os.WriteFile(sample, []byte{0xd4, 0xc3, 0xb2, 0xa1}, 0644))

	_, err := c.Predict(context.Background(), sample)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No flows could be extracted")
}
