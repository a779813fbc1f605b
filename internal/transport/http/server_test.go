package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sift/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	records []store.InsightRecord
	err     error

	gotDate     string
	gotMinScore int
}

func (f *fakeStore) HasInsight(ctx context.Context, symbol, date string) (bool, error) {
	return false, nil
}

func (f *fakeStore) InsertInsight(ctx context.Context, rec store.InsightRecord) error {
	return nil
}

func (f *fakeStore) ListInsights(ctx context.Context, date string, minScore int) ([]store.InsightRecord, error) {
	f.gotDate = date
	f.gotMinScore = minScore
	if f.err != nil {
		return nil, f.err
	}
	out := make([]store.InsightRecord, 0, len(f.records))
	for _, rec := range f.records {
		if rec.Date == date && rec.Score >= minScore {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeStore) Close() error { return nil }

func newTestServer(t *testing.T, fs *fakeStore) *Server {
	t.Helper()
	s, err := NewServer(Config{Store: fs, Threshold: 85})
	require.NoError(t, err)
	return s
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, &fakeStore{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestInsightsQuery(t *testing.T) {
	fs := &fakeStore{records: []store.InsightRecord{
		{Symbol: "BTCUSDT", Date: "2024-03-15", Score: 92, Insight: "strong", CreatedAt: time.Now()},
		{Symbol: "ETHUSDT", Date: "2024-03-15", Score: 40, Insight: "weak", CreatedAt: time.Now()},
		{Symbol: "SOLUSDT", Date: "2024-03-14", Score: 95, Insight: "stale", CreatedAt: time.Now()},
	}}
	s := newTestServer(t, fs)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/insights?date=2024-03-15&min_score=50", nil)
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-03-15", fs.gotDate)
	assert.Equal(t, 50, fs.gotMinScore)

	var body struct {
		Count    int `json:"count"`
		Insights []struct {
			Symbol string `json:"symbol"`
		} `json:"insights"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "BTCUSDT", body.Insights[0].Symbol)
}

func TestInsightsBadMinScore(t *testing.T) {
	s := newTestServer(t, &fakeStore{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/insights?min_score=abc", nil)
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAlertsUsesThreshold(t *testing.T) {
	fs := &fakeStore{}
	s := newTestServer(t, fs)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/alerts?date=2024-03-15", nil)
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 85, fs.gotMinScore)
}

func TestStoreErrorSurfacesAs500(t *testing.T) {
	fs := &fakeStore{err: errors.New("db locked")}
	s := newTestServer(t, fs)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/insights?date=2024-03-15", nil)
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
