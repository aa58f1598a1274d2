package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/artifact"
	"github.com/mikey/sms-spam-classifier/internal/classifier"
	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/features"
	"github.com/mikey/sms-spam-classifier/internal/textproc"
	"github.com/mikey/sms-spam-classifier/internal/training"
	"github.com/mikey/sms-spam-classifier/internal/utils"
)

// newTestServer wires a server over a store. When loaded is true the store
// holds a trained artifact; otherwise it has never resolved one.
func newTestServer(t *testing.T, loaded bool) *Server {
	t.Helper()
	logger := zap.NewNop()

	normalizer, err := textproc.NewNormalizer(textproc.Config{StopwordLocale: "en"})
	require.NoError(t, err)

	dir := t.TempDir()
	if loaded {
		trainer := training.NewTrainer(
			normalizer,
			features.NewVectorizer(1, 1),
			classifier.Config{Algorithm: classifier.AlgorithmNaiveBayes, Alpha: 1.0},
			logger,
		)
		result, err := trainer.Train(context.Background(), []core.RawMessage{
			{Text: "WIN FREE CASH NOW", Label: core.LabelSpam},
			{Text: "let's meet for lunch", Label: core.LabelHam},
			{Text: "free gift just for you", Label: core.LabelSpam},
			{Text: "are you coming tonight", Label: core.LabelHam},
		}, "v1")
		require.NoError(t, err)
		require.NoError(t, artifact.Save(dir, result.Metadata, result.Space, result.Classifier))
	}

	store := artifact.NewStore(dir, nil, logger)
	if loaded {
		_, err = store.Resolve(context.Background(), "v1")
		require.NoError(t, err)
	}

	service := core.NewClassifierService(store, normalizer, nil, logger, false, time.Hour)
	return NewServer(service, store, utils.NewTextProcessor(logger), logger, "127.0.0.1:0", 4096)
}

func postPredict(t *testing.T, s *Server, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, "/predict", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.App().Test(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestPredictSpam(t *testing.T) {
	s := newTestServer(t, true)

	resp := postPredict(t, s, `{"sms": "FREE cash prize!!!"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body PredictResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "spam", body.Result)
	assert.Greater(t, body.Confidence, 0.5)
	assert.Equal(t, "v1", body.ModelVersion)
	assert.Equal(t, "FREE cash prize!!!", body.SMS)
}

func TestPredictHam(t *testing.T) {
	s := newTestServer(t, true)

	resp := postPredict(t, s, `{"sms": "lunch tomorrow?"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body PredictResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "ham", body.Result)
	assert.Greater(t, body.Confidence, 0.5)
}

func TestPredictEmptyMessage(t *testing.T) {
	s := newTestServer(t, true)

	// An empty sms field is still classified
	resp := postPredict(t, s, `{"sms": ""}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body PredictResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "ham", body.Result)
	assert.Equal(t, "", body.SMS)
}

func TestPredictMalformedBody(t *testing.T) {
	s := newTestServer(t, true)

	resp := postPredict(t, s, `{not json`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Contains(t, body["error"], "sms")
}

func TestPredictModelUnavailable(t *testing.T) {
	s := newTestServer(t, false)

	resp := postPredict(t, s, `{"sms": "hello"}`)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Equal(t, "model is not available", body["error"])
}

func TestHealthLoaded(t *testing.T) {
	s := newTestServer(t, true)

	req, err := http.NewRequest(http.MethodGet, "/health", nil)
	require.NoError(t, err)
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "loaded", body["state"])
	assert.Equal(t, "v1", body["model_version"])
}

func TestHealthUnavailable(t *testing.T) {
	s := newTestServer(t, false)

	req, err := http.NewRequest(http.MethodGet, "/health", nil)
	require.NoError(t, err)
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Equal(t, "unavailable", body["status"])
	assert.Equal(t, "uninitialized", body["state"])
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, true)

	req, err := http.NewRequest(http.MethodGet, "/metrics", nil)
	require.NoError(t, err)
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
