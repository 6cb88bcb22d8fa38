package gateways

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestFetchScore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"score": 720}`))
	}))
	defer server.Close()

	gateway := NewScoreGateway(server.URL, testLogger())

	score := gateway.FetchScore(context.Background())

	assert.Equal(t, 720, score)
}

func TestFetchScore_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	gateway := NewScoreGateway(server.URL, testLogger())

	assert.Equal(t, FallbackScore, gateway.FetchScore(context.Background()))
}

func TestFetchScore_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused

	gateway := NewScoreGateway(server.URL, testLogger())

	assert.Equal(t, FallbackScore, gateway.FetchScore(context.Background()))
}

func TestFetchScore_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	gateway := NewScoreGateway(server.URL, testLogger())

	assert.Equal(t, FallbackScore, gateway.FetchScore(context.Background()))
}
