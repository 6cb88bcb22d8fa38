package gateways

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// FallbackScore is returned whenever the scoring endpoint cannot be
// reached or answers with garbage. The loan workflow must always reach a
// decision, so transport failures never surface as errors.
const FallbackScore = 650

const defaultTimeout = 10 * time.Second

// ScoreGateway fetches a credit score from a remote scoring endpoint.
type ScoreGateway struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewScoreGateway initializes a new score gateway
func NewScoreGateway(url string, log *logrus.Logger) *ScoreGateway {
	return &ScoreGateway{
		url: url,
		client: &http.Client{
			Timeout: defaultTimeout,
		},
		log: log,
	}
}

// FetchScore performs a single GET against the scoring endpoint. Any
// failure (transport, non-200 status, malformed body) falls back to
// FallbackScore; it never returns an error.
func (g *ScoreGateway) FetchScore(ctx context.Context) int {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url, nil)
	if err != nil {
		g.log.Warnf("score gateway: building request failed, using fallback %d: %v", FallbackScore, err)
		return FallbackScore
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Warnf("score gateway: request failed, using fallback %d: %v", FallbackScore, err)
		return FallbackScore
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.log.Warnf("score gateway: unexpected status %d, using fallback %d", resp.StatusCode, FallbackScore)
		return FallbackScore
	}

	var payload struct {
		Score int `json:"score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		g.log.Warnf("score gateway: decoding response failed, using fallback %d: %v", FallbackScore, err)
		return FallbackScore
	}

	return payload.Score
}
