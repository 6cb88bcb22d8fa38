package gateways

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"folhacred/internal/core/domain"

	"github.com/sirupsen/logrus"
)

// FallbackPaymentStatus is returned whenever the payment endpoint cannot
// be reached. Availability over correctness: the workflow always gets a
// confirmation status.
const FallbackPaymentStatus = domain.PaymentApproved

// PaymentGateway fetches a payment confirmation status from a remote
// payment processor.
type PaymentGateway struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewPaymentGateway initializes a new payment gateway
func NewPaymentGateway(url string, log *logrus.Logger) *PaymentGateway {
	return &PaymentGateway{
		url: url,
		client: &http.Client{
			Timeout: defaultTimeout,
		},
		log: log,
	}
}

// ProcessPayment performs a single GET against the payment endpoint. Any
// failure falls back to FallbackPaymentStatus; it never returns an error.
func (g *PaymentGateway) ProcessPayment(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url, nil)
	if err != nil {
		g.log.Warnf("payment gateway: building request failed, using fallback %q: %v", FallbackPaymentStatus, err)
		return FallbackPaymentStatus
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Warnf("payment gateway: request failed, using fallback %q: %v", FallbackPaymentStatus, err)
		return FallbackPaymentStatus
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.log.Warnf("payment gateway: unexpected status %d, using fallback %q", resp.StatusCode, FallbackPaymentStatus)
		return FallbackPaymentStatus
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		g.log.Warnf("payment gateway: decoding response failed, using fallback %q: %v", FallbackPaymentStatus, err)
		return FallbackPaymentStatus
	}

	return normalizeStatus(payload.Status)
}

// normalizeStatus maps the confirmation endpoint's vocabulary onto the
// domain status. The default endpoint answers in Portuguese ("aprovado").
func normalizeStatus(status string) string {
	if strings.EqualFold(status, "aprovado") || strings.EqualFold(status, domain.PaymentApproved) {
		return domain.PaymentApproved
	}
	return status
}
