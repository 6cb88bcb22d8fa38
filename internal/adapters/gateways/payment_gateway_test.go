package gateways

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"folhacred/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestProcessPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "rejected"}`))
	}))
	defer server.Close()

	gateway := NewPaymentGateway(server.URL, testLogger())

	// The gateway reports whatever the endpoint answered, even a
	// non-approved status.
	assert.Equal(t, "rejected", gateway.ProcessPayment(context.Background()))
}

func TestProcessPayment_NormalizesPortugueseStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "aprovado"}`))
	}))
	defer server.Close()

	gateway := NewPaymentGateway(server.URL, testLogger())

	// The default endpoint answers in Portuguese; it must count as an
	// approval.
	assert.Equal(t, domain.PaymentApproved, gateway.ProcessPayment(context.Background()))
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, "approved", normalizeStatus("aprovado"))
	assert.Equal(t, "approved", normalizeStatus("APROVADO"))
	assert.Equal(t, "approved", normalizeStatus("Approved"))
	assert.Equal(t, "recusado", normalizeStatus("recusado"))
	assert.Equal(t, "failed", normalizeStatus("failed"))
}

func TestProcessPayment_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	gateway := NewPaymentGateway(server.URL, testLogger())

	assert.Equal(t, FallbackPaymentStatus, gateway.ProcessPayment(context.Background()))
}

func TestProcessPayment_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	gateway := NewPaymentGateway(server.URL, testLogger())

	assert.Equal(t, FallbackPaymentStatus, gateway.ProcessPayment(context.Background()))
}

func TestProcessPayment_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 42}`))
	}))
	defer server.Close()

	gateway := NewPaymentGateway(server.URL, testLogger())

	assert.Equal(t, FallbackPaymentStatus, gateway.ProcessPayment(context.Background()))
}
