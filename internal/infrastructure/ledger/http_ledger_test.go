package ledger

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printmarket/backend/internal/domain/shared"
	"github.com/printmarket/backend/internal/domain/shared/valueobject"
	"github.com/printmarket/backend/internal/infrastructure/config"
)

func newTestLedger(t *testing.T, handler http.HandlerFunc) *HTTPEscrowLedger {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	ledger, err := NewHTTPEscrowLedger(&config.EscrowConfig{
		BaseURL: server.URL,
		APIKey:  "test-api-key",
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	return ledger
}

func TestNewHTTPEscrowLedger_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewHTTPEscrowLedger(nil)
		require.Error(t, err)
	})

	t.Run("missing base URL returns error", func(t *testing.T) {
		_, err := NewHTTPEscrowLedger(&config.EscrowConfig{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "base URL is required")
	})

	t.Run("zero timeout falls back to default", func(t *testing.T) {
		ledger, err := NewHTTPEscrowLedger(&config.EscrowConfig{BaseURL: "http://localhost:9090"})
		require.NoError(t, err)
		assert.Equal(t, 10*time.Second, ledger.httpClient.Timeout)
	})
}

func TestHTTPEscrowLedger_ReleaseFunds(t *testing.T) {
	orderID := uuid.New()
	shopID := uuid.New()
	amount := decimal.NewFromFloat(149.90)

	t.Run("posts the release and succeeds on 201", func(t *testing.T) {
		var gotPath, gotAuth, gotIdemKey string
		var gotBody releaseFundsRequest
		ledger := newTestLedger(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			gotIdemKey = r.Header.Get("Idempotency-Key")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.WriteHeader(http.StatusCreated)
		})

		err := ledger.ReleaseFunds(context.Background(), orderID, shopID, amount)

		require.NoError(t, err)
		assert.Equal(t, "/v1/escrow/releases", gotPath)
		assert.Equal(t, "Bearer test-api-key", gotAuth)
		assert.Equal(t, orderID.String(), gotIdemKey)
		assert.Equal(t, orderID, gotBody.OrderID)
		assert.Equal(t, shopID, gotBody.ShopID)
		assert.True(t, amount.Equal(gotBody.Amount.Amount()))
		assert.Equal(t, valueobject.USD, gotBody.Amount.Currency())
	})

	t.Run("treats 409 as already released", func(t *testing.T) {
		ledger := newTestLedger(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
		})

		err := ledger.ReleaseFunds(context.Background(), orderID, shopID, amount)

		require.NoError(t, err)
	})

	t.Run("surfaces ledger rejection with code and message", func(t *testing.T) {
		ledger := newTestLedger(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(ledgerErrorResponse{
				Code:    "INSUFFICIENT_HOLD",
				Message: "held amount is lower than requested release",
			})
		})

		err := ledger.ReleaseFunds(context.Background(), orderID, shopID, amount)

		require.Error(t, err)
		assert.Equal(t, shared.ErrorKindDependency, shared.KindOf(err))
		assert.Contains(t, err.Error(), "INSUFFICIENT_HOLD")
	})

	t.Run("server error is a dependency failure", func(t *testing.T) {
		ledger := newTestLedger(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		err := ledger.ReleaseFunds(context.Background(), orderID, shopID, amount)

		require.Error(t, err)
		assert.Equal(t, shared.ErrorKindDependency, shared.KindOf(err))
		assert.Contains(t, err.Error(), "HTTP 500")
	})

	t.Run("unreachable ledger is a dependency failure", func(t *testing.T) {
		ledger, err := NewHTTPEscrowLedger(&config.EscrowConfig{
			BaseURL: "http://127.0.0.1:1",
			Timeout: time.Second,
		})
		require.NoError(t, err)

		err = ledger.ReleaseFunds(context.Background(), orderID, shopID, amount)

		require.Error(t, err)
		assert.Equal(t, shared.ErrorKindDependency, shared.KindOf(err))
	})

	t.Run("honours context cancellation", func(t *testing.T) {
		ledger := newTestLedger(t, func(w http.ResponseWriter, r *http.Request) {
			// Drain the body so the server can detect the client disconnect
			// and cancel the request context; otherwise Close deadlocks.
			_, _ = io.Copy(io.Discard, r.Body)
			<-r.Context().Done()
		})

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := ledger.ReleaseFunds(ctx, orderID, shopID, amount)

		require.Error(t, err)
	})
}
