// Package ledger provides escrow ledger clients for fund release.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/printmarket/backend/internal/application/fulfillment"
	"github.com/printmarket/backend/internal/domain/shared"
	"github.com/printmarket/backend/internal/domain/shared/valueobject"
	infraconfig "github.com/printmarket/backend/internal/infrastructure/config"
)

const releaseFundsPath = "/v1/escrow/releases"

// Ensure HTTPEscrowLedger implements EscrowLedger
var _ fulfillment.EscrowLedger = (*HTTPEscrowLedger)(nil)

// HTTPEscrowLedger releases escrowed funds through the payments service's
// REST API. Releases are keyed by order so a retried call after a partial
// failure is a no-op on the ledger side.
type HTTPEscrowLedger struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// HTTPEscrowLedgerOption is a functional option for configuring HTTPEscrowLedger
type HTTPEscrowLedgerOption func(*HTTPEscrowLedger)

// WithLogger sets a custom logger for HTTPEscrowLedger
func WithLogger(logger *zap.Logger) HTTPEscrowLedgerOption {
	return func(l *HTTPEscrowLedger) {
		l.logger = logger
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(client *http.Client) HTTPEscrowLedgerOption {
	return func(l *HTTPEscrowLedger) {
		l.httpClient = client
	}
}

// NewHTTPEscrowLedger creates a new HTTPEscrowLedger from configuration
func NewHTTPEscrowLedger(cfg *infraconfig.EscrowConfig, opts ...HTTPEscrowLedgerOption) (*HTTPEscrowLedger, error) {
	if cfg == nil {
		return nil, fmt.Errorf("escrow configuration is required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("escrow base URL is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	l := &HTTPEscrowLedger{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

// releaseFundsRequest is the ledger wire format. The amount travels as
// Money so the currency is explicit on the payments side.
type releaseFundsRequest struct {
	OrderID uuid.UUID         `json:"order_id"`
	ShopID  uuid.UUID         `json:"shop_id"`
	Amount  valueobject.Money `json:"amount"`
}

type ledgerErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ReleaseFunds instructs the ledger to pay the held amount out to the shop.
// The order ID doubles as the idempotency key: a 409 from the ledger means
// the release already happened and is treated as success.
func (l *HTTPEscrowLedger) ReleaseFunds(ctx context.Context, orderID, shopID uuid.UUID, amount decimal.Decimal) error {
	body, err := json.Marshal(releaseFundsRequest{
		OrderID: orderID,
		ShopID:  shopID,
		Amount:  valueobject.NewMoneyUSD(amount),
	})
	if err != nil {
		return fmt.Errorf("ledger: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+releaseFundsPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ledger: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Idempotency-Key", orderID.String())
	if l.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+l.apiKey)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return shared.NewDependencyError("LEDGER_UNAVAILABLE", fmt.Sprintf("Escrow ledger unreachable: %v", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return shared.NewDependencyError("LEDGER_UNAVAILABLE", "Failed to read ledger response")
	}

	switch {
	case resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusConflict:
		// Already released under this idempotency key
		l.logger.Info("Escrow release already recorded",
			zap.String("order_id", orderID.String()),
			zap.String("shop_id", shopID.String()),
		)
		return nil
	default:
		var errResp ledgerErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Code != "" {
			return shared.NewDependencyError("LEDGER_RELEASE_FAILED",
				fmt.Sprintf("Escrow release rejected: %s - %s", errResp.Code, errResp.Message))
		}
		return shared.NewDependencyError("LEDGER_RELEASE_FAILED",
			fmt.Sprintf("Escrow release failed: HTTP %d", resp.StatusCode))
	}
}
