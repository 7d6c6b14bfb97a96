package xendit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/MaGuangChen/xendit-opencart-module/internal/config"
	"github.com/MaGuangChen/xendit-opencart-module/internal/domain/model"
)

const invoicesPath = "/v2/invoices"

// GatewayError is a machine-readable failure reported by the gateway.
// Control flow keys on Code; Message is for diagnostics only.
type GatewayError struct {
	Code    string
	Message string
}

func (e *GatewayError) Error() string {
	return e.Message
}

// CredentialSource resolves the credential pair for the active environment.
// It is consulted on every call so key rotation takes effect immediately.
type CredentialSource interface {
	Credentials() config.CredentialPair
}

// Client exposes the invoice operations of the payment gateway.
type Client interface {
	CreateInvoice(ctx context.Context, req *model.InvoiceRequest) (*model.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*model.Invoice, error)
}

// HTTPClient implements Client via the gateway's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	creds      CredentialSource
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// errorBody mirrors the gateway's failure payload.
type errorBody struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
	Code      string `json:"code"`
}

// NewHTTPClient creates an HTTP gateway client with default timeout.
func NewHTTPClient(baseURL string, creds CredentialSource, rps float64, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	if rps <= 0 {
		rps = 1
	}
	return &HTTPClient{
		baseURL: parsed,
		creds:   creds,
		limiter: rate.NewLimiter(rate.Limit(rps), int(rps)),
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreateInvoice registers a new invoice with the gateway.
func (c *HTTPClient) CreateInvoice(ctx context.Context, invReq *model.InvoiceRequest) (*model.Invoice, error) {
	payload, err := json.Marshal(invReq)
	if err != nil {
		return nil, fmt.Errorf("marshal invoice request: %w", err)
	}
	return c.do(ctx, http.MethodPost, invoicesPath, bytes.NewReader(payload))
}

// GetInvoice fetches the authoritative invoice state by gateway invoice id.
func (c *HTTPClient) GetInvoice(ctx context.Context, id string) (*model.Invoice, error) {
	return c.do(ctx, http.MethodGet, path.Join(invoicesPath, id), nil)
}

func (c *HTTPClient) do(ctx context.Context, method, reqPath string, body io.Reader) (*model.Invoice, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, reqPath)

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return nil, err
	}
	// The gateway authenticates with the secret key as basic-auth username.
	req.SetBasicAuth(c.creds.Credentials().SecretKey, "")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var data errorBody
		if err := json.Unmarshal(raw, &data); err != nil || data.Message == "" {
			c.logger.Error("gateway request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
			return nil, &GatewayError{Code: data.ErrorCode, Message: fmt.Sprintf("gateway error: %s", resp.Status)}
		}
		message := data.Message
		if data.Code != "" {
			message += " Code: " + data.Code
		}
		return nil, &GatewayError{Code: data.ErrorCode, Message: message}
	}

	var invoice model.Invoice
	if err := json.Unmarshal(raw, &invoice); err != nil {
		return nil, fmt.Errorf("decode invoice: %w", err)
	}
	return &invoice, nil
}
