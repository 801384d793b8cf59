// Package midtrans talks to the Midtrans Snap and Core status APIs.
package midtrans

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
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/undangan/internal/domain/errors"
	"github.com/polkiloo/undangan/internal/domain/model"
)

const defaultTimeout = 10 * time.Second

// ErrTransactionNotFound indicates the gateway has no transaction for the reference.
var ErrTransactionNotFound = fmt.Errorf("transaction %w", domainErrors.ErrNotFound)

// Error is a non-successful gateway response.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("midtrans responded %d: %s", e.StatusCode, e.Body)
}

// Client exposes the gateway operations the ledger relies on.
type Client interface {
	CreateTransaction(ctx context.Context, charge model.Charge) (model.PaymentSession, error)
	TransactionStatus(ctx context.Context, reference string) (*model.Notification, error)
}

// Options configure HTTPClient.
type Options struct {
	SnapURL   string
	APIURL    string
	ServerKey string
	Timeout   time.Duration
}

// HTTPClient implements Client over the gateway REST API.
type HTTPClient struct {
	snapURL    *url.URL
	apiURL     *url.URL
	serverKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

type transactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

type customerDetails struct {
	FirstName string `json:"first_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type itemDetails struct {
	ID       string `json:"id"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
}

type snapRequest struct {
	TransactionDetails transactionDetails `json:"transaction_details"`
	CustomerDetails    *customerDetails   `json:"customer_details,omitempty"`
	ItemDetails        []itemDetails      `json:"item_details,omitempty"`
}

type snapResponse struct {
	Token         string   `json:"token"`
	RedirectURL   string   `json:"redirect_url"`
	ErrorMessages []string `json:"error_messages,omitempty"`
}

// NewHTTPClient validates endpoints and builds the client.
func NewHTTPClient(opts Options, logger *slog.Logger) (*HTTPClient, error) {
	if strings.TrimSpace(opts.ServerKey) == "" {
		return nil, fmt.Errorf("midtrans server key must be provided")
	}
	snapURL, err := parseBase(opts.SnapURL)
	if err != nil {
		return nil, fmt.Errorf("parse snap url: %w", err)
	}
	apiURL, err := parseBase(opts.APIURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		snapURL:   snapURL,
		apiURL:    apiURL,
		serverKey: opts.ServerKey,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func parseBase(raw string) (*url.URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("url must be absolute")
	}
	return parsed, nil
}

// CreateTransaction opens a Snap transaction for the order amount. The amount
// sent is exactly Order.Amount so notification signatures match the ledger.
func (c *HTTPClient) CreateTransaction(ctx context.Context, charge model.Charge) (model.PaymentSession, error) {
	if charge.Order == nil {
		return model.PaymentSession{}, fmt.Errorf("charge without order")
	}
	body := snapRequest{
		TransactionDetails: transactionDetails{
			OrderID:     charge.Order.Reference,
			GrossAmount: charge.Order.Amount,
		},
	}
	if u := charge.Customer; u != nil {
		body.CustomerDetails = &customerDetails{FirstName: u.Name, Email: u.Email, Phone: u.Phone}
	}
	if p := charge.Package; p != nil {
		body.ItemDetails = []itemDetails{{
			ID:       strconv.FormatInt(p.ID, 10),
			Price:    charge.Order.Amount,
			Quantity: 1,
			Name:     p.Name,
		}}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return model.PaymentSession{}, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.snapURL, "/snap/v1/transactions", bytes.NewReader(payload))
	if err != nil {
		return model.PaymentSession{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.PaymentSession{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.PaymentSession{}, err
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var data snapResponse
		if err := json.Unmarshal(raw, &data); err != nil {
			return model.PaymentSession{}, fmt.Errorf("decode snap response: %w", err)
		}
		if data.Token == "" || data.RedirectURL == "" {
			return model.PaymentSession{}, &Error{StatusCode: resp.StatusCode, Body: string(raw)}
		}
		return model.PaymentSession{Token: data.Token, RedirectURL: data.RedirectURL}, nil
	default:
		c.logger.Error("snap request failed",
			slog.String("order", charge.Order.Reference),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(raw)),
		)
		return model.PaymentSession{}, &Error{StatusCode: resp.StatusCode, Body: string(raw)}
	}
}

// TransactionStatus fetches the signed status of a transaction.
func (c *HTTPClient) TransactionStatus(ctx context.Context, reference string) (*model.Notification, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apiURL, path.Join("/v2", reference, "status"), nil)
	if err != nil {
		return nil, err
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

	switch resp.StatusCode {
	case http.StatusOK:
		var data model.Notification
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("decode status response: %w", err)
		}
		// The status API reports unknown transactions in the body with HTTP 200.
		if data.StatusCode == "404" {
			return nil, ErrTransactionNotFound
		}
		return &data, nil
	case http.StatusNotFound:
		return nil, ErrTransactionNotFound
	default:
		c.logger.Error("status request failed",
			slog.String("order", reference),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(raw)),
		)
		return nil, &Error{StatusCode: resp.StatusCode, Body: string(raw)}
	}
}

func (c *HTTPClient) newRequest(ctx context.Context, method string, base *url.URL, p string, body io.Reader) (*http.Request, error) {
	endpoint := *base
	endpoint.Path = path.Join(endpoint.Path, p)

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.serverKey, "")
	return req, nil
}
