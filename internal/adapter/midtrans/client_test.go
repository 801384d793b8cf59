package midtrans

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/polkiloo/undangan/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, srv *httptest.Server) *HTTPClient {
	t.Helper()
	client, err := NewHTTPClient(Options{SnapURL: srv.URL, APIURL: srv.URL, ServerKey: "SB-Mid-server-key"}, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func testCharge() model.Charge {
	return model.Charge{
		Order:    &model.Order{ID: 1, Reference: "INV-abc", Amount: 135000},
		Package:  &model.Package{ID: 2, Name: "Premium"},
		Customer: &model.User{Name: "Rina", Email: "rina@example.com", Phone: "0812"},
	}
}

func TestNewHTTPClientValidates(t *testing.T) {
	if _, err := NewHTTPClient(Options{SnapURL: "://bad", APIURL: "http://x", ServerKey: "k"}, testLogger()); err == nil {
		t.Fatal("expected error for invalid snap url")
	}
	if _, err := NewHTTPClient(Options{SnapURL: "http://x", APIURL: "/relative", ServerKey: "k"}, testLogger()); err == nil {
		t.Fatal("expected error for relative api url")
	}
	if _, err := NewHTTPClient(Options{SnapURL: "http://x", APIURL: "http://x"}, testLogger()); err == nil {
		t.Fatal("expected error for empty server key")
	}

	client, err := NewHTTPClient(Options{SnapURL: "http://x", APIURL: "http://x", ServerKey: "k"}, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.httpClient.Timeout != defaultTimeout {
		t.Fatalf("expected default timeout, got %s", client.httpClient.Timeout)
	}
}

func TestCreateTransactionSuccess(t *testing.T) {
	var got snapRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/snap/v1/transactions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "SB-Mid-server-key" || pass != "" {
			t.Errorf("unexpected basic auth %q %q %v", user, pass, ok)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"token":"snap-token","redirect_url":"https://pay.example/snap-token"}`))
	}))
	defer srv.Close()

	session, err := newTestClient(t, srv).CreateTransaction(context.Background(), testCharge())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Token != "snap-token" || session.RedirectURL != "https://pay.example/snap-token" {
		t.Fatalf("unexpected session %+v", session)
	}
	if got.TransactionDetails.OrderID != "INV-abc" || got.TransactionDetails.GrossAmount != 135000 {
		t.Fatalf("unexpected transaction details %+v", got.TransactionDetails)
	}
	if got.CustomerDetails == nil || got.CustomerDetails.Email != "rina@example.com" {
		t.Fatalf("unexpected customer details %+v", got.CustomerDetails)
	}
	if len(got.ItemDetails) != 1 || got.ItemDetails[0].Price != 135000 || got.ItemDetails[0].Quantity != 1 || got.ItemDetails[0].ID != "2" {
		t.Fatalf("unexpected item details %+v", got.ItemDetails)
	}
}

func TestCreateTransactionGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error_messages":["Access denied"]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).CreateTransaction(context.Background(), testCharge())
	var gwErr *Error
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if gwErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status %d", gwErr.StatusCode)
	}
}

func TestCreateTransactionMissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"token":""}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).CreateTransaction(context.Background(), testCharge())
	var gwErr *Error
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
}

func TestCreateTransactionMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	if _, err := newTestClient(t, srv).CreateTransaction(context.Background(), testCharge()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestCreateTransactionRequiresOrder(t *testing.T) {
	client, _ := NewHTTPClient(Options{SnapURL: "http://x", APIURL: "http://x", ServerKey: "k"}, testLogger())
	if _, err := client.CreateTransaction(context.Background(), model.Charge{}); err == nil {
		t.Fatal("expected error without order")
	}
}

func TestCreateTransactionTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(Options{SnapURL: srv.URL, APIURL: srv.URL, ServerKey: "k", Timeout: 20 * time.Millisecond}, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	if _, err := client.CreateTransaction(context.Background(), testCharge()); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestTransactionStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v2/INV-abc/status" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"status_code":"200",
			"order_id":"INV-abc",
			"gross_amount":"135000.00",
			"signature_key":"sig",
			"transaction_status":"settlement",
			"payment_type":"bank_transfer",
			"transaction_id":"tx-1"
		}`))
	}))
	defer srv.Close()

	n, err := newTestClient(t, srv).TransactionStatus(context.Background(), "INV-abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.OrderReference != "INV-abc" || n.TransactionStatus != "settlement" || n.GrossAmount != "135000.00" {
		t.Fatalf("unexpected notification %+v", n)
	}
	if n.PaymentType == nil || *n.PaymentType != "bank_transfer" {
		t.Fatalf("unexpected payment type %v", n.PaymentType)
	}
	if n.FraudStatus != nil {
		t.Fatalf("expected no fraud status, got %v", *n.FraudStatus)
	}
}

func TestTransactionStatusNotFound(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"body status": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status_code":"404","status_message":"Transaction doesn't exist."}`))
		},
		"http status": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
	}

	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()
			if _, err := newTestClient(t, srv).TransactionStatus(context.Background(), "INV-x"); !errors.Is(err, ErrTransactionNotFound) {
				t.Fatalf("expected ErrTransactionNotFound, got %v", err)
			}
		})
	}
}

func TestTransactionStatusServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).TransactionStatus(context.Background(), "INV-x")
	var gwErr *Error
	if !errors.As(err, &gwErr) || gwErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected gateway error, got %v", err)
	}
}
