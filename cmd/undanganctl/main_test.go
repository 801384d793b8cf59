package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/polkiloo/undangan/internal/domain/model"
	"github.com/polkiloo/undangan/internal/pkg/webhook"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSignPrintsSignature(t *testing.T) {
	out, err := execute(t, "sign", "--server-key", "key", "--order-id", "INV-1", "--gross-amount", "150000.00")
	if err != nil {
		t.Fatalf("sign returned error: %v", err)
	}
	want := webhook.Sign("INV-1", "200", "150000.00", "key")
	if strings.TrimSpace(out) != want {
		t.Fatalf("expected %s, got %s", want, out)
	}
}

func TestSignUsesEnvironmentKey(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "env-key")
	out, err := execute(t, "sign", "--order-id", "INV-1", "--status-code", "201", "--gross-amount", "1.00")
	if err != nil {
		t.Fatalf("sign returned error: %v", err)
	}
	if strings.TrimSpace(out) != webhook.Sign("INV-1", "201", "1.00", "env-key") {
		t.Fatalf("unexpected signature %s", out)
	}
}

func TestSignRequiresKey(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "")
	if _, err := execute(t, "sign", "--order-id", "INV-1", "--gross-amount", "1.00"); err == nil {
		t.Fatal("expected error without server key")
	}
}

func TestReplayPostsSignedNotification(t *testing.T) {
	var got model.Notification
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	out, err := execute(t, "replay",
		"--server-key", "key",
		"--url", server.URL,
		"--order-id", "INV-7",
		"--gross-amount", "135000.00",
		"--payment-type", "qris",
	)
	if err != nil {
		t.Fatalf("replay returned error: %v", err)
	}
	if !strings.Contains(out, "200 OK") {
		t.Fatalf("expected status in output, got %q", out)
	}
	if got.OrderReference != "INV-7" || got.TransactionStatus != "settlement" {
		t.Fatalf("unexpected notification %+v", got)
	}
	if got.SignatureKey != webhook.Sign("INV-7", "200", "135000.00", "key") {
		t.Fatal("notification signature mismatch")
	}
	if got.PaymentType == nil || *got.PaymentType != "qris" {
		t.Fatalf("expected payment type, got %v", got.PaymentType)
	}
	if got.FraudStatus != nil {
		t.Fatalf("expected fraud status omitted, got %v", *got.FraudStatus)
	}
}

func TestReplayFailsOnRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := execute(t, "replay", "--server-key", "key", "--url", server.URL, "--order-id", "INV-7", "--gross-amount", "1.00")
	if err == nil {
		t.Fatal("expected error on rejected notification")
	}
}

func TestReplayStatusHelpListsAcceptedStatuses(t *testing.T) {
	out, err := execute(t, "replay", "--help")
	if err != nil {
		t.Fatalf("replay help: %v", err)
	}
	if !strings.Contains(out, "cancel or expire") {
		t.Fatalf("transaction-status help missing statuses: %s", out)
	}
	if strings.Contains(out, "failure") {
		t.Fatalf("help advertises a status the service ignores: %s", out)
	}
}
