package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	domainErrors "github.com/polkiloo/undangan/internal/domain/errors"
	"github.com/polkiloo/undangan/internal/domain/model"
	"github.com/polkiloo/undangan/internal/server/http/dto"
	testhelpers "github.com/polkiloo/undangan/internal/test"
)

const notificationBody = `{"order_id":"INV-1","status_code":"200","gross_amount":"100000.00","signature_key":"abc","transaction_status":"settlement","fraud_status":"accept","payment_type":"bank_transfer","transaction_id":"trx-1"}`

func TestNotificationHandlerAccepts(t *testing.T) {
	var got model.Notification
	facade := testhelpers.NotificationFacadeStub{HandleFn: func(_ context.Context, n model.Notification) error {
		got = n
		return nil
	}}
	resp := performRequest(t, http.MethodPost, "/notification", NewNotificationHandler(facade).Handle, nil, []byte(notificationBody), jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if body := decode[dto.StatusResponse](t, resp); body.Status != "ok" {
		t.Fatalf("unexpected body %+v", body)
	}
	if got.OrderReference != "INV-1" || got.GrossAmount != "100000.00" || got.SignatureKey != "abc" || got.TransactionStatus != "settlement" {
		t.Fatalf("unexpected notification %+v", got)
	}
	if got.FraudStatus == nil || *got.FraudStatus != "accept" || got.PaymentType == nil || got.TransactionID == nil {
		t.Fatalf("optional fields not bound: %+v", got)
	}
}

func TestNotificationHandlerFailures(t *testing.T) {
	fail := func(err error) testhelpers.NotificationFacadeStub {
		return testhelpers.NotificationFacadeStub{HandleFn: func(context.Context, model.Notification) error { return err }}
	}
	tests := []struct {
		name   string
		facade testhelpers.NotificationFacadeStub
		body   string
		status int
	}{
		{name: "malformed", body: "{", status: http.StatusBadRequest},
		{name: "unsigned", body: `{"order_id":"INV-1"}`, status: http.StatusBadRequest},
		{name: "bad signature", body: notificationBody, facade: fail(domainErrors.ErrInvalidSignature), status: http.StatusForbidden},
		{name: "unknown order", body: notificationBody, facade: fail(domainErrors.ErrOrderNotFound), status: http.StatusNotFound},
		{name: "storage", body: notificationBody, facade: fail(errors.New("db down")), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/notification", NewNotificationHandler(tt.facade).Handle, nil, []byte(tt.body), jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}
