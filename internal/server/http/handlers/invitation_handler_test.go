package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/undangan/internal/domain/errors"
	"github.com/polkiloo/undangan/internal/domain/model"
	"github.com/polkiloo/undangan/internal/server/http/dto"
	testhelpers "github.com/polkiloo/undangan/internal/test"
)

func TestInvitationHandlerCreate(t *testing.T) {
	var gotRef string
	var gotTheme int64
	facade := testhelpers.InvitationFacadeStub{CreateFn: func(ctx context.Context, userID int64, reference string, themeID int64) (*model.Invitation, error) {
		gotRef, gotTheme = reference, themeID
		return testhelpers.InvitationFacadeStub{}.CreateInvitation(ctx, userID, reference, themeID)
	}}
	resp := performRequest(t, http.MethodPost, "/invitations", NewInvitationHandler(facade).Create, asUser(2), []byte(`{"order_id":" INV-7 ","theme_id":3}`), jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if gotRef != "INV-7" || gotTheme != 3 {
		t.Fatalf("unexpected facade call %q %d", gotRef, gotTheme)
	}
	got := decode[dto.InvitationResponse](t, resp)
	if got.OrderID != "INV-7" || got.Status != "draft" || !got.ExpiryDate.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected invitation %+v", got)
	}
}

func TestInvitationHandlerCreateFailures(t *testing.T) {
	fail := func(err error) testhelpers.InvitationFacadeStub {
		return testhelpers.InvitationFacadeStub{CreateFn: func(context.Context, int64, string, int64) (*model.Invitation, error) {
			return nil, err
		}}
	}
	body := `{"order_id":"INV-1","theme_id":1}`
	tests := []struct {
		name   string
		facade testhelpers.InvitationFacadeStub
		body   string
		status int
	}{
		{name: "bad json", body: "[", status: http.StatusBadRequest},
		{name: "missing order", body: `{"theme_id":1}`, status: http.StatusBadRequest},
		{name: "not paid", body: body, facade: fail(fmt.Errorf("%w: order is pending", domainErrors.ErrInvalidState)), status: http.StatusBadRequest},
		{name: "bad theme", body: body, facade: fail(fmt.Errorf("%w: theme", domainErrors.ErrValidation)), status: http.StatusBadRequest},
		{name: "stranger", body: body, facade: fail(domainErrors.ErrForbidden), status: http.StatusForbidden},
		{name: "unknown order", body: body, facade: fail(domainErrors.ErrOrderNotFound), status: http.StatusNotFound},
		{name: "duplicate", body: body, facade: fail(domainErrors.ErrConflict), status: http.StatusConflict},
		{name: "unknown tier", body: body, facade: fail(fmt.Errorf("%w: 9", domainErrors.ErrUnknownTier)), status: http.StatusInternalServerError},
		{name: "internal", body: body, facade: fail(errors.New("boom")), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/invitations", NewInvitationHandler(tt.facade).Create, asUser(1), []byte(tt.body), jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestInvitationHandlerCheck(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/invitations/check", NewInvitationHandler(testhelpers.InvitationFacadeStub{}).Check, asUser(1), []byte(`{"order_id":"INV-1"}`), jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := decode[dto.CheckInvitationResponse](t, resp); got.Exists || got.Data != nil {
		t.Fatalf("expected no invitation, got %+v", got)
	}

	found := testhelpers.InvitationFacadeStub{ForOrder: func(context.Context, int64, string) (*model.Invitation, error) {
		return &model.Invitation{ID: 5, ThemeID: 2, Status: model.InvitationStatusDraft}, nil
	}}
	resp = performRequest(t, http.MethodPost, "/invitations/check", NewInvitationHandler(found).Check, asUser(1), []byte(`{"order_id":"INV-1"}`), jsonHeaders)
	got := decode[dto.CheckInvitationResponse](t, resp)
	if !got.Exists || got.Data == nil || got.Data.ID != 5 || got.Data.OrderID != "INV-1" {
		t.Fatalf("expected invitation data, got %+v", got)
	}

	for err, status := range map[error]int{
		domainErrors.ErrForbidden:     http.StatusForbidden,
		domainErrors.ErrOrderNotFound: http.StatusNotFound,
		errors.New("boom"):            http.StatusInternalServerError,
	} {
		failing := testhelpers.InvitationFacadeStub{ForOrder: func(context.Context, int64, string) (*model.Invitation, error) { return nil, err }}
		resp = performRequest(t, http.MethodPost, "/invitations/check", NewInvitationHandler(failing).Check, asUser(1), []byte(`{"order_id":"INV-1"}`), jsonHeaders)
		if resp.Code != status {
			t.Fatalf("%v: expected status %d, got %d", err, status, resp.Code)
		}
	}

	resp = performRequest(t, http.MethodPost, "/invitations/check", NewInvitationHandler(found).Check, asUser(1), []byte(`{}`), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 without order id, got %d", resp.Code)
	}
}
