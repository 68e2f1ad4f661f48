package responses

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/ocampodev/supplyline-backend/pkg/errors"
	"github.com/ocampodev/supplyline-backend/pkg/types"
)

func decodeError(t *testing.T, body []byte) types.ErrorEnvelope {
	t.Helper()
	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return envelope
}

func TestWriteSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"status": "ok"})

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope types.SuccessEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode success envelope: %v", err)
	}
	data, ok := envelope.Data.(map[string]any)
	if !ok || data["status"] != "ok" {
		t.Fatalf("unexpected data: %#v", envelope.Data)
	}
}

func TestWriteErrorPassesMessageForClientCodes(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeOverAllocation, "quantity exceeds remaining headroom").
		WithDetails(map[string]any{"ordered": 10, "shipped": 4, "pooled": 5, "requested": 3})
	WriteError(context.Background(), nil, rec, err)

	if rec.Code != 409 {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	envelope := decodeError(t, rec.Body.Bytes())
	if envelope.Error.Code != "OVER_ALLOCATION" {
		t.Fatalf("unexpected code %q", envelope.Error.Code)
	}
	if envelope.Error.Message != "quantity exceeds remaining headroom" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
	if envelope.Error.Details == nil {
		t.Fatal("expected details to pass through")
	}
}

func TestWriteErrorRedactsInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeInternal, "pg constraint order_items_pkey exploded")
	WriteError(context.Background(), nil, rec, err)

	if rec.Code != 500 {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	envelope := decodeError(t, rec.Body.Bytes())
	if envelope.Error.Message == "pg constraint order_items_pkey exploded" {
		t.Fatal("internal message leaked to the client")
	}
	if envelope.Error.Details != nil {
		t.Fatal("internal errors must not carry details")
	}
}

func TestWriteErrorWrapsUncodedErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, context.DeadlineExceeded)

	if rec.Code != 500 {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	envelope := decodeError(t, rec.Body.Bytes())
	if envelope.Error.Code != "INTERNAL" {
		t.Fatalf("unexpected code %q", envelope.Error.Code)
	}
}
