package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"styledna/internal/domain"
)

func TestWriteErrStatus(t *testing.T) {
	app := NewApp(nil, nil, nil, false)
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{name: "validation", err: domain.Invalid("subject_prompt", "Please enter a subject prompt to generate an image."), status: http.StatusBadRequest, code: "invalid_input", message: "Please enter a subject prompt to generate an image."},
		{name: "busy", err: domain.ErrBusy, status: http.StatusConflict, code: "busy"},
		{name: "confirmation", err: domain.ErrConfirmationRequired, status: http.StatusConflict, code: "confirmation_required"},
		{name: "not found", err: fmt.Errorf("session %q: %w", "x", domain.ErrNotFound), status: http.StatusNotFound, code: "not_found"},
		{
			name:    "no images",
			err:     fmt.Errorf("%w: %s", domain.ErrNoImages, "Imagen generation failed to produce any images. The prompt may have been blocked."),
			status:  http.StatusUnprocessableEntity,
			code:    "no_images",
			message: "Imagen generation failed to produce any images. The prompt may have been blocked.",
		},
		{name: "blocked", err: domain.ErrBlocked, status: http.StatusUnprocessableEntity, code: "blocked", message: domain.ErrBlocked.Error()},
		{name: "provider", err: fmt.Errorf("%w: upstream 500", domain.ErrProviderFailure), status: http.StatusBadGateway, code: "provider_failure", message: "the image service request failed"},
		{name: "other", err: errors.New("boom"), status: http.StatusInternalServerError, code: "internal"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			app.writeErr(rr, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)
			if rr.Code != tc.status {
				t.Fatalf("status = %d, want %d", rr.Code, tc.status)
			}
			var body map[string]errorBody
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["error"].Code != tc.code {
				t.Fatalf("code = %q, want %q", body["error"].Code, tc.code)
			}
			if tc.message != "" && body["error"].Message != tc.message {
				t.Fatalf("message = %q, want %q", body["error"].Message, tc.message)
			}
		})
	}
}

func TestDecodeRejectsOversizedBody(t *testing.T) {
	app := NewApp(nil, nil, nil, false)
	app.MaxBodyBytes = 16
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"confirm":true,"padding":"xxxxxxxxxxxxxxxx"}`))
	rr := httptest.NewRecorder()
	var v restoreRequest
	if app.decode(rr, req, &v) {
		t.Fatal("decode accepted an oversized body")
	}
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rr.Code)
	}
}

func TestImagePayloadAsset(t *testing.T) {
	asset, err := imagePayload{Name: "a.png", DataURL: "data:image/png;base64,aGk="}.asset()
	if err != nil {
		t.Fatalf("asset returned error: %v", err)
	}
	if asset.MIMEType != "image/png" || asset.Base64 != "aGk=" || asset.Name != "a.png" {
		t.Fatalf("asset = %+v", asset)
	}
	if _, err := (imagePayload{Name: "empty"}).asset(); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("empty payload err = %v, want invalid input", err)
	}
	if _, err := (imagePayload{DataURL: "not-a-data-url"}).asset(); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("bad data url err = %v, want invalid input", err)
	}
}
