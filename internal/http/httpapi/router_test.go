package httpapi

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"styledna/internal/domain"
	"styledna/internal/http/handlers"
	"styledna/internal/providers/gemini"
	provider "styledna/internal/providers/image"
	"styledna/internal/storage"
	"styledna/internal/studio"
)

type stubProvider struct {
	gemini.Unavailable
}

func (stubProvider) GenerateWithReferences(context.Context, provider.ReferenceRequest) (provider.Asset, error) {
	return provider.Asset{Data: pngBytes(), MIMEType: "image/png"}, nil
}

func (stubProvider) Critique(context.Context, provider.CritiqueRequest) (domain.SuggestionSet, error) {
	return domain.SuggestionSet{StyleDescription: "flat", PositivePrompt: "bold, clean", NegativePrompt: "blurry"}, nil
}

func pngBytes() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{G: 180, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

type testServer struct {
	handler http.Handler
	store   *storage.FileStore
}

func newTestServer(t *testing.T, p provider.Provider) *testServer {
	t.Helper()
	fixed := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	s := studio.New(studio.Options{
		Provider: p,
		Now:      func() time.Time { return fixed },
	})
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	app := handlers.NewApp(s, store, nil, true)
	app.Now = func() time.Time { return fixed }
	h := NewRouter(app, Options{Logger: zerolog.New(io.Discard), AllowedOrigins: []string{"*"}, RateLimitPerMin: 100})
	return &testServer{handler: h, store: store}
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var out errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return out
}

func TestHealthReportsAPIKey(t *testing.T) {
	ts := newTestServer(t, stubProvider{})
	rr := ts.do(t, http.MethodGet, "/v1/healthz", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["has_api_key"] != true {
		t.Fatalf("body = %v", body)
	}
	if body["timestamp"] != "2026-03-04T05:06:07Z" {
		t.Fatalf("timestamp = %v", body["timestamp"])
	}
}

func TestGenerateRejectsEmptyInputs(t *testing.T) {
	ts := newTestServer(t, stubProvider{})
	rr := ts.do(t, http.MethodPost, "/v1/generate", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	got := decodeError(t, rr)
	if got.Error.Code != "invalid_input" {
		t.Fatalf("code = %q, want invalid_input", got.Error.Code)
	}
	if got.Error.Message != "Please enter a subject prompt or provide a composition or subject reference." {
		t.Fatalf("message = %q", got.Error.Message)
	}
}

func TestGenerateThenDownloadAndExport(t *testing.T) {
	ts := newTestServer(t, stubProvider{})
	if rr := ts.do(t, http.MethodPut, "/v1/state", `{"subject_prompt":"a lighthouse","model":"flash"}`); rr.Code != http.StatusOK {
		t.Fatalf("put state status = %d: %s", rr.Code, rr.Body.String())
	}

	rr := ts.do(t, http.MethodPost, "/v1/generate", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("generate status = %d: %s", rr.Code, rr.Body.String())
	}
	var gen struct {
		Session struct {
			Prompt string   `json:"prompt"`
			Images []string `json:"images"`
		} `json:"session"`
		Calls           []studio.CallReport `json:"calls"`
		FeedbackPending bool                `json:"feedback_pending"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&gen); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if gen.Session.Prompt != "a lighthouse" {
		t.Fatalf("prompt = %q", gen.Session.Prompt)
	}
	if len(gen.Session.Images) != studio.DefaultGenerationCount || len(gen.Calls) != studio.DefaultGenerationCount {
		t.Fatalf("images = %d, calls = %d", len(gen.Session.Images), len(gen.Calls))
	}
	if !strings.HasPrefix(gen.Session.Images[0], "data:image/jpeg;base64,") {
		t.Fatalf("image uri = %.40q", gen.Session.Images[0])
	}
	if !gen.FeedbackPending {
		t.Fatal("expected feedback to be pending")
	}

	rr = ts.do(t, http.MethodGet, "/v1/results/download", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("download status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/zip" {
		t.Fatalf("content type = %q", ct)
	}
	zr, err := zip.NewReader(bytes.NewReader(rr.Body.Bytes()), int64(rr.Body.Len()))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	// History images come first, then the current results.
	wantEntries := 2 * studio.DefaultGenerationCount
	if len(zr.File) != wantEntries {
		t.Fatalf("zip entries = %d, want %d", len(zr.File), wantEntries)
	}
	if zr.File[0].Name != "generated_image_1.jpeg" || zr.File[wantEntries-1].Name != "generated_image_6.jpeg" {
		t.Fatalf("entry names = %q .. %q", zr.File[0].Name, zr.File[wantEntries-1].Name)
	}

	rr = ts.do(t, http.MethodPost, "/v1/results/export", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("export status = %d: %s", rr.Code, rr.Body.String())
	}
	var exp struct {
		Batch string   `json:"batch"`
		Files []string `json:"files"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&exp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(exp.Files) != wantEntries {
		t.Fatalf("exported %d files, want %d", len(exp.Files), wantEntries)
	}
	data, err := os.ReadFile(filepath.Join(ts.store.BasePath(), filepath.FromSlash(exp.Files[0])))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !bytes.Equal(data, pngBytes()) {
		t.Fatal("exported bytes differ from generated image")
	}
}

func TestRestoreRequiresConfirmation(t *testing.T) {
	ts := newTestServer(t, stubProvider{})
	ts.do(t, http.MethodPut, "/v1/state", `{"subject_prompt":"a fox"}`)
	if rr := ts.do(t, http.MethodPost, "/v1/generate", ""); rr.Code != http.StatusOK {
		t.Fatalf("generate status = %d", rr.Code)
	}
	rr := ts.do(t, http.MethodGet, "/v1/history", "")
	var hist struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&hist); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(hist.Items) != 1 {
		t.Fatalf("history = %d sessions, want 1", len(hist.Items))
	}
	id := hist.Items[0].ID

	ts.do(t, http.MethodPut, "/v1/state", `{"subject_prompt":"changed"}`)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{name: "unknown session", path: "/v1/history/missing/restore", body: `{"confirm":true}`, want: http.StatusNotFound},
		{name: "unconfirmed", path: "/v1/history/" + id + "/restore", body: "", want: http.StatusConflict},
		{name: "confirmed", path: "/v1/history/" + id + "/restore", body: `{"confirm":true}`, want: http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := ts.do(t, http.MethodPost, tc.path, tc.body)
			if rr.Code != tc.want {
				t.Fatalf("status = %d, want %d: %s", rr.Code, tc.want, rr.Body.String())
			}
		})
	}

	rr = ts.do(t, http.MethodGet, "/v1/state", "")
	var st domain.InputState
	if err := json.NewDecoder(rr.Body).Decode(&st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.SubjectPrompt != "a fox" {
		t.Fatalf("subject prompt = %q, want restored value", st.SubjectPrompt)
	}
}

func TestCompositionPresetIsCanonicalized(t *testing.T) {
	ts := newTestServer(t, stubProvider{})
	rr := ts.do(t, http.MethodPut, "/v1/state/composition", `{"view":"isometrc"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	var st domain.InputState
	if err := json.NewDecoder(rr.Body).Decode(&st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view, ok := st.Composition.Preset(); !ok || view != "Isometric" {
		t.Fatalf("composition = %v %q, want preset Isometric", st.Composition.Kind(), view)
	}

	rr = ts.do(t, http.MethodPut, "/v1/state/composition", `{"view":"Isometric","image":{"name":"x.png","base64":"aGk="}}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("both variants status = %d, want 400", rr.Code)
	}
}

func TestAddImagesSniffsContent(t *testing.T) {
	ts := newTestServer(t, stubProvider{})
	dataURL := "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(pngBytes())
	rr := ts.do(t, http.MethodPost, "/v1/state/images", `{"images":[{"name":"ref.png","data_url":"`+dataURL+`"}]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	var st domain.InputState
	if err := json.NewDecoder(rr.Body).Decode(&st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(st.UploadedImages) != 1 || st.UploadedImages[0].MIMEType != "image/png" {
		t.Fatalf("uploaded = %+v", st.UploadedImages)
	}

	text := base64.StdEncoding.EncodeToString([]byte("plain text"))
	rr = ts.do(t, http.MethodPost, "/v1/state/images", `{"images":[{"name":"notes.txt","base64":"`+text+`"}]}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("non-image status = %d, want 400", rr.Code)
	}

	if rr := ts.do(t, http.MethodDelete, "/v1/state/images/3", ""); rr.Code != http.StatusNotFound {
		t.Fatalf("delete out of range status = %d, want 404", rr.Code)
	}
}

func TestProviderFailureIsBadGateway(t *testing.T) {
	ts := newTestServer(t, gemini.NewUnavailable(nil))
	ts.do(t, http.MethodPut, "/v1/state", `{"free_form_style_text":"ink wash"}`)
	rr := ts.do(t, http.MethodPost, "/v1/style/analyze", "")
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rr.Code)
	}
	if got := decodeError(t, rr); got.Error.Code != "provider_failure" {
		t.Fatalf("code = %q", got.Error.Code)
	}
}

// slowProvider honors cancellation the way the live client does.
type slowProvider struct {
	stubProvider
	delay time.Duration
}

func (p slowProvider) GenerateWithReferences(ctx context.Context, req provider.ReferenceRequest) (provider.Asset, error) {
	select {
	case <-time.After(p.delay):
		return p.stubProvider.GenerateWithReferences(ctx, req)
	case <-ctx.Done():
		return provider.Asset{}, ctx.Err()
	}
}

func TestGenerateOutlivesClientDisconnect(t *testing.T) {
	ts := newTestServer(t, slowProvider{delay: 100 * time.Millisecond})
	ts.do(t, http.MethodPut, "/v1/state", `{"subject_prompt":"a lighthouse","model":"flash"}`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	timer := time.AfterFunc(20*time.Millisecond, cancel)
	defer timer.Stop()
	req := httptest.NewRequest(http.MethodPost, "/v1/generate", nil).WithContext(ctx)
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("generate status = %d: %s", rr.Code, rr.Body.String())
	}

	rr = ts.do(t, http.MethodGet, "/v1/history", "")
	var hist struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&hist); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(hist.Items) != 1 {
		t.Fatalf("history items = %d, want 1", len(hist.Items))
	}
}

func TestApplySuggestionsWithoutPending(t *testing.T) {
	ts := newTestServer(t, stubProvider{})
	rr := ts.do(t, http.MethodPost, "/v1/suggestions/apply", `{"fields":["style"]}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rr.Code)
	}
	rr = ts.do(t, http.MethodPost, "/v1/suggestions/apply", `{"patch":{"negative":"lowres"}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("patch status = %d, want 200", rr.Code)
	}
}

func TestPromptPreviewNeedsNoProvider(t *testing.T) {
	ts := newTestServer(t, gemini.NewUnavailable(nil))
	ts.do(t, http.MethodPut, "/v1/state", `{"subject_prompt":"a red bicycle","model":"imagen"}`)
	rr := ts.do(t, http.MethodGet, "/v1/prompt", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "a red bicycle") {
		t.Fatalf("preview = %s", rr.Body.String())
	}
}

func TestOpenAPIDocumentsEveryRoute(t *testing.T) {
	ts := newTestServer(t, stubProvider{})
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(handlers.OpenAPIDocument(), &doc); err != nil {
		t.Fatalf("parse openapi.json: %v", err)
	}
	undocumented := map[string]bool{"/v1/openapi.json": true, "/v1/docs": true}
	err := chi.Walk(ts.handler.(chi.Routes), func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		route = strings.TrimSuffix(route, "/")
		if undocumented[route] {
			return nil
		}
		ops, ok := doc.Paths[route]
		if !ok {
			t.Errorf("route %s %s missing from openapi.json", method, route)
			return nil
		}
		if _, ok := ops[strings.ToLower(method)]; !ok {
			t.Errorf("method %s missing for %s", method, route)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk routes: %v", err)
	}
}

func TestOpenAPIJSONHonorsETag(t *testing.T) {
	ts := newTestServer(t, stubProvider{})
	rr := ts.do(t, http.MethodGet, "/v1/openapi.json", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	etag := rr.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}
	req := httptest.NewRequest(http.MethodGet, "/v1/openapi.json", nil)
	req.Header.Set("If-None-Match", etag)
	rr = httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotModified {
		t.Fatalf("conditional status = %d, want 304", rr.Code)
	}
}
