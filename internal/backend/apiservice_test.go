package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/kabbandre/pit-assignment/internal/backend/database"
	"github.com/kabbandre/pit-assignment/internal/core"

	"github.com/labstack/echo/v4"
)

const wellFormedUnknownID = "0123456789abcdef01234567"

func newTestServer(t *testing.T, mountPath string) (*echo.Echo, *core.CoreService) {
	t.Helper()
	cfg := &core.ServiceConfig{
		Port:      8080,
		MountPath: mountPath,
		LogLevel:  "info",
		Database: core.Database{
			Type:             database.TypeSQLite,
			ConnectionString: ":memory:",
		},
	}
	coreService, err := core.NewCoreService(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewCoreService error: %v", err)
	}
	t.Cleanup(func() { _ = coreService.Close() })

	e := DefineServer()
	NewAPIService(cfg, coreService).SetRoutes(e)
	return e, coreService
}

func doRequest(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeImage(t *testing.T, rec *httptest.ResponseRecorder) *database.Image {
	t.Helper()
	var img *database.Image
	if err := json.Unmarshal(rec.Body.Bytes(), &img); err != nil {
		t.Fatalf("invalid image body %q: %v", rec.Body.String(), err)
	}
	return img
}

func TestAPIService_SaveListAndGet(t *testing.T) {
	e, _ := newTestServer(t, "/")

	rec := doRequest(t, e, http.MethodPost, "/save", `{"title": "sunset", "width": 800}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /save status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, echo.MIMEApplicationJSON) {
		t.Errorf("unexpected content type %q", ct)
	}
	created := decodeImage(t, rec)
	if created.ID == "" {
		t.Fatal("expected an assigned id")
	}
	if created.Title == nil || *created.Title != "sunset" {
		t.Errorf("unexpected title %v", created.Title)
	}
	if created.Width == nil || *created.Width != 800 {
		t.Errorf("unexpected width %v", created.Width)
	}

	rec = doRequest(t, e, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, body %s", rec.Code, rec.Body.String())
	}
	var images []*database.Image
	if err := json.Unmarshal(rec.Body.Bytes(), &images); err != nil {
		t.Fatalf("invalid list body %q: %v", rec.Body.String(), err)
	}
	if len(images) != 1 || !reflect.DeepEqual(images[0], created) {
		t.Fatalf("GET / = %+v, want [%+v]", images, created)
	}

	rec = doRequest(t, e, http.MethodGet, "/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /:id status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got := decodeImage(t, rec); !reflect.DeepEqual(got, created) {
		t.Fatalf("GET /:id = %+v, want %+v", got, created)
	}
}

func TestAPIService_ListEmptyStore(t *testing.T) {
	e, _ := newTestServer(t, "/")

	rec := doRequest(t, e, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("expected empty JSON array, got %q", body)
	}
}

func TestAPIService_GetUnknownIDReturnsNull(t *testing.T) {
	e, _ := newTestServer(t, "/")

	rec := doRequest(t, e, http.MethodGet, "/"+wellFormedUnknownID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /<unknown> status = %d, want 200", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "null" {
		t.Fatalf("expected null body, got %q", body)
	}
}

func TestAPIService_GetMalformedID(t *testing.T) {
	e, _ := newTestServer(t, "/")

	rec := doRequest(t, e, http.MethodGet, "/not-an-id", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("GET /not-an-id status = %d, want 400", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Message == "" {
		t.Fatalf("expected JSON error message, got %q", rec.Body.String())
	}
}

func TestAPIService_SaveIgnoresUnknownFieldsAndCasts(t *testing.T) {
	e, _ := newTestServer(t, "/")

	rec := doRequest(t, e, http.MethodPost, "/save", `{"id": "mine", "filterId": "4", "title": 12, "extra": true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /save status = %d, body %s", rec.Code, rec.Body.String())
	}
	created := decodeImage(t, rec)
	if created.ID == "mine" || created.ID == "" {
		t.Errorf("expected assigned id, got %q", created.ID)
	}
	if created.FilterID == nil || *created.FilterID != 4 {
		t.Errorf("expected filterId 4, got %v", created.FilterID)
	}
	if created.Title == nil || *created.Title != "12" {
		t.Errorf("expected title \"12\", got %v", created.Title)
	}
	if strings.Contains(rec.Body.String(), "extra") {
		t.Errorf("unknown field leaked into response: %s", rec.Body.String())
	}
}

func TestAPIService_SaveWithoutBody(t *testing.T) {
	e, _ := newTestServer(t, "/")

	rec := doRequest(t, e, http.MethodPost, "/save", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /save status = %d, body %s", rec.Code, rec.Body.String())
	}
	if created := decodeImage(t, rec); created.ID == "" {
		t.Fatal("expected an assigned id")
	}
}

func TestAPIService_SaveRejectsBadInput(t *testing.T) {
	e, coreService := newTestServer(t, "/")

	for _, body := range []string{`{"width": "wide"}`, `{"title": `, `[1, 2]`} {
		rec := doRequest(t, e, http.MethodPost, "/save", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("POST /save %s status = %d, want 400", body, rec.Code)
		}
	}

	images, err := coreService.GetImages(context.Background())
	if err != nil {
		t.Fatalf("GetImages error: %v", err)
	}
	if len(images) != 0 {
		t.Fatalf("rejected saves must not persist, got %d images", len(images))
	}
}

func TestAPIService_StorageFailure(t *testing.T) {
	e, coreService := newTestServer(t, "/")
	if err := coreService.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	for _, tc := range []struct{ method, target, body string }{
		{http.MethodGet, "/", ""},
		{http.MethodGet, "/" + wellFormedUnknownID, ""},
		{http.MethodPost, "/save", `{"title": "x"}`},
	} {
		rec := doRequest(t, e, tc.method, tc.target, tc.body)
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("%s %s status = %d, want 500", tc.method, tc.target, rec.Code)
		}
		var resp ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Errorf("%s %s invalid error body %q", tc.method, tc.target, rec.Body.String())
		}
		if resp.Message != database.ErrStorageFailure.Error() {
			t.Errorf("%s %s message = %q", tc.method, tc.target, resp.Message)
		}
	}
}

func TestAPIService_Probe(t *testing.T) {
	e, coreService := newTestServer(t, "/")

	if rec := doRequest(t, e, http.MethodGet, ProbePath, ""); rec.Code != http.StatusOK {
		t.Fatalf("GET %s status = %d, want 200", ProbePath, rec.Code)
	}

	_ = coreService.Close()
	if rec := doRequest(t, e, http.MethodGet, ProbePath, ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("GET %s after close status = %d, want 503", ProbePath, rec.Code)
	}
}

func TestAPIService_MountPath(t *testing.T) {
	e, _ := newTestServer(t, "/images/")

	rec := doRequest(t, e, http.MethodPost, "/images/save", `{"title": "mounted"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /images/save status = %d, body %s", rec.Code, rec.Body.String())
	}
	created := decodeImage(t, rec)

	for _, target := range []string{"/images", "/images/"} {
		rec = doRequest(t, e, http.MethodGet, target, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d", target, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), created.ID) {
			t.Fatalf("GET %s body %s does not contain %s", target, rec.Body.String(), created.ID)
		}
	}

	rec = doRequest(t, e, http.MethodGet, "/images/"+created.ID, "")
	if got := decodeImage(t, rec); got == nil || got.ID != created.ID {
		t.Fatalf("GET /images/:id = %+v", got)
	}

	if rec := doRequest(t, e, http.MethodGet, "/save", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("routes outside the mount path must 404, got %d", rec.Code)
	}
}
