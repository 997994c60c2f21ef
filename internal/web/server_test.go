package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/JonMunkholm/tabscope/internal/config"
	"github.com/JonMunkholm/tabscope/internal/core"
)

func newTestServer(t *testing.T, overrides map[string]string) *Server {
	t.Helper()
	cfg, err := config.LoadFrom(func(key string) (string, bool) {
		v, ok := overrides[key]
		return v, ok
	})
	if err != nil {
		t.Fatalf("config.LoadFrom() error = %v", err)
	}
	cfg.Chart.Width = 400
	cfg.Chart.Height = 300

	s := NewServer(core.NewService(cfg), cfg)
	t.Cleanup(func() { s.Shutdown(t.Context()) })
	return s
}

// client replays the session cookie across requests like a browser.
type client struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func newClient(t *testing.T, s *Server) *client {
	return &client{t: t, handler: s.Router()}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	if got := rec.Result().Cookies(); len(got) > 0 {
		c.cookies = got
	}
	return rec
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *client) upload(name, content string) *httptest.ResponseRecorder {
	c.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		c.t.Fatalf("CreateFormFile() error = %v", err)
	}
	fw.Write([]byte(content))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req)
}

func TestHome(t *testing.T) {
	c := newClient(t, newTestServer(t, nil))
	rec := c.get("/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `name="file"`) {
		t.Error("home page has no file input")
	}
	if len(c.cookies) == 0 {
		t.Error("no session cookie issued")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing")
	}
}

func TestUploadAndMean(t *testing.T) {
	c := newClient(t, newTestServer(t, nil))

	rec := c.upload("data.csv", "a,b\n1,2\n3,4\n")
	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{"data.csv", "2 rows", "int64"} {
		if !strings.Contains(body, want) {
			t.Errorf("preview missing %q", want)
		}
	}

	rec = c.postForm("/stats/", url.Values{"stat_choice": {"mean"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<td class=\"num\">2</td>") ||
		!strings.Contains(rec.Body.String(), "<td class=\"num\">3</td>") {
		t.Errorf("stats page missing mean values: %s", rec.Body.String())
	}
}

func TestStatsJSON(t *testing.T) {
	c := newClient(t, newTestServer(t, nil))
	c.upload("data.csv", "a,b\n1,2\n3,4\n")

	req := httptest.NewRequest(http.MethodPost, "/stats/", strings.NewReader("stat_choice=mean"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	rec := c.do(req)

	var got struct {
		Statistic string             `json:"statistic"`
		Value     map[string]float64 `json:"value"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Statistic != "mean" || got.Value["a"] != 2 || got.Value["b"] != 3 {
		t.Errorf("got %+v, want mean {a:2 b:3}", got)
	}
}

func TestNoDataLoaded(t *testing.T) {
	c := newClient(t, newTestServer(t, nil))

	for _, path := range []string{"/stats/", "/visualizations/"} {
		rec := c.get(path)
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", path, rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "No file has been loaded") || !strings.Contains(body, `name="file"`) {
			t.Errorf("GET %s should render the landing page with the message", path)
		}
	}

	rec := c.postForm("/visualizations/", url.Values{"vis_choice": {"Heatmap"}})
	if rec.Code != http.StatusNotFound {
		t.Errorf("POST /visualizations/ status = %d, want 404", rec.Code)
	}

	rec = c.get("/stats/export")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "DATA001") {
		t.Errorf("export: status %d body %q", rec.Code, rec.Body.String())
	}
}

func TestSessionsDoNotShareData(t *testing.T) {
	s := newTestServer(t, nil)
	alice := newClient(t, s)
	bob := newClient(t, s)

	alice.upload("a.csv", "x\n1\n")
	if rec := bob.get("/stats/"); rec.Code != http.StatusNotFound {
		t.Errorf("bob sees alice's data: status %d", rec.Code)
	}
}

func TestUploadErrors(t *testing.T) {
	c := newClient(t, newTestServer(t, nil))

	rec := c.upload("bad.csv", "a,b\n1,2,3\n")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad csv status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "FILE002") || !strings.Contains(rec.Body.String(), `name="file"`) {
		t.Error("bad csv should render the landing page with FILE002")
	}

	rec = c.postForm("/upload/", url.Values{})
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "FILE004") {
		t.Errorf("missing file: status %d", rec.Code)
	}
}

func TestUploadTooLarge(t *testing.T) {
	c := newClient(t, newTestServer(t, map[string]string{"UPLOAD_MAX_FILE_SIZE": "16"}))

	rec := c.upload("big.csv", "a\n"+strings.Repeat("1\n", 100))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestStatsErrors(t *testing.T) {
	c := newClient(t, newTestServer(t, nil))
	c.upload("data.csv", "a\n1\n")

	rec := c.postForm("/stats/", url.Values{"stat_choice": {"variance"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "DATA002") || !strings.Contains(body, `name="stat_choice"`) {
		t.Error("unsupported statistic should render on the statistics page")
	}

	rec = c.postForm("/stats/", url.Values{})
	if rec.Code != http.StatusOK {
		t.Errorf("empty choice status = %d, want 200", rec.Code)
	}
}

func TestVisualize(t *testing.T) {
	c := newClient(t, newTestServer(t, nil))
	c.upload("data.csv", "price,qty,name\n1,2,John Smith\n2,4,Ann\n3,5,Bob\n")

	rec := c.postForm("/visualizations/", url.Values{"vis_choice": {"Histogramme"}, "x_axis": {"price"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("histogram status = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "data:image/png;base64,") {
		t.Error("histogram page has no inline PNG")
	}

	rec = c.postForm("/visualizations/", url.Values{"vis_choice": {"Scatter Plot"}, "x_axis": {"price"}, "y_axis": {"qty"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("scatter status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "srcdoc=") {
		t.Error("scatter page has no embedded document")
	}

	rec = c.postForm("/visualizations/", url.Values{"vis_choice": {"Scatter Plot"}, "x_axis": {"price"}, "y_axis": {"name"}})
	if rec.Code != http.StatusUnprocessableEntity || !strings.Contains(rec.Body.String(), "DATA003") {
		t.Errorf("textual axis: status %d", rec.Code)
	}

	rec = c.postForm("/visualizations/", url.Values{"vis_choice": {"Pie"}})
	if rec.Code != http.StatusUnprocessableEntity || !strings.Contains(rec.Body.String(), "DATA005") {
		t.Errorf("unknown chart: status %d", rec.Code)
	}
}

func TestHeatmapInsufficientColumns(t *testing.T) {
	c := newClient(t, newTestServer(t, nil))
	c.upload("data.csv", "a,name\n1,x\n2,y\n")

	rec := c.postForm("/visualizations/", url.Values{"vis_choice": {"Heatmap"}})
	if rec.Code != http.StatusUnprocessableEntity || !strings.Contains(rec.Body.String(), "DATA004") {
		t.Errorf("status %d, want 422 with DATA004", rec.Code)
	}
}

func TestStatsExport(t *testing.T) {
	c := newClient(t, newTestServer(t, nil))
	c.upload("Relevé 2024.csv", "a,b,name\n1,2,x\n3,,y\n")

	rec := c.get("/stats/export")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := strings.ToLower(rec.Body.String())
	for _, want := range []string{"mean", "median", "a", "b"} {
		if !strings.Contains(body, want) {
			t.Errorf("export missing %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, "name") {
		t.Error("textual column should not appear in the summary")
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "summary_releve_2024_csv.txt") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	rec = c.get("/stats/export?format=csv")
	if !strings.HasPrefix(strings.ToLower(rec.Body.String()), "column,mean,std,min,max,count,median") {
		t.Errorf("csv export = %q", rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	c := newClient(t, s)
	c.upload("data.csv", "a\n1\n")

	rec := c.get("/healthz")
	var got HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != "ok" || got.Sessions != 1 || got.UploadsActive != 0 {
		t.Errorf("health = %+v", got)
	}
}

func TestUploadRateLimit(t *testing.T) {
	c := newClient(t, newTestServer(t, map[string]string{"RATE_LIMIT_UPLOAD": "2"}))

	for i := 0; i < 2; i++ {
		if rec := c.upload("data.csv", "a\n1\n"); rec.Code != http.StatusOK {
			t.Fatalf("upload %d status = %d", i, rec.Code)
		}
	}
	rec := c.upload("data.csv", "a\n1\n")
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("third upload status = %d, want 429", rec.Code)
	}
	if rec := c.get("/"); rec.Code != http.StatusOK {
		t.Errorf("other routes limited too: status %d", rec.Code)
	}
}

func TestStaticAssets(t *testing.T) {
	c := newClient(t, newTestServer(t, nil))
	rec := c.get("/static/style.css")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), ".chart-frame") {
		t.Errorf("style.css: status %d", rec.Code)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{core.ErrNoDataLoaded, http.StatusNotFound},
		{core.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{&http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{&core.ParseError{Line: 2, Err: errors.New("bare quote")}, http.StatusBadRequest},
		{core.ErrEmptyFile, http.StatusBadRequest},
		{core.ErrInvalidColumn, http.StatusUnprocessableEntity},
		{core.ErrUnsupportedChart, http.StatusUnprocessableEntity},
		{core.ErrTooManyUploads, http.StatusServiceUnavailable},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestJSONErrors(t *testing.T) {
	c := newClient(t, newTestServer(t, nil))
	req := httptest.NewRequest(http.MethodGet, "/stats/", nil)
	req.Header.Set("Accept", "application/json")
	rec := c.do(req)

	var got ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Code != http.StatusNotFound || got.Code != "DATA001" {
		t.Errorf("status %d, body %+v", rec.Code, got)
	}
}

func TestContentSecurityPolicy(t *testing.T) {
	csp := contentSecurityPolicy("https://cdn.example.com/assets/")
	if !strings.Contains(csp, "script-src 'self' 'unsafe-inline' https://cdn.example.com") {
		t.Errorf("csp = %q", csp)
	}
	if strings.Contains(contentSecurityPolicy(""), "https://") {
		t.Error("empty assets host should not widen script-src")
	}
}
