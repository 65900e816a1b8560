package kalender

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/thansetan/kalender/middleware"
	"github.com/thansetan/kalender/model"
	"github.com/thansetan/kalender/web"
)

func newTestRouter(t *testing.T, rl *middleware.RateLimit) http.Handler {
	t.Helper()
	tmpl, err := NewTemplates(web.Templates())
	if err != nil {
		t.Fatal(err)
	}
	return NewRouter(newTestService(t), RouterOptions{
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Templates:   tmpl,
		Static:      web.Static(),
		RateLimit:   rl,
		DefaultYear: 2024,
	})
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRouterRedirectsToDefaultYear(t *testing.T) {
	rec := get(newTestRouter(t, nil), "/")
	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("code = %d, want 307", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/2024" {
		t.Fatalf("Location = %q, want /2024", loc)
	}
}

func TestRouterYearPage(t *testing.T) {
	rec := get(newTestRouter(t, nil), "/2024")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, body:\n%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{"<h1>2024</h1>", "December", "/2023", "/2025", "366"} {
		if !strings.Contains(body, want) {
			t.Errorf("year page missing %q", want)
		}
	}
}

func TestRouterYearPageAtRangeEdge(t *testing.T) {
	rec := get(newTestRouter(t, nil), "/2100")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "/2101") {
		t.Fatal("year page links past the last accepted year")
	}
}

func TestRouterMonthPage(t *testing.T) {
	rec := get(newTestRouter(t, nil), "/2024/3")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, body:\n%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{"March 2024", "Friday", "61st"} {
		if !strings.Contains(body, want) {
			t.Errorf("month page missing %q", want)
		}
	}
}

func TestRouterNotFound(t *testing.T) {
	h := newTestRouter(t, nil)
	for _, target := range []string{"/1899", "/2101", "/2024/13", "/2024/0", "/nope", "/1800.ics"} {
		if rec := get(h, target); rec.Code != http.StatusNotFound {
			t.Errorf("GET %s: code = %d, want 404", target, rec.Code)
		}
	}
}

func TestRouterYearJSON(t *testing.T) {
	rec := get(newTestRouter(t, nil), "/api/2024")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	var stats model.YearStatistics
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalDays != 366 || stats.WeekendDays+stats.WeekdayDays != 366 {
		t.Fatalf("unexpected statistics: %+v", stats)
	}
	if rec.Header().Get("ETag") == "" {
		t.Fatal("missing ETag")
	}
}

func TestRouterYearJSONNotModified(t *testing.T) {
	h := newTestRouter(t, nil)
	etag := get(h, "/api/2000").Header().Get("ETag")

	req := httptest.NewRequest(http.MethodGet, "/api/2000", nil)
	req.Header.Set("If-None-Match", etag)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotModified {
		t.Fatalf("code = %d, want 304", rec.Code)
	}
}

func TestRouterMonthAndDayJSON(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := get(h, "/api/2000/1")
	var info model.MonthInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if info.StartWeekday != 6 || info.DayCount != 31 {
		t.Fatalf("unexpected month: %+v", info)
	}

	rec = get(h, "/api/2023/12/31")
	var d model.DayOfYear
	if err := json.NewDecoder(rec.Body).Decode(&d); err != nil {
		t.Fatal(err)
	}
	if d.DayOfYear != 365 {
		t.Fatalf("day of year = %d, want 365", d.DayOfYear)
	}
}

func TestRouterJSONBadRequest(t *testing.T) {
	h := newTestRouter(t, nil)
	for _, target := range []string{"/api/1899", "/api/2024/13", "/api/2023/2/29"} {
		rec := get(h, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("GET %s: code = %d, want 400", target, rec.Code)
		}
	}
}

func TestRouterICal(t *testing.T) {
	rec := get(newTestRouter(t, nil), "/2024.ics")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Fatalf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "BEGIN:VCALENDAR") {
		t.Fatal("body is not an iCalendar document")
	}
}

func TestRouterStaticAndHealthcheck(t *testing.T) {
	h := newTestRouter(t, nil)
	if rec := get(h, "/style.css"); rec.Code != http.StatusOK {
		t.Fatalf("style.css code = %d", rec.Code)
	}
	rec := get(h, "/healthcheck")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthcheck = %d %q", rec.Code, rec.Body.String())
	}
}

func TestRouterRateLimitsAPI(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := middleware.NewRateLimit(ctx, 1, time.Minute, time.Minute, middleware.ClientIP)
	h := newTestRouter(t, rl)

	if rec := get(h, "/api/2024"); rec.Code != http.StatusOK {
		t.Fatalf("first call code = %d", rec.Code)
	}
	if rec := get(h, "/api/2024"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second call code = %d, want 429", rec.Code)
	}
	// HTML pages are not limited.
	if rec := get(h, "/2024"); rec.Code != http.StatusOK {
		t.Fatalf("html page code = %d", rec.Code)
	}
}

func TestTemplatesWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	if err := os.WriteFile(path, []byte(`{{define "page"}}one{{end}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	tmpl, err := LoadTemplates(dir, nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go tmpl.Watch(ctx, dir, slog.New(slog.NewTextHandler(io.Discard, nil))) //nolint:errcheck
	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(path, []byte(`{{define "page"}}two{{end}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		// The file may be caught half written, so errors are retried.
		var buf bytes.Buffer
		if err := tmpl.ExecuteTemplate(&buf, "page", nil); err == nil && buf.String() == "two" {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("templates were not reloaded")
}
