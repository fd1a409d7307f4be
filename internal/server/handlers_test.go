package server

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdrpinto/gridpath"
	"github.com/pdrpinto/gridpath/internal/editor"
	"github.com/pdrpinto/gridpath/internal/logging"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	g, err := gridpath.NewGrid(4)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.MoveStart(0, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := g.MoveEnd(3, 3); err != nil {
		t.Fatal(err)
	}
	logger := logging.Discard()
	ed := editor.New(g, logger)
	t.Cleanup(ed.Close)
	api := NewAPIHandlers(logger, ed, gridpath.DefaultWallConfig(4), rand.New(rand.NewSource(1)))
	return NewRouter(logger, api)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHandleGrid(t *testing.T) {
	h := newTestRouter(t)
	rec := do(t, h, http.MethodGet, "/api/grid", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	st := decodeBody[stateResponse](t, rec)
	if st.Size != 4 || st.Start == nil || *st.Start != (point{0, 0}) || st.End == nil || *st.End != (point{3, 3}) {
		t.Fatalf("unexpected state: %+v", st)
	}
	if st.Mode != "none" || len(st.Walls) != 0 {
		t.Fatalf("unexpected state: %+v", st)
	}
}

func TestEditAndRun(t *testing.T) {
	h := newTestRouter(t)

	if rec := do(t, h, http.MethodPost, "/api/mode", `{"mode":"build"}`); rec.Code != http.StatusOK {
		t.Fatalf("mode: status %d: %s", rec.Code, rec.Body)
	}
	rec := do(t, h, http.MethodPost, "/api/rect", `{"from":{"x":1,"y":0},"to":{"x":1,"y":2}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("rect: status %d: %s", rec.Code, rec.Body)
	}
	if st := decodeBody[stateResponse](t, rec); len(st.Walls) != 3 {
		t.Fatalf("walls = %v", st.Walls)
	}

	rec = do(t, h, http.MethodPost, "/api/run", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("run: status %d: %s", rec.Code, rec.Body)
	}
	run := decodeBody[runResponse](t, rec)
	if !run.Found || run.Moves != 6 || len(run.State.Path) != 7 {
		t.Fatalf("run = %+v", run)
	}
	for _, p := range run.State.Path {
		if p[0] == 1 && p[1] < 3 {
			t.Fatalf("path crosses wall at %v", p)
		}
	}

	if rec := do(t, h, http.MethodPost, "/api/paint", `{"x":1,"y":3}`); rec.Code != http.StatusOK {
		t.Fatalf("paint: status %d", rec.Code)
	}
	rec = do(t, h, http.MethodPost, "/api/run", "")
	run = decodeBody[runResponse](t, rec)
	if rec.Code != http.StatusOK || run.Found || !run.State.Searched || len(run.State.Path) != 0 {
		t.Fatalf("walled run: status %d, %+v", rec.Code, run)
	}
	if run.State.Status != "no path found" {
		t.Fatalf("status = %q", run.State.Status)
	}
}

func TestClickMovesStart(t *testing.T) {
	h := newTestRouter(t)
	do(t, h, http.MethodPost, "/api/mode", `{"mode":"start"}`)
	rec := do(t, h, http.MethodPost, "/api/click", `{"x":2,"y":1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	if st := decodeBody[stateResponse](t, rec); st.Start == nil || *st.Start != (point{2, 1}) {
		t.Fatalf("start = %v", st.Start)
	}
}

func TestStepEndpoint(t *testing.T) {
	h := newTestRouter(t)
	var step stepResponse
	for i := 0; i < 32 && !step.Done; i++ {
		rec := do(t, h, http.MethodPost, "/api/step", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d: %s", rec.Code, rec.Body)
		}
		step = decodeBody[stepResponse](t, rec)
		if i == 0 && (step.Step != 1 || len(step.State.Closed) != 1) {
			t.Fatalf("first step = %+v", step)
		}
	}
	if !step.Done || !step.Found || step.Current != (point{3, 3}) || len(step.State.Path) != 7 {
		t.Fatalf("final step = %+v", step)
	}
}

func TestRegenerateAndClear(t *testing.T) {
	h := newTestRouter(t)
	rec := do(t, h, http.MethodPost, "/api/regenerate", `{"seed":5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	st := decodeBody[stateResponse](t, rec)
	for _, w := range st.Walls {
		if w == *st.Start || w == *st.End {
			t.Fatalf("wall on endpoint %v", w)
		}
	}

	rec = do(t, h, http.MethodPost, "/api/clear", "")
	if st := decodeBody[stateResponse](t, rec); len(st.Walls) != 0 {
		t.Fatalf("walls after clear = %v", st.Walls)
	}
}

func TestHover(t *testing.T) {
	h := newTestRouter(t)
	rec := do(t, h, http.MethodPost, "/api/hover", `{"x":1,"y":2}`)
	if st := decodeBody[stateResponse](t, rec); st.Hover == nil || *st.Hover != (point{1, 2}) {
		t.Fatalf("hover = %v", st.Hover)
	}
	rec = do(t, h, http.MethodPost, "/api/hover", `{"x":0,"y":0,"clear":true}`)
	if st := decodeBody[stateResponse](t, rec); st.Hover != nil {
		t.Fatalf("hover = %v after clear", st.Hover)
	}
}

func TestBadRequests(t *testing.T) {
	h := newTestRouter(t)
	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"out of bounds click", http.MethodPost, "/api/click", `{"x":9,"y":0}`, http.StatusBadRequest},
		{"malformed json", http.MethodPost, "/api/paint", `{"x":`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/api/paint", `{"x":1,"y":1,"z":2}`, http.StatusBadRequest},
		{"unknown mode", http.MethodPost, "/api/mode", `{"mode":"teleport"}`, http.StatusBadRequest},
		{"out of bounds rect", http.MethodPost, "/api/rect", `{"from":{"x":0,"y":0},"to":{"x":4,"y":4}}`, http.StatusBadRequest},
		{"wrong method", http.MethodGet, "/api/run", "", http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, tc.method, tc.path, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("expected status %d, got %d: %s", tc.status, rec.Code, rec.Body)
			}
		})
	}
}

func TestStaticAndHealth(t *testing.T) {
	h := newTestRouter(t)
	rec := do(t, h, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "<canvas") {
		t.Fatalf("index: status %d", rec.Code)
	}
	rec = do(t, h, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("healthz: status %d body %s", rec.Code, rec.Body)
	}
}
