package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/newtab/pkg/actions"
	"github.com/vango-dev/newtab/pkg/render"
	"github.com/vango-dev/newtab/pkg/store"
)

var (
	viewRe   = regexp.MustCompile(`data-view="([^"]+)"`)
	deleteRe = regexp.MustCompile(`data-option="delete"[^>]*data-hid="(h\d+)"`)
	blockRe  = regexp.MustCompile(`data-option="block"[^>]*data-hid="(h\d+)"`)
)

func testState(exp *store.Experiments) store.State {
	if exp == nil {
		exp = &store.Experiments{}
	}
	return store.State{
		Experiments: exp,
		Sites: []store.Site{
			{URL: "https://foo.com", Title: "Foo", Source: "TOP_SITES"},
			{URL: "https://bar.com", Title: "Bar", BookmarkGUID: "testBookmark", Source: "BOOKMARKS"},
		},
	}
}

func newTestServer(t *testing.T, st *store.Store, cfg *Config) (*Server, *httptest.Server) {
	t.Helper()
	if cfg == nil {
		cfg = &Config{}
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(st, cfg, WithLogger(logger))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func get(t *testing.T, rawURL string) (int, string) {
	t.Helper()
	resp, err := http.Get(rawURL)
	if err != nil {
		t.Fatalf("GET %s: %v", rawURL, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(body)
}

type page struct {
	view    string
	deletes []string
	blocks  []string
}

func loadPage(t *testing.T, base, query string) (page, string) {
	t.Helper()
	status, body := get(t, base+"/"+query)
	if status != http.StatusOK {
		t.Fatalf("GET / = %d", status)
	}
	m := viewRe.FindStringSubmatch(body)
	if m == nil {
		t.Fatalf("page has no view id:\n%s", body)
	}
	p := page{view: m[1]}
	for _, sm := range deleteRe.FindAllStringSubmatch(body, -1) {
		p.deletes = append(p.deletes, sm[1])
	}
	for _, sm := range blockRe.FindAllStringSubmatch(body, -1) {
		p.blocks = append(p.blocks, sm[1])
	}
	return p, body
}

func dial(t *testing.T, base, view string) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(base, "http") + "/ws?view=" + url.QueryEscape(view)
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

type reply struct {
	Actions []actions.Action `json:"actions"`
	Error   string           `json:"error"`
}

func send(t *testing.T, conn *websocket.Conn, msg any) reply {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var r reply
	if err := conn.ReadJSON(&r); err != nil {
		t.Fatalf("read: %v", err)
	}
	return r
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t, store.New(), nil)

	status, body := get(t, ts.URL+"/healthz")
	if status != http.StatusOK || body != "ok" {
		t.Fatalf("GET /healthz = %d %q", status, body)
	}
}

func TestPageRendersTiles(t *testing.T) {
	s, ts := newTestServer(t, store.New(store.WithInitialState(testState(nil))), nil)

	p, body := loadPage(t, ts.URL, "")
	for _, want := range []string{
		"<title>New Tab</title>",
		`href="https://foo.com"`,
		"Remove from History",
		"Remove from Bookmarks",
		"Never show on this page",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if n := strings.Count(body, `<ul class="context-menu" hidden role="menu">`); n != 2 {
		t.Errorf("hidden menus = %d, want 2", n)
	}
	if len(p.deletes) != 2 || len(p.blocks) != 2 {
		t.Errorf("menu links: %d delete, %d block", len(p.deletes), len(p.blocks))
	}
	if s.ViewCount() != 1 {
		t.Errorf("ViewCount() = %d, want 1", s.ViewCount())
	}
}

func TestPageRenderFailureRegistersNoView(t *testing.T) {
	s, ts := newTestServer(t, store.New(store.WithInitialState(testState(nil))), &Config{MaxViews: 1})
	s.renderPage = func(*render.Renderer, io.Writer, render.PageData) error {
		return errors.New("template exploded")
	}

	for i := 0; i < 3; i++ {
		if status, _ := get(t, ts.URL+"/"); status != http.StatusInternalServerError {
			t.Fatalf("GET / = %d, want 500", status)
		}
	}
	if n := s.ViewCount(); n != 0 {
		t.Errorf("ViewCount() = %d after failed renders, want 0", n)
	}
}

func TestPageOpenMenu(t *testing.T) {
	_, ts := newTestServer(t, store.New(store.WithInitialState(testState(nil))), nil)

	_, body := loadPage(t, ts.URL, "?menu="+url.QueryEscape("https://bar.com"))
	if n := strings.Count(body, `<ul class="context-menu" role="menu">`); n != 1 {
		t.Errorf("visible menus = %d, want 1", n)
	}
	if n := strings.Count(body, `<ul class="context-menu" hidden role="menu">`); n != 1 {
		t.Errorf("hidden menus = %d, want 1", n)
	}
}

func TestPageEmpty(t *testing.T) {
	_, ts := newTestServer(t, store.New(), nil)

	_, body := loadPage(t, ts.URL, "")
	if !strings.Contains(body, "Nothing to show.") {
		t.Error("empty page should say so")
	}
}

func TestClickHistoryDelete(t *testing.T) {
	st := store.New(store.WithInitialState(testState(nil)))
	_, ts := newTestServer(t, st, nil)

	p, _ := loadPage(t, ts.URL, "")
	conn := dial(t, ts.URL, p.view)

	r := send(t, conn, ClientMessage{HID: p.deletes[0], Event: "click"})
	if r.Error != "" {
		t.Fatalf("error reply: %s", r.Error)
	}

	pos := 0
	want := []actions.Action{
		actions.HistoryDelete("https://foo.com"),
		actions.UserEvent(actions.UserEventData{
			Event:          actions.EventDelete,
			Page:           "NEW_TAB",
			Source:         "TOP_SITES",
			ActionPosition: &pos,
		}),
	}
	if diff := cmp.Diff(want, r.Actions); diff != "" {
		t.Errorf("actions mismatch (-want +got):\n%s", diff)
	}

	if _, ok := st.State().Site("https://foo.com"); ok {
		t.Error("history delete should remove the tile")
	}
	if n := len(st.State().UserEvents); n != 1 {
		t.Errorf("user events = %d, want 1", n)
	}
}

func TestClickBookmarkDeleteAndBlock(t *testing.T) {
	st := store.New(store.WithInitialState(testState(nil)))
	_, ts := newTestServer(t, st, nil)

	p, _ := loadPage(t, ts.URL, "")
	conn := dial(t, ts.URL, p.view)

	r := send(t, conn, ClientMessage{HID: p.deletes[1], Event: "click"})
	if len(r.Actions) != 2 || r.Actions[0].Type != actions.NotifyBookmarkDelete || r.Actions[0].Payload() != "testBookmark" {
		t.Fatalf("bookmark delete reply = %+v", r)
	}

	r = send(t, conn, ClientMessage{HID: p.blocks[1], Event: "click"})
	if len(r.Actions) != 2 || r.Actions[0].Type != actions.NotifyBlockURL || r.Actions[0].Payload() != "https://bar.com" {
		t.Fatalf("block reply = %+v", r)
	}
	ev, _ := r.Actions[1].UserEventData()
	if ev.Event != actions.EventBlock || ev.Position() != 1 {
		t.Errorf("block user event = %+v", ev)
	}

	if !st.State().IsBlocked("https://bar.com") {
		t.Error("bar.com should be blocked")
	}
}

func TestClickWithExperiment(t *testing.T) {
	exp := &store.Experiments{Data: store.ExperimentData{ID: "exp-001", ReverseMenuOptions: true}}
	st := store.New(store.WithInitialState(testState(exp)))
	_, ts := newTestServer(t, st, nil)

	p, body := loadPage(t, ts.URL, "")
	first := strings.Index(body, "Never show on this page")
	second := strings.Index(body, "Remove from History")
	if first < 0 || second < 0 || first > second {
		t.Error("options should be reversed in the experiment")
	}

	conn := dial(t, ts.URL, p.view)
	r := send(t, conn, ClientMessage{HID: p.deletes[0], Event: "click"})
	ev, ok := r.Actions[1].UserEventData()
	if !ok {
		t.Fatalf("second action is %s", r.Actions[1].Type)
	}
	if ev.Event != actions.EventDelete || ev.ExperimentID != "exp-001" {
		t.Errorf("user event = %+v", ev)
	}
}

func TestClickErrors(t *testing.T) {
	_, ts := newTestServer(t, store.New(store.WithInitialState(testState(nil))), nil)

	p, _ := loadPage(t, ts.URL, "")
	conn := dial(t, ts.URL, p.view)

	if r := send(t, conn, ClientMessage{HID: "h999", Event: "click"}); r.Error != "unknown target" {
		t.Errorf("unknown hid reply = %+v", r)
	}
	if r := send(t, conn, ClientMessage{HID: p.deletes[0], Event: "hover"}); r.Error != "unsupported event" {
		t.Errorf("unsupported event reply = %+v", r)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatal(err)
	}
	var r reply
	if err := conn.ReadJSON(&r); err != nil {
		t.Fatal(err)
	}
	if r.Error != "invalid message" {
		t.Errorf("malformed reply = %+v", r)
	}
}

func TestErrorReplyShape(t *testing.T) {
	b, err := json.Marshal(ErrorReply{Error: "unknown target"})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"error":"unknown target"}` {
		t.Errorf("error reply = %s", b)
	}
}

func TestUnknownView(t *testing.T) {
	_, ts := newTestServer(t, store.New(), nil)

	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?view=nope"
	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	if err == nil {
		t.Fatal("expected dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("response = %+v", resp)
	}
}

func TestCrossOriginRejected(t *testing.T) {
	_, ts := newTestServer(t, store.New(store.WithInitialState(testState(nil))), nil)
	p, _ := loadPage(t, ts.URL, "")

	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?view=" + p.view
	_, resp, err := websocket.DefaultDialer.Dial(u, http.Header{"Origin": {"https://evil.example"}})
	if err == nil {
		t.Fatal("expected cross-origin dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("response = %+v", resp)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})

	_, ts := newTestServer(t, store.New(), &Config{MetricsPath: "/metrics", MetricsHandler: metrics})
	if status, body := get(t, ts.URL+"/metrics"); status != http.StatusOK || body != "# metrics" {
		t.Errorf("GET /metrics = %d %q", status, body)
	}

	_, ts = newTestServer(t, store.New(), &Config{})
	if status, _ := get(t, ts.URL+"/metrics"); status != http.StatusNotFound {
		t.Errorf("GET /metrics with metrics disabled = %d, want 404", status)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := (*Config)(nil).withDefaults()
	if cfg.Title != "New Tab" || cfg.Page != "NEW_TAB" || cfg.MaxViews != 1024 {
		t.Errorf("defaults = %+v", cfg)
	}

	cfg = (&Config{Title: "Home", MaxViews: 2}).withDefaults()
	if cfg.Title != "Home" || cfg.MaxViews != 2 || cfg.Address != ":3000" {
		t.Errorf("merged = %+v", cfg)
	}
	if cfg.MetricsPath != "" {
		t.Errorf("MetricsPath = %q, want it left empty", cfg.MetricsPath)
	}
}
