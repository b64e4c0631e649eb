package server

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"EconSim/internal/engine"
	"EconSim/internal/session"
)

func newTestServer(t *testing.T, opts ...engine.Option) (*httptest.Server, *session.Session) {
	t.Helper()
	sess := session.New(context.Background(), session.Deps{}, opts...)
	ts := httptest.NewServer(New(sess).Handler())
	t.Cleanup(func() {
		ts.Close()
		sess.Stop()
	})
	return ts, sess
}

func post(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()
	var out map[string]any
	json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestGetState(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var got stateResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StatusCode != http.StatusOK || got.Turn != 1 || got.State.GovernmentDebt != 20000 || got.RunID == "" {
		t.Errorf("unexpected state response %d: %+v", resp.StatusCode, got)
	}
	if got.Status.Band != "CRISIS" {
		t.Errorf("expected initial band CRISIS at 200%% debt/GDP, got %s", got.Status.Band)
	}
}

func TestPostPolicy(t *testing.T) {
	ts, sess := newTestServer(t)

	resp, body := post(t, ts.URL+"/api/policy", `{"lever":"rate","magnitude":1}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %v", resp.StatusCode, body)
	}
	if body["turn"].(float64) != 2 || sess.Turn() != 2 {
		t.Errorf("expected turn 2, got %v", body["turn"])
	}
	debt := body["state"].(map[string]any)["government_debt"].(float64)
	if math.Abs(debt-20800) > 1e-6 {
		t.Errorf("expected debt 20800, got %v", debt)
	}
}

func TestPostPolicy_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		strict bool
		want   int
	}{
		{"unknown lever", `{"lever":"print","magnitude":1}`, false, http.StatusBadRequest},
		{"unknown field", `{"lever":"rate","size":1}`, false, http.StatusBadRequest},
		{"malformed", `{"lever":`, false, http.StatusBadRequest},
		{"zero debt", `{"lever":"ISSUE_DEBT","magnitude":0}`, false, http.StatusBadRequest},
		{"overflowing tax", `{"lever":"tax","magnitude":1e308}`, false, http.StatusBadRequest},
		{"out of bounds", `{"lever":"rate","magnitude":30}`, true, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []engine.Option
			if tt.strict {
				opts = append(opts, engine.WithStrictBounds())
			}
			ts, sess := newTestServer(t, opts...)
			resp, body := post(t, ts.URL+"/api/policy", tt.body)
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d (%v)", resp.StatusCode, tt.want, body)
			}
			if body["error"] == nil {
				t.Error("expected error message")
			}
			if sess.Turn() != 1 {
				t.Errorf("rejected request advanced the turn to %d", sess.Turn())
			}
		})
	}
}

func TestPreviewAndReset(t *testing.T) {
	ts, sess := newTestServer(t)

	resp, body := post(t, ts.URL+"/api/preview", `{"lever":"austerity"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("preview status %d", resp.StatusCode)
	}
	spending := body["next"].(map[string]any)["government_spending"].(float64)
	if spending != 800 || sess.Turn() != 1 {
		t.Errorf("unexpected preview: spending %v at turn %d", spending, sess.Turn())
	}

	post(t, ts.URL+"/api/policy", `{"lever":"austerity"}`)
	resp, body = post(t, ts.URL+"/api/reset", ``)
	if resp.StatusCode != http.StatusOK || body["turn"].(float64) != 1 || sess.Turn() != 1 {
		t.Errorf("unexpected reset response %d: %v", resp.StatusCode, body)
	}
}

func TestCommentaryUnavailable(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, body := post(t, ts.URL+"/api/commentary", ``)
	if resp.StatusCode != http.StatusServiceUnavailable || body["reason"] != "disabled" {
		t.Errorf("expected 503 disabled, got %d %v", resp.StatusCode, body)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/policy")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", resp.StatusCode)
	}
}

func TestHistory(t *testing.T) {
	ts, _ := newTestServer(t)
	post(t, ts.URL+"/api/policy", `{"lever":"tariff","magnitude":2}`)

	resp, err := http.Get(ts.URL + "/api/history")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var hist []map[string]any
	json.NewDecoder(resp.Body).Decode(&hist)
	if len(hist) != 2 || hist[1]["tariff_rate"].(float64) != 7 {
		t.Errorf("unexpected history: %v", hist)
	}
}

func TestSeriesAndTrends(t *testing.T) {
	ts, _ := newTestServer(t)
	post(t, ts.URL+"/api/policy", `{"lever":"rate","magnitude":1}`)
	post(t, ts.URL+"/api/policy", `{"lever":"rate","magnitude":1}`)

	resp, err := http.Get(ts.URL + "/api/history?field=interest_rate")
	if err != nil {
		t.Fatal(err)
	}
	var series []float64
	json.NewDecoder(resp.Body).Decode(&series)
	resp.Body.Close()
	if len(series) != 3 || series[0] != 3 || series[2] != 5 {
		t.Errorf("unexpected series: %v", series)
	}

	resp, err = http.Get(ts.URL + "/api/history?field=nope")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown field, got %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/api/trends?window=3")
	if err != nil {
		t.Fatal(err)
	}
	var trends []trendResponse
	json.NewDecoder(resp.Body).Decode(&trends)
	resp.Body.Close()
	var rate *trendResponse
	for i := range trends {
		if trends[i].Field == "interest_rate" {
			rate = &trends[i]
		}
	}
	if rate == nil || rate.Direction != "rising" || rate.Position != 1 || rate.Change != 2 {
		t.Errorf("unexpected interest rate trend: %+v", rate)
	}

	resp, err = http.Get(ts.URL + "/api/trends?window=-1")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for bad window, got %d", resp.StatusCode)
	}
}

func TestWebsocketStream(t *testing.T) {
	ts, _ := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var hello session.Event
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("read hello: %v", err)
	}
	if hello.Type != "state" || hello.Turn != 1 {
		t.Errorf("unexpected hello: %+v", hello)
	}

	post(t, ts.URL+"/api/policy", `{"lever":"fx","magnitude":5}`)
	var evt session.Event
	if err := conn.ReadJSON(&evt); err != nil {
		t.Fatalf("read turn: %v", err)
	}
	if evt.Type != "turn" || evt.Turn != 2 || evt.Lever != "EXCHANGE" {
		t.Errorf("unexpected event: %+v", evt)
	}

	post(t, ts.URL+"/api/reset", ``)
	if err := conn.ReadJSON(&evt); err != nil {
		t.Fatalf("read reset: %v", err)
	}
	if evt.Type != "reset" || evt.Turn != 1 {
		t.Errorf("unexpected event: %+v", evt)
	}
}
