package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/movetank-go/internal/config"
	"github.com/jengzang/movetank-go/internal/dataset"
	"github.com/jengzang/movetank-go/internal/middleware"
	"github.com/jengzang/movetank-go/internal/models"
	"github.com/jengzang/movetank-go/internal/service"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ds, err := dataset.New([]models.Record{
		{AnimalID: "a", Time: 1, X: 0, Y: 0, Clusters: map[int]int{0: 1}, Weights: map[string]float64{"b": 1}},
		{AnimalID: "b", Time: 1, X: 4, Y: 0, Clusters: map[int]int{0: 1}, Weights: map[string]float64{"a": 4}},
		{AnimalID: "a", Time: 2, X: 1, Y: 1, Clusters: map[int]int{0: 1}, Weights: map[string]float64{"b": 1}},
		{AnimalID: "b", Time: 2, X: 3, Y: 1, Clusters: map[int]int{0: -1}, Weights: map[string]float64{"a": 4}},
	})
	if err != nil {
		t.Fatalf("dataset.New failed: %v", err)
	}
	return SetupRouter(cfg, service.NewSceneService("sample", ds, cfg))
}

func call(r *gin.Engine, method, path, body string, header ...string) (*httptest.ResponseRecorder, envelope) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestHealth(t *testing.T) {
	r := newRouter(t, config.Default())
	w, _ := call(r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestDatasetAndState(t *testing.T) {
	r := newRouter(t, config.Default())

	w, env := call(r, http.MethodGet, "/api/v1/dataset", "")
	if w.Code != http.StatusOK || env.Code != 0 {
		t.Fatalf("expected success, got %d %+v", w.Code, env)
	}
	var summary models.DatasetSummary
	if err := json.Unmarshal(env.Data, &summary); err != nil {
		t.Fatal(err)
	}
	if summary.Name != "sample" || summary.Population != 2 {
		t.Errorf("unexpected summary %+v", summary)
	}

	w, env = call(r, http.MethodGet, "/api/v1/state", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var st map[string]interface{}
	if err := json.Unmarshal(env.Data, &st); err != nil {
		t.Fatal(err)
	}
	if st["strategy"] != "glyph" || st["playing"] != false {
		t.Errorf("unexpected state %v", st)
	}
}

func TestHoverFlow(t *testing.T) {
	r := newRouter(t, config.Default())

	if w, _ := call(r, http.MethodPost, "/api/v1/hover/a", ""); w.Code != http.StatusConflict {
		t.Errorf("expected 409 before the first frame, got %d", w.Code)
	}
	if w, _ := call(r, http.MethodPost, "/api/v1/step", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200 on step, got %d", w.Code)
	}

	w, env := call(r, http.MethodPost, "/api/v1/hover/a", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on hover, got %d %s", w.Code, env.Message)
	}
	var hover struct {
		Tooltip string `json:"tooltip"`
	}
	if err := json.Unmarshal(env.Data, &hover); err != nil {
		t.Fatal(err)
	}
	if hover.Tooltip != "The mover belongs to the cluster: 1" {
		t.Errorf("unexpected tooltip %q", hover.Tooltip)
	}

	if w, _ := call(r, http.MethodPost, "/api/v1/hover/zzz", ""); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for an unknown key, got %d", w.Code)
	}
	if w, _ := call(r, http.MethodDelete, "/api/v1/hover", ""); w.Code != http.StatusOK {
		t.Errorf("expected 200 on unhover, got %d", w.Code)
	}
}

func TestControls(t *testing.T) {
	r := newRouter(t, config.Default())

	w, _ := call(r, http.MethodPut, "/api/v1/controls", `{"threshold": 2, "clustering": true}`)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w, _ := call(r, http.MethodPut, "/api/v1/controls", `{"threshold": 99}`); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an out of range threshold, got %d", w.Code)
	}
	if w, _ := call(r, http.MethodPut, "/api/v1/controls", `not json`); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a malformed body, got %d", w.Code)
	}

	if w, _ := call(r, http.MethodPut, "/api/v1/strategy", `{"strategy": "network"}`); w.Code != http.StatusOK {
		t.Errorf("expected 200 switching strategy, got %d", w.Code)
	}
	if w, _ := call(r, http.MethodPut, "/api/v1/strategy", `{"strategy": "pie"}`); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an unknown strategy, got %d", w.Code)
	}

	w, env := call(r, http.MethodPost, "/api/v1/play", "")
	if w.Code != http.StatusOK || !strings.Contains(string(env.Data), `"playing":true`) {
		t.Errorf("expected playing state, got %d %s", w.Code, env.Data)
	}
	w, env = call(r, http.MethodPost, "/api/v1/pause", "")
	if w.Code != http.StatusOK || !strings.Contains(string(env.Data), `"playing":false`) {
		t.Errorf("expected paused state, got %d %s", w.Code, env.Data)
	}
}

func TestGetFrame(t *testing.T) {
	r := newRouter(t, config.Default())

	w, env := call(r, http.MethodGet, "/api/v1/frames/2?strategy=network", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", w.Code, env.Message)
	}
	var frame struct {
		Result struct {
			Entities int `json:"entities"`
		} `json:"result"`
	}
	if err := json.Unmarshal(env.Data, &frame); err != nil {
		t.Fatal(err)
	}
	if frame.Result.Entities != 2 {
		t.Errorf("expected 2 entities, got %d", frame.Result.Entities)
	}

	if w, _ := call(r, http.MethodGet, "/api/v1/frames/x", ""); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a bad time, got %d", w.Code)
	}
	if w, _ := call(r, http.MethodGet, "/api/v1/frames/1?strategy=pie", ""); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an unknown strategy, got %d", w.Code)
	}

	// frames are drawn off the shared canvas
	_, env = call(r, http.MethodGet, "/api/v1/scene", "")
	if !strings.Contains(string(env.Data), `"count":0`) {
		t.Errorf("expected an untouched scene, got %s", env.Data)
	}
}

func TestControlsRequireToken(t *testing.T) {
	cfg := config.Default()
	cfg.Server.JWTSecret = "s3cret"
	r := newRouter(t, cfg)

	if w, _ := call(r, http.MethodPost, "/api/v1/play", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}
	if w, _ := call(r, http.MethodGet, "/api/v1/state", ""); w.Code != http.StatusOK {
		t.Errorf("expected reads to stay open, got %d", w.Code)
	}

	token, err := middleware.IssueToken("s3cret", "tester", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if w, _ := call(r, http.MethodPost, "/api/v1/play", "", "Authorization", "Bearer "+token); w.Code != http.StatusOK {
		t.Errorf("expected 200 with token, got %d", w.Code)
	}
}
