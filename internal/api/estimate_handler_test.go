package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"crooksbayes/app"
	"crooksbayes/internal/config"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Server: config.ServerConfig{GinMode: gin.TestMode},
		Estimation: config.EstimationConfig{
			Beta: 1, GridMin: -10, GridMax: 10, GridStep: 0.1,
		},
	}
	return NewRouter(cfg, app.NewEstimationService())
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestEstimateEndpoint(t *testing.T) {
	router := testRouter()

	t.Run("valid series", func(t *testing.T) {
		w := postJSON(t, router, "/api/estimate", map[string]interface{}{
			"work_forwards":  []float64{5, 5, 5},
			"work_backwards": []float64{5, 5, 5},
		})
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp app.RunResult
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Bad response body: %v", err)
		}
		if len(resp.Result.MeanTrace) != 3 {
			t.Errorf("Expected 3 trace entries, got %d", len(resp.Result.MeanTrace))
		}
	})

	t.Run("mismatched lengths rejected", func(t *testing.T) {
		w := postJSON(t, router, "/api/estimate", map[string]interface{}{
			"work_forwards":  []float64{1, 2, 3},
			"work_backwards": []float64{1, 2},
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("degenerate numerics rejected as unprocessable", func(t *testing.T) {
		w := postJSON(t, router, "/api/estimate", map[string]interface{}{
			"work_forwards":  []float64{1000},
			"work_backwards": []float64{1000},
		})
		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("Expected 422, got %d", w.Code)
		}
	})

	t.Run("parameter overrides honored", func(t *testing.T) {
		w := postJSON(t, router, "/api/estimate", map[string]interface{}{
			"work_forwards":  []float64{5},
			"work_backwards": []float64{5},
			"grid_min":       -2.0,
			"grid_max":       2.0,
			"grid_step":      0.5,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp app.RunResult
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Bad response body: %v", err)
		}
		if len(resp.Result.Grid) != 9 {
			t.Errorf("Expected 9 grid points for [-2,2] step 0.5, got %d", len(resp.Result.Grid))
		}
	})

	t.Run("caller run ID echoed back", func(t *testing.T) {
		w := postJSON(t, router, "/api/estimate", map[string]interface{}{
			"run_id":         "pull-experiment-42",
			"work_forwards":  []float64{5},
			"work_backwards": []float64{5},
		})
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp app.RunResult
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Bad response body: %v", err)
		}
		if resp.RunID.String() != "pull-experiment-42" {
			t.Errorf("Expected pinned run ID, got %s", resp.RunID)
		}
	})

	t.Run("blank run ID rejected", func(t *testing.T) {
		w := postJSON(t, router, "/api/estimate", map[string]interface{}{
			"run_id":         "   ",
			"work_forwards":  []float64{5},
			"work_backwards": []float64{5},
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("missing body rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/estimate", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestSyntheticEndpoint(t *testing.T) {
	router := testRouter()

	t.Run("generates and estimates", func(t *testing.T) {
		w := postJSON(t, router, "/api/synthetic", map[string]interface{}{
			"true_delta_g": 2.5,
			"samples":      100,
			"seed":         7,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp struct {
			Run *app.RunResult `json:"run"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Bad response body: %v", err)
		}
		if resp.Run == nil || len(resp.Run.Result.MeanTrace) != 100 {
			t.Error("Expected a 100-sample run")
		}
	})

	t.Run("zero samples rejected", func(t *testing.T) {
		w := postJSON(t, router, "/api/synthetic", map[string]interface{}{
			"true_delta_g": 1.0,
			"samples":      0,
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
}
