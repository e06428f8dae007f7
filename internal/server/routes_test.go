package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rcliao/paper-catalog/internal/catalog"
	"github.com/rcliao/paper-catalog/internal/model"
	"github.com/rcliao/paper-catalog/internal/tree"
)

func testDoc() *model.Document {
	return &model.Document{
		Years: []string{"2022", "2023"},
		PastPapers: model.Catalog{
			"2022": {
				"physics": {
					{Name: "phys_p1.pdf", Code: "PHYS_P1", Level: "HL", PaperNumber: "1"},
					{Name: "phys_p1_ms.pdf", Code: "PHYS_P1", Level: "HL", PaperNumber: "1", IsMarkscheme: true},
				},
			},
			"2023": {
				"economics": {
					{Name: "econ_p2.pdf", Code: "ECON_P2", Level: "SL", PaperNumber: "2"},
				},
			},
		},
		SpecimenPapers: []model.SpecimenPaper{
			{Name: "Paper 1", Subject: "Biology", Group: "Group 4 - Experimental Sciences"},
			{Name: "Paper 1", Subject: "Visual Arts", Group: "Group 6 - The Arts"},
		},
	}
}

func setupTestServer(t *testing.T, doc *model.Document) (*gin.Engine, *catalog.Holder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := catalog.NewHolder(catalog.FileSource{Path: filepath.Join(t.TempDir(), "papers_data.json")}, nil)
	if doc != nil {
		h.Set(doc)
	}

	staticDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(staticDir, "past_papers"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(staticDir, "past_papers", "phys_p1.pdf"), []byte("%PDF"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	registerRoutes(engine, NewAPI(h, tree.NewBuilder(nil), model.SortByYear), staticDir)
	return engine, h
}

func get(t *testing.T, engine *gin.Engine, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var body map[string]any
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
	}
	return rec, body
}

func rootKeys(t *testing.T, body map[string]any) []string {
	t.Helper()
	roots, ok := body["roots"].([]any)
	if !ok {
		t.Fatalf("roots missing: %v", body)
	}
	var keys []string
	for _, r := range roots {
		keys = append(keys, r.(map[string]any)["key"].(string))
	}
	return keys
}

func TestHealthHandler(t *testing.T) {
	engine, _ := setupTestServer(t, testDoc())

	rec, body := get(t, engine, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ok, _ := body["ok"].(bool); !ok {
		t.Fatalf("expected ok=true, body=%v", body)
	}
	if loaded, _ := body["loaded"].(bool); !loaded {
		t.Fatalf("expected loaded=true, body=%v", body)
	}
}

func TestPastPapersByYear(t *testing.T) {
	engine, _ := setupTestServer(t, testDoc())

	rec, body := get(t, engine, "/api/past-papers")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	keys := rootKeys(t, body)
	if len(keys) != 2 || keys[0] != "2023" || keys[1] != "2022" {
		t.Fatalf("expected [2023 2022], got %v", keys)
	}
	if total := body["total"].(float64); total != 3 {
		t.Fatalf("expected total 3, got %v", total)
	}
}

func TestPastPapersBySubjectWithFilters(t *testing.T) {
	engine, _ := setupTestServer(t, testDoc())

	rec, body := get(t, engine, "/api/past-papers?sort=subject&type=markscheme")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	keys := rootKeys(t, body)
	if len(keys) != 1 || keys[0] != "Group 4 - Experimental Sciences" {
		t.Fatalf("unexpected roots %v", keys)
	}
	if total := body["total"].(float64); total != 1 {
		t.Fatalf("expected 1 markscheme, got %v", total)
	}
}

func TestPastPapersEmpty(t *testing.T) {
	engine, _ := setupTestServer(t, testDoc())

	rec, body := get(t, engine, "/api/past-papers?q=nothing-like-this")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if empty, _ := body["empty"].(bool); !empty {
		t.Fatalf("expected empty=true, body=%v", body)
	}
	if msg := body["message"]; msg != "No papers found matching your criteria." {
		t.Fatalf("unexpected message %v", msg)
	}
}

func TestPastPapersBadParams(t *testing.T) {
	engine, _ := setupTestServer(t, testDoc())

	for _, target := range []string{"/api/past-papers?sort=size", "/api/past-papers?type=exam"} {
		rec, body := get(t, engine, target)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, rec.Code)
		}
		if _, ok := body["error"]; !ok {
			t.Fatalf("%s: expected error body, got %v", target, body)
		}
	}
}

func TestSpecimenPapers(t *testing.T) {
	engine, _ := setupTestServer(t, testDoc())

	_, body := get(t, engine, "/api/specimen-papers")
	keys := rootKeys(t, body)
	if len(keys) != 2 || keys[0] != "Group 4 - Experimental Sciences" {
		t.Fatalf("unexpected roots %v", keys)
	}

	_, body = get(t, engine, "/api/specimen-papers?q=visual")
	keys = rootKeys(t, body)
	if len(keys) != 1 || keys[0] != "Group 6 - The Arts" {
		t.Fatalf("unexpected roots %v", keys)
	}
}

func TestFilters(t *testing.T) {
	engine, _ := setupTestServer(t, testDoc())

	rec, body := get(t, engine, "/api/filters")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	years := body["years"].([]any)
	if len(years) != 2 || years[0] != "2023" {
		t.Fatalf("expected newest year first, got %v", years)
	}
}

func TestNotLoaded(t *testing.T) {
	engine, _ := setupTestServer(t, nil)

	for _, target := range []string{"/api/past-papers", "/api/specimen-papers", "/api/filters", "/papers_data.json"} {
		rec, body := get(t, engine, target)
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("%s: expected 503, got %d", target, rec.Code)
		}
		if body["error"] != LoadErrorMessage {
			t.Fatalf("%s: unexpected body %v", target, body)
		}
	}

	rec, body := get(t, engine, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}
	if loaded, _ := body["loaded"].(bool); loaded {
		t.Fatalf("expected loaded=false")
	}
}

func TestDocumentAndStatic(t *testing.T) {
	engine, _ := setupTestServer(t, testDoc())

	rec, body := get(t, engine, "/papers_data.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, ok := body["past_papers"]; !ok {
		t.Fatalf("expected past_papers in %v", body)
	}

	rec, _ = get(t, engine, "/past_papers/phys_p1.pdf")
	if rec.Code != http.StatusOK || rec.Body.String() != "%PDF" {
		t.Fatalf("static file: got %d %q", rec.Code, rec.Body.String())
	}
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(CORS([]string{"http://localhost:5173"}))
	engine.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}
