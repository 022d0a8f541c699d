package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/elrathor/casting-api-go/pkg/auth"
	"github.com/elrathor/casting-api-go/pkg/cache"
	"github.com/elrathor/casting-api-go/pkg/database"
	"github.com/elrathor/casting-api-go/pkg/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const castBody = `{
	"characters": ["Knight", "Healer", "Spy"],
	"players": {
		"Zoe": ["Spy", "Knight", "Healer"],
		"Abe": ["Knight", "Healer", "Spy"],
		"Mia": ["Healer", "Spy", "Knight"]
	}
}`

func newTestServer(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	t.Setenv("API_MASTER_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATA_PATH", filepath.Join(t.TempDir(), "test.db"))

	db, err := database.InitDB()
	if err != nil {
		t.Fatalf("InitDB error: %v", err)
	}

	logger := zap.NewNop()
	h := &Handler{DB: db, Log: logger, Cache: cache.New(logger)}

	r := gin.New()
	h.Register(r)

	return r, auth.GenerateHMACKey("tester")
}

func doCast(t *testing.T, r *gin.Engine, key, path, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCastJSON(t *testing.T) {
	r, key := newTestServer(t)

	w := doCast(t, r, key, "/api/cast", "application/json", castBody)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp models.CastResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}

	// Each player's first choice is distinct, so everyone gets it.
	if resp.TotalScore != 9 {
		t.Errorf("total score = %d, want 9", resp.TotalScore)
	}
	if resp.Report.FirstChoice != 3 {
		t.Errorf("first choice = %d, want 3", resp.Report.FirstChoice)
	}
	if resp.Assignments["Zoe"] != "Spy" {
		t.Errorf("Zoe assigned %q, want Spy", resp.Assignments["Zoe"])
	}
	if resp.ID == "" {
		t.Error("response has no record ID")
	}

	// The solved cast must be fetchable by ID.
	req := httptest.NewRequest(http.MethodGet, "/api/casts/"+resp.ID, nil)
	req.Header.Set("Authorization", "Bearer "+key)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK {
		t.Errorf("GET /api/casts/%s = %d", resp.ID, w2.Code)
	}
}

func TestCastJSONRoundTripIsStable(t *testing.T) {
	r, key := newTestServer(t)

	var first, second models.CastResponse
	for i, dst := range []*models.CastResponse{&first, &second} {
		w := doCast(t, r, key, "/api/cast", "application/json", castBody)
		if w.Code != http.StatusOK {
			t.Fatalf("solve %d: status = %d, body = %s", i, w.Code, w.Body.String())
		}
		if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
			t.Fatalf("solve %d: decode error: %v", i, err)
		}
	}

	if first.TotalScore != second.TotalScore {
		t.Errorf("re-solving the same document changed total: %d vs %d", first.TotalScore, second.TotalScore)
	}
	if !reflect.DeepEqual(first.Report.RankCounts, second.Report.RankCounts) {
		t.Errorf("rank distribution changed: %v vs %v", first.Report.RankCounts, second.Report.RankCounts)
	}
	if !reflect.DeepEqual(first.Assignments, second.Assignments) {
		t.Errorf("assignments changed: %v vs %v", first.Assignments, second.Assignments)
	}
}

func TestCastYAML(t *testing.T) {
	r, key := newTestServer(t)

	body := `
scoring: weighted
characters: [Knight, Healer]
players:
  Zoe: [Healer, Knight]
  Abe: [Knight, Healer]
`
	w := doCast(t, r, key, "/api/cast/yaml", "application/yaml", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp models.CastResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if resp.Scoring != "weighted" {
		t.Errorf("scoring = %q, want weighted", resp.Scoring)
	}
	// Both first choices are achievable: 20 + 20.
	if resp.TotalScore != 40 {
		t.Errorf("total score = %d, want 40", resp.TotalScore)
	}
}

func TestCastJSONUnknownCharacter(t *testing.T) {
	r, key := newTestServer(t)

	body := `{"characters": ["Knight"], "players": {"Zoe": ["Dragon"]}}`
	w := doCast(t, r, key, "/api/cast", "application/json", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Dragon") {
		t.Errorf("error should name the unknown character, got %s", w.Body.String())
	}
}

func TestCastExhaustiveTooLarge(t *testing.T) {
	r, key := newTestServer(t)

	var chars []string
	players := make(map[string][]string)
	for i := 0; i < 9; i++ {
		chars = append(chars, string(rune('A'+i)))
	}
	for i := 0; i < 9; i++ {
		players[string(rune('a'+i))] = chars
	}
	payload, _ := json.Marshal(gin.H{"characters": chars, "players": players, "solver": "exhaustive"})

	w := doCast(t, r, key, "/api/cast", "application/json", string(payload))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "exceeds") {
		t.Errorf("error should mention the ceiling, got %s", w.Body.String())
	}
}

func TestCastRequiresAPIKey(t *testing.T) {
	r, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/cast", strings.NewReader(castBody))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/cast", strings.NewReader(castBody))
	req.Header.Set("Authorization", "Bearer bogus.signature")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad key: status = %d, want 401", w.Code)
	}
}

func TestValidateDocument(t *testing.T) {
	r, key := newTestServer(t)

	w := doCast(t, r, key, "/api/validate", "application/json", castBody)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp models.ValidateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !resp.Valid || resp.Stats.PlayerCount != 3 {
		t.Errorf("response = %+v, want valid with 3 players", resp)
	}

	unbalanced := `{"characters": ["Knight", "Healer"], "players": {"Zoe": ["Knight"]}}`
	w = doCast(t, r, key, "/api/validate", "application/json", unbalanced)
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.Valid {
		t.Error("unbalanced document should be invalid")
	}
}

func TestCastExport(t *testing.T) {
	r, key := newTestServer(t)

	w := doCast(t, r, key, "/api/cast/export", "application/json", castBody)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); got != xlsxMIME {
		t.Errorf("content type = %q", got)
	}
	if !strings.HasPrefix(w.Body.String(), "PK") {
		t.Error("response does not look like an XLSX workbook")
	}
}
