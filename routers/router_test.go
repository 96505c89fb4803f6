package routers

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Nat1anWasTaken/sitcon-camp-2025/ai"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/auth"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/config"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/prompts"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/stores"
)

// fakeGen scripts the model backend for router tests.
type fakeGen struct {
	responses   []*genai.GenerateContentResponse
	errs        []error
	calls       int
	streamTexts []string
}

func (f *fakeGen) GenerateContent(_ context.Context, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return &genai.GenerateContentResponse{}, nil
}

func (f *fakeGen) GenerateContentStream(_ context.Context, _ []*genai.Content, _ *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error] {
	return func(yield func(*genai.GenerateContentResponse, error) bool) {
		for _, text := range f.streamTexts {
			if !yield(modelText(text), nil) {
				return
			}
		}
	}
}

func modelText(texts ...string) *genai.GenerateContentResponse {
	parts := make([]*genai.Part, len(texts))
	for i, text := range texts {
		parts[i] = &genai.Part{Text: text}
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Role: genai.RoleModel, Parts: parts}}},
	}
}

func modelParts(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Role: genai.RoleModel, Parts: parts}}},
	}
}

// testAPI is a fully wired router over an in-memory database.
type testAPI struct {
	router *gin.Engine
	store  stores.Store
	auth   *auth.Manager
}

func newTestAPI(t *testing.T, gen ai.Generator) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatal(err)
	}
	store, err := stores.NewGormStore(db)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	promptDir := t.TempDir()
	prompt := "你是助手。\n用戶目前的聯絡人：\n{{contacts}}\n"
	if err := os.WriteFile(filepath.Join(promptDir, "siri.md"), []byte(prompt), 0o644); err != nil {
		t.Fatal(err)
	}

	manager := auth.NewManager("test-secret", time.Hour, store)
	router := New(Deps{
		Config:  &config.Config{AllowedOrigins: []string{"*"}},
		Store:   store,
		Auth:    manager,
		Engine:  ai.NewEngine(gen, zerolog.Nop()),
		Prompts: prompts.NewManager(promptDir),
		Avatars: nil,
		Logger:  zerolog.Nop(),
	})
	return &testAPI{router: router, store: store, auth: manager}
}

// signup registers a user through the API and returns a bearer token.
func (a *testAPI) signup(t *testing.T, username string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":"%s@example.com","username":"%s","password":"secret-password"}`, username, username)
	w := a.request(t, http.MethodPost, "/auth/register", body, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", w.Code, w.Body.String())
	}

	token, err := a.auth.CreateAccessToken(username)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func (a *testAPI) request(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}
