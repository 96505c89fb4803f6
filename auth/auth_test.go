package auth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Nat1anWasTaken/sitcon-camp-2025/models"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/stores"
)

func newTestManager(t *testing.T) (*Manager, stores.Store) {
	t.Helper()
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
	return NewManager("test-secret", time.Hour, store), store
}

func registerTestUser(t *testing.T, store stores.Store, username, password string, active bool) *models.User {
	t.Helper()
	hashed, err := HashPassword(password)
	if err != nil {
		t.Fatal(err)
	}
	user := &models.User{
		Email:          username + "@example.com",
		Username:       username,
		HashedPassword: hashed,
		IsActive:       active,
	}
	if err := store.CreateUser(user); err != nil {
		t.Fatal(err)
	}
	return user
}

func TestHashAndVerifyPassword(t *testing.T) {
	hashed, err := HashPassword("secret-password")
	if err != nil {
		t.Fatal(err)
	}
	if hashed == "secret-password" {
		t.Fatal("password stored in plain text")
	}
	if !VerifyPassword("secret-password", hashed) {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword("wrong", hashed) {
		t.Fatal("wrong password accepted")
	}
}

func TestAuthenticate(t *testing.T) {
	m, store := newTestManager(t)
	registerTestUser(t, store, "alice", "secret-password", true)

	user, err := m.Authenticate("alice", "secret-password")
	if err != nil {
		t.Fatal(err)
	}
	if user == nil {
		t.Fatal("valid credentials rejected")
	}

	user, err = m.Authenticate("alice", "wrong")
	if err != nil {
		t.Fatal(err)
	}
	if user != nil {
		t.Fatal("wrong password accepted")
	}

	user, err = m.Authenticate("nobody", "secret-password")
	if err != nil {
		t.Fatal(err)
	}
	if user != nil {
		t.Fatal("unknown user accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m, _ := newTestManager(t)

	token, err := m.CreateAccessToken("alice")
	if err != nil {
		t.Fatal(err)
	}
	subject, err := m.ParseToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if subject != "alice" {
		t.Fatalf("subject = %q, want alice", subject)
	}

	if _, err := m.ParseToken(token + "tampered"); err == nil {
		t.Fatal("tampered token accepted")
	}
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m, store := newTestManager(t)
	registerTestUser(t, store, "alice", "secret-password", true)
	registerTestUser(t, store, "ghost", "secret-password", false)

	r := gin.New()
	r.GET("/protected", m.Middleware(), func(c *gin.Context) {
		user := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})

	request := func(header string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		return w
	}

	if w := request(""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: status = %d, want 401", w.Code)
	}
	if w := request("Bearer not-a-token"); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: status = %d, want 401", w.Code)
	}

	token, err := m.CreateAccessToken("alice")
	if err != nil {
		t.Fatal(err)
	}
	w := request("Bearer " + token)
	if w.Code != http.StatusOK {
		t.Fatalf("valid token: status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "alice") {
		t.Fatalf("body = %s", w.Body.String())
	}

	ghostToken, err := m.CreateAccessToken("ghost")
	if err != nil {
		t.Fatal(err)
	}
	if w := request("Bearer " + ghostToken); w.Code != http.StatusBadRequest {
		t.Fatalf("inactive account: status = %d, want 400", w.Code)
	}
}
