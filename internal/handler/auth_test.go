package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/rakafardani/barbershop-booking/internal/config"
	"github.com/rakafardani/barbershop-booking/internal/store"
)

func testConfig() config.Config {
	return config.Config{
		Env:            "test",
		Port:           "0",
		JWTSecret:      "test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     bcrypt.MinCost,
	}
}

func newAuthEnv(t *testing.T) (*AuthHandler, *store.EntityStore) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "data.json"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	return NewAuthHandler(testConfig(), s, store.NewTokenStore(nil)), s
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string, setup func(echo.Context)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestRegisterLoginRefresh(t *testing.T) {
	h, _ := newAuthEnv(t)

	body := `{"name":"Budi","email":"budi@example.com","phone":"0811","password":"secret"}`
	rec := doJSON(t, h.Register, http.MethodPost, "/v1/auth/register", body, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body)
	}
	var created authResp
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if created.User.Role != "customer" || created.Access.Token == "" || created.Refresh.Token == "" {
		t.Fatalf("register response = %+v", created)
	}

	rec = doJSON(t, h.Register, http.MethodPost, "/v1/auth/register", body, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register status = %d", rec.Code)
	}

	rec = doJSON(t, h.Login, http.MethodPost, "/v1/auth/login", `{"email":"budi@example.com","password":"wrong"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d", rec.Code)
	}
	rec = doJSON(t, h.Login, http.MethodPost, "/v1/auth/login", `{"email":"budi@example.com","password":"secret"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body)
	}

	// Rotation: the refresh token works once, then is revoked.
	refreshBody := `{"refresh_token":"` + created.Refresh.Token + `"}`
	rec = doJSON(t, h.Refresh, http.MethodPost, "/v1/auth/refresh", refreshBody, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh status = %d, body %s", rec.Code, rec.Body)
	}
	rec = doJSON(t, h.Refresh, http.MethodPost, "/v1/auth/refresh", refreshBody, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("reused refresh status = %d", rec.Code)
	}
}

func TestLogoutWithRefreshToken(t *testing.T) {
	h, _ := newAuthEnv(t)

	rec := doJSON(t, h.Login, http.MethodPost, "/v1/auth/login", `{"email":"john@barber.com","password":"1234"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d", rec.Code)
	}
	var session authResp
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode: %v", err)
	}

	logoutBody := `{"refresh_token":"` + session.Refresh.Token + `"}`
	rec = doJSON(t, h.Logout, http.MethodPost, "/v1/auth/logout", logoutBody, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout status = %d", rec.Code)
	}
	rec = doJSON(t, h.Refresh, http.MethodPost, "/v1/auth/refresh", logoutBody, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("refresh after logout status = %d", rec.Code)
	}
}

func TestRegisterWithBrokenTokenStoreWritesOneResponse(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "data.json"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	// A token store pointed at an unreachable Redis fails on StoreRefresh.
	dead := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	h := NewAuthHandler(testConfig(), s, store.NewTokenStore(dead))

	body := `{"name":"Budi","email":"budi@example.com","phone":"0811","password":"secret"}`
	rec := doJSON(t, h.Register, http.MethodPost, "/v1/auth/register", body, nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	// Exactly one JSON document in the body, and no token material in it.
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("body is not a single JSON document: %v\nbody: %s", err, rec.Body)
	}
	if _, leaked := out["access"]; leaked {
		t.Fatalf("failure response carries a token envelope: %s", rec.Body)
	}
	if out["error"] == "" {
		t.Fatalf("missing error message: %s", rec.Body)
	}
}

func TestMeReturnsProfileWithoutHash(t *testing.T) {
	h, _ := newAuthEnv(t)

	rec := doJSON(t, h.Me, http.MethodGet, "/v1/me", "", func(c echo.Context) {
		c.Set("user_id", "B001")
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d, body %s", rec.Code, rec.Body)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("profile leaks password material: %s", rec.Body)
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["user_id"] != "B001" || got["role"] != "barber" {
		t.Fatalf("profile = %v", got)
	}
}
