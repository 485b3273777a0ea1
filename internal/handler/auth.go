package handler

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/rakafardani/barbershop-booking/internal/config"
	"github.com/rakafardani/barbershop-booking/internal/store"
	"github.com/rakafardani/barbershop-booking/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints.  Registration
// always creates customers; barber and owner accounts only exist through
// the demo seed.
type AuthHandler struct {
	Cfg    config.Config
	Store  *store.EntityStore
	Tokens *store.TokenStore
}

func NewAuthHandler(cfg config.Config, s *store.EntityStore, t *store.TokenStore) *AuthHandler {
	if s == nil || t == nil {
		panic("nil dependency passed to NewAuthHandler")
	}
	return &AuthHandler{Cfg: cfg, Store: s, Tokens: t}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID    string `json:"user_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
type authResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

// Register creates a customer account and returns a token pair
// immediately.  A duplicate email is declined with 409.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email/phone/password required"})
	}

	ctx := c.Request().Context()
	u, err := h.Store.RegisterCustomer(ctx, req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		return fail(c, err)
	}
	resp, err := h.issueTokens(ctx, u.ID, u.Role, userPart{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
	if err != nil {
		return sessionFailed(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login verifies credentials and returns a fresh token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	u, err := h.Store.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}
	resp, err := h.issueTokens(c.Request().Context(), u.ID, u.Role, userPart{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
	if err != nil {
		return sessionFailed(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Refresh validates a refresh token by hash, revokes it and issues a new
// pair (rotation).
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx := c.Request().Context()
	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	_ = h.Tokens.RevokeByHash(ctx, hash)

	u, err := h.Store.User(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	resp, err := h.issueTokens(ctx, u.ID, u.Role, userPart{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
	if err != nil {
		return sessionFailed(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout terminates sessions.  With a refresh_token in the body, that one
// session ends; with only a valid bearer token, every session of the user
// is revoked.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	_ = c.Bind(&req)
	refreshToken := strings.TrimSpace(req.RefreshToken)
	ctx := c.Request().Context()

	if refreshToken != "" {
		hash := utils.HashRefreshRaw(refreshToken)
		if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
		}
		return c.NoContent(http.StatusNoContent)
	}

	if uid := bearerSubject(c, h.Cfg.JWTSecret); uid != "" {
		if err := h.Tokens.RevokeAllForUser(ctx, uid); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
		}
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "provide Authorization header or refresh_token"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	u, err := h.Store.User(c.Request().Context(), uid)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, u.Public())
}

// issueTokens mints an access/refresh pair and stores the refresh hash.
// It never writes to the response; the caller turns an error into exactly
// one 500.
func (h *AuthHandler) issueTokens(ctx context.Context, userID, role string, user userPart) (authResp, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, userID, role, h.Cfg.AccessTTLMin)
	if err != nil {
		return authResp{}, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return authResp{}, fmt.Errorf("issue refresh token: %w", err)
	}
	if err := h.Tokens.StoreRefresh(ctx, userID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return authResp{}, fmt.Errorf("save refresh token: %w", err)
	}
	return authResp{
		User:    user,
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	}, nil
}

// sessionFailed logs a token-issuance failure and writes the single 500
// response for it.  The cause stays in the log; clients get a generic
// message.
func sessionFailed(c echo.Context, err error) error {
	log.Printf("auth: session issue failed: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create session"})
}

// bearerSubject parses an optional Authorization header outside the JWT
// middleware and returns the subject claim, or "" when absent/invalid.
func bearerSubject(c echo.Context, secret string) string {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	tok, err := jwt.Parse(strings.TrimPrefix(auth, "Bearer "), func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return ""
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}
