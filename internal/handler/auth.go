package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/14vosx/hsc-auth-api/internal/auth"
	"github.com/14vosx/hsc-auth-api/internal/config"
	"github.com/14vosx/hsc-auth-api/internal/middleware"
	"github.com/14vosx/hsc-auth-api/internal/queue"
	"github.com/14vosx/hsc-auth-api/internal/repository"
	"github.com/14vosx/hsc-auth-api/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Sessions *repository.SessionRepo
	Events   *queue.Publisher
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, s *repository.SessionRepo, ev *queue.Publisher) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Sessions: s, Events: ev}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // viewer | editor; admin only via bootstrap
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type sessionReq struct {
	SessionToken string `json:"session_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
type authResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Session tokenPart `json:"session"`
}

// Register creates a user and returns tokens immediately. The very first
// account becomes an admin so a fresh deployment can administer itself;
// afterwards only viewer and editor may be requested.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}
	role := auth.RoleViewer
	if strings.TrimSpace(req.Role) != "" {
		r, ok := auth.Parse(req.Role)
		if !ok || r == auth.RoleAdmin {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "role not allowed"})
		}
		role = r
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Users.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if n == 0 {
		role = auth.RoleAdmin
	}

	uid, err := h.Users.Create(ctx, req.Email, req.Password, string(role), h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	resp, err := h.issueTokens(ctx, uid, req.Email, string(role))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login verifies credentials and returns a new token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !u.IsActive || !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	resp, err := h.issueTokens(ctx, u.ID, u.Email, u.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	_ = h.Events.Publish(ctx, queue.NewEvent(queue.EventUserLoggedIn, u.Email, u.ID))
	return c.JSON(http.StatusOK, resp)
}

// Refresh validates a session token by hash, revokes it and issues a new
// pair, rotating the session.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req sessionReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.SessionToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "session_token required"})
	}
	hash := utils.HashSessionRaw(strings.TrimSpace(req.SessionToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	userID, err := h.Sessions.Validate(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid session"})
	}
	_ = h.Sessions.Revoke(ctx, hash)

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}

	resp, err := h.issueTokens(ctx, u.ID, u.Email, u.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout revokes the session named by the request body.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req sessionReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.SessionToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "session_token required"})
	}
	hash := utils.HashSessionRaw(strings.TrimSpace(req.SessionToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Sessions.Validate(ctx, hash); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid session"})
	}
	if err := h.Sessions.Revoke(ctx, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// LogoutAll revokes every session of the authenticated user.
func (h *AuthHandler) LogoutAll(c echo.Context) error {
	uid := middleware.UserID(c)
	if uid == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Sessions.RevokeAllForUser(ctx, uid); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me echoes the identity resolved by the authentication middleware.
func (h *AuthHandler) Me(c echo.Context) error {
	role, _ := middleware.RoleOf(c)
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": middleware.UserID(c),
		"role":    role,
	})
}

// issueTokens mints the access JWT, creates a session row and assembles
// the response shared by register, login and refresh.
func (h *AuthHandler) issueTokens(ctx context.Context, uid uint64, email, role string) (authResp, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, uid, role, h.Cfg.AccessTTLMin)
	if err != nil {
		return authResp{}, errors.New("issue access failed")
	}
	session, err := utils.NewSessionToken(h.Cfg.SessionTTLDays)
	if err != nil {
		return authResp{}, errors.New("issue session failed")
	}
	if err := h.Sessions.Store(ctx, uid, utils.HashSessionRaw(session.Raw), session.Exp); err != nil {
		return authResp{}, errors.New("save session failed")
	}
	return authResp{
		User:    userPart{ID: uid, Email: email, Role: role},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Session: tokenPart{Token: session.Raw, Expires: session.Exp}, // raw goes back to the client once
	}, nil
}
