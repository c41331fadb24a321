package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/chatbees/server/internal/auth"
	"github.com/chatbees/server/internal/domain"
	"github.com/chatbees/server/internal/store"
)

const sessionUserKey = "username"

// API bundles the collaborators behind the REST handlers.
type API struct {
	Store    *store.Store
	JWT      *auth.JWT
	TokenTTL time.Duration
}

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates an account. Weak passwords and duplicate usernames are
// client errors, not faults.
func (a *API) Register(c *gin.Context) {
	var req credentialsReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_payload"})
		return
	}
	if err := domain.ValidateUsername(req.Username); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := domain.ValidatePassword(req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := a.Store.CreateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
			return
		}
		log.Error().Err(err).Str("module", "adapters.http").Msg("register")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Login verifies credentials, opens a cookie session, and returns a bearer
// token plus the full user list so the client can pick a conversation.
func (a *API) Login(c *gin.Context) {
	var req credentialsReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_payload"})
		return
	}

	user, err := a.Store.VerifyUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) || errors.Is(err, store.ErrWrongPassword) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		log.Error().Err(err).Str("module", "adapters.http").Msg("login")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}

	users, err := a.Store.ListUsers(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("list users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}

	token, err := a.JWT.Sign(user.Username, a.TokenTTL)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("sign token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}

	sess := sessions.Default(c)
	sess.Set(sessionUserKey, user.Username)
	if err := sess.Save(); err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("save session")
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user, "users": users})
}

// Me returns the authenticated username.
func (a *API) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"username": c.GetString("username")})
}

// RequireUser authenticates a request from either the cookie session or an
// Authorization bearer token and stores the username in the gin context.
func (a *API) RequireUser(c *gin.Context) {
	if name, ok := sessions.Default(c).Get(sessionUserKey).(string); ok && name != "" {
		c.Set("username", name)
		c.Next()
		return
	}

	header := c.GetHeader("Authorization")
	if tok, ok := strings.CutPrefix(header, "Bearer "); ok {
		if name, err := a.JWT.Verify(tok); err == nil {
			c.Set("username", name)
			c.Next()
			return
		}
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}
