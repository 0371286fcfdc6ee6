// Package auth implements registration, login, and session handling.
package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gmonroe/teambook/internal/api/apiutil"
	"github.com/gmonroe/teambook/internal/api/authz"
	"github.com/gmonroe/teambook/internal/config"
	dbgen "github.com/gmonroe/teambook/internal/db/generated"
	"github.com/gmonroe/teambook/internal/ratelimit"
)

const minPasswordLength = 8

var (
	queries      *dbgen.Queries
	appConfig    *config.Config
	loginLimiter *ratelimit.Limiter
	initOnce     sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(q *dbgen.Queries, cfg *config.Config, limiter *ratelimit.Limiter) {
	if q == nil {
		return
	}
	initOnce.Do(func() {
		queries = q
		appConfig = cfg
		loginLimiter = limiter
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func userPayload(u dbgen.User) map[string]any {
	return map[string]any{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
		"phone": apiutil.StringValue(u.Phone),
	}
}

// POST /api/v1/auth/register
//
// New accounts start in the pending role until an admin approves them.
func HandleRegister(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	var req registerRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "Name and email are required")
		return
	}
	if !strings.Contains(req.Email, "@") {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid email address")
		return
	}
	if len(req.Password) < minPasswordLength {
		apiutil.WriteError(w, http.StatusBadRequest,
			fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
		return
	}

	phone, err := apiutil.NormalizePhone(req.Phone)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := queries.GetUserByEmail(r.Context(), req.Email); err == nil {
		apiutil.WriteError(w, http.StatusConflict, "An account with this email already exists")
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		logger.Error().Err(err).Msg("Failed to check existing user")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	user, err := queries.CreateUser(r.Context(), dbgen.CreateUserParams{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         string(authz.RolePending),
		Name:         req.Name,
		Phone:        apiutil.NullString(phone),
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create user")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	// Log the new account in right away; it stays pending until approved.
	if err := CreateSession(w, user.ID); err != nil {
		logger.Error().Err(err).Msg("Failed to create session")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	logger.Info().Int64("user_id", user.ID).Msg("User registered")
	apiutil.WriteJSON(w, http.StatusCreated, map[string]any{"user": userPayload(user)})
}

// POST /api/v1/auth/login
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	var req loginRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	if loginLimiter != nil {
		res := loginLimiter.CheckLogin(req.Email, ratelimit.ClientIP(r))
		if !res.Allowed {
			logger.Warn().Str("reason", res.Reason).Msg("Login rate limited")
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(res.RetryAfter/time.Second)+1))
			apiutil.WriteError(w, http.StatusTooManyRequests, "Too many login attempts, try again later")
			return
		}
	}

	user, err := queries.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Error().Err(err).Msg("Failed to look up user")
		}
		// Burn a comparison anyway so missing accounts cost the same.
		VerifyPassword("$2a$10$0000000000000000000000000000000000000000000000000000", req.Password)
		recordLoginFailure(req.Email)
		apiutil.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if !VerifyPassword(user.PasswordHash, req.Password) {
		recordLoginFailure(req.Email)
		apiutil.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if loginLimiter != nil {
		loginLimiter.RecordSuccess(req.Email)
	}
	if err := CreateSession(w, user.ID); err != nil {
		logger.Error().Err(err).Msg("Failed to create session")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	logger.Info().Int64("user_id", user.ID).Msg("User logged in")
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"user": userPayload(user)})
}

// POST /api/v1/auth/logout
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	ClearSession(w, r)
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// GET /api/v1/auth/me
func HandleMe(w http.ResponseWriter, r *http.Request) {
	user := authz.UserFromContext(r.Context())
	if user == nil {
		apiutil.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	// Admins get null permissions; the grid does not apply to them.
	var perms authz.PermissionSet
	if user.Role != authz.RoleAdmin && queries != nil {
		loaded, err := apiutil.PermissionSetFor(r.Context(), queries, user.ID)
		if err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("Failed to load permissions")
			apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load account")
			return
		}
		perms = loaded
	}

	apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"user": map[string]any{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
		"permissions": perms,
	})
}

// UserFromRequest resolves the session cookie to the account it belongs to.
// A request without a valid session yields (nil, nil).
func UserFromRequest(r *http.Request, q *dbgen.Queries) (*authz.AuthUser, error) {
	userID, ok := SessionUserID(r)
	if !ok {
		return nil, nil
	}

	user, err := q.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Account deleted since the session was issued.
			return nil, nil
		}
		return nil, err
	}

	role, err := authz.ParseRole(user.Role)
	if err != nil {
		return nil, err
	}
	return &authz.AuthUser{
		ID:    user.ID,
		Role:  role,
		Name:  user.Name,
		Email: user.Email,
	}, nil
}

func recordLoginFailure(email string) {
	if loginLimiter != nil {
		loginLimiter.RecordFailure(email)
	}
}
