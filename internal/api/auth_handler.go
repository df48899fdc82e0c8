package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rafaelmacedos/show-me-the-tickets/internal/domain"
	"github.com/rafaelmacedos/show-me-the-tickets/internal/service/auth"
	"github.com/rafaelmacedos/show-me-the-tickets/internal/store"

	"github.com/rafaelmacedos/show-me-the-tickets/internal/api/shared"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	validator        *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
) *AuthHandler {
	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		validator:        validator.New(),
	}
}

// Login handles the /auth/login endpoint. The request is form-encoded with
// username/password fields (OAuth2 password flow shape, matching the
// contract the browser client and e2e suite rely on). The username carries
// the user's email.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		slog.Error("failed to get user by email", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to authenticate user")
		return
	}

	// Inactive accounts authenticate like unknown ones: no distinguishing detail.
	if !user.IsActive {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID, user.Email)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Register handles the /auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if req.Password != req.ConfirmPassword {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Passwords do not match")
		return
	}

	user, err := domain.NewUser(req.Name, req.Email, req.Password)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user data: "+err.Error())
		return
	}

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Email already registered")
			return
		}
		slog.Error("failed to create user", "error", err)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to create user", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, user)
}

// Me handles the /auth/me endpoint. It returns the authenticated user's
// record based on the bearer token validated by the auth middleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "User no longer exists")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to load user", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}
