package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/redmonkez12/portfolio-api/internal/httputil"
	"github.com/redmonkez12/portfolio-api/internal/logging"
	"github.com/redmonkez12/portfolio-api/internal/user"
)

// Handler contains HTTP handlers for authentication and profile endpoints
type Handler struct {
	service   *Service
	portfolio PortfolioInvalidator
	logger    *logging.Logger
}

func NewHandler(service *Service, portfolio PortfolioInvalidator, logger *logging.Logger) *Handler {
	return &Handler{
		service:   service,
		portfolio: portfolio,
		logger:    logger,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// RegisterResponse represents the registration response
type RegisterResponse struct {
	User    *user.User `json:"user"`
	Message string     `json:"message"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	User  *user.User `json:"user"`
	Token string     `json:"token"`
}

// ProfileResponse represents the profile update response
type ProfileResponse struct {
	User    *user.User `json:"user"`
	Message string     `json:"message"`
}

// Register handles user registration
// @Summary      Register a new user
// @Description  Create a new account with name, email, username and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration fields"
// @Success      201 {object} RegisterResponse
// @Failure      400 {object} ErrorResponse "Validation error"
// @Failure      409 {object} ErrorResponse "Email or username already taken"
// @Router       /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid registration request body", "error", err.Error())
		respondError(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email, "username": req.Username})

	newUser, err := h.service.Register(r.Context(), req.Name, req.Email, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrDuplicateEmail):
			logger.Warn("registration failed: email already exists")
			respondError(w, "email already exists", httputil.CodeEmailAlreadyExists, http.StatusConflict)
		case errors.Is(err, user.ErrDuplicateUsername):
			logger.Warn("registration failed: username already exists")
			respondError(w, "username already exists", httputil.CodeUsernameAlreadyExists, http.StatusConflict)
		case errors.Is(err, ErrNameRequired):
			respondError(w, err.Error(), httputil.CodeNameRequired, http.StatusBadRequest)
		case errors.Is(err, ErrEmailRequired):
			respondError(w, err.Error(), httputil.CodeEmailRequired, http.StatusBadRequest)
		case errors.Is(err, ErrInvalidEmailFormat):
			respondError(w, err.Error(), httputil.CodeInvalidEmailFormat, http.StatusBadRequest)
		case errors.Is(err, ErrUsernameRequired):
			respondError(w, err.Error(), httputil.CodeUsernameRequired, http.StatusBadRequest)
		case errors.Is(err, ErrPasswordRequired):
			respondError(w, err.Error(), httputil.CodePasswordRequired, http.StatusBadRequest)
		case errors.Is(err, ErrPasswordTooShort):
			respondError(w, err.Error(), httputil.CodePasswordTooShort, http.StatusBadRequest)
		default:
			logger.Error("registration failed: internal error", "error", err.Error())
			respondError(w, "failed to register user", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("user registered successfully", "user_id", newUser.ID)

	respondJSON(w, RegisterResponse{
		User:    newUser,
		Message: "User registered successfully",
	}, http.StatusCreated)
}

// Login handles user login
// @Summary      User login
// @Description  Authenticate with email and password, receive a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} LoginResponse
// @Failure      400 {object} ErrorResponse "Invalid request body"
// @Failure      401 {object} ErrorResponse "Invalid credentials"
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		respondError(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	loggedIn, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.Warn("login failed: invalid credentials")
			respondError(w, "invalid email or password", httputil.CodeInvalidCredentials, http.StatusUnauthorized)
			return
		}
		logger.Error("login failed: internal error", "error", err.Error())
		respondError(w, "failed to login", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("user logged in successfully", "user_id", loggedIn.ID)

	respondJSON(w, LoginResponse{
		User:  loggedIn,
		Token: token,
	}, http.StatusOK)
}

// UpdateProfile handles partial profile updates for the authenticated user
// @Summary      Update profile
// @Description  Partially update the authenticated user's profile fields
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body user.ProfileUpdate true "Profile fields to change"
// @Success      200 {object} ProfileResponse
// @Failure      400 {object} ErrorResponse "Validation error"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Router       /auth/profile [put]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var update user.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		logger.Warn("invalid profile update request body", "error", err.Error())
		respondError(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateProfile(r.Context(), userID, update)
	if err != nil {
		switch {
		case errors.Is(err, ErrBioTooLong):
			respondError(w, err.Error(), httputil.CodeBioTooLong, http.StatusBadRequest)
		case errors.Is(err, ErrNameRequired):
			respondError(w, err.Error(), httputil.CodeNameRequired, http.StatusBadRequest)
		default:
			logger.Error("profile update failed: internal error", "error", err.Error())
			respondError(w, "failed to update profile", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	// The public portfolio shows profile fields; drop any cached copy
	h.portfolio.InvalidateForUser(r.Context(), userID)

	logger.Info("profile updated successfully", "user_id", userID)

	respondJSON(w, ProfileResponse{
		User:    updated,
		Message: "Profile updated successfully",
	}, http.StatusOK)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, data any, statusCode int) {
	httputil.RespondJSON(w, data, statusCode)
}

// respondError sends an error response with a machine-readable code
func respondError(w http.ResponseWriter, message string, code string, statusCode int) {
	httputil.RespondErrorWithCode(w, message, code, statusCode)
}
