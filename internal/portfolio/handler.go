package portfolio

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/redmonkez12/portfolio-api/internal/httputil"
	"github.com/redmonkez12/portfolio-api/internal/logging"
)

// Handler serves the public portfolio endpoint
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Get returns the public portfolio for a username
// @Summary      Public portfolio
// @Description  Sanitized profile and project list for a username, no auth required
// @Tags         portfolio
// @Produce      json
// @Param        username path string true "Username"
// @Success      200 {object} Portfolio
// @Failure      404 {object} ErrorResponse "User not found"
// @Router       /projects/user/{username} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	username := chi.URLParam(r, "username")

	p, err := h.service.Get(r.Context(), username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.Warn("portfolio requested for unknown user", "username", username)
			httputil.RespondErrorWithCode(w, "user not found", httputil.CodeUserNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to build portfolio", "username", username, "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to load portfolio", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, p, http.StatusOK)
}
