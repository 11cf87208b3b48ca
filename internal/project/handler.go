package project

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/redmonkez12/portfolio-api/internal/auth"
	"github.com/redmonkez12/portfolio-api/internal/httputil"
	"github.com/redmonkez12/portfolio-api/internal/logging"
	"github.com/redmonkez12/portfolio-api/internal/media"
)

// PortfolioInvalidator drops any cached public portfolio for a user after
// one of their projects changes.
type PortfolioInvalidator interface {
	InvalidateForUser(ctx context.Context, userID uuid.UUID)
}

// Handler contains HTTP handlers for project endpoints
type Handler struct {
	service     *Service
	pipeline    *media.Pipeline
	portfolio   PortfolioInvalidator
	logger      *logging.Logger
	maxImages   int
	maxFileSize int64
}

func NewHandler(service *Service, pipeline *media.Pipeline, portfolio PortfolioInvalidator, logger *logging.Logger, maxImages int, maxFileSize int64) *Handler {
	return &Handler{
		service:     service,
		pipeline:    pipeline,
		portfolio:   portfolio,
		logger:      logger,
		maxImages:   maxImages,
		maxFileSize: maxFileSize,
	}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListResponse wraps the project list for the dashboard view
type ListResponse struct {
	Projects []*Project `json:"projects"`
}

// ProjectResponse wraps a single project
type ProjectResponse struct {
	Project *Project `json:"project"`
	Message string   `json:"message"`
}

// List handles GET /projects for the authenticated user
// @Summary      List own projects
// @Description  All projects owned by the authenticated user, newest first
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} ListResponse
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Router       /projects [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	projects, err := h.service.List(r.Context(), userID)
	if err != nil {
		logger.Error("failed to list projects", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to list projects", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, ListResponse{Projects: projects}, http.StatusOK)
}

// Get handles GET /projects/{id}. Reads are public by design.
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      200 {object} ProjectResponse
// @Failure      404 {object} ErrorResponse "Not found"
// @Router       /projects/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid project id", httputil.CodeInvalidProjectID, http.StatusBadRequest)
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "project not found", httputil.CodeProjectNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to get project", "project_id", id, "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to get project", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, ProjectResponse{Project: p, Message: "Project retrieved successfully"}, http.StatusOK)
}

// Create handles POST /projects (multipart)
// @Summary      Create a project
// @Description  Multipart body with title, description, technologies (JSON string), links, dateCompleted and up to one image file
// @Tags         projects
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Success      201 {object} ProjectResponse
// @Failure      400 {object} ErrorResponse "Validation error"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      502 {object} ErrorResponse "Blob store failure"
// @Router       /projects [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	form, err := ParseForm(r, h.maxImages, h.maxFileSize)
	if err != nil {
		h.respondFormError(w, logger, err)
		return
	}

	// Required fields are checked before any upload so a rejected request
	// never orphans a blob
	if form.Title == nil || strings.TrimSpace(*form.Title) == "" {
		h.respondServiceError(w, logger, ErrTitleRequired)
		return
	}
	if form.Description == nil || strings.TrimSpace(*form.Description) == "" {
		h.respondServiceError(w, logger, ErrDescriptionRequired)
		return
	}

	// Upload before persisting so the record never references a missing blob
	imageURLs, err := h.pipeline.Ingest(r.Context(), form.Files)
	if err != nil {
		logger.Error("media ingestion failed", "error", err.Error())
		httputil.RespondErrorWithCode(w, "image upload failed", httputil.CodeStorageUnavailable, http.StatusBadGateway)
		return
	}
	if len(imageURLs) == 0 && form.ExistingImages != nil {
		imageURLs = *form.ExistingImages
	}

	input := CreateInput{
		Technologies:  derefList(form.Technologies),
		DateCompleted: form.DateCompleted,
	}
	if form.Title != nil {
		input.Title = *form.Title
	}
	if form.Description != nil {
		input.Description = *form.Description
	}
	if form.GithubLink != nil {
		input.GithubLink = *form.GithubLink
	}
	if form.LiveLink != nil {
		input.LiveLink = *form.LiveLink
	}

	created, err := h.service.Create(r.Context(), userID, input, imageURLs)
	if err != nil {
		h.respondServiceError(w, logger, err)
		return
	}

	h.portfolio.InvalidateForUser(r.Context(), userID)

	httputil.RespondJSON(w, ProjectResponse{Project: created, Message: "Project created successfully"}, http.StatusCreated)
}

// Update handles PUT /projects/{id} (multipart)
// @Summary      Update a project
// @Description  Same multipart shape as create; supplied fields are merged, new images replace the previous list
// @Tags         projects
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Success      200 {object} ProjectResponse
// @Failure      400 {object} ErrorResponse "Validation error"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      403 {object} ErrorResponse "Not the owner"
// @Failure      404 {object} ErrorResponse "Not found"
// @Failure      502 {object} ErrorResponse "Blob store failure"
// @Router       /projects/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid project id", httputil.CodeInvalidProjectID, http.StatusBadRequest)
		return
	}

	form, err := ParseForm(r, h.maxImages, h.maxFileSize)
	if err != nil {
		h.respondFormError(w, logger, err)
		return
	}

	// A field supplied blank will be rejected anyway; catch it before upload
	if form.Title != nil && strings.TrimSpace(*form.Title) == "" {
		h.respondServiceError(w, logger, ErrTitleRequired)
		return
	}
	if form.Description != nil && strings.TrimSpace(*form.Description) == "" {
		h.respondServiceError(w, logger, ErrDescriptionRequired)
		return
	}

	// Freshly uploaded files win over a carried-forward existing list
	var newImages *[]string
	if len(form.Files) > 0 {
		uploaded, err := h.pipeline.Ingest(r.Context(), form.Files)
		if err != nil {
			logger.Error("media ingestion failed", "project_id", id, "error", err.Error())
			httputil.RespondErrorWithCode(w, "image upload failed", httputil.CodeStorageUnavailable, http.StatusBadGateway)
			return
		}
		newImages = &uploaded
	} else if form.ExistingImages != nil {
		newImages = form.ExistingImages
	}

	input := UpdateInput{
		Title:         form.Title,
		Description:   form.Description,
		Technologies:  form.Technologies,
		GithubLink:    form.GithubLink,
		LiveLink:      form.LiveLink,
		DateCompleted: form.DateCompleted,
	}

	updated, err := h.service.Update(r.Context(), id, userID, input, newImages)
	if err != nil {
		h.respondServiceError(w, logger, err)
		return
	}

	h.portfolio.InvalidateForUser(r.Context(), userID)

	httputil.RespondJSON(w, ProjectResponse{Project: updated, Message: "Project updated successfully"}, http.StatusOK)
}

// Delete handles DELETE /projects/{id}
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Success      200 {object} map[string]string
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      403 {object} ErrorResponse "Not the owner"
// @Failure      404 {object} ErrorResponse "Not found"
// @Router       /projects/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid project id", httputil.CodeInvalidProjectID, http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		h.respondServiceError(w, logger, err)
		return
	}

	h.portfolio.InvalidateForUser(r.Context(), userID)

	httputil.RespondJSON(w, map[string]string{"message": "Project deleted successfully"}, http.StatusOK)
}

// respondFormError maps multipart parsing failures
func (h *Handler) respondFormError(w http.ResponseWriter, logger *logging.Logger, err error) {
	switch {
	case errors.Is(err, ErrTooManyImages):
		logger.Warn("too many image files", "error", err.Error())
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeTooManyImages, http.StatusBadRequest)
	case errors.Is(err, ErrFileTooLarge):
		logger.Warn("image file too large", "error", err.Error())
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeFileTooLarge, http.StatusBadRequest)
	case errors.Is(err, ErrInvalidDate):
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInvalidDate, http.StatusBadRequest)
	default:
		logger.Warn("invalid multipart form", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
	}
}

// respondServiceError maps project service failures, keeping the
// existence-before-ownership precedence visible in the status codes.
func (h *Handler) respondServiceError(w http.ResponseWriter, logger *logging.Logger, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httputil.RespondErrorWithCode(w, "project not found", httputil.CodeProjectNotFound, http.StatusNotFound)
	case errors.Is(err, ErrNotOwner):
		httputil.RespondErrorWithCode(w, "not authorized to modify this project", httputil.CodeNotProjectOwner, http.StatusForbidden)
	case errors.Is(err, ErrTitleRequired):
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeTitleRequired, http.StatusBadRequest)
	case errors.Is(err, ErrDescriptionRequired):
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeDescriptionRequired, http.StatusBadRequest)
	default:
		logger.Error("project operation failed", "error", err.Error())
		httputil.RespondErrorWithCode(w, "internal server error", httputil.CodeInternalError, http.StatusInternalServerError)
	}
}

func derefList(v *[]string) []string {
	if v == nil {
		return nil
	}
	return *v
}
