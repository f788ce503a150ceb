// AngelaMos | 2026
// handler.go

package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/frohlich71/creator-builds-api/internal/core"
	"github.com/frohlich71/creator-builds-api/internal/middleware"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the public user routes. requireAuth guards the
// mutating profile route.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	requireAuth func(http.Handler) http.Handler,
) {
	r.Route("/user", func(r chi.Router) {
		r.Post("/", h.Register)
		r.Post("/verify-email", h.VerifyEmail)
		r.Get("/name/{name}", h.GetByName)
		r.Get("/search", h.Search)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", h.List)
			r.Patch("/{id}", h.Update)
		})
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	u, err := h.service.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.Conflict(w, "name or email already in use")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	resp := ToUserResponse(u)
	core.Created(w, resp)
}

func (h *Handler) GetByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		core.BadRequest(w, "name is required")
		return
	}

	resp, err := h.service.GetProfileByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	if results == nil {
		results = []Summary{}
	}
	core.OK(w, results)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 50 {
			core.BadRequest(w, "limit must be between 1 and 50")
			return
		}
		limit = parsed
	}

	results, err := h.service.Search(r.Context(), query, limit)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	if results == nil {
		results = []Summary{}
	}
	core.OK(w, results)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	callerID := middleware.GetUserID(r.Context())
	if callerID == "" || callerID != id {
		core.Forbidden(w, "cannot modify another user's profile")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	u, err := h.service.UpdateProfile(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "user not found")
		case errors.Is(err, core.ErrDuplicateKey):
			core.Conflict(w, "name or email already in use")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	resp := ToUserResponse(u)
	core.OK(w, resp)
}

func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req VerifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	err := h.service.VerifyEmail(r.Context(), req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "user not found")
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "invalid or expired verification code")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, map[string]string{"message": "email verified"})
}
