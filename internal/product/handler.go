// AngelaMos | 2026
// handler.go

package product

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/frohlich71/creator-builds-api/internal/core"
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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	requireAuth func(http.Handler) http.Handler,
) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/search", h.Search)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", h.Create)
			r.Post("/bulk", h.BulkCreate)
			r.Post("/bulk/file", h.BulkCreateFromFile)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.Conflict(w, "product with this asin already exists")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, p)
}

func (h *Handler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var req BulkCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	result, err := h.service.BulkCreate(r.Context(), req.Products)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, result)
}

// maxCSVUploadBytes caps bulk uploads at 32 MiB; the full source catalog
// CSV is well under that.
const maxCSVUploadBytes = 32 << 20

// BulkCreateFromFile accepts a multipart upload under the "file" field and
// runs it through the same CSV parser the startup seeder uses, without the
// seeder's category allow-list.
func (h *Handler) BulkCreateFromFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxCSVUploadBytes); err != nil {
		core.BadRequest(w, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		core.BadRequest(w, "missing file field")
		return
	}
	defer file.Close() //nolint:errcheck // read-only upload

	rows, _, err := ParseCSV(file, nil)
	if err != nil {
		core.BadRequest(w, "invalid csv: "+err.Error())
		return
	}

	if len(rows) == 0 {
		core.BadRequest(w, "csv contains no product rows")
		return
	}

	result, err := h.service.BulkCreate(r.Context(), rows)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, result)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			core.BadRequest(w, "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	results, err := h.service.Search(r.Context(), query, limit)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, results)
}
