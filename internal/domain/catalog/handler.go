package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"vetclinic/internal/middleware"
	"vetclinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta el catálogo. Los GET son públicos (los consume
// la página de servicios sin sesión); las mutaciones son solo admin.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/services", func(sr chi.Router) {
		sr.Get("/", listEntriesHandler(svc))
		sr.Get("/{serviceID}", getEntryHandler(svc))

		admin := sr.With(middleware.RequireAuth, middleware.RequireAdmin)
		admin.Post("/", createEntryHandler(svc))
		admin.Put("/{serviceID}", updateEntryHandler(svc))
		admin.Delete("/{serviceID}", deleteEntryHandler(svc))
	})
}

type entryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
}

type updateEntryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int    `json:"price"`
}

type entryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       int       `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// listEntriesHandler godoc
// @Summary Listar servicios del catálogo
// @Tags services
// @Success 200 {array} entryResponse
// @Router /services [get]
func listEntriesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEntryResponse(e))
		}
		httpx.JSON(w, http.StatusOK, out)
	}
}

func getEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.GetByID(r.Context(), chi.URLParam(r, "serviceID"))
		if err != nil {
			httpx.Error(w, http.StatusNotFound, "service not found")
			return
		}
		httpx.JSON(w, http.StatusOK, toEntryResponse(e))
	}
}

func createEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req entryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		e, err := svc.Create(r.Context(), CreateInput{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
		})
		if err != nil {
			writeEntryErr(w, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, toEntryResponse(e))
	}
}

func updateEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		e, err := svc.Update(r.Context(), chi.URLParam(r, "serviceID"), UpdateInput{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
		})
		if err != nil {
			writeEntryErr(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, toEntryResponse(e))
	}
}

func deleteEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "serviceID")); err != nil {
			httpx.Error(w, http.StatusNotFound, "service not found")
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"message": "service deleted"})
	}
}

func writeEntryErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.Error(w, http.StatusBadRequest, "name and a positive price are required")
	case errors.Is(err, ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "service not found")
	default:
		httpx.Error(w, http.StatusInternalServerError, "internal error")
	}
}

func toEntryResponse(e Entry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Price:       e.Price,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
