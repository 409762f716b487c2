package treatments

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"vetclinic/internal/middleware"
	"vetclinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/treatments", func(tr chi.Router) {
		tr.Use(middleware.RequireAdmin)
		tr.Post("/", createTreatmentHandler(svc))
		tr.Get("/", listTreatmentsHandler(svc))
		tr.Get("/{treatmentID}", getTreatmentHandler(svc))
		tr.Put("/{treatmentID}", updateTreatmentHandler(svc))
		tr.Delete("/{treatmentID}", deleteTreatmentHandler(svc))
	})
}

type treatmentRequest struct {
	InvoiceID   string `json:"invoice_id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Medications string `json:"medications"`
	Therapy     string `json:"treatment"`
	Diagnosis   string `json:"diagnosis"`
}

type updateTreatmentRequest struct {
	Date        *string `json:"date"`
	Description *string `json:"description"`
	Medications *string `json:"medications"`
	Therapy     *string `json:"treatment"`
	Diagnosis   *string `json:"diagnosis"`
}

type treatmentResponse struct {
	ID          string    `json:"id"`
	InvoiceID   string    `json:"invoice_id"`
	Date        string    `json:"date"`
	Description string    `json:"description,omitempty"`
	Medications string    `json:"medications,omitempty"`
	Therapy     string    `json:"treatment,omitempty"`
	Diagnosis   string    `json:"diagnosis,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func createTreatmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req treatmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		t, err := svc.Create(r.Context(), CreateInput{
			InvoiceID:   req.InvoiceID,
			Date:        req.Date,
			Description: req.Description,
			Medications: req.Medications,
			Therapy:     req.Therapy,
			Diagnosis:   req.Diagnosis,
		})
		if err != nil {
			writeTreatmentErr(w, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, toTreatmentResponse(t))
	}
}

func listTreatmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), r.URL.Query().Get("invoice"))
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]treatmentResponse, 0, len(items))
		for _, t := range items {
			out = append(out, toTreatmentResponse(t))
		}
		httpx.JSON(w, http.StatusOK, out)
	}
}

func getTreatmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := svc.GetByID(r.Context(), chi.URLParam(r, "treatmentID"))
		if err != nil {
			httpx.Error(w, http.StatusNotFound, "treatment not found")
			return
		}
		httpx.JSON(w, http.StatusOK, toTreatmentResponse(t))
	}
}

func updateTreatmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateTreatmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		t, err := svc.Update(r.Context(), chi.URLParam(r, "treatmentID"), UpdateInput{
			Date:        req.Date,
			Description: req.Description,
			Medications: req.Medications,
			Therapy:     req.Therapy,
			Diagnosis:   req.Diagnosis,
		})
		if err != nil {
			writeTreatmentErr(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, toTreatmentResponse(t))
	}
}

func deleteTreatmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "treatmentID")); err != nil {
			httpx.Error(w, http.StatusNotFound, "treatment not found")
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"message": "treatment deleted"})
	}
}

func writeTreatmentErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.Error(w, http.StatusBadRequest, "invoice and date are required")
	case errors.Is(err, ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "treatment not found")
	default:
		httpx.Error(w, http.StatusInternalServerError, "internal error")
	}
}

func toTreatmentResponse(t Treatment) treatmentResponse {
	return treatmentResponse{
		ID:          t.ID,
		InvoiceID:   t.InvoiceID,
		Date:        t.Date,
		Description: t.Description,
		Medications: t.Medications,
		Therapy:     t.Therapy,
		Diagnosis:   t.Diagnosis,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
