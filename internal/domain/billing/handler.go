package billing

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"vetclinic/internal/middleware"
	"vetclinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta detalles de reserva y boletas (solo admin: la
// caja es de la clínica, no de los clientes).
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/appointment-details", func(dr chi.Router) {
		dr.Use(middleware.RequireAdmin)
		dr.Post("/", createDetailHandler(svc))
		dr.Get("/", listDetailsHandler(svc))
		dr.Get("/{detailID}", getDetailHandler(svc))
		dr.Put("/{detailID}", updateDetailHandler(svc))
		dr.Delete("/{detailID}", deleteDetailHandler(svc))
	})

	r.Route("/invoices", func(ir chi.Router) {
		ir.Use(middleware.RequireAdmin)
		ir.Post("/", createInvoiceHandler(svc))
		ir.Get("/", listInvoicesHandler(svc))
		ir.Get("/{invoiceID}", getInvoiceHandler(svc))
		ir.Put("/{invoiceID}", updateInvoiceHandler(svc))
		ir.Delete("/{invoiceID}", deleteInvoiceHandler(svc))
	})
}

type detailRequest struct {
	AppointmentID string `json:"appointment_id"`
	ServiceID     string `json:"service_id"`
	Price         int    `json:"price"`
	Notes         string `json:"notes"`
}

type updateDetailRequest struct {
	ServiceID *string `json:"service_id"`
	Price     *int    `json:"price"`
	Notes     *string `json:"notes"`
}

type detailResponse struct {
	ID            string    `json:"id"`
	AppointmentID string    `json:"appointment_id"`
	ServiceID     string    `json:"service_id"`
	Price         int       `json:"price"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type invoiceRequest struct {
	DetailID    string `json:"detail_id"`
	PaymentDate string `json:"payment_date"`
	Total       int    `json:"total"`
}

type updateInvoiceRequest struct {
	PaymentDate *string `json:"payment_date"`
	Total       *int    `json:"total"`
}

type invoiceResponse struct {
	ID          string    `json:"id"`
	DetailID    string    `json:"detail_id"`
	PaymentDate string    `json:"payment_date"`
	Total       int       `json:"total"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func createDetailHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req detailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		d, err := svc.CreateDetail(r.Context(), DetailInput{
			AppointmentID: req.AppointmentID,
			ServiceID:     req.ServiceID,
			Price:         req.Price,
			Notes:         req.Notes,
		})
		if err != nil {
			writeBillingErr(w, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, toDetailResponse(d))
	}
}

func listDetailsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListDetails(r.Context(), r.URL.Query().Get("appointment"))
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]detailResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDetailResponse(d))
		}
		httpx.JSON(w, http.StatusOK, out)
	}
}

func getDetailHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.GetDetailByID(r.Context(), chi.URLParam(r, "detailID"))
		if err != nil {
			httpx.Error(w, http.StatusNotFound, "appointment detail not found")
			return
		}
		httpx.JSON(w, http.StatusOK, toDetailResponse(d))
	}
}

func updateDetailHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateDetailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		d, err := svc.UpdateDetail(r.Context(), chi.URLParam(r, "detailID"), UpdateDetailInput{
			ServiceID: req.ServiceID,
			Price:     req.Price,
			Notes:     req.Notes,
		})
		if err != nil {
			writeBillingErr(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, toDetailResponse(d))
	}
}

func deleteDetailHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteDetail(r.Context(), chi.URLParam(r, "detailID")); err != nil {
			httpx.Error(w, http.StatusNotFound, "appointment detail not found")
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"message": "appointment detail deleted"})
	}
}

// createInvoiceHandler godoc
// @Summary Emitir boleta
// @Tags invoices
// @Success 201 {object} invoiceResponse
// @Failure 409 {object} map[string]string
// @Router /invoices [post]
func createInvoiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req invoiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		inv, err := svc.CreateInvoice(r.Context(), InvoiceInput{
			DetailID:    req.DetailID,
			PaymentDate: req.PaymentDate,
			Total:       req.Total,
		})
		if err != nil {
			writeBillingErr(w, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, toInvoiceResponse(inv))
	}
}

func listInvoicesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListInvoices(r.Context())
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]invoiceResponse, 0, len(items))
		for _, inv := range items {
			out = append(out, toInvoiceResponse(inv))
		}
		httpx.JSON(w, http.StatusOK, out)
	}
}

func getInvoiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inv, err := svc.GetInvoiceByID(r.Context(), chi.URLParam(r, "invoiceID"))
		if err != nil {
			httpx.Error(w, http.StatusNotFound, "invoice not found")
			return
		}
		httpx.JSON(w, http.StatusOK, toInvoiceResponse(inv))
	}
}

func updateInvoiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateInvoiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		inv, err := svc.UpdateInvoice(r.Context(), chi.URLParam(r, "invoiceID"), UpdateInvoiceInput{
			PaymentDate: req.PaymentDate,
			Total:       req.Total,
		})
		if err != nil {
			writeBillingErr(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, toInvoiceResponse(inv))
	}
}

func deleteInvoiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteInvoice(r.Context(), chi.URLParam(r, "invoiceID")); err != nil {
			httpx.Error(w, http.StatusNotFound, "invoice not found")
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"message": "invoice deleted"})
	}
}

func writeBillingErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.Error(w, http.StatusBadRequest, "missing or invalid required fields")
	case errors.Is(err, ErrDetailNotFound):
		httpx.Error(w, http.StatusNotFound, "appointment detail not found")
	case errors.Is(err, ErrInvoiceNotFound):
		httpx.Error(w, http.StatusNotFound, "invoice not found")
	case errors.Is(err, ErrDetailInvoiced):
		httpx.Error(w, http.StatusConflict, "detail already has an invoice")
	default:
		httpx.Error(w, http.StatusInternalServerError, "internal error")
	}
}

func toDetailResponse(d Detail) detailResponse {
	return detailResponse{
		ID:            d.ID,
		AppointmentID: d.AppointmentID,
		ServiceID:     d.ServiceID,
		Price:         d.Price,
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func toInvoiceResponse(inv Invoice) invoiceResponse {
	return invoiceResponse{
		ID:          inv.ID,
		DetailID:    inv.DetailID,
		PaymentDate: inv.PaymentDate,
		Total:       inv.Total,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
}
