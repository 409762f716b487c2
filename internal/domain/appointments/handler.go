package appointments

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"vetclinic/internal/domain/catalog"
	"vetclinic/internal/domain/clients"
	"vetclinic/internal/domain/pets"
	"vetclinic/internal/domain/vets"
	"vetclinic/internal/middleware"
	"vetclinic/internal/platform/httpx"
	"vetclinic/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// Deps son los servicios vecinos que el handler usa para validar
// pertenencia y armar las respuestas con datos relacionados.
type Deps struct {
	Pets    *pets.Service
	Vets    *vets.Service
	Clients *clients.Service
	Catalog *catalog.Service
}

func RegisterRoutes(r chi.Router, svc *Service, deps Deps) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", createAppointmentHandler(svc, deps))
		ar.Get("/", listAppointmentsHandler(svc))
		ar.Get("/{appointmentID}", getAppointmentHandler(svc, deps))
		ar.Put("/{appointmentID}", updateAppointmentHandler(svc, deps))
		ar.Post("/{appointmentID}/cancel", cancelAppointmentHandler(svc))
		ar.Delete("/{appointmentID}", deleteAppointmentHandler(svc))
	})
}

type createAppointmentRequest struct {
	ClientID  string `json:"client_id"`
	PetID     string `json:"pet_id"`
	VetEmail  string `json:"vet_email"`
	ServiceID string `json:"service_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

type updateAppointmentRequest struct {
	PetID     *string `json:"pet_id"`
	VetEmail  *string `json:"vet_email"`
	ServiceID *string `json:"service_id"`
	Date      *string `json:"date"`
	Time      *string `json:"time"`
	Status    *string `json:"status"`
}

type appointmentResponse struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	PetID     string    `json:"pet_id"`
	VetEmail  string    `json:"vet_email"`
	ServiceID string    `json:"service_id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// appointmentDetailResponse agrega los datos relacionados que la vista
// de detalle muestra junto a la reserva.
type appointmentDetailResponse struct {
	appointmentResponse

	ClientName  string `json:"client_name,omitempty"`
	PetName     string `json:"pet_name,omitempty"`
	VetName     string `json:"vet_name,omitempty"`
	ServiceName string `json:"service_name,omitempty"`
}

// createAppointmentHandler godoc
// @Summary Agendar reserva
// @Tags appointments
// @Success 201 {object} appointmentResponse
// @Failure 409 {object} map[string]string
// @Router /appointments [post]
func createAppointmentHandler(svc *Service, deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req createAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		// Un cliente agenda solo para sí mismo y con mascotas propias.
		if claims.Role == auth.RoleClient {
			if req.ClientID == "" {
				req.ClientID = claims.ClientID
			}
			if req.ClientID != claims.ClientID {
				httpx.Error(w, http.StatusForbidden, "cannot book for another client")
				return
			}
			if p, err := deps.Pets.GetByID(r.Context(), req.PetID); err == nil && p.ClientID != claims.ClientID {
				httpx.Error(w, http.StatusForbidden, "pet belongs to another client")
				return
			}
		}

		a, err := svc.Create(r.Context(), CreateInput{
			ClientID:  req.ClientID,
			PetID:     req.PetID,
			VetEmail:  req.VetEmail,
			ServiceID: req.ServiceID,
			Date:      req.Date,
			Time:      req.Time,
		})
		if err != nil {
			writeAppointmentErr(w, r, deps, err, req.VetEmail)
			return
		}
		httpx.JSON(w, http.StatusCreated, toAppointmentResponse(a))
	}
}

func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		f := Filter{
			VetEmail: r.URL.Query().Get("vet"),
			Date:     r.URL.Query().Get("date"),
		}
		if claims.Role == auth.RoleClient {
			if claims.ClientID == "" {
				httpx.JSON(w, http.StatusOK, []appointmentResponse{})
				return
			}
			f.ClientID = claims.ClientID
		}

		items, err := svc.List(r.Context(), f)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.Error(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
				return
			}
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAppointmentResponse(a))
		}
		httpx.JSON(w, http.StatusOK, out)
	}
}

func getAppointmentHandler(svc *Service, deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			httpx.Error(w, http.StatusNotFound, "appointment not found")
			return
		}
		if claims.Role == auth.RoleClient && a.ClientID != claims.ClientID {
			httpx.Error(w, http.StatusForbidden, "forbidden")
			return
		}

		resp := appointmentDetailResponse{appointmentResponse: toAppointmentResponse(a)}
		// Joins best-effort: una referencia rota no tumba el detalle.
		if c, err := deps.Clients.GetByID(r.Context(), a.ClientID); err == nil {
			resp.ClientName = c.Name
		}
		if p, err := deps.Pets.GetByID(r.Context(), a.PetID); err == nil {
			resp.PetName = p.Name
		}
		if v, err := deps.Vets.GetByEmail(r.Context(), a.VetEmail); err == nil {
			resp.VetName = v.Name
		}
		if e, err := deps.Catalog.GetByID(r.Context(), a.ServiceID); err == nil {
			resp.ServiceName = e.Name
		}

		httpx.JSON(w, http.StatusOK, resp)
	}
}

func updateAppointmentHandler(svc *Service, deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		current, err := svc.GetByID(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			httpx.Error(w, http.StatusNotFound, "appointment not found")
			return
		}
		if claims.Role == auth.RoleClient && current.ClientID != claims.ClientID {
			httpx.Error(w, http.StatusForbidden, "forbidden")
			return
		}

		var req updateAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		a, err := svc.Update(r.Context(), current.ID, UpdateInput{
			PetID:     req.PetID,
			VetEmail:  req.VetEmail,
			ServiceID: req.ServiceID,
			Date:      req.Date,
			Time:      req.Time,
			Status:    req.Status,
		})
		if err != nil {
			vetEmail := current.VetEmail
			if req.VetEmail != nil {
				vetEmail = *req.VetEmail
			}
			writeAppointmentErr(w, r, deps, err, vetEmail)
			return
		}
		httpx.JSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func cancelAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		current, err := svc.GetByID(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			httpx.Error(w, http.StatusNotFound, "appointment not found")
			return
		}
		if claims.Role == auth.RoleClient && current.ClientID != claims.ClientID {
			httpx.Error(w, http.StatusForbidden, "forbidden")
			return
		}

		a, err := svc.Cancel(r.Context(), current.ID)
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		httpx.JSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func deleteAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		current, err := svc.GetByID(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			httpx.Error(w, http.StatusNotFound, "appointment not found")
			return
		}
		if claims.Role == auth.RoleClient && current.ClientID != claims.ClientID {
			httpx.Error(w, http.StatusForbidden, "forbidden")
			return
		}

		if err := svc.Delete(r.Context(), current.ID); err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"message": "appointment deleted"})
	}
}

func writeAppointmentErr(w http.ResponseWriter, r *http.Request, deps Deps, err error, vetEmail string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.Error(w, http.StatusBadRequest, "client, pet, vet, service, date and time are required")
	case errors.Is(err, ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "appointment not found")
	case errors.Is(err, ErrSlotTaken):
		// El mensaje nombra al veterinario para la pantalla de agenda.
		vetName := vetEmail
		if v, lookupErr := deps.Vets.GetByEmail(r.Context(), vetEmail); lookupErr == nil {
			vetName = v.Name
		}
		httpx.Error(w, http.StatusConflict,
			fmt.Sprintf("%s already has an appointment at that date and time", vetName))
	default:
		httpx.Error(w, http.StatusInternalServerError, "internal error")
	}
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:        a.ID,
		ClientID:  a.ClientID,
		PetID:     a.PetID,
		VetEmail:  a.VetEmail,
		ServiceID: a.ServiceID,
		Date:      a.Date,
		Time:      a.Time,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
