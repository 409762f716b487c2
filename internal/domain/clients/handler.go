package clients

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"vetclinic/internal/middleware"
	"vetclinic/internal/platform/httpx"
	"vetclinic/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/clients", func(cr chi.Router) {
		cr.Post("/", createClientHandler(svc))
		cr.Get("/", listClientsHandler(svc))
		cr.Get("/{clientID}", getClientHandler(svc))
		cr.Put("/{clientID}", updateClientHandler(svc))
		cr.Delete("/{clientID}", deleteClientHandler(svc))
	})
}

type createClientRequest struct {
	RUT     string `json:"rut"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type updateClientRequest struct {
	RUT     *string `json:"rut"`
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
}

type clientResponse struct {
	ID        string    `json:"id"`
	RUT       string    `json:"rut,omitempty"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createClientHandler godoc
// @Summary Registrar cliente
// @Tags clients
// @Success 201 {object} clientResponse
// @Router /clients [post]
func createClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createClientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		c, err := svc.Create(r.Context(), CreateInput{
			RUT:     req.RUT,
			Name:    req.Name,
			Address: req.Address,
			Phone:   req.Phone,
			Email:   req.Email,
		})
		if err != nil {
			writeClientErr(w, err)
			return
		}

		httpx.JSON(w, http.StatusCreated, toClientResponse(c))
	}
}

func listClientsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		// Un cliente autenticado solo ve su propia ficha.
		if claims.Role == auth.RoleClient {
			if claims.ClientID == "" {
				httpx.JSON(w, http.StatusOK, []clientResponse{})
				return
			}
			c, err := svc.GetByID(r.Context(), claims.ClientID)
			if err != nil {
				httpx.JSON(w, http.StatusOK, []clientResponse{})
				return
			}
			httpx.JSON(w, http.StatusOK, []clientResponse{toClientResponse(c)})
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]clientResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toClientResponse(c))
		}
		httpx.JSON(w, http.StatusOK, out)
	}
}

func getClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "clientID"))
		if err != nil {
			httpx.Error(w, http.StatusNotFound, "client not found")
			return
		}
		httpx.JSON(w, http.StatusOK, toClientResponse(c))
	}
}

func updateClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateClientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		c, err := svc.Update(r.Context(), chi.URLParam(r, "clientID"), UpdateInput{
			RUT:     req.RUT,
			Name:    req.Name,
			Address: req.Address,
			Phone:   req.Phone,
			Email:   req.Email,
		})
		if err != nil {
			writeClientErr(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, toClientResponse(c))
	}
}

func deleteClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "clientID")); err != nil {
			writeClientErr(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"message": "client deleted"})
	}
}

func writeClientErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.Error(w, http.StatusBadRequest, "name and email are required")
	case errors.Is(err, ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "client not found")
	case errors.Is(err, ErrDuplicateRUT):
		httpx.Error(w, http.StatusConflict, "rut already registered")
	default:
		httpx.Error(w, http.StatusInternalServerError, "internal error")
	}
}

func toClientResponse(c Client) clientResponse {
	return clientResponse{
		ID:        c.ID,
		RUT:       c.RUT,
		Name:      c.Name,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
