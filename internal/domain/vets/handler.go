package vets

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

// RegisterPublicRoutes monta el login de administración (sin token).
func RegisterPublicRoutes(r chi.Router, svc *Service, issuer auth.TokenIssuer) {
	r.Post("/auth/admin-login", adminLoginHandler(svc, issuer))
}

// RegisterRoutes monta el directorio de veterinarios. El listado de
// activos es público (lo consume la pantalla de agendamiento sin
// token); el CRUD completo es solo admin.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/veterinarians", func(vr chi.Router) {
		vr.Get("/active", listActiveVetsHandler(svc))

		admin := vr.With(middleware.RequireAuth, middleware.RequireAdmin)
		admin.Post("/", createVetHandler(svc))
		admin.Get("/", listVetsHandler(svc))
		admin.Get("/{email}", getVetHandler(svc))
		admin.Put("/{email}", updateVetHandler(svc))
		admin.Delete("/{email}", deleteVetHandler(svc))
	})
}

type createVetRequest struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Password  string `json:"password"`
}

type updateVetRequest struct {
	Name      *string `json:"name"`
	Specialty *string `json:"specialty"`
	Status    *string `json:"status"`
	Password  *string `json:"password"`
}

// vetResponse nunca incluye el hash de password.
type vetResponse struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// adminLoginHandler godoc
// @Summary Login de veterinario (administración)
// @Tags auth
// @Success 200 {object} map[string]string
// @Router /auth/admin-login [post]
func adminLoginHandler(svc *Service, issuer auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		v, err := svc.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, ErrInactive) {
				httpx.Error(w, http.StatusForbidden, "vet is inactive")
				return
			}
			httpx.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		// En modo dev no hay issuer; la identidad entra por headers X-Debug-*.
		if issuer == nil {
			httpx.Error(w, http.StatusServiceUnavailable, "token signing not configured")
			return
		}

		token, err := issuer.Issue(auth.Claims{Email: v.Email, Role: auth.RoleAdmin})
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.JSON(w, http.StatusOK, map[string]string{
			"token": token,
			"name":  v.Name,
		})
	}
}

func listActiveVetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListActive(r.Context())
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]vetResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVetResponse(v))
		}
		httpx.JSON(w, http.StatusOK, out)
	}
}

func createVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createVetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		v, err := svc.Create(r.Context(), CreateInput{
			Email:     req.Email,
			Name:      req.Name,
			Specialty: req.Specialty,
			Password:  req.Password,
		})
		if err != nil {
			writeVetErr(w, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, toVetResponse(v))
	}
}

func listVetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]vetResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVetResponse(v))
		}
		httpx.JSON(w, http.StatusOK, out)
	}
}

func getVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.GetByEmail(r.Context(), chi.URLParam(r, "email"))
		if err != nil {
			httpx.Error(w, http.StatusNotFound, "vet not found")
			return
		}
		httpx.JSON(w, http.StatusOK, toVetResponse(v))
	}
}

func updateVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateVetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		v, err := svc.Update(r.Context(), chi.URLParam(r, "email"), UpdateInput{
			Name:      req.Name,
			Specialty: req.Specialty,
			Status:    req.Status,
			Password:  req.Password,
		})
		if err != nil {
			writeVetErr(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, toVetResponse(v))
	}
}

func deleteVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "email")); err != nil {
			httpx.Error(w, http.StatusNotFound, "vet not found")
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"message": "vet deleted"})
	}
}

func writeVetErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.Error(w, http.StatusBadRequest, "email, name and password are required")
	case errors.Is(err, ErrEmailTaken):
		httpx.Error(w, http.StatusConflict, "email already registered")
	case errors.Is(err, ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "vet not found")
	default:
		httpx.Error(w, http.StatusInternalServerError, "internal error")
	}
}

func toVetResponse(v Vet) vetResponse {
	return vetResponse{
		Email:     v.Email,
		Name:      v.Name,
		Specialty: v.Specialty,
		Status:    string(v.Status),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
