package pets

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
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Put("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})
}

type createPetRequest struct {
	ClientID string   `json:"client_id"`
	VetEmail string   `json:"vet_email"`
	Name     string   `json:"name"`
	Species  string   `json:"species"`
	Breed    string   `json:"breed"`
	Sex      string   `json:"sex"`
	Age      *int     `json:"age"`
	Weight   *float64 `json:"weight"`
}

type updatePetRequest struct {
	VetEmail *string  `json:"vet_email"`
	Name     *string  `json:"name"`
	Species  *string  `json:"species"`
	Breed    *string  `json:"breed"`
	Sex      *string  `json:"sex"`
	Age      *int     `json:"age"`
	Weight   *float64 `json:"weight"`
}

type petResponse struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	VetEmail  string    `json:"vet_email,omitempty"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	Breed     string    `json:"breed,omitempty"`
	Sex       string    `json:"sex"`
	Age       *int      `json:"age,omitempty"`
	Weight    *float64  `json:"weight,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Tags pets
// @Success 201 {object} petResponse
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		// Un cliente solo puede registrar mascotas propias; si no manda
		// client_id se asume el suyo.
		if claims.Role == auth.RoleClient {
			if req.ClientID == "" {
				req.ClientID = claims.ClientID
			}
			if req.ClientID != claims.ClientID {
				httpx.Error(w, http.StatusForbidden, "cannot register pets for another client")
				return
			}
		}

		p, err := svc.Create(r.Context(), CreateInput{
			ClientID: req.ClientID,
			VetEmail: req.VetEmail,
			Name:     req.Name,
			Species:  req.Species,
			Breed:    req.Breed,
			Sex:      req.Sex,
			Age:      req.Age,
			Weight:   req.Weight,
		})
		if err != nil {
			writePetErr(w, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var (
			items []Pet
			err   error
		)
		if claims.Role == auth.RoleClient {
			items, err = svc.ListByClient(r.Context(), claims.ClientID)
		} else {
			items, err = svc.List(r.Context())
		}
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		httpx.JSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			httpx.Error(w, http.StatusNotFound, "pet not found")
			return
		}

		if claims.Role == auth.RoleClient && p.ClientID != claims.ClientID {
			httpx.Error(w, http.StatusForbidden, "forbidden")
			return
		}
		httpx.JSON(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		current, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			httpx.Error(w, http.StatusNotFound, "pet not found")
			return
		}
		if claims.Role == auth.RoleClient && current.ClientID != claims.ClientID {
			httpx.Error(w, http.StatusForbidden, "forbidden")
			return
		}

		var req updatePetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := svc.Update(r.Context(), current.ID, UpdateInput{
			VetEmail: req.VetEmail,
			Name:     req.Name,
			Species:  req.Species,
			Breed:    req.Breed,
			Sex:      req.Sex,
			Age:      req.Age,
			Weight:   req.Weight,
		})
		if err != nil {
			writePetErr(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, toPetResponse(p))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		current, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			httpx.Error(w, http.StatusNotFound, "pet not found")
			return
		}
		if claims.Role == auth.RoleClient && current.ClientID != claims.ClientID {
			httpx.Error(w, http.StatusForbidden, "forbidden")
			return
		}

		if err := svc.Delete(r.Context(), current.ID); err != nil {
			writePetErr(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"message": "pet deleted"})
	}
}

func writePetErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.Error(w, http.StatusBadRequest, "client, name and species are required")
	case errors.Is(err, ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "pet not found")
	default:
		httpx.Error(w, http.StatusInternalServerError, "internal error")
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:        p.ID,
		ClientID:  p.ClientID,
		VetEmail:  p.VetEmail,
		Name:      p.Name,
		Species:   p.Species,
		Breed:     p.Breed,
		Sex:       string(p.Sex),
		Age:       p.Age,
		Weight:    p.Weight,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
