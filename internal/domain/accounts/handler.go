package accounts

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"vetclinic/internal/domain/clients"
	"vetclinic/internal/middleware"
	"vetclinic/internal/platform/httpx"
	"vetclinic/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// RegisterPublicRoutes monta registro y login (sin token).
func RegisterPublicRoutes(r chi.Router, svc *Service, clientsSvc *clients.Service, issuer auth.TokenIssuer) {
	r.Post("/auth/register", registerHandler(svc))
	r.Post("/auth/login", loginHandler(svc, clientsSvc, issuer))
}

// RegisterRoutes monta las rutas protegidas: cambio de password propio y
// administración de cuentas (solo admin).
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/auth/password", changePasswordHandler(svc))

	r.Route("/users", func(ur chi.Router) {
		ur.Use(middleware.RequireAdmin)
		ur.Get("/", listAccountsHandler(svc))
		ur.Put("/{email}", updateAccountHandler(svc))
		ur.Delete("/{email}", deleteAccountHandler(svc))
	})
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	RUT      string `json:"rut"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type accountResponse struct {
	Email     string    `json:"email"`
	RUT       string    `json:"rut,omitempty"`
	Name      string    `json:"name,omitempty"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// registerHandler godoc
// @Summary Crear cuenta de cliente
// @Tags auth
// @Success 201 {object} accountResponse
// @Router /auth/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		a, err := svc.Register(r.Context(), RegisterInput{
			Email:    req.Email,
			Password: req.Password,
			RUT:      req.RUT,
			Name:     req.Name,
			Address:  req.Address,
			Phone:    req.Phone,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.Error(w, http.StatusBadRequest, "email and password are required")
			case errors.Is(err, ErrEmailTaken):
				httpx.Error(w, http.StatusConflict, "email already registered")
			default:
				httpx.Error(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		httpx.JSON(w, http.StatusCreated, toAccountResponse(a))
	}
}

// loginHandler godoc
// @Summary Login de cliente
// @Tags auth
// @Success 200 {object} loginResponse
// @Router /auth/login [post]
func loginHandler(svc *Service, clientsSvc *clients.Service, issuer auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		a, err := svc.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			httpx.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		claims := auth.Claims{Email: a.Email, Role: auth.RoleClient}
		// Si la cuenta tiene ficha de cliente (mismo email), el token
		// carga su id para el scoping de mascotas y reservas.
		if c, err := clientsSvc.GetByEmail(r.Context(), a.Email); err == nil {
			claims.ClientID = c.ID
		}

		// En modo dev no hay issuer; la identidad entra por headers X-Debug-*.
		if issuer == nil {
			httpx.Error(w, http.StatusServiceUnavailable, "token signing not configured")
			return
		}

		token, err := issuer.Issue(claims)
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.JSON(w, http.StatusOK, loginResponse{Token: token})
	}
}

func changePasswordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req struct {
			CurrentPassword string `json:"current_password"`
			NewPassword     string `json:"new_password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		err := svc.ChangePassword(r.Context(), claims.Email, req.CurrentPassword, req.NewPassword)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.Error(w, http.StatusBadRequest, "current and new password are required")
			case errors.Is(err, ErrWrongPassword):
				httpx.Error(w, http.StatusUnauthorized, "current password does not match")
			case errors.Is(err, ErrNotFound):
				httpx.Error(w, http.StatusNotFound, "account not found")
			default:
				httpx.Error(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		httpx.JSON(w, http.StatusOK, map[string]string{"message": "password updated"})
	}
}

func listAccountsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]accountResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAccountResponse(a))
		}
		httpx.JSON(w, http.StatusOK, out)
	}
}

func updateAccountHandler(svc *Service) http.HandlerFunc {
	// Solo se permite resetear la password (flujo admin del original).
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		a, err := svc.SetPassword(r.Context(), chi.URLParam(r, "email"), req.Password)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.Error(w, http.StatusBadRequest, "password is required")
			case errors.Is(err, ErrNotFound):
				httpx.Error(w, http.StatusNotFound, "account not found")
			default:
				httpx.Error(w, http.StatusInternalServerError, "internal error")
			}
			return
		}
		httpx.JSON(w, http.StatusOK, toAccountResponse(a))
	}
}

func deleteAccountHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "email")); err != nil {
			httpx.Error(w, http.StatusNotFound, "account not found")
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"message": "account deleted"})
	}
}

func toAccountResponse(a Account) accountResponse {
	return accountResponse{
		Email:     a.Email,
		RUT:       a.RUT,
		Name:      a.Name,
		Address:   a.Address,
		Phone:     a.Phone,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
