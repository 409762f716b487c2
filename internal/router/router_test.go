package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vetclinic/internal/adapters/auth/jwtauth"
	"vetclinic/internal/ports/auth"
	"vetclinic/internal/router"
)

func TestHTTP_EndToEnd_BookingFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	admin := devIdentity{Email: "vet@clinic.cl", Role: "admin"}

	// 1) Admin registra los datos maestros
	clientID := createResource(t, ts.URL, "/api/clients", admin, map[string]any{
		"rut":   "11111111-1",
		"name":  "Maria Perez",
		"email": "maria@example.com",
	})
	createResource(t, ts.URL, "/api/veterinarians", admin, map[string]any{
		"email":    "draqueveque@clinic.cl",
		"name":     "Dra. Queveque",
		"password": "secret123",
	})
	serviceID := createResource(t, ts.URL, "/api/services", admin, map[string]any{
		"name":  "Consulta general",
		"price": 15000,
	})
	petID := createResource(t, ts.URL, "/api/pets", admin, map[string]any{
		"client_id": clientID,
		"name":      "Milo",
		"species":   "dog",
	})

	booking := map[string]any{
		"client_id":  clientID,
		"pet_id":     petID,
		"vet_email":  "draqueveque@clinic.cl",
		"service_id": serviceID,
		"date":       "2026-09-10",
		"time":       "10:00",
	}

	// 2) Primera reserva entra
	apptID := createResource(t, ts.URL, "/api/appointments", admin, booking)

	// 3) Mismo cupo, aunque venga con segundos, choca y el mensaje
	// nombra al veterinario
	{
		double := map[string]any{}
		for k, v := range booking {
			double[k] = v
		}
		double["time"] = "10:00:00"
		st, body := doReq(t, ts.URL, "POST", "/api/appointments", admin, double)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 double booking, got %d body=%s", st, string(body))
		}
		if !strings.Contains(string(body), "Dra. Queveque") {
			t.Fatalf("conflict message should name the vet, got %s", string(body))
		}
	}

	// 4) Otra hora para el mismo veterinario entra sin problema
	{
		other := map[string]any{}
		for k, v := range booking {
			other[k] = v
		}
		other["time"] = "11:00"
		st, body := doReq(t, ts.URL, "POST", "/api/appointments", admin, other)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 different slot, got %d body=%s", st, string(body))
		}
	}

	// 5) Cancelar libera el cupo y es idempotente
	{
		st, body := doReq(t, ts.URL, "POST", "/api/appointments/"+apptID+"/cancel", admin, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 cancel, got %d body=%s", st, string(body))
		}
		st, body = doReq(t, ts.URL, "POST", "/api/appointments/"+apptID+"/cancel", admin, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 cancel twice, got %d body=%s", st, string(body))
		}
	}

	// 6) El cupo liberado se puede volver a tomar
	rebookedID := createResource(t, ts.URL, "/api/appointments", admin, booking)

	// 7) Caja: detalle, boleta y tratamiento
	detailID := createResource(t, ts.URL, "/api/appointment-details", admin, map[string]any{
		"appointment_id": rebookedID,
		"service_id":     serviceID,
		"price":          15000,
	})
	invoiceID := createResource(t, ts.URL, "/api/invoices", admin, map[string]any{
		"detail_id":    detailID,
		"payment_date": "2026-09-10",
		"total":        15000,
	})

	// 8) El mismo detalle no admite segunda boleta
	{
		st, body := doReq(t, ts.URL, "POST", "/api/invoices", admin, map[string]any{
			"detail_id":    detailID,
			"payment_date": "2026-09-10",
			"total":        15000,
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 second invoice for detail, got %d body=%s", st, string(body))
		}
	}

	createResource(t, ts.URL, "/api/treatments", admin, map[string]any{
		"invoice_id":  invoiceID,
		"date":        "2026-09-10",
		"diagnosis":   "otitis",
		"medications": "amoxicilina",
	})

	// 9) La agenda del veterinario sale ordenada y sin canceladas activas
	{
		st, body := doReq(t, ts.URL, "GET", "/api/appointments?vet=draqueveque@clinic.cl&date=2026-09-10", admin, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d body=%s", st, string(body))
		}
		var items []struct {
			Time   string `json:"time"`
			Status string `json:"status"`
		}
		if err := json.Unmarshal(body, &items); err != nil {
			t.Fatalf("unmarshal list: %v body=%s", err, string(body))
		}
		if len(items) != 3 {
			t.Fatalf("expected 3 appointments on the day, got %d", len(items))
		}
		if items[0].Time > items[1].Time || items[1].Time > items[2].Time {
			t.Fatalf("expected appointments sorted by time, got %+v", items)
		}
	}
}

func TestHTTP_UpdateIdempotence(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	admin := devIdentity{Email: "vet@clinic.cl", Role: "admin"}

	clientID := createResource(t, ts.URL, "/api/clients", admin, map[string]any{
		"name":  "Maria Perez",
		"email": "maria@example.com",
	})
	createResource(t, ts.URL, "/api/veterinarians", admin, map[string]any{
		"email":    "draqueveque@clinic.cl",
		"name":     "Dra. Queveque",
		"password": "secret123",
	})
	serviceID := createResource(t, ts.URL, "/api/services", admin, map[string]any{
		"name":  "Consulta general",
		"price": 15000,
	})
	petID := createResource(t, ts.URL, "/api/pets", admin, map[string]any{
		"client_id": clientID,
		"name":      "Milo",
		"species":   "dog",
	})
	apptID := createResource(t, ts.URL, "/api/appointments", admin, map[string]any{
		"client_id":  clientID,
		"pet_id":     petID,
		"vet_email":  "draqueveque@clinic.cl",
		"service_id": serviceID,
		"date":       "2026-09-10",
		"time":       "10:00",
	})

	// El mismo PUT repetido no cambia el resultado: la reserva ya está
	// en su propio cupo, así que mover la hora dos veces da 200 ambas.
	update := map[string]any{
		"time":   "11:00",
		"status": "completed",
	}
	for i := 0; i < 2; i++ {
		st, body := doReq(t, ts.URL, "PUT", "/api/appointments/"+apptID, admin, update)
		if st != http.StatusOK {
			t.Fatalf("PUT #%d: expected 200, got %d body=%s", i+1, st, string(body))
		}
	}

	st, body := doReq(t, ts.URL, "GET", "/api/appointments/"+apptID, admin, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 get, got %d body=%s", st, string(body))
	}
	var got struct {
		Time   string `json:"time"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal appointment: %v body=%s", err, string(body))
	}
	if got.Time != "11:00" || got.Status != "completed" {
		t.Fatalf("expected final state 11:00/completed, got %+v", got)
	}
}

func TestHTTP_ClientScoping(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	admin := devIdentity{Email: "vet@clinic.cl", Role: "admin"}

	clientA := createResource(t, ts.URL, "/api/clients", admin, map[string]any{
		"name":  "Cliente A",
		"email": "a@example.com",
	})
	clientB := createResource(t, ts.URL, "/api/clients", admin, map[string]any{
		"name":  "Cliente B",
		"email": "b@example.com",
	})

	petA := createResource(t, ts.URL, "/api/pets", admin, map[string]any{
		"client_id": clientA,
		"name":      "Milo",
		"species":   "dog",
	})
	petB := createResource(t, ts.URL, "/api/pets", admin, map[string]any{
		"client_id": clientB,
		"name":      "Luna",
		"species":   "cat",
	})

	createResource(t, ts.URL, "/api/veterinarians", admin, map[string]any{
		"email":    "draqueveque@clinic.cl",
		"name":     "Dra. Queveque",
		"password": "secret123",
	})
	serviceID := createResource(t, ts.URL, "/api/services", admin, map[string]any{
		"name":  "Consulta general",
		"price": 15000,
	})
	apptA := createResource(t, ts.URL, "/api/appointments", admin, map[string]any{
		"client_id":  clientA,
		"pet_id":     petA,
		"vet_email":  "draqueveque@clinic.cl",
		"service_id": serviceID,
		"date":       "2026-09-10",
		"time":       "10:00",
	})
	createResource(t, ts.URL, "/api/appointments", admin, map[string]any{
		"client_id":  clientB,
		"pet_id":     petB,
		"vet_email":  "draqueveque@clinic.cl",
		"service_id": serviceID,
		"date":       "2026-09-10",
		"time":       "11:00",
	})

	userA := devIdentity{Email: "a@example.com", Role: "client", ClientID: clientA}

	// Lista de mascotas viene acotada a las propias
	{
		st, body := doReq(t, ts.URL, "GET", "/api/pets", userA, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list pets, got %d body=%s", st, string(body))
		}
		var items []struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(body, &items); err != nil {
			t.Fatalf("unmarshal pets: %v body=%s", err, string(body))
		}
		if len(items) != 1 || items[0].ID != petA {
			t.Fatalf("expected only own pet %s, got %+v", petA, items)
		}
	}

	// La agenda también: el token de cliente solo ve sus propias reservas
	{
		st, body := doReq(t, ts.URL, "GET", "/api/appointments", userA, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list appointments, got %d body=%s", st, string(body))
		}
		var items []struct {
			ID       string `json:"id"`
			ClientID string `json:"client_id"`
		}
		if err := json.Unmarshal(body, &items); err != nil {
			t.Fatalf("unmarshal appointments: %v body=%s", err, string(body))
		}
		if len(items) != 1 || items[0].ID != apptA || items[0].ClientID != clientA {
			t.Fatalf("expected only own appointment %s, got %+v", apptA, items)
		}
	}

	// La mascota ajena no se puede mirar
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/pets/"+petB, userA, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 get foreign pet, got %d", st)
		}
	}

	// Ni agendar a nombre de otro cliente
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/appointments", userA, map[string]any{
			"client_id":  clientB,
			"pet_id":     petB,
			"vet_email":  "vet@clinic.cl",
			"service_id": "svc",
			"date":       "2026-09-10",
			"time":       "10:00",
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 booking for another client, got %d", st)
		}
	}

	// El CRUD de administración queda cerrado al rol client
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/services", userA, map[string]any{
			"name":  "Peluqueria",
			"price": 1000,
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 create service as client, got %d", st)
		}
	}
}

func TestHTTP_Validation(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	admin := devIdentity{Email: "vet@clinic.cl", Role: "admin"}

	// Cliente sin nombre => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/clients", admin, map[string]any{
			"email": "x@example.com",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 client without name, got %d", st)
		}
	}

	// Reserva sin campos => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/appointments", admin, map[string]any{
			"date": "2026-09-10",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 appointment missing refs, got %d", st)
		}
	}

	// Fecha con formato raro => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/appointments", admin, map[string]any{
			"client_id":  "c",
			"pet_id":     "p",
			"vet_email":  "v@clinic.cl",
			"service_id": "s",
			"date":       "10-09-2026",
			"time":       "10:00",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 bad date format, got %d", st)
		}
	}

	// Ids desconocidos => 404
	for _, path := range []string{
		"/api/clients/00000000-0000-0000-0000-000000000000",
		"/api/pets/00000000-0000-0000-0000-000000000000",
		"/api/appointments/00000000-0000-0000-0000-000000000000",
		"/api/invoices/00000000-0000-0000-0000-000000000000",
		"/api/treatments/00000000-0000-0000-0000-000000000000",
	} {
		st, _ := doReq(t, ts.URL, "GET", path, admin, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for %s, got %d", path, st)
		}
	}
}

func TestHTTP_AuthGate(t *testing.T) {
	const secret = "test-secret"

	j := jwtauth.New(secret, time.Hour)
	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: j,
		TokenIssuer:  j,
	}))
	defer ts.Close()

	// Sin token => 401
	{
		st, body := get(t, ts.URL+"/api/clients", "")
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without token, got %d body=%s", st, string(body))
		}
	}

	// Token basura => 403
	{
		st, body := get(t, ts.URL+"/api/clients", "Bearer not-a-jwt")
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 garbage token, got %d body=%s", st, string(body))
		}
	}

	// Token expirado => 403
	{
		expiring := jwtauth.New(secret, time.Millisecond)
		tok, err := expiring.Issue(authClaims("vet@clinic.cl", "admin"))
		if err != nil {
			t.Fatalf("issue expiring token: %v", err)
		}
		time.Sleep(20 * time.Millisecond)

		st, body := get(t, ts.URL+"/api/clients", "Bearer "+tok)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 expired token, got %d body=%s", st, string(body))
		}
	}

	// Token con otra firma => 403
	{
		other := jwtauth.New("another-secret", time.Hour)
		tok, err := other.Issue(authClaims("vet@clinic.cl", "admin"))
		if err != nil {
			t.Fatalf("issue foreign token: %v", err)
		}
		st, body := get(t, ts.URL+"/api/clients", "Bearer "+tok)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 wrong signature, got %d body=%s", st, string(body))
		}
	}

	// El catálogo sigue siendo público
	{
		st, body := get(t, ts.URL+"/api/services", "")
		if st != http.StatusOK {
			t.Fatalf("expected 200 public services, got %d body=%s", st, string(body))
		}
	}

	// Registro + login entregan un token que abre el resto de la API
	{
		st, body := doReq(t, ts.URL, "POST", "/api/auth/register", devIdentity{}, map[string]any{
			"email":    "maria@example.com",
			"password": "secret123",
			"name":     "Maria Perez",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 register, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "POST", "/api/auth/login", devIdentity{}, map[string]any{
			"email":    "maria@example.com",
			"password": "secret123",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
		}
		var resp struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(body, &resp); err != nil || resp.Token == "" {
			t.Fatalf("login should return a token, body=%s", string(body))
		}

		st, body = get(t, ts.URL+"/api/pets", "Bearer "+resp.Token)
		if st != http.StatusOK {
			t.Fatalf("expected 200 pets with fresh token, got %d body=%s", st, string(body))
		}

		// Password malo => 401 sin pistas
		st, _ = doReq(t, ts.URL, "POST", "/api/auth/login", devIdentity{}, map[string]any{
			"email":    "maria@example.com",
			"password": "wrong",
		})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 wrong password, got %d", st)
		}
	}
}

// -------------------------
// Helpers
// -------------------------

type devIdentity struct {
	Email    string
	Role     string
	ClientID string
}

func authClaims(email, role string) auth.Claims {
	return auth.Claims{Email: email, Role: auth.Role(role)}
}

func createResource(t *testing.T, baseURL, path string, id devIdentity, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, id, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 creating %s, got %d body=%s", path, st, string(body))
	}

	var resp struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID != "" {
		return resp.ID
	}
	if resp.Email != "" {
		return resp.Email
	}
	t.Fatalf("creating %s: missing id body=%s", path, string(body))
	return ""
}

func doReq(t *testing.T, baseURL, method, path string, id devIdentity, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id.Email != "" {
		req.Header.Set("X-Debug-Email", id.Email)
		req.Header.Set("X-Debug-Role", id.Role)
		if id.ClientID != "" {
			req.Header.Set("X-Debug-Client-ID", id.ClientID)
		}
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

func get(t *testing.T, url, authHeader string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
