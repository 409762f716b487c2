package httpx

import (
	"encoding/json"
	"net/http"
)

// Antes cada módulo duplicaba su writeJSON; con ocho módulos ya conviene
// el helper común.

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorBody{Error: msg})
}
