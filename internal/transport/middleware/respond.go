package middleware

import (
	"encoding/json"
	"net/http"
)

// errorBody mirrors the REST error envelope so middleware rejections look
// like handler rejections to clients.
type errorBody struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Code: code, Error: msg})
}
