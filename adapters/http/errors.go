package privacyhttp

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

type errResp struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func sendErr(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, errResp{Error: code})
}

func badRequest(w http.ResponseWriter, code string)   { sendErr(w, http.StatusBadRequest, code) }
func unauthorized(w http.ResponseWriter, code string) { sendErr(w, http.StatusUnauthorized, code) }
func notFound(w http.ResponseWriter, code string)     { sendErr(w, http.StatusNotFound, code) }
func serverErr(w http.ResponseWriter, code string)    { sendErr(w, http.StatusInternalServerError, code) }

func tooMany(w http.ResponseWriter, resetAt time.Time) {
	if secs := int(time.Until(resetAt).Seconds()); secs > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}
	writeJSON(w, http.StatusTooManyRequests, map[string]any{
		"error":   "rate_limited",
		"message": "Too many requests. " + retryHint(resetAt),
	})
}
