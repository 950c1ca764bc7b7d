package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// money formats a decimal amount with 2 decimal places for consistent money
// representation in responses.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func parseTimeframe(r *http.Request) string {
	if tf := r.URL.Query().Get("timeframe"); tf != "" {
		return tf
	}
	return "today"
}

func parseNow(r *http.Request) (time.Time, error) {
	// Test and replay hooks may pin the reference time; default is wall clock.
	if s := r.URL.Query().Get("now"); s != "" {
		return time.Parse(time.RFC3339, s)
	}
	return time.Now(), nil
}
