package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/atumia/atumia-core/internal/health"
	"github.com/atumia/atumia-core/internal/infra/http/middleware"
)

func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondSchemaDrift é a saída única para DATABASE_NOT_INITIALIZED:
// flipa o estado global (irreversível até reload) e devolve 503 com o
// script literal de remediação.
func respondSchemaDrift(w http.ResponseWriter, state *health.State) {
	middleware.RecordSchemaDrift()
	state.MarkSchemaDrift()

	writeJSON(w, http.StatusServiceUnavailable, map[string]string{
		"error":     "DATABASE_NOT_INITIALIZED",
		"message":   "Sincronização de banco necessária. Rode o script no SQL Editor e recarregue o sistema.",
		"setup_sql": state.SetupScript(),
	})
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
