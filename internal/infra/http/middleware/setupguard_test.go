package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atumia/atumia-core/internal/health"
)

// TestSetupGuardOperacional - Com o sistema operacional, o guard é transparente
func TestSetupGuardOperacional(t *testing.T) {
	state := health.NewState(nil, "-- setup")

	handler := SetupGuard(state)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/leads", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestSetupGuardNeedsMigration - Depois do primeiro drift, TODA rota de
// dados devolve 503 com o script, sem bater no handler
func TestSetupGuardNeedsMigration(t *testing.T) {
	state := health.NewState(nil, "-- CREATE TABLE organizations ...")
	state.MarkSchemaDrift()

	reached := false
	handler := SetupGuard(state)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/leads", nil))

	assert.False(t, reached)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "DATABASE_NOT_INITIALIZED", body["error"])
	assert.Equal(t, "-- CREATE TABLE organizations ...", body["setup_sql"])
}

// TestSetupGuardIrreversivel - MarkSchemaDrift repetido é inofensivo e
// o estado nunca volta sozinho para operacional
func TestSetupGuardIrreversivel(t *testing.T) {
	state := health.NewState(nil, "-- setup")

	assert.False(t, state.NeedsMigration())

	state.MarkSchemaDrift()
	state.MarkSchemaDrift()
	state.MarkSchemaDrift()

	assert.True(t, state.NeedsMigration())
}
