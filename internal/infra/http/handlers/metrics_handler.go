package handlers

import (
	"net/http"

	"github.com/atumia/atumia-core/internal/health"
	"github.com/atumia/atumia-core/internal/usecase"
)

type MetricsHandler struct {
	metricsUC *usecase.GetMetricsUseCase
	session   usecase.SessionStoreInterface
	health    *health.State
}

func NewMetricsHandler(metricsUC *usecase.GetMetricsUseCase, session usecase.SessionStoreInterface, healthState *health.State) *MetricsHandler {
	return &MetricsHandler{
		metricsUC: metricsUC,
		session:   session,
		health:    healthState,
	}
}

// HandleGet alimenta os cards do dashboard. Sem vínculo ou com falha
// transiente os números vêm zerados; só drift interrompe.
func (h *MetricsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	tc := h.session.Current()

	metrics, err := h.metricsUC.Execute(r.Context(), tc)
	if err != nil {
		if usecase.IsSchemaDrift(err) {
			respondSchemaDrift(w, h.health)
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal"})
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}
