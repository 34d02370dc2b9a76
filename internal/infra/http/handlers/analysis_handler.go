package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atumia/atumia-core/internal/health"
	"github.com/atumia/atumia-core/internal/usecase"
)

type AnalysisHandler struct {
	analyzeUC *usecase.AnalyzeLeadUseCase
	session   usecase.SessionStoreInterface
	health    *health.State
}

func NewAnalysisHandler(analyzeUC *usecase.AnalyzeLeadUseCase, session usecase.SessionStoreInterface, healthState *health.State) *AnalysisHandler {
	return &AnalysisHandler{
		analyzeUC: analyzeUC,
		session:   session,
		health:    healthState,
	}
}

// HandleAnalyze manda o transcript do lead para o oráculo e devolve a
// análise. Nada é gravado no lead: os placeholders continuam até a
// escrita do enriquecimento ser ligada.
func (h *AnalysisHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	phone := chi.URLParam(r, "phone")
	tc := h.session.Current()

	analysis, err := h.analyzeUC.Execute(r.Context(), tc, phone)
	if err != nil {
		if usecase.IsSchemaDrift(err) {
			respondSchemaDrift(w, h.health)
			return
		}
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}
