package handlers

import (
	"net/http"

	"github.com/atumia/atumia-core/internal/health"
	"github.com/atumia/atumia-core/internal/usecase"
)

type OrganizationHandler struct {
	validateUC *usecase.ValidateOrganizationUseCase
	session    usecase.SessionStoreInterface
	health     *health.State
}

func NewOrganizationHandler(validateUC *usecase.ValidateOrganizationUseCase, session usecase.SessionStoreInterface, healthState *health.State) *OrganizationHandler {
	return &OrganizationHandler{
		validateUC: validateUC,
		session:    session,
		health:     healthState,
	}
}

type ValidateOrganizationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	OrgID   string `json:"org_id,omitempty"`
	OrgName string `json:"org_name,omitempty"`
}

// HandleValidate é o validate-and-bind da tela de configurações: match
// exato da tripla contra o banco e, só então, troca do vínculo da
// sessão. Erro de match deixa o vínculo antigo intacto.
func (h *OrganizationHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var input usecase.ValidateOrganizationInput
	if err := decodeJSON(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, ValidateOrganizationResponse{
			Success: false,
			Message: "Invalid JSON",
		})
		return
	}

	org, err := h.validateUC.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsSchemaDrift(err) {
			respondSchemaDrift(w, h.health)
			return
		}
		status := http.StatusNotFound
		if usecase.IsTechnicalError(err) {
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, ValidateOrganizationResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, ValidateOrganizationResponse{
		Success: true,
		OrgID:   org.ID,
		OrgName: org.Name,
	})
}

// HandleCurrent devolve o vínculo ativo, para a tela de configurações
// pré-preencher o formulário.
func (h *OrganizationHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Current())
}
