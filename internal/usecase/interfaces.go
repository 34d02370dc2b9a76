package usecase

import (
	"context"

	"github.com/atumia/atumia-core/internal/entity"
	"github.com/atumia/atumia-core/internal/infra/integration/gemini"
)

// OracleInterface é o oráculo de IA consumido como caixa-preta: entra
// transcript, sai análise estruturada; entra contexto, sai resposta.
// Falha do oráculo degrada para fallback estático, nunca derruba nada.
type OracleInterface interface {
	AnalyzeLeadConversation(ctx context.Context, messages []string) (*gemini.LeadAnalysis, error)
	GenerateSDRResponse(ctx context.Context, leadContext, lastUserMessage string) string
}

// SessionStoreInterface guarda o vínculo de organização da sessão do
// operador. Só o validate-and-bind escreve nele.
type SessionStoreInterface interface {
	Current() entity.TenantContext
	Save(tc entity.TenantContext) error
}

type CreateLeadInput struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	RawStatus string `json:"status"`
}

type ValidateOrganizationInput struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	WhatsApp string `json:"whatsapp"`
}

// DashboardMetrics é o resumo que alimenta os cards do dashboard.
type DashboardMetrics struct {
	Leads     int `json:"leads"`
	Messages  int `json:"messages"`
	Qualified int `json:"qualified"`
}
