package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/atumia/atumia-core/internal/entity"
	"github.com/atumia/atumia-core/internal/infra/integration/gemini"
)

type AnalyzeLeadUseCase struct {
	Conversations entity.ConversationRepositoryInterface
	Oracle        OracleInterface
}

func NewAnalyzeLeadUseCase(conversations entity.ConversationRepositoryInterface, oracle OracleInterface) *AnalyzeLeadUseCase {
	return &AnalyzeLeadUseCase{Conversations: conversations, Oracle: oracle}
}

// Execute manda o transcript da conversa do lead para o oráculo e
// devolve a análise estruturada. A análise NÃO é gravada no lead: os
// campos de enriquecimento continuam placeholders até a escrita ser
// ligada de propósito.
func (uc *AnalyzeLeadUseCase) Execute(ctx context.Context, tc entity.TenantContext, phone string) (*gemini.LeadAnalysis, error) {
	if !tc.Bound() {
		return nil, &DomainError{
			Code:    "NO_TENANT_BOUND",
			Message: "nenhuma organização vinculada à sessão",
		}
	}

	conversations, err := uc.Conversations.RecentByPhone(ctx, tc.OrgID, phone, 20)
	if err != nil {
		if IsSchemaDrift(err) {
			return nil, err
		}
		log.Printf("❌ Erro ao buscar conversas para análise: %v", err)
		return nil, &DomainError{
			Code:    "CONVERSATION_UNAVAILABLE",
			Message: "não foi possível montar o transcript do lead",
		}
	}

	if len(conversations) == 0 {
		return nil, &DomainError{
			Code:    "NO_CONVERSATION",
			Message: "lead ainda não tem conversa registrada",
		}
	}

	analysis, err := uc.Oracle.AnalyzeLeadConversation(ctx, Transcript(conversations))
	if err != nil {
		// Oráculo fora do ar nunca é fatal: o board segue com placeholders
		log.Printf("⚠️ Oráculo indisponível para análise: %v", err)
		return nil, &DomainError{
			Code:    "ANALYSIS_UNAVAILABLE",
			Message: "análise de IA indisponível no momento",
		}
	}

	return analysis, nil
}

// Transcript achata os turnos no formato que o prompt do oráculo espera.
func Transcript(conversations []entity.Conversation) []string {
	lines := make([]string, 0, len(conversations))
	for _, c := range conversations {
		if c.UserMessage != "" {
			lines = append(lines, fmt.Sprintf("Lead: %s", c.UserMessage))
		}
		if c.BotMessage != "" {
			lines = append(lines, fmt.Sprintf("Atumia: %s", c.BotMessage))
		}
	}
	return lines
}
