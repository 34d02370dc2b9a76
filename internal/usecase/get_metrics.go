package usecase

import (
	"context"
	"log"

	"github.com/atumia/atumia-core/internal/entity"
)

// QualifiedRatio é a proxy estática de leads qualificados usada no modo
// barato: floor(leads * 0.35). Aproximação assumida, não contagem real.
const QualifiedRatio = 0.35

type GetMetricsUseCase struct {
	Leads         entity.LeadRepositoryInterface
	Conversations entity.ConversationRepositoryInterface

	// ExactQualified troca a proxy por uma contagem exata, mapeando
	// cada status gravado para o estágio canônico.
	ExactQualified bool
}

func NewGetMetricsUseCase(leads entity.LeadRepositoryInterface, conversations entity.ConversationRepositoryInterface, exactQualified bool) *GetMetricsUseCase {
	return &GetMetricsUseCase{
		Leads:          leads,
		Conversations:  conversations,
		ExactQualified: exactQualified,
	}
}

// Execute monta o resumo do dashboard. Sem tenant → tudo zero, sem
// tocar no banco. Drift em qualquer contagem derruba a operação
// inteira; qualquer outra falha degrada para zeros e é logada.
func (uc *GetMetricsUseCase) Execute(ctx context.Context, tc entity.TenantContext) (DashboardMetrics, error) {
	zero := DashboardMetrics{}

	if !tc.Bound() {
		return zero, nil
	}

	leadsCount, err := uc.Leads.CountByOrg(ctx, tc.OrgID)
	if err != nil {
		if IsSchemaDrift(err) {
			return zero, err
		}
		log.Printf("❌ Erro ao contar leads: %v", err)
		return zero, nil
	}

	messagesCount, err := uc.Conversations.CountByOrg(ctx, tc.OrgID)
	if err != nil {
		if IsSchemaDrift(err) {
			return zero, err
		}
		log.Printf("❌ Erro ao contar conversas: %v", err)
		return zero, nil
	}

	qualified := int(float64(leadsCount) * QualifiedRatio)
	if uc.ExactQualified {
		exact, err := uc.countQualified(ctx, tc.OrgID)
		if err != nil {
			if IsSchemaDrift(err) {
				return zero, err
			}
			// Contagem exata falhou: fica a proxy, que já temos de graça
			log.Printf("⚠️ Contagem exata de qualificados falhou, usando proxy: %v", err)
		} else {
			qualified = exact
		}
	}

	return DashboardMetrics{
		Leads:     leadsCount,
		Messages:  messagesCount,
		Qualified: qualified,
	}, nil
}

func (uc *GetMetricsUseCase) countQualified(ctx context.Context, orgID string) (int, error) {
	statuses, err := uc.Leads.StatusesByOrg(ctx, orgID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, raw := range statuses {
		if entity.MapStatus(raw) == entity.StageQualified {
			count++
		}
	}
	return count, nil
}
