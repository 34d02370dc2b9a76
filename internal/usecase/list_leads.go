package usecase

import (
	"context"
	"log"

	"github.com/atumia/atumia-core/internal/entity"
)

type ListLeadsUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewListLeadsUseCase(repo entity.LeadRepositoryInterface) *ListLeadsUseCase {
	return &ListLeadsUseCase{Repo: repo}
}

// Execute lista os leads da organização vinculada, já normalizados
// (estágio canônico + score), do mais recente para o mais antigo.
// Sem tenant vinculado devolve lista vazia SEM tocar no banco. Falha
// transiente também degrada para lista vazia; só drift de schema sobe.
func (uc *ListLeadsUseCase) Execute(ctx context.Context, tc entity.TenantContext) ([]entity.Lead, error) {
	if !tc.Bound() {
		return []entity.Lead{}, nil
	}

	leads, err := uc.Repo.ListByOrg(ctx, tc.OrgID)
	if err != nil {
		if IsSchemaDrift(err) {
			return nil, err
		}
		log.Printf("❌ Erro ao buscar leads: %v", err)
		return []entity.Lead{}, nil
	}

	return leads, nil
}
