package usecase

import (
	"context"
	"log"

	"github.com/atumia/atumia-core/internal/entity"
)

type CreateLeadUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewCreateLeadUseCase(repo entity.LeadRepositoryInterface) *CreateLeadUseCase {
	return &CreateLeadUseCase{Repo: repo}
}

// Execute insere um lead com o status em texto livre, do jeito que
// chegou (default "frio"). Devolve false para qualquer falha que não
// seja drift de schema; drift sobe como erro distinto.
func (uc *CreateLeadUseCase) Execute(ctx context.Context, tc entity.TenantContext, input CreateLeadInput) (bool, error) {
	if !tc.Bound() {
		return false, nil
	}

	if validationErrors := ValidateCreateLeadInput(input); len(validationErrors) > 0 {
		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		return false, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: errMsg,
		}
	}

	rawStatus := input.RawStatus
	if rawStatus == "" {
		rawStatus = string(entity.StageCold)
	}

	err := uc.Repo.Insert(ctx, tc.OrgID, entity.NewLeadInput{
		Name:      input.Name,
		Phone:     input.Phone,
		RawStatus: rawStatus,
	})
	if err != nil {
		if IsSchemaDrift(err) {
			return false, err
		}
		log.Printf("❌ Erro ao criar lead: %v", err)
		return false, nil
	}

	return true, nil
}
