package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/atumia/atumia-core/internal/entity"
)

type ValidateOrganizationUseCase struct {
	Repo    entity.OrganizationRepositoryInterface
	Session SessionStoreInterface
}

func NewValidateOrganizationUseCase(repo entity.OrganizationRepositoryInterface, session SessionStoreInterface) *ValidateOrganizationUseCase {
	return &ValidateOrganizationUseCase{Repo: repo, Session: session}
}

// Execute valida a tripla id + nome + whatsapp contra o banco e, SE o
// match for exato, substitui o vínculo da sessão por inteiro. Em
// qualquer falha a sessão fica como estava — o vínculo antigo continua
// valendo.
func (uc *ValidateOrganizationUseCase) Execute(ctx context.Context, input ValidateOrganizationInput) (*entity.Organization, error) {
	if validationErrors := ValidateOrganizationInputFields(input); len(validationErrors) > 0 {
		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: errMsg,
		}
	}

	org, err := uc.Repo.FindExact(ctx, input.ID, input.Name, input.WhatsApp)
	if err != nil {
		if IsSchemaDrift(err) {
			return nil, err
		}
		if errors.Is(err, entity.ErrOrganizationNotFound) {
			return nil, &DomainError{
				Code:    "ORG_MISMATCH",
				Message: "nenhuma organização casou com id + nome + whatsapp",
			}
		}
		log.Printf("❌ Erro na validação de organização: %v", err)
		return nil, &DomainError{
			Code:    "ORG_MISMATCH",
			Message: "não foi possível validar a organização",
		}
	}

	tc := entity.NewTenantContext(org)
	if err := uc.Session.Save(tc); err != nil {
		return nil, &TechnicalError{
			Code:    "SESSION_WRITE_FAILED",
			Message: "organização válida, mas falhou ao persistir a sessão: " + err.Error(),
		}
	}

	return org, nil
}
