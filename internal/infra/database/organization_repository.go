package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/atumia/atumia-core/internal/entity"
)

type OrganizationRepository struct {
	DB *sql.DB
}

func NewOrganizationRepository(db *sql.DB) *OrganizationRepository {
	return &OrganizationRepository{DB: db}
}

// FindExact exige match exato da tripla. Sem fuzzy, sem match parcial:
// ou o operador digitou a credencial certa ou não valida.
func (r *OrganizationRepository) FindExact(ctx context.Context, id, name, whatsapp string) (*entity.Organization, error) {
	query := `
		SELECT id, name, COALESCE(whatsapp_number, ''), created_at
		FROM organizations
		WHERE id = $1 AND name = $2 AND whatsapp_number = $3
	`

	var org entity.Organization
	err := r.DB.QueryRowContext(ctx, query, id, name, whatsapp).Scan(
		&org.ID,
		&org.Name,
		&org.WhatsAppNumber,
		&org.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrOrganizationNotFound
		}
		return nil, wrapStoreError("validar organização", err)
	}

	return &org, nil
}
