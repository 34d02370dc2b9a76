package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/atumia/atumia-core/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// leadRow é a linha crua como ela vive no banco (colunas herdadas do
// fluxo n8n: telefone, nomewpp, atendimento_ia). Tudo opcional menos o
// id; a normalização para entity.Lead acontece em leadFromRow.
type leadRow struct {
	ID              string
	Telefone        sql.NullString
	NomeWpp         sql.NullString
	AtendimentoIA   sql.NullString
	LastInteraction sql.NullTime
	CreatedAt       sql.NullTime
}

func (r *LeadRepository) ListByOrg(ctx context.Context, orgID string) ([]entity.Lead, error) {
	query := `
		SELECT id::text, telefone, nomewpp, atendimento_ia, last_interaction, created_at
		FROM leads
		WHERE org_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, wrapStoreError("listar leads", err)
	}
	defer rows.Close()

	leads := []entity.Lead{}
	for rows.Next() {
		var row leadRow
		if err := rows.Scan(
			&row.ID,
			&row.Telefone,
			&row.NomeWpp,
			&row.AtendimentoIA,
			&row.LastInteraction,
			&row.CreatedAt,
		); err != nil {
			return nil, wrapStoreError("ler linha de lead", err)
		}
		leads = append(leads, leadFromRow(row))
	}

	if err := rows.Err(); err != nil {
		return nil, wrapStoreError("listar leads", err)
	}

	return leads, nil
}

func (r *LeadRepository) Insert(ctx context.Context, orgID string, input entity.NewLeadInput) error {
	query := `
		INSERT INTO leads (telefone, nomewpp, atendimento_ia, org_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`

	// O status entra cru (texto livre). Canonicalizar é papel da leitura.
	_, err := r.DB.ExecContext(ctx, query,
		input.Phone,
		input.Name,
		input.RawStatus,
		orgID,
	)
	if err != nil {
		return wrapStoreError("inserir lead", err)
	}

	return nil
}

func (r *LeadRepository) CountByOrg(ctx context.Context, orgID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM leads WHERE org_id = $1`, orgID,
	).Scan(&count)
	if err != nil {
		return 0, wrapStoreError("contar leads", err)
	}
	return count, nil
}

func (r *LeadRepository) StatusesByOrg(ctx context.Context, orgID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT COALESCE(atendimento_ia, '') FROM leads WHERE org_id = $1`, orgID,
	)
	if err != nil {
		return nil, wrapStoreError("listar status de leads", err)
	}
	defer rows.Close()

	var statuses []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, wrapStoreError("ler status de lead", err)
		}
		statuses = append(statuses, s)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapStoreError("listar status de leads", err)
	}

	return statuses, nil
}

// leadFromRow normaliza a linha crua: status mapeado para o estágio
// canônico, score derivado do estágio, telefone ausente vira vazio,
// nome ausente vira o placeholder, last_interaction cai para created_at.
func leadFromRow(row leadRow) entity.Lead {
	stage := entity.MapStatus(row.AtendimentoIA.String)

	name := row.NomeWpp.String
	if name == "" {
		name = entity.AnonymousLeadName
	}

	lastInteraction := row.LastInteraction.Time
	if !row.LastInteraction.Valid {
		if row.CreatedAt.Valid {
			lastInteraction = row.CreatedAt.Time
		} else {
			lastInteraction = time.Now()
		}
	}

	return entity.Lead{
		ID:              row.ID,
		Phone:           row.Telefone.String,
		Name:            name,
		Status:          stage,
		Score:           entity.EstimateScore(stage),
		LastInteraction: lastInteraction,
		AISummary:       entity.PlaceholderSummary,
		Interest:        entity.PlaceholderInterest,
		Urgency:         entity.PlaceholderUrgency,
	}
}
