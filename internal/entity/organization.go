package entity

import (
	"context"
	"time"
)

// Entidade: Organization (tenant). Criada fora daqui, direto no banco.
// A validação exige match exato da tripla id + nome + whatsapp.
type Organization struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	WhatsAppNumber string    `json:"whatsapp_number"`
	CreatedAt      time.Time `json:"created_at"`
}

type OrganizationRepositoryInterface interface {
	FindExact(ctx context.Context, id, name, whatsapp string) (*Organization, error)
}
