package entity

import (
	"context"
	"strings"
	"time"
	// IMPORTANTE: NÃO adicione imports de usecase ou infra aqui!
)

// Stage é o estágio canônico do funil. O banco guarda texto livre em
// atendimento_ia; o estágio canônico só existe do lado da leitura.
type Stage string

const (
	StageCold       Stage = "frio"
	StageProcessing Stage = "qualificando"
	StageQualified  Stage = "qualificado"
	StageScheduled  Stage = "agendado"
	StageClosed     Stage = "fechado"
)

// StageOrder define a ordem das colunas do Kanban. Fixa nesta versão.
var StageOrder = []Stage{StageCold, StageProcessing, StageQualified, StageScheduled, StageClosed}

// Placeholders de enriquecimento. O oráculo de IA ainda não grava
// esses campos por lead (ponto de extensão, ver analyze).
const (
	AnonymousLeadName   = "Lead Anônimo"
	PlaceholderSummary  = "Processando via Atumia SDR..."
	PlaceholderInterest = "Identificando interesse..."
	PlaceholderUrgency  = "media"
)

// Entidade: Lead
type Lead struct {
	ID              string    `json:"id"`
	Phone           string    `json:"phone"`
	Name            string    `json:"name"`
	Status          Stage     `json:"status"`
	Score           int       `json:"score"`
	LastInteraction time.Time `json:"lastInteraction"`
	AISummary       string    `json:"aiSummary"`
	Interest        string    `json:"interest"`
	Urgency         string    `json:"urgency"`
}

// NewLeadInput é o que o board envia para criar um lead. O status vai
// cru para o banco (texto livre), sem canonicalizar.
type NewLeadInput struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	RawStatus string `json:"status"`
}

type LeadRepositoryInterface interface {
	ListByOrg(ctx context.Context, orgID string) ([]Lead, error)
	Insert(ctx context.Context, orgID string, input NewLeadInput) error
	CountByOrg(ctx context.Context, orgID string) (int, error)
	StatusesByOrg(ctx context.Context, orgID string) ([]string, error)
}

// MapStatus converte o texto livre de atendimento_ia num estágio
// canônico. Primeira regra que casar vence; função total, nunca falha.
// O banco chega em português, mas aceitamos também os equivalentes em
// inglês que alguns conectores gravam.
func MapStatus(raw string) Stage {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" {
		return StageCold
	}

	switch {
	case containsAny(lower, "fechado", "ganho", "closed", "won"):
		return StageClosed
	case containsAny(lower, "agendado", "scheduled"):
		return StageScheduled
	case containsAny(lower, "qualificado", "qualified"):
		return StageQualified
	case containsAny(lower, "andamento", "qualificando", "in-progress", "processing", "ia", "ai"):
		return StageProcessing
	default:
		return StageCold
	}
}

// EstimateScore devolve o score provisório do estágio. Tabela fixa até
// o score real vir da análise de conversa do oráculo.
func EstimateScore(stage Stage) int {
	switch stage {
	case StageClosed:
		return 100
	case StageScheduled:
		return 95
	case StageQualified:
		return 80
	case StageProcessing:
		return 50
	default:
		return 20
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
