package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/atumia/atumia-core/internal/entity"
	"github.com/atumia/atumia-core/internal/infra/integration/gemini"
)

// MockOracle
type MockOracle struct {
	mock.Mock
}

func (m *MockOracle) AnalyzeLeadConversation(ctx context.Context, messages []string) (*gemini.LeadAnalysis, error) {
	args := m.Called(ctx, messages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gemini.LeadAnalysis), args.Error(1)
}

func (m *MockOracle) GenerateSDRResponse(ctx context.Context, leadContext, lastUserMessage string) string {
	args := m.Called(ctx, leadContext, lastUserMessage)
	return args.String(0)
}

// ============ TESTES ============

// TestAnalyzeLeadSuccess - Conversa vira transcript, oráculo devolve análise
func TestAnalyzeLeadSuccess(t *testing.T) {
	ctx := context.Background()
	mockConvs := new(MockConversationRepository)
	mockOracle := new(MockOracle)

	conversations := []entity.Conversation{
		{UserMessage: "Quero automatizar meu atendimento"},
		{BotMessage: "Claro! Qual o tamanho da sua operação?"},
		{UserMessage: "Somos 12 vendedores"},
	}
	mockConvs.On("RecentByPhone", ctx, "org-1", "5511987654321", 20).Return(conversations, nil)

	analysis := &gemini.LeadAnalysis{
		Name:     "Carlos",
		Interest: "Automação de atendimento",
		Urgency:  "alta",
		Score:    85,
		Summary:  "Lead com operação de 12 vendedores buscando automação.",
	}
	mockOracle.On("AnalyzeLeadConversation", ctx, []string{
		"Lead: Quero automatizar meu atendimento",
		"Atumia: Claro! Qual o tamanho da sua operação?",
		"Lead: Somos 12 vendedores",
	}).Return(analysis, nil)

	uc := NewAnalyzeLeadUseCase(mockConvs, mockOracle)
	result, err := uc.Execute(ctx, boundTenant, "5511987654321")

	assert.NoError(t, err)
	assert.Equal(t, analysis, result)
}

// TestAnalyzeLeadSemTenant - Sem vínculo nada roda
func TestAnalyzeLeadSemTenant(t *testing.T) {
	ctx := context.Background()
	mockConvs := new(MockConversationRepository)
	mockOracle := new(MockOracle)

	uc := NewAnalyzeLeadUseCase(mockConvs, mockOracle)
	result, err := uc.Execute(ctx, entity.TenantContext{}, "5511987654321")

	assert.Nil(t, result)
	assert.True(t, IsDomainError(err))
	mockConvs.AssertNotCalled(t, "RecentByPhone")
	mockOracle.AssertNotCalled(t, "AnalyzeLeadConversation")
}

// TestAnalyzeLeadSemConversa - Lead sem histórico: DomainError, oráculo intocado
func TestAnalyzeLeadSemConversa(t *testing.T) {
	ctx := context.Background()
	mockConvs := new(MockConversationRepository)
	mockOracle := new(MockOracle)

	mockConvs.On("RecentByPhone", ctx, "org-1", "5511987654321", 20).Return([]entity.Conversation{}, nil)

	uc := NewAnalyzeLeadUseCase(mockConvs, mockOracle)
	result, err := uc.Execute(ctx, boundTenant, "5511987654321")

	assert.Nil(t, result)
	assert.True(t, IsDomainError(err))
	mockOracle.AssertNotCalled(t, "AnalyzeLeadConversation")
}

// TestAnalyzeLeadOraculoFora - Falha do oráculo nunca é fatal: vira
// DomainError e o board segue com placeholders
func TestAnalyzeLeadOraculoFora(t *testing.T) {
	ctx := context.Background()
	mockConvs := new(MockConversationRepository)
	mockOracle := new(MockOracle)

	mockConvs.On("RecentByPhone", ctx, "org-1", "5511987654321", 20).
		Return([]entity.Conversation{{UserMessage: "Olá"}}, nil)
	mockOracle.On("AnalyzeLeadConversation", ctx, mock.Anything).
		Return(nil, errors.New("gemini api error: 503"))

	uc := NewAnalyzeLeadUseCase(mockConvs, mockOracle)
	result, err := uc.Execute(ctx, boundTenant, "5511987654321")

	assert.Nil(t, result)
	assert.True(t, IsDomainError(err))
	assert.False(t, IsTechnicalError(err))
}

// TestTranscript - Turnos vazios não entram; ordem cronológica preservada
func TestTranscript(t *testing.T) {
	lines := Transcript([]entity.Conversation{
		{UserMessage: "Oi"},
		{BotMessage: "Olá! Como posso ajudar?"},
		{UserMessage: "", BotMessage: ""},
		{UserMessage: "Preciso de um orçamento"},
	})

	assert.Equal(t, []string{
		"Lead: Oi",
		"Atumia: Olá! Como posso ajudar?",
		"Lead: Preciso de um orçamento",
	}, lines)
}
