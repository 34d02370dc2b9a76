package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/atumia/atumia-core/internal/entity"
)

// TestCreateLeadSuccess - Fluxo feliz com status informado
func TestCreateLeadSuccess(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)

	mockRepo.On("Insert", ctx, "org-1", entity.NewLeadInput{
		Name:      "Carlos",
		Phone:     "5511987654321",
		RawStatus: "agendado",
	}).Return(nil)

	uc := NewCreateLeadUseCase(mockRepo)
	ok, err := uc.Execute(ctx, boundTenant, CreateLeadInput{
		Name:      "Carlos",
		Phone:     "5511987654321",
		RawStatus: "agendado",
	})

	assert.NoError(t, err)
	assert.True(t, ok)
	mockRepo.AssertExpectations(t)
}

// TestCreateLeadStatusDefault - Status vazio entra como "frio" (texto
// cru, sem canonicalizar o que o caller mandou)
func TestCreateLeadStatusDefault(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)

	mockRepo.On("Insert", ctx, "org-1", entity.NewLeadInput{
		Name:      "Carlos",
		Phone:     "5511987654321",
		RawStatus: "frio",
	}).Return(nil)

	uc := NewCreateLeadUseCase(mockRepo)
	ok, err := uc.Execute(ctx, boundTenant, CreateLeadInput{
		Name:  "Carlos",
		Phone: "5511987654321",
	})

	assert.NoError(t, err)
	assert.True(t, ok)
	mockRepo.AssertExpectations(t)
}

// TestCreateLeadSemTenant - Sem vínculo não grava e não toca no banco
func TestCreateLeadSemTenant(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)

	uc := NewCreateLeadUseCase(mockRepo)
	ok, err := uc.Execute(ctx, entity.TenantContext{}, CreateLeadInput{
		Name:  "Carlos",
		Phone: "5511987654321",
	})

	assert.NoError(t, err)
	assert.False(t, ok)
	mockRepo.AssertNotCalled(t, "Insert")
}

// TestCreateLeadValidation - Input inválido vira DomainError antes de
// chegar no repositório
func TestCreateLeadValidation(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)
	uc := NewCreateLeadUseCase(mockRepo)

	// nome vazio
	ok, err := uc.Execute(ctx, boundTenant, CreateLeadInput{Phone: "5511987654321"})
	assert.False(t, ok)
	assert.True(t, IsDomainError(err))

	// telefone com máscara (só dígitos são aceitos)
	ok, err = uc.Execute(ctx, boundTenant, CreateLeadInput{Name: "Carlos", Phone: "(11) 98765-4321"})
	assert.False(t, ok)
	assert.True(t, IsDomainError(err))

	mockRepo.AssertNotCalled(t, "Insert")
}

// TestCreateLeadFalhaTransiente - Falha comum do banco vira false sem erro
func TestCreateLeadFalhaTransiente(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)

	mockRepo.On("Insert", ctx, "org-1", mock.Anything).Return(errors.New("connection refused"))

	uc := NewCreateLeadUseCase(mockRepo)
	ok, err := uc.Execute(ctx, boundTenant, CreateLeadInput{
		Name:  "Carlos",
		Phone: "5511987654321",
	})

	assert.NoError(t, err)
	assert.False(t, ok)
}

// TestCreateLeadDriftSobe - Drift de schema sobe como erro distinto
func TestCreateLeadDriftSobe(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)

	driftErr := fmt.Errorf("inserir lead: %w", entity.ErrDatabaseNotInitialized)
	mockRepo.On("Insert", ctx, "org-1", mock.Anything).Return(driftErr)

	uc := NewCreateLeadUseCase(mockRepo)
	ok, err := uc.Execute(ctx, boundTenant, CreateLeadInput{
		Name:  "Carlos",
		Phone: "5511987654321",
	})

	assert.False(t, ok)
	assert.True(t, errors.Is(err, entity.ErrDatabaseNotInitialized))
}
