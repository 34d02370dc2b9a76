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

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) ListByOrg(ctx context.Context, orgID string) ([]entity.Lead, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Insert(ctx context.Context, orgID string, input entity.NewLeadInput) error {
	args := m.Called(ctx, orgID, input)
	return args.Error(0)
}

func (m *MockLeadRepository) CountByOrg(ctx context.Context, orgID string) (int, error) {
	args := m.Called(ctx, orgID)
	return args.Int(0), args.Error(1)
}

func (m *MockLeadRepository) StatusesByOrg(ctx context.Context, orgID string) ([]string, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

var boundTenant = entity.TenantContext{
	OrgID:    "org-1",
	OrgName:  "Indústria Alfa",
	WhatsApp: "5511999999999",
}

// ============ TESTES ============

// TestListLeadsSuccess - Fluxo feliz: tenant vinculado, leads normalizados
func TestListLeadsSuccess(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)

	expected := []entity.Lead{
		{ID: "1", Name: "Carlos", Status: entity.StageScheduled, Score: 95},
		{ID: "2", Name: entity.AnonymousLeadName, Status: entity.StageCold, Score: 20},
	}
	mockRepo.On("ListByOrg", ctx, "org-1").Return(expected, nil)

	uc := NewListLeadsUseCase(mockRepo)
	leads, err := uc.Execute(ctx, boundTenant)

	assert.NoError(t, err)
	assert.Equal(t, expected, leads)
	mockRepo.AssertCalled(t, "ListByOrg", ctx, "org-1")
}

// TestListLeadsSemTenant - Sem vínculo: lista vazia e o banco NUNCA é tocado
func TestListLeadsSemTenant(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)

	uc := NewListLeadsUseCase(mockRepo)
	leads, err := uc.Execute(ctx, entity.TenantContext{})

	assert.NoError(t, err)
	assert.NotNil(t, leads)
	assert.Empty(t, leads)
	mockRepo.AssertNotCalled(t, "ListByOrg")
}

// TestListLeadsDriftSobe - Drift de schema NÃO é engolido: sobe intacto
func TestListLeadsDriftSobe(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)

	driftErr := fmt.Errorf("listar leads: %w", entity.ErrDatabaseNotInitialized)
	mockRepo.On("ListByOrg", ctx, "org-1").Return(nil, driftErr)

	uc := NewListLeadsUseCase(mockRepo)
	leads, err := uc.Execute(ctx, boundTenant)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrDatabaseNotInitialized))
	assert.Nil(t, leads)
}

// TestListLeadsFalhaTransiente - Falha comum degrada para lista vazia, sem erro
func TestListLeadsFalhaTransiente(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)

	mockRepo.On("ListByOrg", ctx, "org-1").Return(nil, errors.New("connection refused"))

	uc := NewListLeadsUseCase(mockRepo)
	leads, err := uc.Execute(ctx, boundTenant)

	assert.NoError(t, err)
	assert.NotNil(t, leads)
	assert.Empty(t, leads)
}
