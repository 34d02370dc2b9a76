package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/atumia/atumia-core/internal/infra/queue"
)

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishInbound(ctx context.Context, payload queue.InboundMessagePayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// ============ TESTES ============

// TestWebhookEnfileira - Mensagem inbound válida vira payload na fila
// com o org da sessão e um event_id novo
func TestWebhookEnfileira(t *testing.T) {
	mockProducer := new(MockQueueProducer)
	mockProducer.On("PublishInbound", mock.Anything, mock.MatchedBy(func(p queue.InboundMessagePayload) bool {
		return p.OrgID == "org-1" &&
			p.Phone == "5511987654321" &&
			p.Message == "Quero um orçamento" &&
			p.EventID != ""
	})).Return(nil)

	h := NewWebhookHandler(mockProducer, testSession)

	req := httptest.NewRequest("POST", "/webhook/whatsapp",
		strings.NewReader(`{"phone":"5511987654321","name":"Carlos","message":"Quero um orçamento","message_type":"text"}`))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["event_id"])
	mockProducer.AssertExpectations(t)
}

// TestWebhookSemTenant - Sem vínculo de organização a mensagem é
// recusada com 409, nada vai para a fila
func TestWebhookSemTenant(t *testing.T) {
	mockProducer := new(MockQueueProducer)
	h := NewWebhookHandler(mockProducer, &fakeSession{})

	req := httptest.NewRequest("POST", "/webhook/whatsapp",
		strings.NewReader(`{"phone":"5511987654321","message":"Oi"}`))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	mockProducer.AssertNotCalled(t, "PublishInbound")
}

// TestWebhookPayloadIncompleto - Sem phone ou message: 400
func TestWebhookPayloadIncompleto(t *testing.T) {
	mockProducer := new(MockQueueProducer)
	h := NewWebhookHandler(mockProducer, testSession)

	for _, body := range []string{
		`{"message":"Oi"}`,
		`{"phone":"5511987654321"}`,
		`{not json`,
	} {
		req := httptest.NewRequest("POST", "/webhook/whatsapp", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Handle(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
	}

	mockProducer.AssertNotCalled(t, "PublishInbound")
}

// TestWebhookFilaFora - RabbitMQ indisponível: 503, o n8n tenta de novo
func TestWebhookFilaFora(t *testing.T) {
	mockProducer := new(MockQueueProducer)
	mockProducer.On("PublishInbound", mock.Anything, mock.Anything).Return(errors.New("channel closed"))

	h := NewWebhookHandler(mockProducer, testSession)

	req := httptest.NewRequest("POST", "/webhook/whatsapp",
		strings.NewReader(`{"phone":"5511987654321","message":"Oi"}`))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
