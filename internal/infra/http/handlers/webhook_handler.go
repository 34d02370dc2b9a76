package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/atumia/atumia-core/internal/infra/http/middleware"
	"github.com/atumia/atumia-core/internal/infra/queue"
	"github.com/atumia/atumia-core/internal/usecase"
)

// WebhookHandler recebe mensagens inbound do WhatsApp (via n8n) e só
// enfileira: o processamento SDR roda no worker, fora da request.
type WebhookHandler struct {
	producer queue.QueueProducerInterface
	session  usecase.SessionStoreInterface
}

func NewWebhookHandler(producer queue.QueueProducerInterface, session usecase.SessionStoreInterface) *WebhookHandler {
	return &WebhookHandler{
		producer: producer,
		session:  session,
	}
}

type InboundMessageRequest struct {
	Phone       string `json:"phone"`
	Name        string `json:"name"`
	Message     string `json:"message"`
	MessageType string `json:"message_type"`
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req InboundMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}

	if req.Phone == "" || req.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "phone e message são obrigatórios"})
		return
	}

	tc := h.session.Current()
	if !tc.Bound() {
		// Sem organização vinculada não há onde pendurar a conversa
		writeJSON(w, http.StatusConflict, map[string]string{"error": "nenhuma organização vinculada"})
		return
	}

	payload := queue.InboundMessagePayload{
		EventID:     uuid.New().String(),
		OrgID:       tc.OrgID,
		Phone:       req.Phone,
		Name:        req.Name,
		Message:     req.Message,
		MessageType: req.MessageType,
	}

	if err := h.producer.PublishInbound(r.Context(), payload); err != nil {
		middleware.RecordIntegrationError("rabbitmq")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "fila indisponível"})
		return
	}

	middleware.RecordInboundMessage("queued")
	writeJSON(w, http.StatusAccepted, map[string]string{"event_id": payload.EventID})
}
