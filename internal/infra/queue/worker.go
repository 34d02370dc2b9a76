package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/atumia/atumia-core/internal/entity"
	"github.com/atumia/atumia-core/internal/health"
)

// OracleClient gera a próxima resposta do SDR. Implementação nunca
// retorna erro: falha degrada para fallback estático.
type OracleClient interface {
	GenerateSDRResponse(ctx context.Context, leadContext, lastUserMessage string) string
}

// MessageSender manda a resposta de volta para o lead no WhatsApp.
type MessageSender interface {
	SendText(phone, message string) error
}

type Worker struct {
	Channel       *amqp.Channel
	Conversations entity.ConversationRepositoryInterface
	Oracle        OracleClient
	Sender        MessageSender
	Health        *health.State
}

func NewWorker(ch *amqp.Channel, conversations entity.ConversationRepositoryInterface, oracle OracleClient, sender MessageSender, healthState *health.State) *Worker {
	return &Worker{
		Channel:       ch,
		Conversations: conversations,
		Oracle:        oracle,
		Sender:        sender,
		Health:        healthState,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			log.Printf("📥 [WORKER] Mensagem recebida do RabbitMQ")

			var payload InboundMessagePayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON inválido: %s", err)
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("⚙️ [WORKER] Processando mensagem de %s (org: %s)", payload.Phone, payload.OrgID)

			if err := w.ProcessMessage(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] Erro no processamento: %s", err)
				d.Nack(false, false)
			} else {
				log.Printf("✅ [WORKER] Resposta SDR enviada para %s", payload.Phone)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker SDR rodando e aguardando na fila '%s'", queueName)
	<-forever
}

// ProcessMessage roda a esteira SDR completa para uma mensagem:
// grava o turno do lead, monta o contexto da conversa, pede a resposta
// ao oráculo (com fallback estático embutido), envia e grava o turno
// do bot.
func (w *Worker) ProcessMessage(ctx context.Context, payload InboundMessagePayload) error {
	if payload.OrgID == "" {
		log.Printf("⚠️ [WORKER] Mensagem sem org_id de %s. Apenas logando.", payload.Phone)
		// ACK para tirar da fila: sem tenant não há onde gravar
		return nil
	}
	if payload.Phone == "" || payload.Message == "" {
		log.Printf("⚠️ [WORKER] Payload incompleto (event: %s). Descartando.", payload.EventID)
		return nil
	}

	if err := w.Conversations.SaveUserMessage(ctx, payload.OrgID, payload.Phone, payload.Name, payload.Message, payload.MessageType); err != nil {
		if w.isDrift(err) {
			return err
		}
		return fmt.Errorf("falha ao gravar mensagem do lead: %w", err)
	}

	leadContext := w.buildContext(ctx, payload)

	reply := w.Oracle.GenerateSDRResponse(ctx, leadContext, payload.Message)

	if err := w.Sender.SendText(payload.Phone, reply); err != nil {
		return fmt.Errorf("falha ao enviar resposta no WhatsApp: %w", err)
	}

	if err := w.Conversations.SaveBotMessage(ctx, payload.OrgID, payload.Phone, payload.Name, reply); err != nil {
		if w.isDrift(err) {
			return err
		}
		// Resposta já saiu; perder o log do turno do bot não é fatal
		log.Printf("⚠️ [WORKER] Resposta enviada mas não gravada: %v", err)
	}

	return nil
}

func (w *Worker) buildContext(ctx context.Context, payload InboundMessagePayload) string {
	conversations, err := w.Conversations.RecentByPhone(ctx, payload.OrgID, payload.Phone, 10)
	if err != nil {
		if w.isDrift(err) {
			log.Printf("⚠️ [WORKER] Drift ao montar contexto, seguindo sem histórico")
		} else {
			log.Printf("⚠️ [WORKER] Sem histórico para contexto: %v", err)
		}
		return fmt.Sprintf("Lead %s (%s), sem histórico de conversa.", payload.Name, payload.Phone)
	}

	var lines []string
	for _, c := range conversations {
		if c.UserMessage != "" {
			lines = append(lines, "Lead: "+c.UserMessage)
		}
		if c.BotMessage != "" {
			lines = append(lines, "Atumia: "+c.BotMessage)
		}
	}
	return strings.Join(lines, "\n")
}

func (w *Worker) isDrift(err error) bool {
	if !errors.Is(err, entity.ErrDatabaseNotInitialized) {
		return false
	}
	if w.Health != nil {
		w.Health.MarkSchemaDrift()
	}
	return true
}
