package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/atumia/atumia-core/internal/entity"
)

// EventsHandler é o hub de Server-Sent Events do board: cada cliente
// conectado recebe a lista fresca de leads sempre que o refetcher
// coalescido termina uma rodada. O canal não é escopado por tenant;
// quem consome filtra (ou simplesmente re-renderiza — leitura é
// idempotente).
type EventsHandler struct {
	mu   sync.Mutex
	subs map[chan []byte]struct{}
}

func NewEventsHandler() *EventsHandler {
	return &EventsHandler{
		subs: make(map[chan []byte]struct{}),
	}
}

// BroadcastLeads empurra a lista fresca para todos os clientes SSE.
// Cliente lento perde o evento (buffer 1) — a próxima rodada corrige.
func (h *EventsHandler) BroadcastLeads(leads []entity.Lead) {
	payload, err := json.Marshal(leads)
	if err != nil {
		log.Printf("⚠️ SSE: falha ao serializar leads: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- payload:
		default:
		}
	}
}

func (h *EventsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming não suportado", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan []byte, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}()

	fmt.Fprintf(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case payload := <-ch:
			fmt.Fprintf(w, "event: leads\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
