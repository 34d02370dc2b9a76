package realtime

import (
	"context"
	"sync"

	"github.com/atumia/atumia-core/internal/entity"
)

type FetchFunc func(ctx context.Context) ([]entity.Lead, error)

// Refetcher transforma rajadas de notificações em refetches coalescidos:
// notificação que chega com fetch em voo só marca "pendente", e no
// máximo UM fetch extra roda depois que o atual termina. Refetch
// redundante é tolerado (leitura idempotente), mas não multiplicado.
type Refetcher struct {
	fetch   FetchFunc
	onLeads func([]entity.Lead)
	onError func(error)

	mu       sync.Mutex
	inFlight bool
	pending  bool
}

func NewRefetcher(fetch FetchFunc, onLeads func([]entity.Lead), onError func(error)) *Refetcher {
	return &Refetcher{
		fetch:   fetch,
		onLeads: onLeads,
		onError: onError,
	}
}

// Trigger registra que algo mudou. Nunca bloqueia.
func (r *Refetcher) Trigger() {
	r.mu.Lock()
	if r.inFlight {
		r.pending = true
		r.mu.Unlock()
		return
	}
	r.inFlight = true
	r.mu.Unlock()

	go r.run()
}

func (r *Refetcher) run() {
	for {
		leads, err := r.fetch(context.Background())
		if err != nil {
			r.onError(err)
		} else {
			r.onLeads(leads)
		}

		r.mu.Lock()
		if r.pending {
			r.pending = false
			r.mu.Unlock()
			continue
		}
		r.inFlight = false
		r.mu.Unlock()
		return
	}
}
