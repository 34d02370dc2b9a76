package realtime

import (
	"log"
	"time"

	"github.com/lib/pq"
)

// Canal NOTIFY criado pela migration (trigger em public.leads).
const LeadsChannel = "leads_changed"

// Listener assina o canal LISTEN/NOTIFY do Postgres e converte cada
// aviso em um Trigger no refetcher. O canal não é escopado por tenant
// no transporte: qualquer mudança na tabela dispara refetch.
type Listener struct {
	pq        *pq.Listener
	refetcher *Refetcher
}

func NewListener(connString string, refetcher *Refetcher) (*Listener, error) {
	l := pq.NewListener(connString, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("⚠️ Realtime: evento de conexão %d: %v", ev, err)
		}
	})

	if err := l.Listen(LeadsChannel); err != nil {
		l.Close()
		return nil, err
	}

	return &Listener{pq: l, refetcher: refetcher}, nil
}

// Start consome as notificações até o canal fechar. Rode em goroutine.
func (l *Listener) Start() {
	log.Printf("📡 Realtime: ouvindo canal '%s'", LeadsChannel)

	for {
		select {
		case _, ok := <-l.pq.Notify:
			if !ok {
				log.Println("⚠️ Realtime: canal de notificação fechado")
				return
			}
			// notificação nil = reconexão; na dúvida, refetch
			l.refetcher.Trigger()
		case <-time.After(90 * time.Second):
			// Mantém a conexão viva atrás de proxies do Supabase
			go l.pq.Ping()
		}
	}
}

func (l *Listener) Close() error {
	return l.pq.Close()
}
