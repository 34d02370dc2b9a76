// Package health guarda a máquina de dois estados do sistema:
// Operational e NeedsMigration. A transição é disparada pela borda, na
// primeira detecção de drift de schema, e é irreversível dentro do
// processo — só remediação externa + reload saem dela.
package health

import (
	"log"
	"sync"
	"sync/atomic"
)

type AlertSender interface {
	SendSchemaDriftAlert(script string) error
}

type State struct {
	needsMigration atomic.Bool
	alertOnce      sync.Once
	alert          AlertSender
	setupScript    string
}

func NewState(alert AlertSender, setupScript string) *State {
	return &State{
		alert:       alert,
		setupScript: setupScript,
	}
}

// MarkSchemaDrift flipa Operational → NeedsMigration. Chamadas
// repetidas são inofensivas; alerta por email sai uma vez só.
func (s *State) MarkSchemaDrift() {
	if s.needsMigration.CompareAndSwap(false, true) {
		log.Println("🚨 Drift de schema detectado: sistema em modo NeedsMigration até remediação + reload")
	}

	if s.alert == nil {
		return
	}
	s.alertOnce.Do(func() {
		go func() {
			if err := s.alert.SendSchemaDriftAlert(s.setupScript); err != nil {
				log.Printf("⚠️ Falha ao enviar alerta de drift: %v", err)
			}
		}()
	})
}

// NeedsMigration diz se alguma operação já detectou drift. Com true,
// nenhuma rota de dados deve bater no banco de novo.
func (s *State) NeedsMigration() bool {
	return s.needsMigration.Load()
}

// SetupScript é o SQL literal de remediação mostrado ao operador.
func (s *State) SetupScript() string {
	return s.setupScript
}
