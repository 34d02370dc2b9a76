package health

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeAlert struct {
	sent   atomic.Int32
	script atomic.Value
}

func (f *fakeAlert) SendSchemaDriftAlert(script string) error {
	f.script.Store(script)
	f.sent.Add(1)
	return nil
}

// TestMarkSchemaDriftAlertaUmaVez - N detecções de drift geram UM alerta,
// com o script de remediação
func TestMarkSchemaDriftAlertaUmaVez(t *testing.T) {
	alert := &fakeAlert{}
	state := NewState(alert, "-- CREATE TABLE organizations ...")

	for i := 0; i < 5; i++ {
		state.MarkSchemaDrift()
	}

	assert.True(t, state.NeedsMigration())

	assert.Eventually(t, func() bool {
		return alert.sent.Load() == 1
	}, 2*time.Second, 10*time.Millisecond)

	// nenhum alerta extra aparece depois
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), alert.sent.Load())
	assert.Equal(t, "-- CREATE TABLE organizations ...", alert.script.Load())
}

// TestStateSemAlerta - Sem sender configurado o drift só flipa o estado
func TestStateSemAlerta(t *testing.T) {
	state := NewState(nil, "-- setup")

	state.MarkSchemaDrift()

	assert.True(t, state.NeedsMigration())
	assert.Equal(t, "-- setup", state.SetupScript())
}
