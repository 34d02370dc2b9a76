package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atumia/atumia-core/internal/entity"
)

// TestStoreSemArquivo - Arquivo inexistente = sessão sem vínculo
func TestStoreSemArquivo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atumia_session.json")

	store := NewStore(path)

	assert.False(t, store.Current().Bound())
}

// TestStoreRoundtrip - Save persiste; um store novo no mesmo caminho
// relê o vínculo (sobrevive a reload do processo)
func TestStoreRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atumia_session.json")

	store := NewStore(path)
	tc := entity.TenantContext{
		OrgID:    "org-1",
		OrgName:  "Indústria Alfa",
		WhatsApp: "5511999999999",
	}

	assert.NoError(t, store.Save(tc))
	assert.Equal(t, tc, store.Current())

	reloaded := NewStore(path)
	assert.Equal(t, tc, reloaded.Current())
}

// TestStoreSubstituiPorInteiro - Save troca o vínculo inteiro, nada do
// anterior vaza
func TestStoreSubstituiPorInteiro(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atumia_session.json")

	store := NewStore(path)
	assert.NoError(t, store.Save(entity.TenantContext{
		OrgID:    "org-1",
		OrgName:  "Indústria Alfa",
		WhatsApp: "5511999999999",
	}))

	novo := entity.TenantContext{OrgID: "org-2", OrgName: "Indústria Beta", WhatsApp: "5521888888888"}
	assert.NoError(t, store.Save(novo))

	assert.Equal(t, novo, store.Current())
	assert.Equal(t, novo, NewStore(path).Current())
}

// TestStoreArquivoCorrompido - JSON inválido não derruba a subida:
// degrada para sessão sem vínculo
func TestStoreArquivoCorrompido(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atumia_session.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	store := NewStore(path)

	assert.False(t, store.Current().Bound())
}
