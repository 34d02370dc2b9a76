// Package session persiste o vínculo de organização do operador num
// arquivo local — o equivalente servidor do localStorage do dashboard.
// Lido uma vez na subida; escrito só pelo validate-and-bind.
package session

import (
	"encoding/json"
	"log"
	"os"
	"sync"

	"github.com/atumia/atumia-core/internal/entity"
)

const DefaultPath = "atumia_session.json"

type Store struct {
	mu      sync.RWMutex
	path    string
	current entity.TenantContext
}

func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}

	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Sessão: falha ao ler %s: %v", path, err)
		}
		return s // sem arquivo = sem vínculo, tudo degrada para vazio
	}

	if err := json.Unmarshal(data, &s.current); err != nil {
		log.Printf("⚠️ Sessão: arquivo %s corrompido, ignorando: %v", path, err)
		s.current = entity.TenantContext{}
	}

	return s
}

// Current devolve o vínculo ativo (cópia; imutável por operação).
func (s *Store) Current() entity.TenantContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Save substitui o vínculo por inteiro e persiste. Só é chamado depois
// que a organização validou com match exato.
func (s *Store) Save(tc entity.TenantContext) error {
	data, err := json.MarshalIndent(tc, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = tc
	s.mu.Unlock()

	return nil
}
