package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/atumia/atumia-core/internal/health"
)

// SetupGuard bloqueia as rotas de dados quando o sistema já entrou em
// NeedsMigration: uma ocorrência de drift em QUALQUER operação vale
// para a sessão inteira, então nenhuma rota deve voltar a bater no
// banco até a remediação + reload. O 503 carrega o script literal.
func SetupGuard(state *health.State) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if state.NeedsMigration() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"error":     "DATABASE_NOT_INITIALIZED",
					"message":   "Sincronização de banco necessária. Rode o script no SQL Editor e recarregue o sistema.",
					"setup_sql": state.SetupScript(),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
