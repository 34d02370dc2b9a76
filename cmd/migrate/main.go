package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/atumia/atumia-core/internal/infra/database"
)

// Aplica as migrations embutidas no Postgres apontado por DATABASE_URL.
// É o caminho de remediação quando o dashboard mostra
// DATABASE_NOT_INITIALIZED (a alternativa é colar o script no SQL
// Editor do Supabase).
func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("❌ Falha ao conectar no banco: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("❌ Falha ao aplicar migrations: %v", err)
	}

	log.Println("✅ Schema sincronizado. Recarregue o dashboard.")
}
