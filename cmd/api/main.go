package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rabbitmq/amqp091-go"

	"github.com/atumia/atumia-core/internal/entity"
	"github.com/atumia/atumia-core/internal/health"
	"github.com/atumia/atumia-core/internal/infra/database"
	"github.com/atumia/atumia-core/internal/infra/http/handlers"
	"github.com/atumia/atumia-core/internal/infra/http/middleware"
	"github.com/atumia/atumia-core/internal/infra/integration/gemini"
	"github.com/atumia/atumia-core/internal/infra/integration/whatsapp"
	"github.com/atumia/atumia-core/internal/infra/mail"
	"github.com/atumia/atumia-core/internal/infra/queue"
	"github.com/atumia/atumia-core/internal/infra/realtime"
	"github.com/atumia/atumia-core/internal/infra/session"
	"github.com/atumia/atumia-core/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// 1. Sessão + estado de saúde
	sessionStore := session.NewStore(os.Getenv("SESSION_FILE"))

	var alert health.AlertSender
	if os.Getenv("MAIL_HOST") != "" && os.Getenv("ALERT_EMAIL") != "" {
		alert = mail.NewEmailSender(
			os.Getenv("MAIL_HOST"), 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
			os.Getenv("ALERT_EMAIL"),
		)
	}
	healthState := health.NewState(alert, database.SetupScript())

	// 2. Repositórios
	leadRepo := database.NewLeadRepository(db)
	orgRepo := database.NewOrganizationRepository(db)
	convRepo := database.NewConversationRepository(db)

	// 3. Integrações
	oracle := gemini.NewClient()
	whatsappClient := whatsapp.NewClient()

	// 4. UseCases
	listLeadsUC := usecase.NewListLeadsUseCase(leadRepo)
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo)
	metricsUC := usecase.NewGetMetricsUseCase(
		leadRepo, convRepo,
		os.Getenv("METRICS_EXACT_QUALIFIED") == "true",
	)
	validateOrgUC := usecase.NewValidateOrganizationUseCase(orgRepo, sessionStore)
	analyzeUC := usecase.NewAnalyzeLeadUseCase(convRepo, oracle)

	// 5. Fila + Worker SDR (opcional: sem RABBITMQ_HOST o webhook fica fora)
	var rabbitConn *queue.RabbitMQ
	var producer queue.QueueProducerInterface
	if os.Getenv("RABBITMQ_HOST") != "" {
		rabbitConn, err = queue.NewRabbitMQ(
			os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
			os.Getenv("RABBITMQ_HOST"), os.Getenv("RABBITMQ_PORT"),
		)
		if err != nil {
			log.Fatalf("❌ RabbitMQ configurado mas inacessível: %v", err)
		}
		defer rabbitConn.Conn.Close()
		defer rabbitConn.Ch.Close()

		producer = queue.NewProducer(rabbitConn.Conn, rabbitConn.Ch)

		worker := queue.NewWorker(rabbitConn.Ch, convRepo, oracle, whatsappClient, healthState)
		go worker.Start(queue.QueueName)
	} else {
		log.Println("⚠️ RABBITMQ_HOST ausente: esteira SDR desligada, board segue normal")
	}

	// 6. Handlers
	leadHandler := handlers.NewLeadHandler(listLeadsUC, createLeadUC, sessionStore, healthState)
	metricsHandler := handlers.NewMetricsHandler(metricsUC, sessionStore, healthState)
	orgHandler := handlers.NewOrganizationHandler(validateOrgUC, sessionStore, healthState)
	analysisHandler := handlers.NewAnalysisHandler(analyzeUC, sessionStore, healthState)
	eventsHandler := handlers.NewEventsHandler()
	healthHandler := handlers.NewHealthHandler(db, rabbitConnOrNil(rabbitConn), healthState)

	// 7. Realtime: NOTIFY em leads → refetch coalescido → push SSE
	refetcher := realtime.NewRefetcher(
		func(ctx context.Context) ([]entity.Lead, error) {
			return listLeadsUC.Execute(ctx, sessionStore.Current())
		},
		func(leads []entity.Lead) {
			middleware.RecordRealtimeRefetch()
			eventsHandler.BroadcastLeads(leads)
		},
		func(err error) {
			if usecase.IsSchemaDrift(err) {
				middleware.RecordSchemaDrift()
				healthState.MarkSchemaDrift()
				return
			}
			log.Printf("⚠️ Realtime: refetch falhou: %v", err)
		},
	)
	listener, err := realtime.NewListener(os.Getenv("DATABASE_URL"), refetcher)
	if err != nil {
		// Board segue funcionando no refresh manual
		log.Printf("⚠️ Realtime indisponível: %v", err)
	} else {
		defer listener.Close()
		go listener.Start()
	}

	// 8. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.SetupGuard(healthState))

		r.Get("/leads", leadHandler.HandleList)
		r.Post("/leads", leadHandler.HandleCreate)
		r.Post("/leads/{phone}/analyze", analysisHandler.HandleAnalyze)
		r.Get("/metrics", metricsHandler.HandleGet)
		r.Post("/organizations/validate", orgHandler.HandleValidate)
		r.Get("/organizations/current", orgHandler.HandleCurrent)
		r.Get("/events", eventsHandler.Handle)
	})

	if producer != nil {
		webhookHandler := handlers.NewWebhookHandler(producer, sessionStore)
		r.Post("/webhook/whatsapp", webhookHandler.Handle)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🔥 Server Atumia Core rodando na porta :%s", port)
	http.ListenAndServe(":"+port, r)
}

func rabbitConnOrNil(r *queue.RabbitMQ) *amqp091.Connection {
	if r == nil {
		return nil
	}
	return r.Conn
}
