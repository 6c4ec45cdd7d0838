package main

import (
	"context"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/infra/mail"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
	"github.com/xavierca1/ligue-crm/internal/infra/worker"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	godotenv.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		logrus.Fatalf("❌ Erro ao conectar no Postgres: %v", err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		logrus.Fatalf("❌ Erro ao conectar no RabbitMQ: %v", err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	callRepo := database.NewCallRepository(db)
	countRepo := database.NewDispositionCountRepository(db)
	historyRepo := database.NewCallHistoryRepository(db)
	employeeRepo := database.NewEmployeeRepository(db)
	listRepo := database.NewLeadListRepository(db)
	commRepo := database.NewCommunicationRepository(db)
	reportRepo := database.NewReportRepository(db)

	// 2. Adapters
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	smtpPort, _ := strconv.Atoi(envOr("SMTP_PORT", "587"))
	mailSender := mail.NewEmailSender(
		os.Getenv("SMTP_HOST"), smtpPort,
		os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS"),
		os.Getenv("SMTP_FROM"),
	)

	// 3. Workers (consumidor de lembretes + varredura de follow-ups)
	reminderWorker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	go reminderWorker.Start(queue.QueueName)

	sweeper := worker.NewFollowUpSweeper(callRepo, employeeRepo, producer)
	go sweeper.Start(context.Background())

	// 4. UseCases
	countLimit, _ := strconv.Atoi(envOr("COUNT_LIMIT", "3"))
	updateDispositionUC := usecase.NewUpdateDispositionUseCase(
		callRepo, countRepo, historyRepo, employeeRepo, producer, countLimit,
	)
	assignCallsUC := usecase.NewAssignCallsUseCase(callRepo)
	importCallsUC := usecase.NewImportCallsUseCase(listRepo, callRepo)

	// 5. Handlers
	authHandler := handlers.NewAuthHandler(employeeRepo)
	callHandler := handlers.NewCallHandler(callRepo, countRepo, updateDispositionUC)
	assignHandler := handlers.NewAssignHandler(assignCallsUC)
	employeeHandler := handlers.NewEmployeeHandler(employeeRepo)
	listHandler := handlers.NewLeadListHandler(listRepo, importCallsUC)
	commHandler := handlers.NewCommunicationHandler(callRepo, commRepo, mailSender)
	reportHandler := handlers.NewReportHandler(reportRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:3000", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", authHandler.HandleLogin)

		// Rotas autenticadas
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)

			r.Post("/logout", authHandler.HandleLogout)
			r.Get("/check-auth", authHandler.HandleCheckAuth)

			r.Get("/calls/{status}", callHandler.HandleListByStatus)
			r.Post("/calls/{id}/disposition", callHandler.HandleUpdateDisposition)
			r.Get("/calls/{id}/disposition-count", callHandler.HandleDispositionCount)
			r.Post("/calls/assign", assignHandler.Handle)

			r.Get("/databases", listHandler.HandleList)
			r.Post("/databases", listHandler.HandleUpload)
			r.Delete("/databases/{id}", listHandler.HandleDelete)
			r.Get("/databases/{id}/calls", listHandler.HandleListCalls)

			r.Post("/communications/email", commHandler.HandleEmail)
			r.Post("/communications/whatsapp", commHandler.HandleWhatsApp)

			r.Get("/employees", employeeHandler.HandleList)

			// Rotas de gerente
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)

				r.Post("/employees", employeeHandler.HandleCreate)
				r.Put("/employees/{id}", employeeHandler.HandleUpdate)
				r.Delete("/employees/{id}", employeeHandler.HandleDeactivate)

				r.Get("/reports/calls", reportHandler.HandleCallReport)
				r.Get("/reports/performance", reportHandler.HandlePerformance)
			})
		})
	})

	port := ":" + envOr("PORT", "8080")
	logrus.Infof("🔥 Server LigueCRM rodando na porta %s", port)
	if err := http.ListenAndServe(port, r); err != nil {
		logrus.Fatalf("❌ Server encerrou com erro: %v", err)
	}
}
