package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/ai"
	api "github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/api/http"
	auth "github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/auth/middleware"
	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/config"
	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/db"
	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/game"
	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/homework"
	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/notify"
	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/rbac"
	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/session"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	hwStore := homework.NewSQLStore(dbh, cfg.DBDriver)
	gameStore := game.NewSQLStore(dbh, cfg.DBDriver)

	// --- Collaborators ---
	aiClient := ai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	if !aiClient.IsAvailable() {
		log.Printf("warning: OPENAI_API_KEY not set, homework generation will fail")
	}
	mailer, err := notify.NewEmailService(ctx, cfg.SESRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.PublicURL)
	if err != nil {
		log.Fatalf("email service: %v", err)
	}

	authSvc := auth.NewAuthService(cfg.AuthSecret)
	sessions := session.NewManager(hwStore, hwStore)
	ledger := game.NewLedger(gameStore, aiClient)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(150 * time.Second)) // generation calls are slow

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/register", auth.RegisterHandler(authSvc, dbh))
	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh))

	// Exam sessions: students arrive via share link without an account,
	// so this surface is unauthenticated. Settings are resolved from
	// the stored record; nothing here accepts them from the caller.
	r.Route("/sessions", func(sr chi.Router) {
		sr.Post("/", api.StartSessionHandler(sessions))
		sr.Get("/{sessionID}", api.GetSessionHandler(sessions))
		sr.Post("/{sessionID}/start", api.BeginExamHandler(sessions))
		sr.Post("/{sessionID}/answer", api.SubmitAnswerHandler(sessions))
		sr.Post("/{sessionID}/next", api.AdvanceHandler(sessions))
		sr.Post("/{sessionID}/restart", api.RestartHandler(sessions))
		sr.Post("/{sessionID}/events", api.SessionEventHandler(sessions))
		sr.Delete("/{sessionID}", api.CloseSessionHandler(sessions))
	})
	r.Post("/submissions", api.CreateSubmissionHandler(hwStore))

	// Protected API (JWT → role in context → permission checks)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("homework:create")).
			Post("/homework", api.CreateHomeworkHandler(hwStore, aiClient))
		pr.With(rbac.Require("homework:view")).
			Get("/homework", api.ListHomeworkHandler(hwStore))
		pr.With(rbac.Require("homework:view")).
			Get("/homework/{homeworkID}", api.GetHomeworkHandler(hwStore))
		pr.With(rbac.Require("homework:delete_own")).
			Delete("/homework/{homeworkID}", api.DeleteHomeworkHandler(hwStore))
		pr.With(rbac.Require("homework:share")).
			Post("/homework/{homeworkID}/share", api.ShareHomeworkHandler(hwStore, mailer))

		pr.With(rbac.Require("submissions:view")).
			Get("/submissions", api.ListSubmissionsHandler(hwStore))

		pr.With(rbac.Require("daily:answer")).
			Get("/daily-question", api.DailyQuestionHandler(ledger))
		pr.With(rbac.Require("daily:answer")).
			Post("/daily-question/{questionID}/answer", api.AnswerDailyHandler(ledger))
		pr.With(rbac.Require("daily:answer")).
			Get("/stats", api.StatsHandler(ledger))

		pr.With(rbac.Require("shop:use")).Get("/shop", api.ShopHandler())
		pr.With(rbac.Require("shop:use")).Post("/shop/buy", api.BuyPowerupHandler(ledger))
		pr.With(rbac.Require("shop:use")).Get("/powerups", api.ListPowerupsHandler(ledger))
		pr.With(rbac.Require("shop:use")).Post("/powerups/{powerupID}/use", api.UsePowerupHandler(ledger))

		pr.With(rbac.Require("vocab:manage")).Get("/vocabulary", api.ListVocabularyHandler(hwStore))
		pr.With(rbac.Require("vocab:manage")).Post("/vocabulary", api.CreateVocabularyHandler(hwStore))
		pr.With(rbac.Require("vocab:manage")).Delete("/vocabulary/{wordID}", api.DeleteVocabularyHandler(hwStore))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
