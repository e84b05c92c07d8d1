package internal

import (
	"context"
	"database/sql"
	"embed"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"rfid-inventory-api/internal/auth"
	"rfid-inventory-api/internal/config"
	"rfid-inventory-api/internal/goals"
	"rfid-inventory-api/internal/handlers"
	"rfid-inventory-api/internal/models"
	"rfid-inventory-api/internal/reconcile"
	"rfid-inventory-api/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed openapi
var openapiFS embed.FS

// Storage is the slice of the store the handlers need. The Postgres store
// implements it; handler tests substitute an in-memory fake.
type Storage interface {
	ListItems(ctx context.Context) ([]models.Item, error)
	ListTags(ctx context.Context) ([]models.TagRecord, error)
	ListBins(ctx context.Context) ([]models.BinCount, error)
	MarkTagSold(ctx context.Context, tagID string) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	TouchLastLogin(ctx context.Context, userID int64) error
	ListGoals(ctx context.Context) ([]models.ResaleGoal, error)
}

type Server struct {
	DB         *sql.DB
	Pool       *pgxpool.Pool
	Router     *chi.Mux
	Store      Storage
	Reconciler *reconcile.Reconciler
	Goals      *goals.Cache
	JWTManager *auth.JWTManager
	Metrics    *Metrics
	PageSize   int
}

func NewServer(dsn string, cfg *config.Config) *Server {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	st, err := store.Open(ctx, dsn)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	// Separate pgxpool for the bulk importer
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal("Failed to create pgxpool:", err)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiry)
	if err := jwtManager.ValidateConfig(); err != nil {
		log.Fatal("JWT configuration validation failed:", err)
	}

	metrics := NewMetrics()

	s := &Server{
		DB:         st.DB,
		Pool:       pool,
		Router:     chi.NewRouter(),
		Store:      st,
		Reconciler: reconcile.New(st, slog.Default(), nil),
		Goals:      goals.NewCache(st.ListGoals, cfg.GoalsTTL, nil),
		JWTManager: jwtManager,
		Metrics:    metrics,
		PageSize:   cfg.PageSize,
	}

	// Public routes first (no middleware)
	s.Router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	s.Router.Get("/dbping", func(w http.ResponseWriter, r *http.Request) {
		if err := s.DB.PingContext(r.Context()); err != nil {
			http.Error(w, "db: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := w.Write([]byte("db: ok")); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	s.Router.Post("/auth/login", s.loginUser)
	s.mountDocs(s.Router)

	if os.Getenv("ENABLE_METRICS") == "true" {
		s.Router.Use(s.Metrics.Middleware())
		s.Router.Get("/metrics", s.Metrics.Handler().ServeHTTP)
	}

	s.Router.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware(s.JWTManager))
		s.mountProtectedRoutes(r)
	})

	return s
}

// Close properly shuts down the server and cleans up resources
func (s *Server) Close(ctx context.Context) error {
	if s.Pool != nil {
		s.Pool.Close()
	}
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// mountDocs serves the OpenAPI spec and Swagger UI when enabled
func (s *Server) mountDocs(mux *chi.Mux) {
	if os.Getenv("ENABLE_SWAGGER") != "true" {
		return
	}
	mux.HandleFunc("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		data, err := openapiFS.ReadFile("openapi/openapi.yaml")
		if err != nil {
			http.Error(w, "Failed to read OpenAPI spec", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/x-yaml")
		if _, err := w.Write(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	mux.HandleFunc("/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(200)
		w.Write([]byte(`<!doctype html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>RFID Inventory API - Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui.css">
    <style>
        body { margin: 0; background: #f7f7f7; }
        .swagger-ui .topbar { display: none; }
    </style>
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            window.ui = SwaggerUIBundle({
                url: '/openapi.yaml',
                dom_id: '#swagger-ui',
                deepLinking: true,
                presets: [
                    SwaggerUIBundle.presets.apis,
                    SwaggerUIBundle.presets.standalone
                ],
                layout: "StandaloneLayout",
                tryItOutEnabled: true
            });
        };
    </script>
</body>
</html>`))
	})
}

// mountProtectedRoutes mounts all routes that require authentication
func (s *Server) mountProtectedRoutes(r chi.Router) {
	// Resale reporting views
	r.Get("/resale/categories", s.listResaleCategories)
	r.Get("/resale/common-names", s.listCommonNames)
	r.Get("/resale/items", s.listResaleItems)
	r.Get("/resale/goals", s.getResaleGoals)

	// Lifecycle mutation - managers only
	r.Post("/resale/items/{tagID}/sell", auth.MustRole("manager")(http.HandlerFunc(s.sellTag)).(http.HandlerFunc))

	// Bin locations
	r.Get("/bins", s.listBins)

	// Excel item-master import - managers only
	importsHandler := handlers.NewImportsHandler(s.Pool)
	r.Post("/imports/excel", auth.MustRole("manager")(http.HandlerFunc(importsHandler.UploadExcel)).(http.HandlerFunc))
}
