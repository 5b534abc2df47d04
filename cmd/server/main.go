// @title           Photo Server API
// @version         1.0
// @host            localhost
// @schemes         http https
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log"
	"net/http"
	"serwer-zdjec/internal/api"
	"serwer-zdjec/internal/auth"
	"serwer-zdjec/internal/config"
	"serwer-zdjec/internal/database"
	"serwer-zdjec/internal/storage"
	"serwer-zdjec/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "serwer-zdjec/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Nie można wczytać konfiguracji: %v", err)
	}

	dbpool, err := pgxpool.New(context.Background(), cfg.DB.Source)
	if err != nil {
		log.Fatalf("Nie można połączyć się z bazą danych: %v", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(context.Background()); err != nil {
		log.Fatalf("Nie można pingować bazy danych: %v", err)
	}
	log.Println("Pomyślnie połączono z bazą danych")

	photoStorage, err := storage.NewPhotoStorage(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("Nie można zainicjować photo storage: %v", err)
	}
	log.Printf("Zdjęcia będą przechowywane w: %s", cfg.Storage.Path)

	verifier, err := auth.NewVerifier(cfg.Auth.Mode, cfg.Firebase.LookupURL, cfg.Firebase.APIKey, cfg.JWT.Secret)
	if err != nil {
		log.Fatalf("Nie można zainicjować weryfikatora tożsamości: %v", err)
	}
	log.Printf("Tryb uwierzytelniania: %s", cfg.Auth.Mode)

	wsHub := websocket.NewHub()
	go wsHub.Run()

	store := database.NewStore(dbpool, wsHub)
	server := api.NewServer(cfg, store, photoStorage, wsHub, verifier)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(api.MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("https://localhost/swagger/doc.json"),
	))

	r.Get("/ws", server.ServeWsHandler)

	r.Get("/health", server.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/photos", server.ListPhotosHandler)
		r.Get("/users/is_admin", server.IsAdminHandler)

		r.Group(func(r chi.Router) {
			r.Use(server.AuthMiddleware)
			r.Post("/photos", server.UploadPhotoHandler)
			r.Post("/users", server.RegisterUserHandler)
			r.Post("/notices", server.CreateNoticeHandler)
			r.Get("/events", server.GetEventsHandler)
		})
	})

	log.Println("Uruchamianie serwera na porcie :8080")
	if err := http.ListenAndServe(":8080", r); err != nil {
		log.Fatalf("Nie można uruchomić serwera: %v", err)
	}
}
