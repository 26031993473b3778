package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"
	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"novaLetterAPI/handlers"
	"novaLetterAPI/internal/render"
	"novaLetterAPI/internal/storage"
	"novaLetterAPI/middleware"
	"novaLetterAPI/services"

	_ "net/http/pprof"
)

var (
	authClient        *auth.Client
	db                *firestore.Client
	letterService     *services.LetterService
	generationService *services.GenerationService
	exportService     *services.ExportService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	app, err := storage.NewFirebaseApp("./serviceAccountKey.json")
	if err != nil {
		// Compose, generate and export work without credentials; only
		// saved letters and auth are gated.
		log.Printf("Warning: Could not initialize Firebase, running without storage and auth: %v", err)
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		authClient, db, err = storage.Clients(ctx, app)
		if err != nil {
			log.Printf("Warning: Could not create Firebase clients, running without storage and auth: %v", err)
			authClient, db = nil, nil
		} else {
			log.Println("Firebase Auth and Firestore initialized successfully")
		}
	}

	assetDir := os.Getenv("ASSET_DIR")
	if assetDir == "" {
		assetDir = "./assets"
	}

	letterService = services.NewLetterService(db)
	generationService = services.NewGenerationServiceFromEnv()
	exportService = services.NewExportService(render.New(assetDir))

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		if db != nil {
			log.Println("Closing Firestore client...")
			db.Close()
		}
	}()

	// Initialize handlers
	letterHandler := handlers.NewLetterHandler(letterService)
	generationHandler := handlers.NewGenerationHandler(generationService)
	exportHandler := handlers.NewExportHandler(exportService)
	catalogHandler := handlers.NewCatalogHandler()

	r := mux.NewRouter()

	standardRouter := r.PathPrefix("/").Subrouter()

	go middleware.CleanupVisitors()

	standardRouter.Use(middleware.RateLimitMiddleware)
	standardRouter.Use(middleware.MonitorMiddleware)

	standardRouter.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))
	standardRouter.PathPrefix("/debug/pprof/").Handler(middleware.PprofSecurityMiddleware(http.DefaultServeMux))

	assetsDir := "./assets"
	fs := http.FileServer(http.Dir(assetsDir))
	standardRouter.PathPrefix("/assets/").Handler(http.StripPrefix("/assets/", fs))
	log.Printf("Serving static files from %s at /assets/", assetsDir)

	standardRouter.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		storageStatus := "ok"
		if db == nil {
			storageStatus = "unconfigured"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "service": "novaLetter-api", "storage": %q}`, storageStatus)
	}).Methods("GET")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER
	// -------------------------------------------------------------------------
	// This inherits middleware from standardRouter
	api := standardRouter.PathPrefix("/api/v1").Subrouter()

	// Composing, generating and exporting a letter needs no account.
	api.HandleFunc("/catalog", catalogHandler.GetCatalog).Methods("GET")
	api.HandleFunc("/generate", generationHandler.GenerateLetter).Methods("POST")
	api.HandleFunc("/export", exportHandler.ExportLetter).Methods("POST")

	// -------------------------------------------------------------------------
	// PROTECTED ROUTES (REQUIRE AUTH HEADER)
	// -------------------------------------------------------------------------
	protected := api.PathPrefix("").Subrouter()
	firebaseAuth := middleware.NewFirebaseAuth(authClient)
	protected.Use(firebaseAuth.Middleware)

	protected.HandleFunc("/letters", letterHandler.GetLetters).Methods("GET")
	protected.HandleFunc("/letters", letterHandler.CreateLetter).Methods("POST")
	protected.HandleFunc("/letters/{id}", letterHandler.GetLetter).Methods("GET")
	protected.HandleFunc("/letters/{id}", letterHandler.UpdateLetter).Methods("PUT")
	protected.HandleFunc("/letters/{id}", letterHandler.DeleteLetter).Methods("DELETE")
	protected.HandleFunc("/letters/{id}/favorite", letterHandler.ToggleFavorite).Methods("PUT")

	protected.HandleFunc("/letters/{id}/stickers", letterHandler.AddSticker).Methods("POST")
	protected.HandleFunc("/letters/{id}/stickers/{stickerId}", letterHandler.UpdateSticker).Methods("PUT")
	protected.HandleFunc("/letters/{id}/stickers/{stickerId}/duplicate", letterHandler.DuplicateSticker).Methods("POST")
	protected.HandleFunc("/letters/{id}/stickers/{stickerId}", letterHandler.DeleteSticker).Methods("DELETE")

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Pprof-Secret"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length", "Content-Disposition"}),
		gorilllaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
