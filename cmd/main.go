package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/Sark-Rakib/e-tuition-bd-server/internal/config"
	"github.com/Sark-Rakib/e-tuition-bd-server/internal/db"
	apihandlers "github.com/Sark-Rakib/e-tuition-bd-server/internal/handlers"
	"github.com/Sark-Rakib/e-tuition-bd-server/internal/services"
)

func main() {
	// Load .env
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Error loading .env: %s", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Connect to MongoDB
	client, err := db.Connect(context.Background(), cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Successfully connected to MongoDB")

	database := client.Database(cfg.DBName)

	// Initialize services and handlers
	userService := services.NewUserService(database)
	userHandler := apihandlers.NewUserHandler(userService)

	tuitionService := services.NewTuitionService(database)
	tuitionHandler := apihandlers.NewTuitionHandler(tuitionService, userService)

	tutorService := services.NewTutorService(database)
	tutorHandler := apihandlers.NewTutorHandler(tutorService, userService)

	paymentService := services.NewPaymentService(database, cfg)
	paymentHandler := apihandlers.NewPaymentHandler(paymentService, cfg.StripeWebhookToken)

	// Set up router
	router := mux.NewRouter()
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("e-Tuition-BD Backend is running"))
	}).Methods("GET", "HEAD")

	router.HandleFunc("/users", userHandler.GetUsers).Methods("GET")
	router.HandleFunc("/users", userHandler.CreateUser).Methods("POST")
	router.HandleFunc("/users/{email}/role", userHandler.GetRole).Methods("GET")
	router.HandleFunc("/users/{id}/admin", userHandler.MakeAdmin).Methods("PATCH")
	router.HandleFunc("/users/{id}/remove-admin", userHandler.RemoveAdmin).Methods("PATCH")

	router.HandleFunc("/tuitions", tuitionHandler.Create).Methods("POST")
	router.HandleFunc("/tuitions", tuitionHandler.List).Methods("GET")
	router.HandleFunc("/tuitions-get", tuitionHandler.ListByStudent).Methods("GET")
	router.HandleFunc("/tuitions/pending", tuitionHandler.ListPending).Methods("GET")
	router.HandleFunc("/tuitions/{id}", tuitionHandler.Get).Methods("GET")
	router.HandleFunc("/tuitions/{id}", tuitionHandler.Update).Methods("PUT")
	router.HandleFunc("/tuitions/{id}", tuitionHandler.Delete).Methods("DELETE")
	router.HandleFunc("/tuitions/{id}/approve", tuitionHandler.Approve).Methods("PATCH")
	router.HandleFunc("/tuitions/{id}/reject", tuitionHandler.Reject).Methods("PATCH")

	router.HandleFunc("/tutors", tutorHandler.Create).Methods("POST")
	router.HandleFunc("/tutors", tutorHandler.List).Methods("GET")
	router.HandleFunc("/tutors/{id}", tutorHandler.Get).Methods("GET")
	router.HandleFunc("/tutors/{id}", tutorHandler.Update).Methods("PUT")
	router.HandleFunc("/tutors/{id}", tutorHandler.Delete).Methods("DELETE")
	router.HandleFunc("/tutors/{id}/approve", tutorHandler.Approve).Methods("PATCH")
	router.HandleFunc("/tutors/{id}/reject", tutorHandler.Reject).Methods("PATCH")
	// legacy singular paths kept for old clients
	router.HandleFunc("/tutor/{id}/approve", tutorHandler.Approve).Methods("PATCH")
	router.HandleFunc("/tutor/{id}/reject", tutorHandler.Reject).Methods("PATCH")

	router.HandleFunc("/applications", tutorHandler.Applications).Methods("GET")

	router.HandleFunc("/create-checkout-session", paymentHandler.CreateCheckoutSession).Methods("POST")
	router.HandleFunc("/payments/webhook", paymentHandler.Webhook).Methods("POST")
	router.HandleFunc("/payments", paymentHandler.List).Methods("GET")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "x-webhook-token"}),
	)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      handlers.LoggingHandler(os.Stdout, cors(router)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Block until a shutdown signal, then drain and disconnect.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}
	if err := db.Disconnect(ctx, client); err != nil {
		log.Printf("Error disconnecting from MongoDB: %v", err)
	}
}
