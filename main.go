package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"uclmatch_server/routes"
	"uclmatch_server/services"
	"uclmatch_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Initialize Services
	userProfileService := services.NewUserProfileService(dynamoService)
	authService := services.NewAuthService(userProfileService)
	candidateService := services.NewCandidateService(dynamoService)
	chatService := services.NewChatService(dynamoService)
	messageService := services.NewMessageService(dynamoService)
	swipeService := services.NewSwipeService(candidateService, chatService)

	// Initialize the Socket.IO server and wire it into message delivery
	socketServer := socket.NewSocketServer()
	messageService.Broadcast = socketServer
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Fatalf("Socket server error: %v", err)
		}
	}()
	defer socketServer.Close()

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to UCLMatch")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Register routes
	routes.RegisterAuthRoutes(r, authService)
	routes.RegisterUserProfileRoutes(r, userProfileService, authService)
	routes.RegisterCandidateRoutes(r, candidateService, authService)
	routes.RegisterSwipeRoutes(r, swipeService, authService)
	routes.RegisterChatRoutes(r, chatService, messageService, authService)
	routes.RegisterS3Routes(r, userProfileService, authService)

	// Live message channel
	r.Handle("/socket.io/", socketServer)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
