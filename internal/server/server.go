package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"UniHire-backend/internal/controller/file"
	"UniHire-backend/internal/database"
)

// MyServer contain the database instance and storage client shared by
// every route handler
type MyServer struct {
	DB      *database.DBinstanceStruct
	Storage file.StorageClient
}

// NewServer construct new Server instance
func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialize: %s", err)
	}

	storage, err := file.NewCloudStorageClient(context.Background())
	if err != nil {
		log.Fatalf("Storage client failed to initialize: %s", err)
	}
	if storage == nil {
		log.Println("GCS_BUCKET_NAME not set, storing file content in the database")
	}

	s := &MyServer{DB: db}
	if storage != nil {
		s.Storage = storage
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
