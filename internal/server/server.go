package server

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/coder/websocket"
	_ "github.com/joho/godotenv/autoload"
	"github.com/pressly/goose/v3"

	"fibbing-server/internal/database"
)

type Server struct {
	port              int
	db                database.Service
	connectionManager *ConnectionManager
	roomManager       *RoomManager
	historyStore      *MatchHistoryStore
	rateLimiter       *RateLimiter
}

func NewServer() (*Server, *http.Server) {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	// Initialize database
	dbService := database.New()

	// Run migrations
	if err := runMigrations(dbService.DB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	NewServer := &Server{
		port:              port,
		db:                dbService,
		connectionManager: NewConnectionManager(),
		roomManager:       NewRoomManager(),
		historyStore:      NewMatchHistoryStore(dbService.DB()),
		rateLimiter:       NewRateLimiter(20, time.Second),
	}

	// Start background tasks
	go NewServer.historyCleanupTask()

	// Declare Server config
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", NewServer.port),
		Handler:      NewServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return NewServer, httpServer
}

// runMigrations applies database migrations using goose
func runMigrations(db *sql.DB) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "./db/migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	log.Println("Database migrations applied successfully")
	return nil
}

// Shutdown notifies every open room that the server is going away and closes
// the sockets. Rooms are memory-only so there is nothing to save.
func (s *Server) Shutdown(ctx context.Context) error {
	for _, conn := range s.connectionManager.Connections() {
		msg := ServerMessage{
			Type:    EventErrorMessage,
			Payload: "Server shutting down.",
		}
		if err := s.sendMessage(conn, ctx, msg); err != nil {
			log.Printf("Failed to send shutdown notice: %v", err)
		}
		conn.Close(websocket.StatusGoingAway, "Server shutting down")
	}

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// historyCleanupTask runs hourly and deletes match records older than 30
// days, keeping the history table from growing without bound.
func (s *Server) historyCleanupTask() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		deleted, err := s.historyStore.CleanupOldMatches(30 * 24 * time.Hour)
		if err != nil {
			log.Printf("Cleanup task failed: %v", err)
			continue
		}

		if deleted > 0 {
			log.Printf("Cleanup task: deleted %d old match records", deleted)
		}
	}
}
