package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rar34/explore-job-server/internal/auth"
	"github.com/rar34/explore-job-server/internal/config"
	"github.com/rar34/explore-job-server/internal/database"
)

// MyServer holds the dependencies shared by every route handler
type MyServer struct {
	Config *config.Config
	DB     *database.DBinstanceStruct
	Redis  *redis.Client
	Tokens *auth.TokenManager
}

// NewMyServer wires cfg, db and an optional redis client into a MyServer
func NewMyServer(cfg *config.Config, db *database.DBinstanceStruct, rdb *redis.Client) *MyServer {
	return &MyServer{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Tokens: auth.NewTokenManager(cfg.SecretKey, cfg.TokenTTL),
	}
}

// NewServer construct new http.Server serving every API route
func NewServer(cfg *config.Config, db *database.DBinstanceStruct, rdb *redis.Client) *http.Server {
	s := NewMyServer(cfg, db, rdb)

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
