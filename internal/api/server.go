package api

import (
	"serwer-zdjec/internal/auth"
	"serwer-zdjec/internal/config"
	"serwer-zdjec/internal/database"
	"serwer-zdjec/internal/storage"
	"serwer-zdjec/internal/websocket"
)

type Server struct {
	config   *config.Config
	store    *database.PostgresStore
	storage  *storage.PhotoStorage
	wsHub    *websocket.Hub
	verifier auth.Verifier
}

func NewServer(cfg *config.Config, store *database.PostgresStore, storage *storage.PhotoStorage, wsHub *websocket.Hub, verifier auth.Verifier) *Server {
	return &Server{
		config:   cfg,
		store:    store,
		storage:  storage,
		wsHub:    wsHub,
		verifier: verifier,
	}
}

// photoURL skleja publiczny adres z bazowego URL, uid właściciela i ścieżki względnej.
func (s *Server) photoURL(uid, filename string) string {
	return s.config.Storage.BaseURL + uid + "/" + filename
}
