package api

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stellarlinkco/rag-eval/internal/store"
)

// Server exposes a read-only view over run history and persisted result
// files. Evaluation runs stay on the CLI; the server never mutates anything.
type Server struct {
	router    *gin.Engine
	store     store.Store
	outputDir string
}

func NewServer(st store.Store, outputDir string) (*Server, error) {
	r := gin.New()
	s := &Server{
		router:    r,
		store:     st,
		outputDir: strings.TrimSpace(outputDir),
	}
	s.registerMiddleware()
	if err := s.registerRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) Run(addr string) error {
	if s == nil || s.router == nil {
		return errors.New("api: nil server")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		addr = ":8080"
	}
	return s.router.Run(addr)
}
