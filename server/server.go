package server

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/inkwell-labs/bookstore/auth"
	"github.com/inkwell-labs/bookstore/catalog"
	"github.com/inkwell-labs/bookstore/internal/config"
)

type Server struct {
	env     string // Environment (e.g., "DEV", "PROD")
	mux     *http.ServeMux
	routes  []string
	config  config.Config
	auth    *auth.Service
	catalog catalog.Repo
	log     zerolog.Logger
}

func New(cfg config.Config, authService *auth.Service, catalogRepo catalog.Repo, logger zerolog.Logger) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		config:  cfg,
		auth:    authService,
		catalog: catalogRepo,
		log:     logger,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			s.log.Debug().Str("method", parts[0]).Str("path", parts[1]).Msg("route registered")
		} else {
			s.log.Debug().Str("path", parts[0]).Msg("route registered")
		}
	}
}
