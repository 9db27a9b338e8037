// Package web serves the browser front-end and its JSON API.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hoaithanh/giaitoan/internal/problem"
	"github.com/hoaithanh/giaitoan/internal/solver"
)

//go:embed templates/*.html
var templates embed.FS

// Solver is the pipeline the server submits problems to.
type Solver interface {
	Solve(ctx context.Context, in problem.Input) solver.Result
}

// Server wraps a gin engine and its HTTP server.
type Server struct {
	Router *gin.Engine

	cfg    Config
	solver Solver
	http   *http.Server
}

// New wires routes and templates.
func New(s Solver, cfg Config) *Server {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.SetHTMLTemplate(template.Must(template.ParseFS(templates, "templates/*.html")))
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	srv := &Server{
		Router: router,
		cfg:    cfg,
		solver: s,
	}
	srv.setupRoutes()
	return srv
}

func (s *Server) setupRoutes() {
	s.Router.GET("/", s.indexPage)
	s.Router.GET("/healthz", s.healthz)

	api := s.Router.Group("/api")
	api.GET("/examples", s.examples)
	api.POST("/solve", s.solve)
	api.POST("/export/pdf", s.exportPDF)
}

// Run binds addr and serves in the background. Bind errors are returned
// immediately.
func (s *Server) Run(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	s.http = &http.Server{
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("web UI listening on http://%s", ln.Addr())
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("web: %v", err)
		}
	}()
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
