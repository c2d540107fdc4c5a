// internal/server/server.go
package server

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"venture-agents/internal/agents/branding"
	"venture-agents/internal/agents/legaldocs"
	"venture-agents/internal/agents/research"
	"venture-agents/internal/agents/support"
	"venture-agents/internal/agents/video"
	"venture-agents/internal/capability/commerce"
	"venture-agents/internal/common/logger"
	"venture-agents/internal/store"
	"venture-agents/pkg/registry"
)

// Task boundaries the handlers dispatch to. Narrow interfaces keep the
// transport layer testable without live providers.
type (
	BrandingTask interface {
		Run(ctx context.Context, idea string) (*branding.Output, error)
	}

	LegalDocsTask interface {
		Run(ctx context.Context, idea string) (*legaldocs.Output, error)
	}

	ResearchTask interface {
		Run(ctx context.Context, idea string) (*research.Output, error)
	}

	SupportTask interface {
		Run(ctx context.Context, inbound support.Inbound) (*support.Output, error)
	}

	VideoTask interface {
		Start(ctx context.Context, req video.Request) (*store.VideoJob, error)
		Status(ctx context.Context, jobID string) (*store.VideoJob, error)
	}

	CommerceAuth interface {
		AuthorizeURL(shop, redirectURI, state string) string
		VerifyHMAC(query url.Values) bool
		ExchangeCode(ctx context.Context, shop, code string) (commerce.AccessToken, error)
	}
)

// Tasks bundles the agent tasks the server exposes. Nil entries disable
// their routes.
type Tasks struct {
	Branding  BrandingTask
	LegalDocs LegalDocsTask
	Research  ResearchTask
	Support   SupportTask
	Video     VideoTask
}

// Config carries the server's own settings; task settings live with the
// tasks.
type Config struct {
	AppName         string
	Version         string
	CallbackBaseURL string
}

// Server is the HTTP surface over the agent tasks.
type Server struct {
	tasks    Tasks
	commerce CommerceAuth
	catalog  *registry.AgentRegistry
	cfg      Config
	logger   logger.Logger
}

func New(tasks Tasks, commerceAuth CommerceAuth, catalog *registry.AgentRegistry, cfg Config, log logger.Logger) *Server {
	if catalog == nil {
		catalog = registry.Default()
	}
	return &Server{
		tasks:    tasks,
		commerce: commerceAuth,
		catalog:  catalog,
		cfg:      cfg,
		logger:   log.With(map[string]interface{}{"component": "server"}),
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/agents", s.handleAgents)

	mux.HandleFunc("POST /api/branding", s.handleBranding)
	mux.HandleFunc("POST /api/legal-docs", s.handleLegalDocs)
	mux.HandleFunc("POST /api/research", s.handleResearch)
	mux.HandleFunc("POST /api/branding/video", s.handleVideoStart)
	mux.HandleFunc("GET /api/branding/video/{id}", s.handleVideoStatus)

	mux.HandleFunc("POST /email/webhook", s.handleEmailWebhook)

	mux.HandleFunc("GET /auth", s.handleAuthStart)
	mux.HandleFunc("GET /auth/callback", s.handleAuthCallback)

	return s.logRequests(mux)
}

// MetricsHandler serves the Prometheus scrape endpoint, bound to its
// own listener so scrapes never compete with task traffic.
func MetricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request handled", map[string]interface{}{
			"method":     r.Method,
			"path":       r.URL.Path,
			"durationMs": time.Since(start).Milliseconds(),
		})
	})
}
