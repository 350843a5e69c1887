// Package devserver is an in-memory implementation of the onepay platform API
// for local development and integration tests. It mirrors the production
// service's observable contract: routes, status codes, error messages and the
// idempotent create/initiate behaviour, backed by seeded sample data.
package devserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/onepay-ir/onepay-client/booking"
	"github.com/onepay-ir/onepay-client/catalog"
	"github.com/onepay-ir/onepay-client/identity"
)

const defaultTokenExpiry = 24 * time.Hour

type user struct {
	identity.Profile
	PasswordHash string
}

// Server holds the in-memory platform state behind a chi router. All state is
// guarded by a single mutex; this is a test double, not a production service.
type Server struct {
	router chi.Router

	secret      string
	tokenExpiry time.Duration
	baseURL     string // overrides request-derived payment URLs when set
	now         func() time.Time

	mu         sync.Mutex
	users      map[int64]*user
	byMobile   map[string]int64
	byEmail    map[string]int64
	projects   []catalog.ProjectDetail
	requests   map[int64]*booking.PurchaseRequest
	payments   map[int64]*booking.Payment
	nextUserID int64
	nextReqID  int64
	nextPayID  int64
}

// Option modifies a Server instance.
type Option func(*Server)

// WithTokenSecret sets the HS256 signing secret.
func WithTokenSecret(secret string) Option {
	return func(s *Server) {
		s.secret = secret
	}
}

// WithBaseURL fixes the public base URL used in payment redirect targets.
// When unset, URLs are derived from the incoming request's host.
func WithBaseURL(base string) Option {
	return func(s *Server) {
		s.baseURL = base
	}
}

// WithNowTime sets the clock (primarily for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(s *Server) {
		s.now = nowFunc
	}
}

// New creates a seeded Server.
func New(options ...Option) *Server {
	s := &Server{
		secret:      "dev-only-secret",
		tokenExpiry: defaultTokenExpiry,
		now:         time.Now,
		users:       make(map[int64]*user),
		byMobile:    make(map[string]int64),
		byEmail:     make(map[string]int64),
		requests:    make(map[int64]*booking.PurchaseRequest),
		payments:    make(map[int64]*booking.Payment),
		nextUserID:  1,
		nextReqID:   1,
		nextPayID:   1,
	}
	for _, opt := range options {
		opt(s)
	}
	s.seed()
	s.initRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) initRoutes() {
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Get("/projects", s.handleProjects)
		r.Get("/projects/{projectID}", s.handleProject)
		r.Get("/payments/mock-gateway/{authority}", s.handleMockGateway)
		r.Get("/payments/callback", s.handlePaymentCallback)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/auth/me", s.handleMe)
			r.Post("/requests", s.handleCreateRequest)
			r.Post("/requests/{requestID}/submit", s.handleSubmitRequest)
			r.Get("/requests/my", s.handleMyRequests)
			r.Post("/payments/initiate", s.handleInitiatePayment)
		})
	})
	s.router = r
}

// writeJSON writes a JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("encoding response failed")
	}
}

// writeDetail reports an error the way the production service does: a JSON
// object with a "detail" message.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
