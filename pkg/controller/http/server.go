package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/cbrecommend/pkg/domain/model"
	"github.com/secmon-lab/cbrecommend/pkg/domain/types"
	"github.com/secmon-lab/cbrecommend/pkg/usecase"
	"github.com/secmon-lab/cbrecommend/pkg/utils/logging"
)

const defaultMaxBodySize = 1 << 20

// UseCase is the part of the use case layer served over HTTP
type UseCase interface {
	Classify(ctx context.Context, query *model.Case) (types.Label, error)
	Recommend(ctx context.Context, query *model.Case, topK, topN int) (*model.RecommendResult, error)
	ListCases(ctx context.Context) ([]*model.Case, error)
}

type Server struct {
	router      *chi.Mux
	uc          UseCase
	topK        int
	topN        int
	maxBodySize int64
	loadedAt    func() time.Time
}

type Options func(*Server)

// WithDefaultLimits sets top_k and top_n used when a request omits them
func WithDefaultLimits(topK, topN int) Options {
	return func(s *Server) {
		s.topK = topK
		s.topN = topN
	}
}

func WithMaxBodySize(n int64) Options {
	return func(s *Server) {
		if n > 0 {
			s.maxBodySize = n
		}
	}
}

// WithCorpusLoadedAt reports the corpus snapshot time on /health
func WithCorpusLoadedAt(f func() time.Time) Options {
	return func(s *Server) {
		s.loadedAt = f
	}
}

func New(uc UseCase, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:      r,
		uc:          uc,
		topK:        usecase.DefaultTopK,
		topN:        usecase.DefaultTopN,
		maxBodySize: defaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(limitBody(s.maxBodySize))
		r.Get("/cases", s.listCasesHandler)
		r.Post("/classify", s.classifyHandler)
		r.Post("/recommend", s.recommendHandler)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.From(r.Context()).Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
