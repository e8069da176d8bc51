package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osmunda/cardbot/internal/cooldown"
	"github.com/osmunda/cardbot/internal/database"
	"github.com/osmunda/cardbot/internal/drop"
	"github.com/osmunda/cardbot/internal/gacha"
	"github.com/osmunda/cardbot/internal/handler"
	"github.com/osmunda/cardbot/internal/ledger"
	"github.com/osmunda/cardbot/internal/logger"
	"github.com/osmunda/cardbot/internal/market"
	"github.com/osmunda/cardbot/internal/metrics"
)

// Services bundles everything the router needs.
type Services struct {
	Ledger   ledger.Service
	Gacha    gacha.Service
	Drops    drop.Service
	Market   market.Service
	Cooldown cooldown.Service
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, svcs Services) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/account", func(r chi.Router) {
			r.Get("/", handler.HandleGetAccount(svcs.Ledger))
			r.Post("/credit", handler.HandleCredit(svcs.Ledger))
			r.Post("/debit", handler.HandleDebit(svcs.Ledger))
			r.Post("/daily", handler.HandleClaimDaily(svcs.Ledger))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", handler.HandleGetInventory(svcs.Ledger))
			r.Post("/grant", handler.HandleGrantItem(svcs.Ledger))
			r.Post("/consume", handler.HandleConsumeItem(svcs.Ledger))
		})

		r.Route("/pull", func(r chi.Router) {
			r.Post("/", handler.HandlePull(svcs.Gacha))
			r.Post("/multi", handler.HandleMultiPull(svcs.Gacha))
		})

		r.Route("/drops", func(r chi.Router) {
			r.Post("/", handler.HandleSpawnDrop(svcs.Drops))
			r.Get("/{dropID}", handler.HandleGetDrop(svcs.Drops))
			r.Post("/{dropID}/claim", handler.HandleClaimDrop(svcs.Drops))
		})

		r.Route("/market", func(r chi.Router) {
			r.Get("/listings", handler.HandleListListings(svcs.Market))
			r.Get("/listings/mine", handler.HandleListMyListings(svcs.Market))
			r.Post("/sell", handler.HandleSell(svcs.Market))
			r.Post("/buy", handler.HandleBuy(svcs.Market))
			r.Post("/remove", handler.HandleRemoveListing(svcs.Market))
			r.Post("/admin/delete", handler.HandleAdminDeleteListing(svcs.Market))
			r.Post("/transfer", handler.HandleTransfer(svcs.Market))
		})

		r.Get("/cooldown", handler.HandleCheckCooldown(svcs.Cooldown))
		r.Post("/cooldown", handler.HandleStartCooldown(svcs.Cooldown))
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health and metrics endpoints are scraped constantly; skip them.
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, "Authorization") {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
