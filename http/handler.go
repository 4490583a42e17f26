package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sagarc03/stowfront"
	"github.com/sagarc03/stowfront/metrics"
)

// Service is the read side of the proxy consumed by the handler.
type Service interface {
	Fetch(ctx context.Context, requestPath, ifNoneMatch string) stowfront.Result
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type HandlerConfig struct {
	CORS CORSConfig
	// Metrics is optional; nil disables collection and the metrics route.
	Metrics     *metrics.Metrics
	MetricsPath string
	// ChunkSize bounds the body buffer; zero uses stowfront.DefaultChunkSize.
	ChunkSize int
}

// Handler serves bucket objects over HTTP.
type Handler struct {
	config  HandlerConfig
	service Service
}

// NewHandler creates a new Handler with the given configuration and service.
func NewHandler(config *HandlerConfig, service Service) *Handler {
	return &Handler{
		config:  *config,
		service: service,
	}
}

// Router returns an http.Handler serving GET /_health, the optional metrics
// route and GET for every other path.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger)
	r.Use(h.config.Metrics.Middleware)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.Get("/_health", h.handleHealth)
	if h.config.Metrics != nil && h.config.MetricsPath != "" {
		r.Method(http.MethodGet, h.config.MetricsPath, h.config.Metrics.Handler())
	}
	r.Get("/*", h.handleGet)

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeHealth(w)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := LoggerFromContext(ctx)

	res := h.service.Fetch(ctx, stowfront.CleanPath(r.URL.Path), r.Header.Get("If-None-Match"))
	h.config.Metrics.ObserveOutcome(res.Kind.String())

	switch res.Kind {
	case stowfront.KindFound:
		h.writeObject(w, r, res)
	case stowfront.KindNotModified:
		writeNotModified(w)
	case stowfront.KindNotFound:
		logger.Info("object not found", "key", res.Key)
		writeDefaultNotFound(w)
	case stowfront.KindUpstreamError:
		logger.Error("object store request failed", "key", res.Key, "err", res.Err)
		writeDefaultNotFound(w)
	default:
		logger.Error("unknown read result", "key", res.Key, "kind", res.Kind)
		writeDefaultNotFound(w)
	}
}

func (h *Handler) writeObject(w http.ResponseWriter, r *http.Request, res stowfront.Result) {
	body := res.Object.Body
	defer func() {
		if err := body.Close(); err != nil {
			LoggerFromContext(r.Context()).Debug("failed to close object body", "key", res.Key, "err", err)
		}
	}()

	writeObjectHeaders(w, TranslateHeaders(res.Object.Metadata))
	w.WriteHeader(http.StatusOK)

	n, err := streamBody(w, body, h.config.ChunkSize)
	h.config.Metrics.AddStreamedBytes(n)
	if err == nil {
		return
	}

	logger := LoggerFromContext(r.Context())
	if errors.Is(err, errBackendRead) {
		logger.Error("object stream interrupted", "key", res.Key, "bytes", n, "err", err)
		// Headers are already sent; abort so the client sees a broken
		// response instead of a short but well-formed one.
		panic(http.ErrAbortHandler)
	}
	logger.Info("client stream interrupted", "key", res.Key, "bytes", n, "err", err)
}
