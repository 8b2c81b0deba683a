package bridge

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/compost"
)

const tracerName = "github.com/vango-dev/compost/pkg/bridge"

// Factory creates a fresh, unconnected component instance.
type Factory func() (*compost.Instance, error)

// Config configures a Bridge.
type Config struct {
	// Addr is the listen address used by ListenAndServe.
	Addr string

	// WSPath is the websocket endpoint path.
	WSPath string

	// ReadBufferSize and WriteBufferSize size the websocket buffers.
	ReadBufferSize  int
	WriteBufferSize int

	// ReadLimit is the maximum size in bytes of one client frame.
	ReadLimit int64

	// WriteTimeout bounds every frame write.
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown in ListenAndServe.
	ShutdownTimeout time.Duration

	// Forward lists the kinds of host events sent to the browser as fire
	// frames.
	Forward []string

	// CheckOrigin validates the websocket Origin header.
	// Default: same-origin check by gorilla/websocket.
	CheckOrigin func(r *http.Request) bool

	// Namespace prefixes metric names (default: "compost").
	Namespace string

	// Registerer and Gatherer back the /metrics endpoint.
	// Default: the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	// Logger is the bridge logger. If nil, slog.Default() is used.
	Logger *slog.Logger

	// Tracer traces event delivery. Default: the global provider.
	Tracer trace.Tracer
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Addr:            "localhost:3000",
		WSPath:          "/ws",
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		ReadLimit:       64 * 1024,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		Namespace:       "compost",
		Registerer:      prometheus.DefaultRegisterer,
		Gatherer:        prometheus.DefaultGatherer,
	}
}

// Bridge serves one component type.
type Bridge struct {
	factory  Factory
	config   *Config
	upgrader websocket.Upgrader
	router   chi.Router
	metrics  *Metrics
	logger   *slog.Logger
	tracer   trace.Tracer

	mu       sync.Mutex
	sessions map[*session]struct{}
}

// New creates a Bridge. Unset config fields take their defaults.
func New(factory Factory, config *Config) *Bridge {
	if config == nil {
		config = DefaultConfig()
	} else {
		defaults := DefaultConfig()
		if config.Addr == "" {
			config.Addr = defaults.Addr
		}
		if config.WSPath == "" {
			config.WSPath = defaults.WSPath
		}
		if config.ReadBufferSize == 0 {
			config.ReadBufferSize = defaults.ReadBufferSize
		}
		if config.WriteBufferSize == 0 {
			config.WriteBufferSize = defaults.WriteBufferSize
		}
		if config.ReadLimit == 0 {
			config.ReadLimit = defaults.ReadLimit
		}
		if config.WriteTimeout == 0 {
			config.WriteTimeout = defaults.WriteTimeout
		}
		if config.ShutdownTimeout == 0 {
			config.ShutdownTimeout = defaults.ShutdownTimeout
		}
		if config.Namespace == "" {
			config.Namespace = defaults.Namespace
		}
		if config.Registerer == nil {
			config.Registerer = defaults.Registerer
		}
		if config.Gatherer == nil {
			config.Gatherer = defaults.Gatherer
		}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tracer := config.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	b := &Bridge{
		factory:  factory,
		config:   config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		metrics:  NewMetrics(config.Namespace, config.Registerer),
		logger:   logger.With("component", "bridge"),
		tracer:   tracer,
		sessions: make(map[*session]struct{}),
	}
	b.router = b.routes()
	return b
}

func (b *Bridge) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", b.servePage)
	r.Get(b.config.WSPath, b.serveWS)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(b.config.Gatherer, promhttp.HandlerOpts{}))
	return r
}

// Handler returns the bridge's HTTP handler.
func (b *Bridge) Handler() http.Handler {
	return b.router
}

// ListenAndServe serves on Config.Addr until ctx is cancelled, then shuts
// down gracefully.
func (b *Bridge) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", b.config.Addr)
	if err != nil {
		return err
	}
	return b.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (b *Bridge) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           b.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	srv.RegisterOnShutdown(b.closeSessions)

	errCh := make(chan error, 1)
	go func() {
		b.logger.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), b.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
