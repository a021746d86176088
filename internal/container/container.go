package container

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/samber/do"
	"github.com/serroba/url-registry/internal/events"
	"github.com/serroba/url-registry/internal/handlers"
	"github.com/serroba/url-registry/internal/health"
	"github.com/serroba/url-registry/internal/messaging"
	"github.com/serroba/url-registry/internal/metrics"
	"github.com/serroba/url-registry/internal/middleware"
	"github.com/serroba/url-registry/internal/shortener"
	"github.com/serroba/url-registry/internal/store"
	"go.uber.org/zap"
)

// eventBuffer is the per-subscriber channel size of the event bus.
const eventBuffer = 256

// Options are the command line options. Every option can also be set
// through a SERVICE_ prefixed environment variable.
type Options struct {
	Host          string `default:"localhost" help:"Host to listen on"`
	Port          int    `default:"8080"      help:"Port to listen on"                                       short:"p"`
	BaseURL       string `default:""          help:"Base of returned short URLs, defaults to http://host:port"`
	TTL           string `default:"15m"       help:"How long a short URL stays valid"`
	CodeLength    int    `default:"6"         help:"Length of generated short codes"                         short:"c"`
	MaxAttempts   int    `default:"16"        help:"Code generation attempts before giving up"`
	SweepInterval string `default:"1m"        help:"Background expiry sweep interval, 0 disables it"`
	ServeExpired  bool   `default:"false"     help:"Keep resolving expired entries until they are swept"`
	Seed          string `default:""          help:"Entries to preload, as code=url pairs separated by commas"`
	LogFormat     string `default:"json"      help:"Log format: json or console"`
}

// Settings are Options parsed and checked.
type Settings struct {
	Addr          string
	BaseURL       string
	TTL           time.Duration
	CodeLength    int
	MaxAttempts   int
	SweepInterval time.Duration
	ServeExpired  bool
	Seed          []shortener.Entry
	LogFormat     string
}

// Settings parses the raw options.
func (o *Options) Settings() (Settings, error) {
	ttl, err := time.ParseDuration(o.TTL)
	if err != nil {
		return Settings{}, fmt.Errorf("ttl: %w", err)
	}

	if ttl <= 0 {
		return Settings{}, fmt.Errorf("ttl: must be positive, got %s", ttl)
	}

	interval, err := time.ParseDuration(o.SweepInterval)
	if err != nil {
		return Settings{}, fmt.Errorf("sweep-interval: %w", err)
	}

	if o.CodeLength <= 0 {
		return Settings{}, fmt.Errorf("code-length: must be positive, got %d", o.CodeLength)
	}

	seed, err := ParseSeed(o.Seed)
	if err != nil {
		return Settings{}, err
	}

	baseURL := strings.TrimSuffix(o.BaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://%s:%d", o.Host, o.Port)
	}

	return Settings{
		Addr:          fmt.Sprintf("%s:%d", o.Host, o.Port),
		BaseURL:       baseURL,
		TTL:           ttl,
		CodeLength:    o.CodeLength,
		MaxAttempts:   o.MaxAttempts,
		SweepInterval: interval,
		ServeExpired:  o.ServeExpired,
		Seed:          seed,
		LogFormat:     o.LogFormat,
	}, nil
}

// ParseSeed parses "code=url,code=url". Blank input yields no entries.
func ParseSeed(raw string) ([]shortener.Entry, error) {
	var entries []shortener.Entry

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		code, url, ok := strings.Cut(pair, "=")
		if !ok || code == "" || url == "" {
			return nil, fmt.Errorf("seed: %q is not code=url", pair)
		}

		entries = append(entries, shortener.Entry{
			Code: shortener.Code(strings.TrimSpace(code)),
			URL:  strings.TrimSpace(url),
		})
	}

	return entries, nil
}

// SettingsPackage parses the provided *Options.
func SettingsPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (Settings, error) {
		return do.MustInvoke[*Options](i).Settings()
	})
}

// LoggerPackage provides the process logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		return NewLogger(do.MustInvoke[Settings](i).LogFormat)
	})
}

// MetricsPackage provides the Prometheus collectors.
func MetricsPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*metrics.Metrics, error) {
		return metrics.New(), nil
	})
}

// EventsPackage provides the in-process event bus, the registry event
// publisher and the consumer group feeding the audit log.
func EventsPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.Bus, error) {
		return messaging.NewBus(eventBuffer, do.MustInvoke[*zap.Logger](i)), nil
	})

	do.Provide(injector, func(i *do.Injector) (*events.Publisher, error) {
		bus := do.MustInvoke[*messaging.Bus](i)

		return events.NewPublisher(bus.Publisher(), time.Now, do.MustInvoke[*zap.Logger](i)), nil
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.Group, error) {
		logger := do.MustInvoke[*zap.Logger](i)
		bus := do.MustInvoke[*messaging.Bus](i)

		group := messaging.NewGroup(logger)
		for _, consumer := range events.NewAuditLog(logger).Consumers(bus.Subscriber(), logger) {
			group.Add(consumer)
		}

		return group, nil
	})
}

// RegistryPackage provides the registry, its instrumented interface view
// and the background sweeper.
func RegistryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*store.Registry, error) {
		settings := do.MustInvoke[Settings](i)
		m := do.MustInvoke[*metrics.Metrics](i)

		generate, err := shortener.NewCodeGenerator(settings.CodeLength)
		if err != nil {
			return nil, err
		}

		registry, err := store.NewRegistry(store.Config{
			TTL:          settings.TTL,
			MaxAttempts:  settings.MaxAttempts,
			ServeExpired: settings.ServeExpired,
			Generate:     generate,
			Listener:     store.Listeners{m, do.MustInvoke[*events.Publisher](i)},
			Logger:       do.MustInvoke[*zap.Logger](i),
			Seed:         settings.Seed,
		})
		if err != nil {
			return nil, err
		}

		m.WatchEntries(registry.Len)

		return registry, nil
	})

	do.Provide(injector, func(i *do.Injector) (shortener.Registry, error) {
		registry := do.MustInvoke[*store.Registry](i)

		return do.MustInvoke[*metrics.Metrics](i).InstrumentRegistry(registry), nil
	})

	do.Provide(injector, func(i *do.Injector) (*store.Sweeper, error) {
		return store.NewSweeper(
			do.MustInvoke[*store.Registry](i),
			do.MustInvoke[Settings](i).SweepInterval,
			time.Now,
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
}

// HTTPPackage provides the router and the huma API with every route registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*chi.Mux, error) {
		router := chi.NewMux()
		router.Handle("/metrics", do.MustInvoke[*metrics.Metrics](i).Handler())

		return router, nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)
		settings := do.MustInvoke[Settings](i)

		api := humachi.New(router, handlers.NewConfig("URL Registry", "1.0.0"))
		api.UseMiddleware(
			middleware.RequestMetaMiddleware(api),
			middleware.AccessLog(logger),
			middleware.Metrics(do.MustInvoke[*metrics.Metrics](i)),
		)

		health.RegisterRoutes(api, health.NewHandler(do.MustInvoke[*store.Registry](i)))
		handlers.RegisterRoutes(api, handlers.NewURLHandler(
			do.MustInvoke[shortener.Registry](i),
			settings.BaseURL,
			logger,
		))

		return api, nil
	})
}

// Register provides every package for options.
func Register(injector *do.Injector, options *Options) {
	do.ProvideValue(injector, options)
	SettingsPackage(injector)
	LoggerPackage(injector)
	MetricsPackage(injector)
	EventsPackage(injector)
	RegistryPackage(injector)
	HTTPPackage(injector)
}

// Start starts the background workers: the audit consumers and the sweeper.
func Start(ctx context.Context, injector *do.Injector) error {
	if err := do.MustInvoke[*messaging.Group](injector).Start(ctx); err != nil {
		return fmt.Errorf("start event consumers: %w", err)
	}

	if err := do.MustInvoke[*store.Sweeper](injector).Start(ctx); err != nil {
		return fmt.Errorf("start sweeper: %w", err)
	}

	return nil
}
