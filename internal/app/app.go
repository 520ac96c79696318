package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter"
	"github.com/niksmo/storefront/internal/adapter/dummyjson"
	"github.com/niksmo/storefront/internal/adapter/httpclient"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/navigation"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type stores struct {
	cart    *service.Cart
	catalog *service.Catalog
}

type events struct {
	producer     *kafka.ClientEventsProducer
	unsubscribes []func()
}

// App wires the storefront stores to their adapters.
type App struct {
	ctx      context.Context
	cfg      config.Config
	location *navigation.Location
	api      port.ProductsAPI
	stores   stores
	events   events
}

// New builds the application. rawURL is the initial location, empty for
// the root.
func New(ctx context.Context, cfg config.Config, rawURL string) (*App, error) {
	const op = "app.New"

	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()

	steps := []func() error{
		app.initNavigation(rawURL),
		app.initProductsAPI,
		app.initStores,
		app.initEvents,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			app.Close(ctx)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return app, nil
}

func (app *App) Cart() *service.Cart {
	return app.stores.cart
}

func (app *App) Catalog() *service.Catalog {
	return app.stores.catalog
}

func (app *App) Location() *navigation.Location {
	return app.location
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initNavigation(rawURL string) func() error {
	return func() error {
		loc, err := navigation.New(rawURL)
		if err != nil {
			return err
		}
		app.location = loc
		return nil
	}
}

func (app *App) initProductsAPI() error {
	onRequest, onResponse := httpclient.Observers(slog.Default())

	cl, err := httpclient.New(
		app.cfg.API.BaseURL,
		httpclient.WithTimeout(app.cfg.API.RequestTimeout),
		httpclient.WithRequestInterceptor(onRequest),
		httpclient.WithResponseInterceptor(onResponse),
	)
	if err != nil {
		return err
	}

	app.api = dummyjson.New(cl)
	return nil
}

func (app *App) initStores() error {
	app.stores.cart = service.NewCart()
	app.stores.catalog = service.NewCatalog(
		app.api,
		service.WithPageSize(app.cfg.Catalog.PageSize),
		service.WithNavigator(app.location),
	)
	return nil
}

func (app *App) initEvents() error {
	const op = "App.initEvents"
	log := slog.With("op", op)

	if !app.cfg.EventsEnabled() {
		log.Info("client events are disabled")
		return nil
	}

	ctx := app.ctx
	topic := app.cfg.Events.Topic

	tlsCfg, err := app.eventsTLSConfig()
	if err != nil {
		return err
	}

	srOpts := []sr.ClientOpt{sr.URLs(app.cfg.Events.SchemaRegistryURLs...)}
	if tlsCfg != nil {
		srOpts = append(srOpts, sr.DialTLSConfig(tlsCfg))
	}
	srClient, err := sr.NewClient(srOpts...)
	if err != nil {
		return err
	}

	serde, err := schema.NewSerdeClientEventV1(
		ctx,
		schema.SubjectOpt(topic+"-value"),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		return err
	}

	producer, err := kafka.NewClientEventsProducer(
		kafka.ProducerClientOpt(ctx, app.cfg.Events.SeedBrokers, topic, tlsCfg),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		return err
	}
	app.events.producer = producer

	app.subscribe(producer)

	log.Info("client events are enabled", "topic", topic)
	return nil
}

func (app *App) eventsTLSConfig() (*tls.Config, error) {
	if !app.cfg.TLSEnabled() {
		return nil, nil
	}
	files := app.cfg.Events.TLS
	return adapter.MakeTLSConfig(files.CAFile, files.CertFile, files.KeyFile)
}

func (app *App) subscribe(p port.ClientEventsPublisher) {
	publish := func(evt domain.ClientEvent) {
		p.Publish(app.ctx, evt)
	}
	app.events.unsubscribes = append(app.events.unsubscribes,
		app.stores.cart.Subscribe(publish),
		app.stores.catalog.Subscribe(publish),
	)
}

// Close detaches the stores from the events producer and flushes it.
func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	for _, unsubscribe := range app.events.unsubscribes {
		unsubscribe()
	}
	app.events.unsubscribes = nil

	if app.events.producer != nil {
		app.events.producer.Close(ctx)
	}

	slog.Info("application is closed")
}
