package app

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	migrate "github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/karavil/cinema-booking-api/internal/booking"
	"github.com/karavil/cinema-booking-api/internal/cache"
	"github.com/karavil/cinema-booking-api/internal/catalog"
	"github.com/karavil/cinema-booking-api/internal/domain"
	"github.com/karavil/cinema-booking-api/internal/event"
	"github.com/karavil/cinema-booking-api/internal/repository"
	appvalidator "github.com/karavil/cinema-booking-api/internal/validator"
	"github.com/karavil/cinema-booking-api/internal/vcs"
	"github.com/karavil/cinema-booking-api/migrations"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
)

var (
	version = vcs.Version()
)

type application struct {
	config    config
	logger    *slog.Logger
	db        *pgxpool.Pool
	redis     redis.UniversalClient
	validator *validator.Validate

	showtimeRepo   domain.ShowtimeRepository
	auditoriumRepo domain.AuditoriumRepository
	ticketRepo     domain.TicketRepository

	catalogClient catalog.Client
	reservations  *booking.ReservationService
	showtimes     *booking.ShowtimeService
	publisher     event.Publisher
}

type config struct {
	port int
	env  string
	db   struct {
		dsn          string
		maxOpenConns int
		maxIdleTime  time.Duration
		automigrate  bool
	}
	redis struct {
		url          string
		maxOpenConns int
		maxIdleConns int
		maxIdleTime  time.Duration
	}
	moviesApi struct {
		baseAddress   string
		apiKeyHeader  string
		apiKey        string
		cacheEnabled  bool
		cacheTtlInSec int
	}
	amqpUrl          string
	otelCollectorUrl string
}

func Run() error {
	var cfg config

	flag.IntVar(&cfg.port, "port", 3000, "server port")
	flag.StringVar(&cfg.env, "env", "dev", "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.db.dsn, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.db.maxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.db.maxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")
	flag.BoolVar(&cfg.db.automigrate, "db-automigrate", true, "Run database migrations on startup")

	flag.StringVar(&cfg.redis.url, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.redis.maxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.redis.maxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.redis.maxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.moviesApi.baseAddress, "movies-api-url", "", "Movie catalog base address")
	flag.StringVar(&cfg.moviesApi.apiKeyHeader, "movies-api-key-header", "X-Apikey", "Movie catalog API key header name")
	flag.StringVar(&cfg.moviesApi.apiKey, "movies-api-key", "", "Movie catalog API key")
	flag.BoolVar(&cfg.moviesApi.cacheEnabled, "movies-cache-enabled", true, "Cache movie catalog responses")
	flag.IntVar(&cfg.moviesApi.cacheTtlInSec, "movies-cache-ttl", 3600, "Movie catalog cache TTL in seconds")

	flag.StringVar(&cfg.amqpUrl, "amqp-url", "", "RabbitMQ URL (events disabled when empty)")
	flag.StringVar(&cfg.otelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	app := &application{
		config:    cfg,
		logger:    logger,
		validator: appvalidator.NewValidator(),
	}

	telemetryShutdown, err := app.initTelemetry()
	if err != nil {
		return err
	}
	defer telemetryShutdown(context.Background())

	if cfg.db.automigrate {
		err = runMigrations(cfg.db.dsn)
		if err != nil {
			return err
		}
	}

	db, err := newDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	app.db = db
	app.wireRepositories()

	if cfg.moviesApi.cacheEnabled {
		redisClient, err := newRedisClient(cfg)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		app.redis = redisClient
	}

	app.wireCatalogClient()
	app.wireServices()

	publisher, err := newPublisher(cfg)
	if err != nil {
		return err
	}
	defer publisher.Close()

	app.publisher = publisher

	return app.run()
}

func (app *application) wireRepositories() {
	app.showtimeRepo = repository.NewPostgresShowtimeRepository(app.db)
	app.auditoriumRepo = repository.NewPostgresAuditoriumRepository(app.db)
	app.ticketRepo = repository.NewPostgresTicketRepository(app.db)
}

func (app *application) wireServices() {
	app.reservations = booking.NewReservationService(app.showtimeRepo, app.auditoriumRepo, app.ticketRepo, app.logger)
	app.showtimes = booking.NewShowtimeService(app.catalogClient, app.showtimeRepo, app.auditoriumRepo, app.logger)
}

func newPublisher(cfg config) (event.Publisher, error) {
	if cfg.amqpUrl == "" {
		return event.NopPublisher{}, nil
	}

	return event.NewAMQPPublisher(cfg.amqpUrl)
}

func (app *application) wireCatalogClient() {
	remote := catalog.NewHTTPClient(
		app.config.moviesApi.baseAddress,
		app.config.moviesApi.apiKeyHeader,
		app.config.moviesApi.apiKey,
	)

	if !app.config.moviesApi.cacheEnabled {
		app.catalogClient = remote
		return
	}

	ttl := time.Duration(app.config.moviesApi.cacheTtlInSec) * time.Second
	app.catalogClient = catalog.NewCachedClient(remote, cache.NewRedisCache(app.redis), ttl, app.logger)
}

func runMigrations(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return err
	}

	source, err := iofs.New(migrations.Files, ".")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

func newRedisClient(cfg config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.redis.url,
		MaxIdleConns:    cfg.redis.maxIdleConns,
		MaxActiveConns:  cfg.redis.maxOpenConns,
		ConnMaxIdleTime: cfg.redis.maxIdleTime,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func newDatabasePool(cfg config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.db.dsn)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.db.maxIdleTime
	config.MaxConns = int32(cfg.db.maxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("cinema-booking-api", otelchi.WithChiRoutes(r)))
	r.Use(app.recoverPanic)

	r.Get("/healthcheck", app.GetHealth)

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", app.GetMoviesHandler)
		r.Get("/{movieId}", app.GetMovieByIdHandler)
	})

	r.Post("/showtimes", app.CreateShowtimeHandler)

	r.Route("/reservations", func(r chi.Router) {
		r.Post("/", app.ReserveSeatsHandler)
		r.Post("/{reservationId}/confirmation", app.ConfirmReservationHandler)
	})

	return r
}
