package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fedorhub/ms-go-notifications/app/controller"
	"github.com/fedorhub/ms-go-notifications/app/gateway"
	"github.com/fedorhub/ms-go-notifications/app/handler"
	"github.com/fedorhub/ms-go-notifications/app/lock"
	"github.com/fedorhub/ms-go-notifications/app/metrics"
	"github.com/fedorhub/ms-go-notifications/app/middleware"
	"github.com/fedorhub/ms-go-notifications/app/provider"
	"github.com/fedorhub/ms-go-notifications/app/queue"
	"github.com/fedorhub/ms-go-notifications/app/repository"
	"github.com/fedorhub/ms-go-notifications/app/service"
	"github.com/fedorhub/ms-go-notifications/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the event consumers and the HTTP read API",
	Long:  "Consume all notification queues and serve the notifications read API on one process.",
	Run:   runServe,
}

// init registers the serve command.
func init() {
	rootCmd.AddCommand(serveCmd)
}

// deps holds everything the consumers need, shared by serve and consume.
type deps struct {
	cfg      *config.Config
	log      *logrus.Logger
	db       *sql.DB
	rdb      *redis.Client
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	provider provider.EmailProvider

	users         *repository.UserRepository
	notifications *repository.NotificationRepository

	queueService *queue.Service
}

func (d *deps) close() {
	if d.queueService != nil {
		d.queueService.Close()
	}
	if d.rdb != nil {
		_ = d.rdb.Close()
	}
	if d.db != nil {
		_ = d.db.Close()
	}
}

// buildDeps loads configuration and wires every dependency of the dispatch
// pipeline, including the four queue bindings.
func buildDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	d := &deps{cfg: cfg, log: log}

	d.db, err = sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	d.db.SetMaxOpenConns(cfg.MySQLMaxOpen)
	d.db.SetMaxIdleConns(cfg.MySQLMaxIdle)
	d.db.SetConnMaxLifetime(cfg.MySQLMaxLife)
	if err := d.db.Ping(); err != nil {
		d.close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	d.rdb = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := d.rdb.Ping(context.Background()).Err(); err != nil {
		d.close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	productSearch, err := gateway.NewProductSearch(gateway.ProductSearchConfig{
		URL:      cfg.OpenSearchURL,
		Username: cfg.OpenSearchUsername,
		Password: cfg.OpenSearchPassword,
		Index:    cfg.OpenSearchIndex,
		Insecure: cfg.OpenSearchInsecure,
	})
	if err != nil {
		d.close()
		return nil, fmt.Errorf("connect to search index: %w", err)
	}

	d.provider, err = buildEmailProvider(cfg)
	if err != nil {
		d.close()
		return nil, fmt.Errorf("build email provider: %w", err)
	}

	d.registry = prometheus.NewRegistry()
	d.metrics = metrics.New(d.registry)

	d.users = repository.NewUserRepository(d.db)
	d.notifications = repository.NewNotificationRepository(d.db)

	enricher := gateway.New(d.users, productSearch, d.metrics, log)
	mailer := service.NewMailer(d.provider, d.notifications, d.metrics, log)
	locker := lock.NewRedisLocker(d.rdb)

	d.queueService, err = queue.NewService(cfg.AMQPURL, locker, d.metrics, cfg.HandlerTimeout, log)
	if err != nil {
		d.close()
		return nil, fmt.Errorf("connect to broker: %w", err)
	}
	d.queueService.Bind(queue.QueueAuthEvents, handler.NewAuthHandler(enricher, mailer, log))
	d.queueService.Bind(queue.QueueProductEvents, handler.NewProductHandler(enricher, mailer, log))
	d.queueService.Bind(queue.QueueOrderEvents, handler.NewOrderHandler(enricher, mailer, log))
	d.queueService.Bind(queue.QueueUserDataSync, handler.NewUserSyncHandler(d.users, log))

	return d, nil
}

// runServe wires dependencies and runs the consumers alongside the HTTP API.
func runServe(_ *cobra.Command, _ []string) {
	d, err := buildDeps()
	if err != nil {
		logrus.Fatalf("Failed to start: %v", err)
	}
	defer d.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := d.queueService.Run(ctx); err != nil {
			d.log.WithError(err).Fatal("consumer error")
		}
	}()

	e := setupHTTPServer(d)
	go func() {
		httpAddr := net.JoinHostPort(d.cfg.HTTPHost, d.cfg.HTTPPort)
		d.log.WithField("addr", httpAddr).Info("starting HTTP server")
		if err := e.Start(httpAddr); err != nil && err != http.ErrServerClosed {
			d.log.WithError(err).Fatal("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	d.log.Info("shutting down")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		d.log.WithError(err).Error("HTTP shutdown error")
	}

	d.log.Info("server stopped")
}

// setupHTTPServer configures the Echo HTTP server and routes.
func setupHTTPServer(d *deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	notificationController := controller.NewNotificationController(d.notifications, d.provider, d.log)

	e.GET("/alive", notificationController.Alive)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{})))

	authed := e.Group("", middleware.JWTAuth(d.cfg.JWTSecret))
	authed.GET("/notifications", notificationController.List)
	authed.POST("/send-email", notificationController.SendEmail)

	return e
}

func buildEmailProvider(cfg *config.Config) (provider.EmailProvider, error) {
	switch strings.ToLower(cfg.EmailProvider) {
	case "", "ses":
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, err
		}
		source := fmt.Sprintf("%q <%s>", cfg.SenderName, cfg.SESSourceEmail)
		return provider.NewSESProvider(awsCfg, source), nil
	case "noop":
		return provider.NewNoopProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported EMAIL_PROVIDER: %s", cfg.EmailProvider)
	}
}
