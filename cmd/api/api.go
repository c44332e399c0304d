package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/docs"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/auth"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/queue"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/ratelimiter"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/repo"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/service"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/store/mongo"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/worker"
)

type application struct {
	config            config
	logger            *zap.SugaredLogger
	rateLimiter       ratelimiter.Limiter
	storage           *mongo.Storage
	broker            queue.Broker
	authenticator     *auth.Authenticator
	userRepo          repo.UserRepository
	outletRepo        repo.OutletRepository
	catalogService    *service.CatalogService
	menuService       *service.MenuService
	governanceService *service.GovernanceService
	orderService      *service.OrderService
	importService     *service.ImportService
	auditService      *service.AuditService
	importWorker      *worker.CatalogImportWorker
	auditWorker       *worker.MenuAuditWorker
}

type config struct {
	addr        string
	env         string
	apiURL      string
	rateLimiter ratelimiter.Config
	mongo       mongoConfig
	rabbitMQ    rabbitMQConfig
	auth        authConfig
	googleCreds string
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

type authConfig struct {
	secret string
	issuer string
	ttl    time.Duration
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Post("/auth/login", app.loginHandler)

		// customer-facing, no auth
		r.Get("/menu/{outlet_id}", app.getMenuHandler)
		r.Post("/orders", app.createOrderHandler)

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.Route("/admin", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Use(app.requireRole(domain.RoleSuperAdmin))

			r.Get("/menu", app.listCatalogHandler)
			r.Post("/menu", app.createMenuItemHandler)
			r.Put("/menu/{item_id}", app.updateMenuItemHandler)
			r.Get("/menu/{item_id}/audit", app.getItemAuditHandler)

			r.Post("/menu/import", app.createImportTaskHandler)
			r.Get("/menu/import/{task_id}", app.getImportTaskHandler)

			r.Get("/price-requests", app.listPriceRequestsHandler)
			r.Get("/price-requests/pending", app.listPendingRequestsHandler)
			r.Put("/price-requests/{request_id}/approve", app.approvePriceRequestHandler)
			r.Put("/price-requests/{request_id}/reject", app.rejectPriceRequestHandler)

			r.Get("/outlets", app.listOutletsHandler)
			r.Post("/outlets", app.createOutletHandler)

			r.Get("/users", app.listUsersHandler)
			r.Post("/users", app.createUserHandler)
		})

		r.Route("/manager", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Use(app.requireRole(domain.RoleOutletManager, domain.RoleSuperAdmin))

			r.Put("/menu/{item_id}/status", app.updateItemStatusHandler)

			r.Post("/price-requests", app.createPriceRequestHandler)

			r.Get("/orders", app.listOrdersHandler)
			r.Patch("/orders/{order_id}/status", app.updateOrderStatusHandler)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// docs
	docs.SwaggerInfo.Title = "IndoCafe"
	docs.SwaggerInfo.Description = "API for the IndoCafe multi-outlet ordering platform"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api/v1"

	// workers
	if app.importWorker != nil {
		if err := app.importWorker.Start(); err != nil {
			return fmt.Errorf("failed to start import worker: %w", err)
		}
	}
	if app.auditWorker != nil {
		if err := app.auditWorker.Start(); err != nil {
			return fmt.Errorf("failed to start audit worker: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.importWorker != nil {
			app.importWorker.Stop()
		}
		if app.auditWorker != nil {
			app.auditWorker.Stop()
		}

		if app.storage != nil {
			if err := app.storage.Close(ctx); err != nil {
				app.logger.Errorw("error closing MongoDB", "error", err)
			} else {
				app.logger.Info("MongoDB connection closed gracefully")
			}
		}

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing RabbitMQ", "error", err)
			} else {
				app.logger.Info("RabbitMQ connection closed gracefully")
			}
		}

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server have started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
