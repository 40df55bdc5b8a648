package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	adminpkg "github.com/mikios34/storefront-backend/admin"
	adminrepo "github.com/mikios34/storefront-backend/admin/repository"
	adminsvc "github.com/mikios34/storefront-backend/admin/service"
	authpkg "github.com/mikios34/storefront-backend/auth"
	authrepo "github.com/mikios34/storefront-backend/auth/repository"
	authsvc "github.com/mikios34/storefront-backend/auth/service"
	"github.com/mikios34/storefront-backend/cache"
	cartrepo "github.com/mikios34/storefront-backend/cart/repository"
	cartsvc "github.com/mikios34/storefront-backend/cart/service"
	catalogrepo "github.com/mikios34/storefront-backend/catalog/repository"
	catalogsvc "github.com/mikios34/storefront-backend/catalog/service"
	"github.com/mikios34/storefront-backend/config"
	customerrepo "github.com/mikios34/storefront-backend/customer/repository"
	customersvc "github.com/mikios34/storefront-backend/customer/service"
	api "github.com/mikios34/storefront-backend/handler"
	"github.com/mikios34/storefront-backend/mailer"
	"github.com/mikios34/storefront-backend/media"
	"github.com/mikios34/storefront-backend/messaging"
	"github.com/mikios34/storefront-backend/messaging/kafka"
	"github.com/mikios34/storefront-backend/middleware"
	orderrepo "github.com/mikios34/storefront-backend/order/repository"
	ordersvc "github.com/mikios34/storefront-backend/order/service"
	"github.com/mikios34/storefront-backend/realtime"
	reviewrepo "github.com/mikios34/storefront-backend/review/repository"
	reviewsvc "github.com/mikios34/storefront-backend/review/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := setupDatabase(cfg)
	if err != nil {
		slog.Error("failed to set up database", "err", err)
		os.Exit(1)
	}

	var store cache.Store = cache.Noop{}
	if cfg.RedisAddr != "" {
		rs, err := cache.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, "storefront:")
		if err != nil {
			slog.Warn("redis unavailable; product cache disabled", "addr", cfg.RedisAddr, "err", err)
		} else {
			defer rs.Close()
			store = rs
		}
	}

	var publisher messaging.Publisher = messaging.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		broker := kafka.NewBroker(cfg.KafkaBrokers)
		defer broker.Close()
		publisher = broker
	}

	var mail mailer.Sender = mailer.LogSender{}
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	}

	var verifier middleware.IDTokenVerifier
	fbClient, err := authpkg.InitFirebaseAuth(ctx, cfg.FirebaseCredentials)
	if err != nil {
		slog.Warn("firebase auth init failed; firebase sign-in disabled", "err", err)
	} else if fbClient != nil {
		verifier = fbClient
	}

	hub := realtime.NewHub()
	files := media.LocalStore{Dir: cfg.UploadDir}

	authService := authsvc.NewAuthService(authrepo.NewGormAuthRepo(db), mail, authsvc.Options{
		Secret:           cfg.JWTSecret,
		AccessTTL:        cfg.AccessTokenTTL,
		RefreshTTL:       cfg.RefreshTokenTTL,
		PasswordResetTTL: cfg.PasswordResetTTL,
		PasswordResetURL: cfg.PasswordResetURL,
		BcryptCost:       cfg.BcryptCost,
	})
	catalogService := catalogsvc.NewCatalogService(catalogrepo.NewGormCatalogRepo(db), store, cfg.CacheTTL, files)
	reviewService := reviewsvc.NewReviewService(reviewrepo.NewGormReviewRepo(db))
	cartService := cartsvc.NewCartService(cartrepo.NewGormCartRepo(db))
	orderService := ordersvc.NewOrderService(orderrepo.NewGormOrderRepo(db), publisher, hub, cfg.KafkaOrderTopic)
	customerService := customersvc.NewCustomerService(customerrepo.NewGormCustomerRepo(db))
	adminService := adminsvc.NewAdminService(adminrepo.NewGormAdminRepo(db), cfg.BcryptCost)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		created, err := adminService.EnsureAdmin(ctx, adminpkg.RegisterAdminRequest{
			Username: cfg.AdminUsername,
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
		})
		if err != nil {
			slog.Error("failed to bootstrap admin", "username", cfg.AdminUsername, "err", err)
			os.Exit(1)
		}
		if created {
			slog.Info("bootstrap admin created", "username", cfg.AdminUsername)
		}
	}

	if cfg.LogLevel > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), gin.Logger(), cors.New(corsConfig(cfg.CORSOrigins)))
	r.Static(media.PublicPrefix, cfg.UploadDir)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api.RegisterRoutes(r, api.Deps{
		JWTSecret: cfg.JWTSecret,
		Firebase:  verifier,
		Auth:      api.NewAuthHandler(authService),
		Catalog:   api.NewCatalogHandler(catalogService, files),
		Reviews:   api.NewReviewHandler(reviewService),
		Carts:     api.NewCartHandler(cartService),
		Orders:    api.NewOrderHandler(orderService),
		Customers: api.NewCustomerHandler(customerService),
		Admins:    api.NewAdminHandler(adminService),
		WS:        api.NewWSHandler(hub).WithOrders(orderService),
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		slog.Info("HTTP server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "err", err)
	}
}

func corsConfig(origins []string) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cc.AllowAllOrigins = true
			return cc
		}
	}
	cc.AllowOrigins = origins
	cc.AllowCredentials = true
	return cc
}
