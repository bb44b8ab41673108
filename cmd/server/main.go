package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vinay9897/postpaid-billing-system/internal/api"
	"github.com/Vinay9897/postpaid-billing-system/internal/config"
	"github.com/Vinay9897/postpaid-billing-system/internal/handler"
	"github.com/Vinay9897/postpaid-billing-system/internal/infrastructure/auth"
	"github.com/Vinay9897/postpaid-billing-system/internal/infrastructure/kafka"
	"github.com/Vinay9897/postpaid-billing-system/internal/infrastructure/redis"
	"github.com/Vinay9897/postpaid-billing-system/internal/observability"
	"github.com/Vinay9897/postpaid-billing-system/internal/repository/postgres"
	service "github.com/Vinay9897/postpaid-billing-system/internal/services"
	_ "github.com/lib/pq"
)

func main() {
	shutdown, _ := observability.Setup("billing-service")
	defer shutdown(context.Background())

	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	invoiceRepo := postgres.NewInvoiceRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	usageRepo := postgres.NewUsageRecordRepository(db)

	redisClient := redis.NewClient(cfg.RedisAddr)
	defer redisClient.Close()

	producer := kafka.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	billingConsumer := kafka.NewConsumer(cfg.KafkaBrokers, "billing", "billing-service-group", invoiceRepo, paymentRepo)
	go billingConsumer.Consume(consumerCtx)
	defer billingConsumer.Close()

	keys := auth.LoadKeypair(cfg.PrivateKeyPath, cfg.PublicKeyPath)
	tokens := auth.NewTokenService(keys)

	authSvc := service.NewAuthService(userRepo, customerRepo, tokens, producer, cfg.TokenTTL)
	adminUsers := service.NewAdminUserService(userRepo)
	customers := service.NewCustomerService(customerRepo, serviceRepo, redisClient)
	billing := service.NewBillingService(customerRepo, serviceRepo, invoiceRepo, paymentRepo, usageRepo, producer)

	h := handler.NewHandler(authSvc, adminUsers, customers, billing)
	router := api.SetupRouter(h, tokens)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}
	go func() {
		log.Printf("Starting server on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
