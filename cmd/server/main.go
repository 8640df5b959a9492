package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"opsdash/internal/configs"
	httpdelivery "opsdash/internal/delivery/http"
	"opsdash/internal/delivery/kafka"
	"opsdash/internal/models"
	"opsdash/internal/repository"
	"opsdash/internal/repository/postgres"
	"opsdash/internal/service"
	"opsdash/internal/upstream"
)

// @title delivery assignment service
// @version 1.0
// @description Stage 3 of the order-fulfillment workflow: partitions each product's boxes into CT ranges, binds them to drivers and destination airports, and persists the aggregated assignment payload for the pricing stage.

// @host localhost:8082
// @basePath /

func main() {
	_ = godotenv.Load()
	cfg, err := configs.LoadConfig()
	if err != nil {
		logrus.Fatalf("config load: %s", err)
	}
	logrus.Print("config parsed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.ConnectDB(postgres.Config{
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		Username: cfg.PostgresUser,
		Password: cfg.PostgresPass,
		DbName:   cfg.PostgresDB,
		SslMode:  cfg.PostgresSSLMode,
	})
	if err != nil {
		logrus.Fatalf("postgres connect: %s", err)
	}
	defer func() {
		if derr := db.Close(); derr != nil {
			logrus.Errorf("db close: %v", derr)
		}
	}()
	if err := db.AutoMigrate(&models.OrderAssignment{}).Error; err != nil {
		logrus.Fatalf("migrate: %s", err)
	}
	logrus.Print("connected to postgres")

	repo := repository.NewRepository(db, cfg.SessionTTL, cfg.SessionShards)
	up := upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)

	publisher, err := kafka.NewPublisher(cfg.KafkaBrokersSlice(), cfg.KafkaTopic)
	if err != nil {
		logrus.Fatalf("kafka publisher: %s", err)
	}
	defer func() {
		if cerr := publisher.Close(); cerr != nil {
			logrus.Errorf("publisher close: %v", cerr)
		}
	}()

	svc := service.NewService(repo, up, publisher, cfg.PackagingWeightPerBox)

	consumer := kafka.NewConsumer(kafka.Config{
		Brokers: cfg.KafkaBrokersSlice(),
		GroupID: cfg.KafkaGroupID,
		Topic:   cfg.KafkaTopic,
		DLQ:     cfg.KafkaDLQ,
	}, svc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := consumer.Subscribe(ctx); err != nil {
			logrus.Errorf("consumer stopped: %v", err)
			cancel()
		}
	}()
	logrus.Print("stage-event subscription started")

	h := httpdelivery.NewHandler(svc)
	srv := new(httpdelivery.Server)

	go func() {
		if err := srv.Run(cfg.HTTPAddr, h.InitRoutes()); err != nil {
			logrus.Errorf("http run: %v", err)
			cancel()
		}
	}()
	logrus.Printf("http server started on %s", cfg.HTTPAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	select {
	case <-quit:
		logrus.Print("shutdown signal received")
	case <-ctx.Done():
		logrus.Print("context canceled, shutting down")
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("http shutdown: %s", err)
	}

	if err := consumer.Close(); err != nil {
		logrus.Errorf("consumer close: %s", err)
	}

	wg.Wait()
	logrus.Print("service stopped")
}
