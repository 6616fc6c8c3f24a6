package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"hotel-booking/config"
	"hotel-booking/controllers"
	"hotel-booking/events"
	"hotel-booking/locks"
	"hotel-booking/routes"
	"hotel-booking/services"
)

const producerName = "hotel-booking-api"

func main() {
	rootCmd := &cobra.Command{
		Use:   "hotel-booking",
		Short: "Hotel room booking API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve()
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				return migrate()
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func migrate() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		return fmt.Errorf("database connect failed: %w", err)
	}
	defer config.CloseDatabase(db)

	log.Println("Migrations applied")
	return nil
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		return fmt.Errorf("database connect failed: %w", err)
	}
	defer config.CloseDatabase(db)
	log.Println("Database connection established and migrations applied")

	// Booking lock: Redis when configured so several instances share it.
	var locker locks.Locker = locks.NewKeyedMutex()
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := locks.NewRedisClient(ctx, cfg.RedisAddr)
		cancel()
		if err != nil {
			return fmt.Errorf("redis connect failed: %w", err)
		}
		defer rdb.Close()
		locker = locks.NewRedisLocker(rdb, locks.DefaultLockTTL)
		log.Printf("Using redis booking lock at %s", cfg.RedisAddr)
	}

	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, producerName, 0)
		log.Printf("Publishing booking events to %s", cfg.KafkaTopic)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Printf("warning: event publisher close: %v", err)
		}
	}()

	// Initialize services
	userService := services.NewUserService(db, cfg.JWTSecret, cfg.JWTTTL)
	roomService := services.NewRoomService(db)
	bookingService := services.NewBookingService(db, userService, roomService, locker, publisher)
	paymentService := services.NewPaymentService(db, userService, bookingService, publisher)
	wishlistService := services.NewWishlistService(db, userService, roomService)
	reviewService := services.NewReviewService(db, userService, roomService)

	router := routes.SetupRouter(
		controllers.NewAuthController(userService),
		controllers.NewBookingController(bookingService),
		controllers.NewRoomController(roomService),
		controllers.NewPaymentController(paymentService),
		controllers.NewWishlistController(wishlistService),
		controllers.NewReviewController(reviewService),
		cfg.CORSOrigins,
	)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case <-quit:
		log.Println("Shutdown signal received, shutting down server...")
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server stopped gracefully")
	return nil
}
