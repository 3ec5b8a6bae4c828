package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wellwish/config"
	"wellwish/internal/database"
	"wellwish/internal/router"
	"wellwish/pkg/cloudinary"
	"wellwish/pkg/mailer"
	"wellwish/pkg/payment"
)

func main() {
	cfg := config.Load()
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	cloud, err := cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
	if err != nil {
		log.Fatalf("cloudinary: %v", err)
	}

	var provider payment.Provider = &payment.StubProvider{}
	if cfg.Stripe.SecretKey != "" {
		provider = payment.NewStripeProvider(cfg.Stripe.SecretKey)
	} else {
		log.Printf("[payment] STRIPE_SECRET_KEY not set, using stub provider")
	}

	var mail mailer.Mailer = &mailer.StubMailer{}
	if cfg.Mail.ServiceID != "" {
		mail = mailer.NewEmailJSMailer(cfg.Mail.BaseURL, cfg.Mail.ServiceID, cfg.Mail.TemplateID, cfg.Mail.PublicKey)
	} else {
		log.Printf("[mail] EMAILJS_SERVICE_ID not set, using stub mailer")
	}

	engine := router.Setup(cfg, db, cloud, provider, mail)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Printf("server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server shutdown:", err)
	}
	log.Println("server stopped")
}
