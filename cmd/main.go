package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Formula-SAE/signupspark/internal/api"
	"github.com/Formula-SAE/signupspark/internal/auth"
	"github.com/Formula-SAE/signupspark/internal/config"
	"github.com/Formula-SAE/signupspark/internal/db"
	"github.com/Formula-SAE/signupspark/internal/mail"
	"github.com/Formula-SAE/signupspark/internal/messages"
	"github.com/Formula-SAE/signupspark/internal/messages/discord"
	"github.com/Formula-SAE/signupspark/internal/messages/telegram"
	"github.com/Formula-SAE/signupspark/internal/service"
	"github.com/Formula-SAE/signupspark/internal/store"
	"github.com/gorilla/mux"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

const shutdownTimeout = 15 * time.Second

func main() {
	log.Println("=== Starting SignupSpark ===")

	log.Println("Loading configuration...")
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	log.Printf("Using address: %s", cfg.Address)

	log.Println("Initializing database connection...")
	dialector := sqlite.Open(cfg.DBURL)
	if cfg.RemoteDB() {
		dialector = sqlite.New(sqlite.Config{
			DriverName: "libsql",
			DSN:        cfg.DBURL,
		})
	}
	gormDB, err := gorm.Open(dialector)
	if err != nil {
		log.Fatalf("Failed to create database connection: %v", err)
	}
	log.Println("Database connection established successfully")

	DB := db.NewDB(gormDB)
	log.Println("Running database migrations...")
	if err := DB.Migrate(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	log.Println("Database migrations completed successfully")

	log.Println("Loading stores...")
	stores, err := loadStores(DB)
	if err != nil {
		log.Fatalf("Failed to load stores: %v", err)
	}
	log.Printf("Loaded %d campaigns and %d contacts", len(stores.Campaigns.Campaigns()), len(stores.Contacts.Contacts()))

	relay := newRelay(cfg)

	log.Println("Creating notification providers...")
	providers := []messages.Provider{messages.NewEmailProvider(relay, cfg.PublicURL)}
	if cfg.DiscordEnabled() {
		bot, err := discord.NewDiscordBot(cfg.DiscordToken, cfg.DiscordChannelID, cfg.PublicURL)
		if err != nil {
			log.Fatalf("Can't create discord bot: %v", err)
		}
		providers = append(providers, bot)
	}
	if cfg.TelegramEnabled() {
		bot, err := telegram.NewTelegramBot(cfg.TelegramToken, cfg.TelegramChatID, cfg.PublicURL)
		if err != nil {
			log.Fatalf("Can't create telegram bot: %v", err)
		}
		providers = append(providers, bot)
	}
	providerGroup := messages.NewProviderGroup(providers...)
	log.Printf("%d notification providers enabled", providerGroup.Len())

	svc := service.NewService(stores, providerGroup, cfg.NotifyTimeout)
	if len(cfg.OrganizerEmails) > 0 {
		svc.AllowOrganizers(cfg.OrganizerEmails)
		log.Printf("Sign-in restricted to %d organizer emails", len(cfg.OrganizerEmails))
	}

	hub := api.NewHub()
	stores.Campaigns.Subscribe(hub.Publish)
	stores.Tasks.Subscribe(hub.Publish)
	stores.Contacts.Subscribe(hub.Publish)
	stores.Auth.Subscribe(hub.Publish)

	var identity api.IdentityProvider
	if cfg.GoogleEnabled() {
		identity = auth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
		log.Println("Google sign-in enabled")
	} else {
		log.Println("Google sign-in not configured, organizers cannot sign in")
	}

	sessions := auth.NewManager(cfg.JWTSecret, cfg.SessionTTL)
	server := api.NewAPI(cfg.Address, mux.NewRouter(), svc, sessions, identity, relay, hub)

	go func() {
		log.Printf("Starting server on %s", cfg.Address)
		if err := server.Start(); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	log.Println("Setting up signal handlers for graceful shutdown...")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	log.Println("SignupSpark is running. Press Ctrl+C to stop.")
	<-stop

	log.Println("Received shutdown signal, stopping server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}

	log.Println("Waiting for pending notifications...")
	svc.Wait()
	log.Println("=== SignupSpark stopped ===")
}

func loadStores(p store.Persister) (service.Stores, error) {
	campaigns, err := store.NewCampaignStore(p)
	if err != nil {
		return service.Stores{}, err
	}
	tasks, err := store.NewTaskStore(p)
	if err != nil {
		return service.Stores{}, err
	}
	contacts, err := store.NewContactStore(p)
	if err != nil {
		return service.Stores{}, err
	}
	authStore, err := store.NewAuthStore(p)
	if err != nil {
		return service.Stores{}, err
	}
	return service.Stores{Campaigns: campaigns, Tasks: tasks, Contacts: contacts, Auth: authStore}, nil
}

func newRelay(cfg config.Config) mail.Relay {
	switch cfg.EmailProvider {
	case config.EMAIL_SENDGRID:
		log.Println("Sending email through SendGrid")
		return mail.NewSendGridRelay(cfg.SendGridAPIKey, cfg.EmailFrom)
	case config.EMAIL_SMTP:
		log.Printf("Sending email through SMTP host %s", cfg.SMTPHost)
		return mail.NewSMTPRelay(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.EmailFrom,
		})
	default:
		log.Println("EMAIL_PROVIDER not set, emails will only be logged")
		return mail.LogRelay{}
	}
}
