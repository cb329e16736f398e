package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/zankoclinic/clinic-api/internal/agent"
)

type Config struct {
	ServerURL string `envconfig:"SERVER_URL" default:"http://localhost:3000"`
	Email     string `envconfig:"EMAIL" required:"true"`
	Password  string `envconfig:"PASSWORD" required:"true"`
	Role      string `envconfig:"ROLE" default:"doctor"`

	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	MailFrom     string `envconfig:"MAIL_FROM"`
	MailTo       string `envconfig:"MAIL_TO"`
}

// logToasts writes toasts to the log; the headless agent has no screen.
type logToasts struct{}

func (logToasts) ShowToast(message string, _ time.Duration) {
	log.Info().Str("toast", message).Msg("reminder")
}

type logBadge struct{}

func (logBadge) SetCount(n int) {
	log.Info().Int("unread", n).Msg("reminder badge")
}

func main() {
	var cfg Config
	if err := envconfig.Process("agent", &cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	client, err := agent.NewClient(cfg.ServerURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create client")
	}

	ctx := context.Background()

	login := client.LoginDoctor
	if cfg.Role == "admin" {
		login = client.LoginAdmin
	}
	user, err := login(ctx, cfg.Email, cfg.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("login failed")
	}
	log.Info().Str("user", user.Name).Str("role", string(user.Role)).Msg("logged in")

	var notifier agent.Notifier = agent.NoopNotifier{}
	if cfg.SMTPHost != "" && cfg.MailTo != "" {
		notifier = agent.NewEmailNotifier(cfg.SMTPHost, cfg.SMTPPort,
			cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom, cfg.MailTo)
	}

	expired := make(chan struct{})
	dashboard := agent.NewDashboard(client, user, logToasts{}, logBadge{}, notifier, func() {
		close(expired)
	})
	dashboard.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		dashboard.Logout(shutdownCtx)
	case <-expired:
		log.Info().Msg("session ended")
	}
}
