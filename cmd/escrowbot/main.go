package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/Devashishswamii/tgescrowbot/internal/adapters/db"
	"github.com/Devashishswamii/tgescrowbot/internal/adapters/redisstats"
	"github.com/Devashishswamii/tgescrowbot/internal/adapters/tg"
	"github.com/Devashishswamii/tgescrowbot/internal/config"
	"github.com/Devashishswamii/tgescrowbot/internal/domain"
	"github.com/Devashishswamii/tgescrowbot/internal/useCases"
)

const (
	envDev  = "dev"
	envProd = "prod"
)

func main() {
	mode := flag.String("mode", "login", "login | create")
	phone := flag.String("phone", "", "operator phone in international format")

	cfg, err := config.Load() // parses flags
	if err != nil {
		panic(err)
	}

	logger := setupLogger(cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	database, err := db.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logger.Error("db open failed", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	if err := db.Init(ctx, database); err != nil {
		logger.Error("db init failed", "error", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	creds := useCases.NewCredentialProvider(
		db.NewConfigRepo(database),
		domain.AppCredentials{AppID: cfg.APIID, AppHash: cfg.APIHash},
		logger,
	)
	transport := tg.New(creds, tg.DeviceInfo{
		Model:         cfg.Device.Model,
		SystemVersion: cfg.Device.SystemVersion,
		AppVersion:    cfg.Device.AppVersion,
	}, logger)
	sessions := db.NewSessionStore(database)
	flow := useCases.NewLoginFlow(creds, transport, cfg.LoginTimeout, logger)
	auth := useCases.NewAuthService(flow, sessions, transport, cfg.LoginTimeout, logger)
	escrow := useCases.NewEscrowService(auth, db.NewDealStore(database), redisstats.New(rdb), cfg.BotUsername, logger)

	switch sess, err := sessions.Latest(ctx); {
	case errors.Is(err, domain.ErrSessionNotFound):
		logger.Info("no stored operator session yet")
	case err != nil:
		logger.Warn("session lookup failed", "error", err)
	default:
		logger.Info("operator session found",
			"phone", sess.Phone, "username", sess.Username, "account_id", sess.AccountID)
	}

	switch *mode {
	case "login":
		err = runLogin(ctx, auth, *phone)
	case "create":
		err = runCreate(ctx, escrow, *phone)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		logger.Error("run failed", "mode", *mode, "error", err)
		os.Exit(1)
	}

	logger.Info("exit")
}

// runLogin walks the operator through the full login challenge on the
// console and persists the resulting session.
func runLogin(ctx context.Context, auth *useCases.AuthService, phone string) error {
	in := bufio.NewReader(os.Stdin)

	if phone == "" {
		phone = prompt(in, "Phone (international format): ")
	}

	pending, err := auth.BeginLogin(ctx, phone)
	if err != nil {
		return err
	}

	code := prompt(in, "Verification code: ")
	res, err := auth.SubmitCode(ctx, pending, phone, code)
	if errors.Is(err, domain.ErrInvalidCode) {
		code = prompt(in, "Invalid code, try again: ")
		res, err = auth.SubmitCode(ctx, pending, phone, code)
	}
	if err != nil {
		return err
	}

	if res.PasswordNeeded {
		password := prompt(in, "2FA password: ")
		res, err = auth.SubmitPassword(ctx, res.State, password)
		if err != nil {
			return err
		}
	}

	fmt.Printf("Logged in as %s (id %d)\n", res.Identity.Username, res.Identity.AccountID)
	return nil
}

func runCreate(ctx context.Context, escrow *useCases.EscrowService, phone string) error {
	deal, err := escrow.CreateDealGroup(ctx, phone)
	if err != nil {
		return err
	}
	fmt.Printf("Deal #%s\nGroup ID: %d\nInvite: %s\n", deal.ID, deal.GroupID, deal.InviteLink)
	if stats, err := escrow.Stats(ctx); err == nil {
		fmt.Printf("Total deals so far: %d\n", stats.TotalDeals)
	}
	return nil
}

func prompt(in *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

func setupLogger(env string) *slog.Logger {
	var logger *slog.Logger

	switch env {
	case envDev:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	default:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return logger
}
