package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/joho/godotenv"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/smartbyte/shopassist/internal/apiclient"
	"github.com/smartbyte/shopassist/internal/config"
	"github.com/smartbyte/shopassist/internal/domain"
	"github.com/smartbyte/shopassist/internal/repository/memory"
	"github.com/smartbyte/shopassist/internal/repository/redis"
	"github.com/smartbyte/shopassist/internal/repository/sqlite"
	"github.com/smartbyte/shopassist/internal/service"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	setupLogger(cfg.Logging)

	store, closeStore, err := openStore(cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer closeStore()

	client := apiclient.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	sessions := service.NewSessionStore(store)
	conversation := service.NewConversationService(sessions, client, cfg.Chat.TypingDelay)
	auth := service.NewAuthService(sessions, client)

	ctx := context.Background()
	conversation.Initialize(ctx)

	state := conversation.State()
	fmt.Println("SmartByte assistant. Type a message, or /help for commands.")
	for _, msg := range state.Messages {
		printMessage(msg)
	}

	rl, err := readline.New("you> ")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize input")
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err == io.EOF {
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := runCommand(ctx, line, conversation, auth); quit {
				return
			}
			continue
		}

		send(ctx, conversation, line)
	}
}

func send(ctx context.Context, conversation *service.ConversationService, text string) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " assistant is typing..."
	s.Start()
	err := conversation.SendMessage(ctx, text)
	s.Stop()

	if err != nil {
		if errors.Is(err, domain.ErrSendInFlight) {
			fmt.Println("still waiting for the previous reply")
			return
		}
		fmt.Println("error:", conversation.State().LastError)
		conversation.ClearError()
		return
	}

	state := conversation.State()
	if n := len(state.Messages); n > 0 {
		printMessage(state.Messages[n-1])
	}
	printRecommendations(state)
}

func runCommand(ctx context.Context, line string, conversation *service.ConversationService, auth *service.AuthService) bool {
	cmd, arg, _ := strings.Cut(line, " ")

	switch cmd {
	case "/quit", "/exit":
		return true
	case "/new":
		conversation.ClearConversation(ctx)
		fmt.Println("started a new conversation")
	case "/login":
		if arg == "" {
			fmt.Println("usage: /login <password>")
			break
		}
		if err := auth.Login(ctx, arg); err != nil {
			fmt.Println(err)
			break
		}
		fmt.Println("logged in")
	case "/logout":
		auth.Logout(ctx)
		fmt.Println("logged out")
	case "/help":
		fmt.Println("commands: /new /login <password> /logout /quit")
	default:
		fmt.Println("unknown command, try /help")
	}
	return false
}

func printMessage(msg domain.Message) {
	if msg.Role == domain.RoleUser {
		fmt.Printf("you> %s\n", msg.Content)
		return
	}
	fmt.Printf("assistant> %s\n", msg.Content)
}

func printRecommendations(state domain.ConversationState) {
	if len(state.RecommendedItems) == 0 {
		return
	}

	fmt.Println("recommended:")
	for _, item := range state.RecommendedItems {
		fmt.Printf("  %-12s %-40s %8.0f ILS\n", item.SKU, item.DisplayName(), item.Price)
	}
	if state.UpsellItem != nil {
		fmt.Printf("goes well with: %s (%.0f ILS)\n", state.UpsellItem.DisplayName(), state.UpsellItem.Price)
	}
}

func setupLogger(cfg config.LoggingConfig) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Logs go to a file so they don't interleave with the conversation.
	if cfg.File != "" {
		writer, err := rotatelogs.New(
			cfg.File+".%Y%m%d",
			rotatelogs.WithRotationTime(24*time.Hour),
			rotatelogs.WithMaxAge(7*24*time.Hour),
		)
		if err == nil {
			log.Logger = log.Output(writer)
			return
		}
		fmt.Fprintln(os.Stderr, "failed to open log file, logging to stderr:", err)
	}

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func openStore(cfg config.StoreConfig) (domain.KeyValueStore, func(), error) {
	switch cfg.Backend {
	case "memory":
		return memory.NewStore(), func() {}, nil
	case "redis":
		client, err := redis.NewClient(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return redis.NewStore(client), func() { client.Close() }, nil
	case "sqlite":
		store, err := sqlite.NewStore(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
