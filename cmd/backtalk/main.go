package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/nward/backtalk/internal/binding"
	"github.com/nward/backtalk/internal/config"
	"github.com/nward/backtalk/internal/database"
	"github.com/nward/backtalk/internal/database/repository"
	"github.com/nward/backtalk/internal/interceptor"
	"github.com/nward/backtalk/internal/message"
	"github.com/nward/backtalk/internal/service"
	"github.com/nward/backtalk/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer closeLog()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path, "internal/database/migrations"); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	// backend side: the orders service publishes through its binding
	orderRepo := repository.NewOrderRepo(db)
	ordersBinding := binding.NewServiceBinding("orders")
	orders := &service.OrderService{DB: db, Orders: orderRepo, Binding: ordersBinding, Log: logger}

	reg := binding.NewRegistry()
	reg.Register(ordersBinding)
	reg.SetDefault(ordersBinding)

	store := message.NewStore()

	app := tui.New(ctx, tui.Services{Orders: orders}, store, cfg.UI.Accent)
	itc := interceptor.New(reg, store, app.Presenter(), cfg.InterceptorSettings(), logger)
	app.AttachInterceptor(itc)

	p := tea.NewProgram(app, tea.WithAltScreen())
	app.AttachProgram(p)
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// newLogger builds a file-backed zerolog logger. An empty path disables
// logging entirely; stderr is off limits while the TUI owns the terminal.
func newLogger(cfg config.LogConfig) (zerolog.Logger, func(), error) {
	if cfg.Path == "" {
		return zerolog.Nop(), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return zerolog.Nop(), nil, err
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return logger, func() { _ = f.Close() }, nil
}
