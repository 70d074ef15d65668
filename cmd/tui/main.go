package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hilthontt/chatlobby/internal/infrastructure/configs"
	"github.com/hilthontt/chatlobby/internal/infrastructure/generator"
	"github.com/hilthontt/chatlobby/internal/infrastructure/logging"
	"github.com/hilthontt/chatlobby/internal/infrastructure/repository"
	"github.com/hilthontt/chatlobby/internal/infrastructure/settings"
	"github.com/hilthontt/chatlobby/internal/infrastructure/tracing"
	"github.com/hilthontt/chatlobby/internal/lobby"
	"github.com/hilthontt/chatlobby/internal/presentation/tui"
)

func main() {
	configFlag := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	cfg, err := configs.Load(configs.DetermineConfigPath(*configFlag))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// The terminal belongs to the program; logs only go to the file.
	logCfg := logging.ConfigFrom(cfg.Logging)
	logCfg.Console = false
	logger := logging.NewLogger(logCfg)

	err = run(cfg, logger)
	if err != nil {
		logger.Error(logging.General, logging.Shutdown, "program failed", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
	}
	_ = logger.Sync()

	if err != nil {
		fmt.Println("Error running program:", err)
		os.Exit(1)
	}
}

func run(cfg *configs.Config, logger logging.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracer, err := tracing.InitTracer(tracing.NewConfig("chatlobby-tui", cfg.Tracing))
	if err != nil {
		return err
	}
	defer shutdownTracer(context.Background())

	names, err := settings.NewStore(cfg.Storage.Dir)
	if err != nil {
		return err
	}

	ids, err := generator.NewGenerator()
	if err != nil {
		return err
	}

	controller := lobby.New(repository.NewRoomRepository(), names, ids,
		lobby.WithToaster(lobby.NewToaster(cfg.Toast.Visible, cfg.Toast.Fade, ids.NewID)),
		lobby.WithLogger(logger),
	)

	model, err := tui.NewModel(ctx, lipgloss.DefaultRenderer(), controller, logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	go tui.ForwardToasts(ctx, p, controller.Toaster())

	logger.Info(logging.General, logging.Startup, "terminal lobby started", map[logging.ExtraKey]any{
		logging.Path: names.Path(),
	})

	_, err = p.Run()
	return err
}
