package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/natefinch/lumberjack.v2"

	apisdk "github.com/chessmate-app/chessmate/api-sdk"
	"github.com/chessmate-app/chessmate/api-sdk/option"
	"github.com/chessmate-app/chessmate/internal/credstore"
	"github.com/chessmate-app/chessmate/internal/infrastructure/configs"
	"github.com/chessmate-app/chessmate/internal/tui"
)

func main() {
	// The terminal belongs to bubbletea; logs go to a rotating file instead.
	logFile := &lumberjack.Logger{
		Filename:   "chessmate.log",
		MaxSize:    5, // megabytes
		MaxBackups: 2,
	}
	defer logFile.Close()
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{})))

	creds, err := credstore.Default()
	if err != nil {
		fmt.Println("Error locating credential store:", err)
		os.Exit(1)
	}

	cfg, err := configs.Load(configs.DetermineConfigPath())
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	client := apisdk.NewClient(option.WithBaseURL(cfg.Client.BaseURL))

	model := tui.NewModel(lipgloss.DefaultRenderer(), client, creds)

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Println("Error running program:", err)
		os.Exit(1)
	}
}
