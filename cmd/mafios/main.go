package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/mafios/internal/config"
	"github.com/jwebster45206/mafios/internal/logger"
	"github.com/jwebster45206/mafios/internal/session"
	"github.com/jwebster45206/mafios/pkg/textfilter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// the terminal belongs to the UI, so logs go to a file next to the saves
	logDir := cfg.SaveDir
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create %s: %v\n", logDir, err)
		os.Exit(1)
	}
	logFile, err := os.OpenFile(filepath.Join(logDir, "mafios.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log := logger.Setup(logFile, cfg)

	ctx := context.Background()
	sess, err := session.Open(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start game: %v\n", err)
		os.Exit(1)
	}

	cmd := &commander{
		actions: sess.Actions,
		catalog: sess.Catalog,
		text:    textfilter.Swedish(),
		newGame: sess.NewGame,
		export: func() error {
			data, err := sess.Store.Export()
			if err != nil {
				return err
			}
			return clipboard.WriteAll(string(data))
		},
	}

	updates, unsubscribe := sess.Actions.Subscribe()
	p := tea.NewProgram(NewConsoleUI(cmd, sess.Actions.State(), updates),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	_, runErr := p.Run()
	unsubscribe()

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sess.Close(closeCtx); err != nil {
		log.Error("Failed to close session", "error", err)
		fmt.Fprintf(os.Stderr, "Failed to save game: %v\n", err)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", runErr)
		os.Exit(1)
	}
}
