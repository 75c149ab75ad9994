package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/avashist/hilite/internal/config"
	"github.com/avashist/hilite/internal/llm"
	"github.com/avashist/hilite/internal/source"
	"github.com/avashist/hilite/internal/store"
	"github.com/avashist/hilite/internal/tui"
)

func main() {
	importPath := flag.String("import", "", "preload the editor from a text, markdown, or PDF file")
	noAltScreen := flag.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	llmModel := flag.String("llm-model", "", "override the generation model")
	llmEndpoint := flag.String("llm-endpoint", "", "custom generation endpoint (eg. http://localhost:11434)")
	logPath := flag.String("log", "", "append diagnostics to this file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("failed to read configuration:", err)
		os.Exit(1)
	}
	if *llmModel != "" {
		cfg.Model = *llmModel
	}
	if *llmEndpoint != "" {
		cfg.Endpoint = *llmEndpoint
	}

	logger := log.New(os.Stderr)
	logger.SetLevel(log.WarnLevel)
	if *logPath != "" {
		file, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Println("failed to open log file:", err)
			os.Exit(1)
		}
		defer file.Close()
		logger = log.New(file)
	}

	// A missing credential is not fatal; the TUI surfaces it once at
	// startup and keeps editing available.
	llmClient, err := llm.New(llm.Config{
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		Endpoint: cfg.Endpoint,
	})
	if err != nil {
		llmClient = nil
	}

	initialText := ""
	if *importPath != "" {
		initialText, err = source.Load(*importPath)
		if err != nil {
			fmt.Println("failed to import file:", err)
			os.Exit(1)
		}
	}

	opts := []tea.ProgramOption{}
	if !*noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			LLM:         llmClient,
			Store:       store.New(cfg.StoreURL, cfg.StoreKey, nil),
			ExportDir:   cfg.ExportDir,
			InitialText: initialText,
			Logger:      logger,
		}),
		opts...,
	)

	if _, err := program.Run(); err != nil {
		fmt.Println("program error:", err)
		os.Exit(1)
	}
}
