// cmd/hhd/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/api"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/config"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/history"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/ui"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run starts the program and returns the exit code. Deferred cleanup
// happens before main exits.
func run(args []string, stderr io.Writer) int {
	// Parse flags
	flags := flag.NewFlagSet("hhd", flag.ContinueOnError)
	flags.SetOutput(stderr)
	debug := flags.Bool("debug", false, "Enable debug logging to debug.log")
	server := flags.String("server", "", "Engine base URL (overrides server_url in config)")
	language := flags.String("language", "", "Language to open first")
	patternType := flags.String("pattern", "", "Pattern type to open first")
	noHistory := flags.Bool("no-history", false, "Do not record parse and search runs")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	// Keep log output off the terminal while the TUI runs
	log.SetOutput(io.Discard)
	if *debug {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			fmt.Fprintf(stderr, "fatal: could not open debug log: %v\n", err)
			return 1
		}
		defer f.Close()
		log.SetOutput(f)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if *server != "" {
		cfg.ServerURL = *server
	}
	if *language != "" {
		cfg.DefaultLanguage = *language
	}
	if *patternType != "" {
		cfg.DefaultPatternType = *patternType
	}

	ui.InitStyles(cfg.Theme)

	// Initialize history store
	var historyStore *history.Store
	if !*noHistory {
		historyStore, err = history.NewStore()
		if err != nil {
			fmt.Fprintf(stderr, "Failed to initialize history: %v\n", err)
			return 1
		}
		defer historyStore.Close()
	}

	client := api.NewClient(cfg.ServerURL, api.WithTimeout(cfg.RequestTimeout()))
	log.Printf("engine at %s", client.BaseURL())

	model := ui.NewModel(cfg, client, historyStore)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(stderr, "Error running TUI: %v\n", err)
		return 1
	}
	return 0
}
