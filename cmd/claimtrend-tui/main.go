package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/claimtrend/internal/config"
	"github.com/rgehrsitz/claimtrend/internal/tui"
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Println("Usage: claimtrend-tui <records.csv> [scenarios.yaml]")
		os.Exit(1)
	}

	recordsPath := os.Args[1]
	if _, err := os.Stat(recordsPath); os.IsNotExist(err) {
		fmt.Printf("Error: Claims data file not found: %s\n", recordsPath)
		os.Exit(1)
	}

	// CLAIMTREND_* variables and .env supply the optional inputs
	settings, err := config.LoadSettings(".env")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	sources := tui.Sources{
		RecordsPath:    recordsPath,
		ScenariosPath:  settings.ScenariosFile,
		AgingTablePath: settings.AgingTableFile,
	}
	if len(os.Args) == 3 {
		sources.ScenariosPath = os.Args[2]
	}

	p := tea.NewProgram(tui.NewModel(sources), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
