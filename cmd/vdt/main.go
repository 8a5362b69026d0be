// Package main is the entry point for the Visitor Dashboard TUI application.
// It initializes configuration, services, and runs the Bubble Tea program.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/app"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/config"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/services"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/ui/tabs/dashboard"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/ui/tabs/filters"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/ui/tabs/info"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/ui/tabs/waiting"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/version"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// Handle help flag
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	// Headless one-shot import: vdt import <file.csv>
	if len(os.Args) > 2 && os.Args[1] == "import" {
		if err := runImport(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Run the application
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	// 1. Load configuration from .env files and environment variables
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Initialize the service manager
	// This opens the database, starts the filter coordinator and the
	// CSV drop-directory watcher
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	// Ensure cleanup on exit
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	// 3. Create the root Bubble Tea model
	model := app.NewModel(svcManager, cfg.ExportPath)

	// 4. Initialize tabs with shared state and services
	state := model.GetState()
	tabs := []app.Tab{
		dashboard.New(state), // Tab 0: Dashboard - visitor overview
		waiting.New(state),   // Tab 1: Waiting - long-dwell visitors
		filters.New(state),   // Tab 2: Filters - location hierarchy
		info.New(state, cfg), // Tab 3: Info - configuration and app info
	}
	model.SetTabs(tabs)

	// 5. Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// 6. Create and configure the Bubble Tea program
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer (full terminal)
		tea.WithMouseCellMotion(), // Enable mouse support for selection
	)

	// 7. Handle signals in a separate goroutine
	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	// 8. Run the TUI program
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// runImport ingests a CSV file into the database without starting the TUI.
func runImport(path string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() { _ = svcManager.Close() }()

	res, err := svcManager.ImportFile(context.Background(), path)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("Imported %s: %d rows processed, %d skipped\n",
		path, res.ProcessedRows, res.SkippedRows)
	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`Visitor Dashboard TUI - retail visitor analytics in the terminal

Usage:
  vdt [flags]
  vdt import <file.csv>

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-4             Switch between tabs (Dashboard, Waiting, Filters, Info)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Navigate lists
  Enter           Select/confirm
  v               Toggle hourly/daily view
  b               Cycle demographic breakdown
  m               Toggle foot traffic/dwell time metric
  p               Cycle the time period unit
  e / E           Export current series as CSV / JSON
  r               Refresh data
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  DATABASE_PATH         SQLite database path
  IMPORT_PATH           Directory watched for CSV drops
  EXPORT_PATH           Directory for exported series
  REFRESH_INTERVAL      Data refresh interval (default: 30s)
  INCLUDE_OTHER_GENDER  Include unresolved gender in breakdowns

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/visitor-dashboard/.env
  - ~/.visitor-dashboard/.env`)
}
