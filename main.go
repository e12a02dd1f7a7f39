package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"chunkdb/pkg/config"
	"chunkdb/pkg/database"
	"chunkdb/pkg/logging"
	"chunkdb/pkg/shell"
	"chunkdb/pkg/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func main() {
	cfg := parseArguments()

	initLogging(cfg)
	defer logging.Close()

	showSplashScreen()

	db, err := initializeDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if cfg.DemoMode {
		if err := runDemoMode(db); err != nil {
			log.Fatalf("Demo mode failed: %v", err)
		}
	}

	if cfg.ImportFile != "" {
		if err := importCommands(db, cfg.ImportFile); err != nil {
			log.Fatalf("Failed to import commands: %v", err)
		}
	}

	if cfg.PlainShell {
		if err := shell.NewShell(db, os.Stdout).Run(); err != nil {
			log.Fatalf("Shell failed: %v", err)
		}
		return
	}

	if err := startInteractiveMode(db); err != nil {
		log.Fatalf("Failed to start UI: %v", err)
	}
}

// parseArguments processes command-line flags
func parseArguments() config.Config {
	var cfg config.Config

	flag.StringVar(&cfg.Name, "db", "mydb", "Database name")
	flag.StringVar(&cfg.DataDir, "data", "./data", "Data directory path")
	flag.StringVar(&cfg.LogPath, "log", "", "Log file path (default <data>/<db>.log)")
	flag.IntVar(&cfg.ChunkCap, "chunk-cap", config.DefaultChunkCap, "Rows an operator may hold in memory at once")
	flag.BoolVar(&cfg.PlainShell, "plain", false, "Use the line-oriented shell instead of the full-screen UI")
	flag.BoolVar(&cfg.DemoMode, "demo", false, "Create sample tables before starting")
	flag.StringVar(&cfg.ImportFile, "import", "", "Command file to execute on startup")

	flag.Parse()

	if cfg.LogPath == "" {
		cfg.LogPath = filepath.Join(cfg.DataDir, cfg.Name+".log")
	}

	return cfg
}

// initLogging sends engine logs to a file so both shells keep a clean
// screen.
func initLogging(cfg config.Config) {
	err := logging.Init(logging.Config{
		Level:      logging.LevelInfo,
		OutputPath: cfg.LogPath,
		Format:     "text",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: falling back to stdout logging: %v\n", err)
		logging.InitDefault()
	}
}

// showSplashScreen displays the welcome screen
func showSplashScreen() {
	splash := `
╔═══════════════════════════════════════════════════════════╗
║                                                           ║
║    ██████╗██╗  ██╗██╗   ██╗███╗   ██╗██╗  ██╗             ║
║   ██╔════╝██║  ██║██║   ██║████╗  ██║██║ ██╔╝             ║
║   ██║     ███████║██║   ██║██╔██╗ ██║█████╔╝              ║
║   ██║     ██╔══██║██║   ██║██║╚██╗██║██╔═██╗              ║
║   ╚██████╗██║  ██║╚██████╔╝██║ ╚████║██║  ██╗             ║
║    ╚═════╝╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═══╝╚═╝  ╚═╝             ║
║                                                           ║
║              ██████╗ ██████╗                              ║
║              ██╔══██╗██╔══██╗                             ║
║              ██║  ██║██████╔╝                             ║
║              ██║  ██║██╔══██╗                             ║
║              ██████╔╝██████╔╝                             ║
║              ╚═════╝ ╚═════╝                              ║
║                                                           ║
║        Tables in plain CSV, sorted and joined             ║
║            one bounded chunk at a time                    ║
╚═══════════════════════════════════════════════════════════╝
`

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true)

	fmt.Println(style.Render(splash))
	time.Sleep(1 * time.Second)
}

func initializeDatabase(cfg config.Config) (*database.Database, error) {
	fmt.Printf("🔧 Opening database '%s' (chunk cap %d)...\n", cfg.Name, cfg.ChunkCap)

	db, err := database.NewDatabase(cfg)
	if err != nil {
		return nil, err
	}

	fmt.Println("✅ Database ready!")
	return db, nil
}

// startInteractiveMode launches the Bubble Tea UI
func startInteractiveMode(db *database.Database) error {
	model := ui.NewModel(db)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %v", err)
	}

	return nil
}

// runDemoMode sets up sample tables and data
func runDemoMode(db *database.Database) error {
	fmt.Println("\n🎮 Running demo mode - creating sample tables...")

	demoCommands := []string{
		"newTable|users|id,name,city,age",
		"newTable|orders|id,user_id,amount,status",

		"addToTable|users|1,Alice,lisbon,28",
		"addToTable|users|2,Bob,porto,35",
		"addToTable|users|3,Charlie,braga,42",
		"addToTable|users|4,Diana,porto,31",
		"addToTable|users|5,Eve,lisbon,26",

		"addToTable|orders|1,1,120,completed",
		"addToTable|orders|2,2,60,completed",
		"addToTable|orders|3,3,400,processing",
		"addToTable|orders|4,1,80,completed",
		"addToTable|orders|5,4,600,shipped",
		"addToTable|orders|6,2,45,completed",
	}

	for i, command := range demoCommands {
		progress := float64(i+1) / float64(len(demoCommands)) * 100
		fmt.Printf("\r📊 Progress: %.0f%% ", progress)

		if _, err := db.ExecuteCommand(command); err != nil {
			return fmt.Errorf("failed to execute demo command %q: %v", command, err)
		}

		time.Sleep(50 * time.Millisecond)
	}

	fmt.Println("\n✅ Demo tables created!")
	fmt.Println("\n📝 Sample commands you can try:")
	fmt.Println("  • showColumns|users|all")
	fmt.Println("  • sort|users|age")
	fmt.Println("  • filter|users|age|30|biggerThan")
	fmt.Println("  • formGroups|users|city")
	fmt.Println("  • getCommon|users|orders|id|user_id")
	fmt.Println("  • aggregate|orders|amount|sum")
	fmt.Println()

	return nil
}

// importCommands executes a command file, one command per line. Blank
// lines and lines starting with # are skipped.
func importCommands(db *database.Database, filename string) error {
	fmt.Printf("📥 Importing commands from %s...\n", filename)

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read import file: %v", err)
	}

	lines := strings.Split(string(content), "\n")
	attempted := 0
	successCount := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		attempted++

		if _, err := db.ExecuteCommand(line); err != nil {
			fmt.Printf("⚠️  Failed to execute: %s\n   Error: %v\n",
				truncateString(line, 50), err)
		} else {
			successCount++
		}
	}

	fmt.Printf("✅ Import completed: %d/%d commands successful\n",
		successCount, attempted)

	return nil
}

// truncateString limits string length for display
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
