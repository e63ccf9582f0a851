package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"github.com/eivissacopter/battdash/app"
)

func main() {
	configPath := flag.String("config", "battdash.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	crawler := app.NewCrawler(cfg.Telemetry.BaseURL, cfg.Telemetry.MaxDepth)
	cache := app.NewCrawlCache(crawler, time.Duration(cfg.Telemetry.CrawlTTL)*time.Second)

	fmt.Println("Crawling telemetry listing...")
	tree, err := cache.Tree()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to crawl %s: %v\n", cfg.Telemetry.BaseURL, err)
		os.Exit(1)
	}
	entries, stats := app.ClassifyTree(tree)

	fd := os.Stdout.Fd()
	width, _, err := term.GetSize(fd)
	if err != nil {
		width = 100 // fallback
	}

	yearCol := 6
	filesCol := 6
	modelCol := (width - yearCol - filesCol - 8) / 3
	if modelCol < 12 {
		modelCol = 12
	}

	// Initialize text input
	ti := textinput.New()
	ti.Placeholder = "Filter folders (model, battery, tuning)..."
	ti.Focus()
	ti.Width = 50

	columns := []table.Column{
		{Title: "Model", Width: modelCol},
		{Title: "Year", Width: yearCol},
		{Title: "Battery", Width: modelCol},
		{Title: "Drivetrain", Width: modelCol},
		{Title: "Files", Width: filesCol},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
		table.WithHeight(14),
	)

	// Set table styles
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(styles)

	m := model{
		textInput: ti,
		table:     t,
		entries:   entries,
		stats:     stats,
	}
	m.applyFilter("")

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting program: %v\n", err)
		os.Exit(1)
	}
}
