// Package cli implements the aigenda subcommands.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aigenda/aigenda/internal/agent"
	"github.com/aigenda/aigenda/internal/config"
	"github.com/aigenda/aigenda/internal/llm"
	"github.com/aigenda/aigenda/internal/metrics"
	"github.com/aigenda/aigenda/internal/storage"
	"github.com/aigenda/aigenda/internal/tools"
	"github.com/aigenda/aigenda/internal/tools/clock"
	"github.com/aigenda/aigenda/internal/tools/notes"
)

var Version = "dev"

type env struct {
	cfg      *config.Config
	store    *storage.FS
	registry *tools.Registry
	logger   *zap.Logger
}

func setup(configPath, dataDir string, verbose bool) (*env, error) {
	cfg, err := config.Load(configPath, dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zap.NewNop()
	if verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	store, err := storage.NewFS(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	registry := tools.NewRegistry()
	registry.Register(notes.New(store))
	registry.Register(clock.New())

	return &env{cfg: cfg, store: store, registry: registry, logger: logger}, nil
}

// HandleAddCommand stores a note directly, without involving the model.
func HandleAddCommand(configPath, dataDir string, verbose bool, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: aigenda add <note text>")
		os.Exit(1)
	}

	e, err := setup(configPath, dataDir, verbose)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer e.logger.Sync()

	text := strings.Join(args, " ")
	day, err := e.store.LoadDay(time.Now())
	if err != nil {
		fmt.Printf("Error reading today's notes: %v\n", err)
		metrics.RecordCommand(false)
		os.Exit(1)
	}

	day.AddNote(storage.NewNote(text))
	if err := e.store.SaveDay(day); err != nil {
		fmt.Printf("Error saving note: %v\n", err)
		metrics.RecordCommand(false)
		os.Exit(1)
	}

	metrics.RecordCommand(true)
	fmt.Printf("✓ Note added for %s\n", day.Date)
}

// HandleListCommand prints the notes for today, a given day, or every
// stored day.
func HandleListCommand(configPath, dataDir string, verbose bool, args []string) {
	e, err := setup(configPath, dataDir, verbose)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer e.logger.Sync()

	if len(args) > 0 && args[0] == "all" {
		days, err := e.store.IterDays()
		if err != nil {
			fmt.Printf("Error reading notes: %v\n", err)
			metrics.RecordCommand(false)
			os.Exit(1)
		}
		metrics.RecordCommand(true)

		if len(days) == 0 {
			fmt.Println("No notes yet")
			return
		}
		for _, day := range days {
			fmt.Print(formatDay(day))
		}
		return
	}

	date := time.Now()
	if len(args) > 0 {
		date, err = time.Parse(storage.DateLayout, args[0])
		if err != nil {
			fmt.Printf("Invalid date '%s', expected YYYY-MM-DD\n", args[0])
			os.Exit(1)
		}
	}

	day, err := e.store.LoadDay(date)
	if err != nil {
		fmt.Printf("Error reading notes: %v\n", err)
		metrics.RecordCommand(false)
		os.Exit(1)
	}
	metrics.RecordCommand(true)

	fmt.Print(formatDay(day))
}

// formatDay renders one day's notes for the console.
func formatDay(day *storage.DayLog) string {
	if len(day.Notes) == 0 {
		return fmt.Sprintf("No notes for %s\n", day.Date)
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Notes for %s", day.Date)))
	sb.WriteString("\n")
	for i, note := range day.Notes {
		sb.WriteString(fmt.Sprintf("%d. %s %s\n", i+1,
			timeStyle.Render("["+note.When.Format("15:04")+"]"), note.Text))
	}
	return sb.String()
}

// HandleAICommand runs the agent loop on a natural-language request.
func HandleAICommand(configPath, dataDir string, verbose bool, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: aigenda ai <request>")
		os.Exit(1)
	}

	e, err := setup(configPath, dataDir, verbose)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer e.logger.Sync()

	client, err := llm.NewClient(e.cfg.LLM)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		fmt.Println("Set ANTHROPIC_API_KEY to enable the assistant.")
		printAvailableTools(e.registry)
		os.Exit(1)
	}

	ag, err := agent.New(agent.Options{
		Config:   e.cfg,
		Registry: e.registry,
		Client:   client,
		Logger:   e.logger,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	request := strings.Join(args, " ")
	handler := agent.NewConsoleHandler()

	if _, err := ag.Execute(context.Background(), request, handler); err != nil {
		fmt.Printf("Error: %v\n", err)
		printAvailableTools(e.registry)
		metrics.RecordCommand(false)
		os.Exit(1)
	}

	metrics.RecordCommand(true)
}

// HandleToolsCommand lists the registered tools and their actions.
func HandleToolsCommand(configPath, dataDir string, verbose bool) {
	e, err := setup(configPath, dataDir, verbose)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer e.logger.Sync()

	fmt.Println(titleStyle.Render("Available tools"))
	for _, name := range e.registry.List() {
		tool, _ := e.registry.Get(name)
		fmt.Printf("  %s - %s\n", toolStyle.Render(name), tool.Description())
		for _, action := range tool.Schema().Actions {
			fmt.Printf("    %s: %s\n", action.Name, action.Description)
		}
	}
}

// HandleMemoryCommand shows, summarizes, or clears conversation memory.
func HandleMemoryCommand(configPath, dataDir string, verbose bool, args []string) {
	e, err := setup(configPath, dataDir, verbose)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer e.logger.Sync()

	ag, err := agent.New(agent.Options{
		Config:   e.cfg,
		Registry: e.registry,
		Client:   nil, // memory operations never call the model
		Logger:   e.logger,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	sub := "show"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "show":
		history := ag.History()
		if len(history) == 0 {
			fmt.Println("No conversation memory.")
			return
		}
		for _, msg := range history {
			fmt.Printf("%s %s: %s\n",
				timeStyle.Render(msg.Timestamp.Format("2006-01-02 15:04")),
				capitalize(string(msg.Role)), msg.Content)
			for _, call := range msg.ToolCalls {
				fmt.Printf("    → %s.%s\n", call.ToolName, call.Action)
			}
		}

	case "stats":
		messages, tokens := ag.MemoryStats()
		fmt.Printf("Messages: %d\n", messages)
		fmt.Printf("Estimated tokens: %d\n", tokens)
		fmt.Printf("Path: %s\n", e.cfg.Memory.Path)

	case "clear":
		if err := ag.ClearMemory(); err != nil {
			fmt.Printf("Error clearing memory: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✓ Conversation memory cleared")

	default:
		fmt.Printf("Unknown memory subcommand: %s\n", sub)
		fmt.Println("Usage: aigenda memory [show|stats|clear]")
		os.Exit(1)
	}
}

// HandleStatusCommand prints runtime metrics in Prometheus text format.
func HandleStatusCommand() {
	fmt.Print(metrics.Prometheus())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func printAvailableTools(registry *tools.Registry) {
	fmt.Println("📋 Available tools:")
	for _, name := range registry.List() {
		if tool, ok := registry.Get(name); ok {
			fmt.Printf("  - %s: %s\n", name, tool.Description())
		}
	}
}

// PrintHelp prints the top-level usage text.
func PrintHelp() {
	fmt.Println(titleStyle.Render("aigenda - agenda and notes with an AI assistant"))
	fmt.Println()
	fmt.Println("Usage: aigenda [flags] <command> [args]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  add <text>        Add a note for today")
	fmt.Println("  list [date|all]   List notes for today, a day (YYYY-MM-DD), or all days")
	fmt.Println("  ai <request>      Ask the assistant; it may call tools after confirmation")
	fmt.Println("  tools             List available tools and actions")
	fmt.Println("  memory [sub]      show | stats | clear conversation memory")
	fmt.Println("  status            Print runtime metrics")
	fmt.Println("  version           Print version")
	fmt.Println("  help              Show this help")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --config <path>   Config file (default: <data dir>/aigenda.yaml)")
	fmt.Println("  --data <path>     Data directory (default: $XDG_DATA_HOME/aigenda)")
	fmt.Println("  --verbose         Enable debug logging")
}
