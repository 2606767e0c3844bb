package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/aigenda/aigenda/internal/cli"
)

var (
	configPath = flag.String("config", "", "Path to config file")
	dataDir    = flag.String("data", "", "Path to data directory")
	verbose    = flag.Bool("verbose", false, "Enable debug logging")
	version    = "dev"
)

func main() {
	flag.Usage = func() { cli.PrintHelp() }
	flag.Parse()

	cli.Version = version

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		return
	}

	command, rest := args[0], args[1:]

	switch command {
	case "add":
		cli.HandleAddCommand(*configPath, *dataDir, *verbose, rest)
	case "list", "ls":
		cli.HandleListCommand(*configPath, *dataDir, *verbose, rest)
	case "ai", "ask":
		cli.HandleAICommand(*configPath, *dataDir, *verbose, rest)
	case "tools":
		cli.HandleToolsCommand(*configPath, *dataDir, *verbose)
	case "memory":
		cli.HandleMemoryCommand(*configPath, *dataDir, *verbose, rest)
	case "status":
		cli.HandleStatusCommand()
	case "version":
		fmt.Printf("aigenda %s\n", version)
	case "help":
		cli.PrintHelp()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		cli.PrintHelp()
		os.Exit(1)
	}
}
