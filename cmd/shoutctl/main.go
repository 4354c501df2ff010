package main

import (
	"fmt"
	"os"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/spettacolo/squalo/internal"
	"github.com/spettacolo/squalo/repositories"
)

const usage = `usage: shoutctl <command> [flags]

commands:
  list    [-limit N]             print the latest messages
  export  [-out path] [-limit N] dump messages to a JSON file
  delete  -id ID                 remove one message
  token   [-subject s] [-ttl d]  mint an admin token for DELETE /shoutbox
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("missing command")
	}

	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	cliConfig, err := LoadCLIConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)
	out := newPrinter(os.Stdout, cliConfig.Colours)

	if args[0] == "token" {
		return runToken(out, config, cliConfig, args[1:])
	}

	repository, backend, err := repositories.NewMessageRepository(config, log)
	if err != nil {
		return fmt.Errorf("message store failed to open: %w", err)
	}
	defer func() { _ = repository.Close() }()
	out.info("Using %s backend", backend)

	switch args[0] {
	case "list":
		return runList(out, repository, args[1:])
	case "export":
		return runExport(out, repository, cliConfig, args[1:])
	case "delete":
		return runDelete(out, repository, args[1:])
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}
