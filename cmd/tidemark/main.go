package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	stlog "log"
	"os"

	"github.com/bethropolis/tidemark/internal/app"
	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/trace"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "replay" {
		os.Exit(runReplay(os.Args[2:], os.Stdout))
	}
	os.Exit(runEditor(os.Args[1:]))
}

func runEditor(args []string) int {
	flags := config.NewFlags(config.AppName)
	rest, err := flags.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, config.Version)
		return 0
	}

	cfg, cfgErr := config.LoadConfig(*flags.ConfigFilePath, flags)
	if cfg == nil {
		stlog.Printf("Failed to load configuration: %v", cfgErr)
		return 1
	}

	closer, err := logger.Init(cfg.Logger)
	if err != nil {
		stlog.Printf("Failed to initialize logger: %v", err)
		return 1
	}
	defer closer.Close()

	if cfgErr != nil {
		logger.Warnf("Config: %v", cfgErr)
	}

	filePath := ""
	if len(rest) > 0 {
		filePath = rest[0]
	}
	logger.Infof("Starting %s %s (file %q)", config.AppName, config.Version, filePath)

	tm, err := app.NewApp(cfg, filePath, nil)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return 1
	}
	if err := tm.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		return 1
	}
	logger.Infof("%s finished", config.AppName)
	return 0
}

// runReplay prints the classified events of a recorded trace, one JSON
// object per event.
func runReplay(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	strict := fs.Bool("strict", false, "Fail on malformed deltas instead of degrading")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s replay [-strict] <trace.jsonl>\n", config.AppName)
		return 2
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return 1
	}
	defer f.Close()

	res, err := trace.Replay(f, *strict)
	if res != nil {
		for _, step := range res.Steps {
			for _, ev := range step.Events {
				line, encErr := trace.EncodeEvent(ev)
				if encErr != nil {
					fmt.Fprintf(os.Stderr, "trace line %d: %v\n", step.Line, encErr)
					continue
				}
				fmt.Fprintln(out, line)
			}
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return 1
	}
	return 0
}
