package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/pohcalc/pohcalc/internal/constants"
	"github.com/pohcalc/pohcalc/internal/log"
	"github.com/pohcalc/pohcalc/pkg/config"
	"github.com/pohcalc/pohcalc/pkg/responseformat"
)

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Errorf("%v", err)
		log.Sync()
		os.Exit(1)
	}
	log.Sync()
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("pohcalc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgFile := fs.String("config", "", "Path to a YAML aircraft profile (built-in defaults when empty)")
	debug := fs.Bool("debug", false, "Turn on debugging output")
	format := fs.String("format", "text", "Output format: text, json or msgpack")
	showVersion := fs.Bool("version", false, "Show version and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: pohcalc [flags] <command> [command flags]\n\nCommands:\n")
		for _, name := range commandNames() {
			fmt.Fprintf(stderr, "  %-12s %s\n", name, commands[name].summary)
		}
		fmt.Fprintf(stderr, "\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "pohcalc %s\n", constants.Version)
		return nil
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("no command given")
	}
	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q (want one of %s)", name, strings.Join(commandNames(), ", "))
	}

	outFormat, err := responseformat.ParseFormat(*format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(*cfgFile)
	if err != nil {
		return err
	}

	// Set up logging
	if err := log.InitWithFile(*debug || cfg.Logging.Debug, log.FileConfig{
		Path:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	runID := uuid.NewString()
	e := &env{
		cfg:       cfg,
		formatter: responseformat.NewFormatter(outFormat),
		stdout:    stdout,
		stderr:    stderr,
		runID:     runID,
	}
	log.Debugw("running command", "command", name, "run_id", runID, "config", *cfgFile)

	if err := cmd.run(e, fs.Args()[1:]); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func loadConfig(cfgFile string) (*config.ConfigData, error) {
	var provider config.ConfigProvider
	if cfgFile == "" {
		provider = config.NewDefaultProvider()
	} else {
		filename, _ := filepath.Abs(cfgFile)
		provider = config.NewYAMLProvider(filename)
	}
	defer provider.Close()

	cfgData, err := provider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error reading config file. Did you pass the -config flag? Run with -h for help: %w", err)
	}
	return cfgData, nil
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
