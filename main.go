package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"PenBoard/internal/config"
	"PenBoard/internal/lang"
)

// LinkScheme prefixes share links; `penboard penboard://host:port` joins a host.
const LinkScheme = "penboard://"

const usage = `usage: penboard [-config file] <command> [args]

commands:
  run [-png file] [-pdf file] FILE   execute a program
  check FILE                         validate a program without drawing
  repl                               execute commands read from stdin
  serve                              share a canvas over the network
  connect URL                        send stdin commands to a host
  discover                           list hosts on the local network
  gui [FILE]                         open the editor
`

var errUsage = errors.New("invalid usage")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 1 && strings.HasPrefix(args[0], LinkScheme) {
		args = []string{"connect", args[0]}
	}

	fs := flag.NewFlagSet("penboard", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	cfgPath := fs.String("config", "", "TOML or YAML settings file")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return errUsage
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			return err
		}
	}

	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	lang.SetLogger(log)

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return errUsage
	}
	env := &env{cfg: cfg, log: log, stdin: stdin, stdout: stdout, stderr: stderr}
	switch rest[0] {
	case "run":
		return env.run(rest[1:])
	case "check":
		return env.check(rest[1:])
	case "repl":
		return env.repl()
	case "serve":
		return env.serve()
	case "connect":
		return env.connect(rest[1:])
	case "discover":
		return env.discover()
	case "gui":
		return env.gui(rest[1:])
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", rest[0])
		fs.Usage()
		return errUsage
	}
}
