package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/cmdcast/dispatch/pkg/console"
	"github.com/cmdcast/dispatch/pkg/dispatch"
	"github.com/cmdcast/dispatch/pkg/history"
	"github.com/cmdcast/dispatch/pkg/types"
	"github.com/urfave/cli/v3"
)

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}},
		&cli.StringFlag{Name: "config", Usage: "path to a YAML config file"},
		&cli.StringFlag{Name: "as", Value: "alice", Usage: "account to act as"},
	}
}

type world struct {
	logger     *slog.Logger
	config     console.Config
	dispatcher *dispatch.Dispatcher
	caller     dispatch.Caller
	store      *history.Store
}

func setup(c *cli.Command) (*world, error) {
	config, err := console.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	logger := newLogger(c.Bool("debug"))

	h := demoHierarchy()
	if err := h.Validate(); err != nil {
		return nil, err
	}

	caller, err := callerFor(c.String("as"))
	if err != nil {
		return nil, err
	}

	var store *history.Store
	if config.Database != "" {
		store, err = history.Open(config.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to open history store: %w", err)
		}
	}

	return &world{
		logger:     logger,
		config:     config,
		dispatcher: dispatch.NewDispatcher(logger, h, demoRegistry(), demoArgumentContext(h)),
		caller:     caller,
		store:      store,
	}, nil
}

func (w *world) close() {
	if w.store != nil {
		_ = w.store.Close()
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := &cli.Command{
		Name:  "dispatch",
		Usage: "Overload-resolving command console",
		Commands: []*cli.Command{
			{
				Name:  "repl",
				Usage: "Start the interactive console",
				Flags: commonFlags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					w, err := setup(c)
					if err != nil {
						return err
					}
					defer w.close()

					cons, err := console.New(w.logger, w.config, w.dispatcher, w.caller, w.store, os.Stdout)
					if err != nil {
						return err
					}

					return cons.Run(ctx)
				},
			},
			{
				Name:  "run",
				Usage: "Execute a script of calls, one per line, stopping on the first failure",
				Flags: commonFlags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("must provide a script file as argument")
					}

					w, err := setup(c)
					if err != nil {
						return err
					}
					defer w.close()

					cons, err := console.New(w.logger, w.config, w.dispatcher, w.caller, w.store, os.Stdout)
					if err != nil {
						return err
					}

					f, err := os.Open(c.Args().First())
					if err != nil {
						return fmt.Errorf("failed to open script: %w", err)
					}
					defer f.Close()

					scanner := bufio.NewScanner(f)
					for scanner.Scan() {
						line := strings.TrimSpace(scanner.Text())
						if line == "" || strings.HasPrefix(line, "#") {
							continue
						}

						if err := cons.Eval(ctx, line); err != nil {
							return fmt.Errorf("script stopped at %q: %w", line, err)
						}
					}

					return scanner.Err()
				},
			},
			{
				Name:  "check",
				Usage: "Resolve a call without invoking it",
				Flags: commonFlags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() == 0 {
						return fmt.Errorf("must provide a call to check")
					}

					w, err := setup(c)
					if err != nil {
						return err
					}
					defer w.close()

					tokens, err := console.Split(strings.Join(c.Args().Slice(), " "))
					if err != nil {
						return err
					}

					callee := tokens[0]
					args := make([]dispatch.Argument, 0, len(tokens)-1)
					for _, tok := range tokens[1:] {
						args = append(args, dispatch.Typed(types.String, tok).WithRaw(tok))
					}

					resolved, err := w.dispatcher.Resolve(ctx, w.caller, callee, args)
					if err != nil {
						return err
					}

					fmt.Printf("%s resolves to variant %s\n", callee, resolved.Variant)
					return nil
				},
			},
			{
				Name:  "history",
				Usage: "Show recent invocations",
				Flags: append(commonFlags(),
					&cli.StringFlag{Name: "limit", Value: "20", Usage: "maximum number of entries"},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					w, err := setup(c)
					if err != nil {
						return err
					}
					defer w.close()

					if w.store == nil {
						return fmt.Errorf("no history database configured (set DISPATCH_DB or the config file)")
					}

					limit, err := strconv.Atoi(c.String("limit"))
					if err != nil {
						return fmt.Errorf("invalid limit: %w", err)
					}

					entries, err := w.store.Recent(ctx, limit)
					if err != nil {
						return err
					}

					for _, entry := range entries {
						status := "ok"
						if !entry.OK {
							status = "failed: " + entry.Error
						}
						fmt.Printf("%s  %-8s %-24q %s\n", entry.At.Format("2006-01-02 15:04:05"), entry.Caller, entry.Line, status)
					}

					return nil
				},
			},
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatalln(err)
	}
}
