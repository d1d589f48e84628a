// Package console is an interactive readline front end over a dispatcher:
// it reads lines, tokenizes them into unresolved calls, dispatches them, and
// records the outcome in the invocation history.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/cmdcast/dispatch/pkg/dispatch"
	"github.com/cmdcast/dispatch/pkg/history"
	"github.com/cmdcast/dispatch/pkg/types"
	"github.com/google/uuid"
)

type Console struct {
	logger     *slog.Logger
	config     Config
	dispatcher *dispatch.Dispatcher
	caller     dispatch.Caller
	store      *history.Store
	out        io.Writer
}

// New builds a console. store may be nil to disable history recording.
func New(logger *slog.Logger, config Config, dispatcher *dispatch.Dispatcher, caller dispatch.Caller, store *history.Store, out io.Writer) (*Console, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate console config: %w", err)
	}

	return &Console{
		logger:     logger,
		config:     config,
		dispatcher: dispatcher,
		caller:     caller,
		store:      store,
		out:        out,
	}, nil
}

// Run reads and evaluates lines until EOF, interrupt, or an exit command.
func (c *Console) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          c.config.Prompt,
		HistoryFile:     c.config.HistoryFile,
		AutoComplete:    c.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			return nil
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read line: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if line == "exit" || line == "quit" {
			return nil
		}

		// Errors are already rendered; the loop keeps going.
		_ = c.Eval(ctx, line)
	}
}

func (c *Console) completer() readline.AutoCompleter {
	var items []readline.PrefixCompleterInterface
	for _, name := range c.dispatcher.Commands() {
		items = append(items, readline.PcItem(name))
	}

	return readline.NewPrefixCompleter(items...)
}

// Eval tokenizes one line, dispatches it, renders the result, and records
// the outcome. The dispatch error, if any, is returned for callers that
// stop on failure.
func (c *Console) Eval(ctx context.Context, line string) error {
	tokens, err := Split(line)
	if err != nil {
		fmt.Fprintf(c.out, "error: %v\n", err)
		return err
	}

	if len(tokens) == 0 {
		return nil
	}

	callee := tokens[0]
	args := make([]dispatch.Argument, 0, len(tokens)-1)
	for _, tok := range tokens[1:] {
		args = append(args, dispatch.Typed(types.String, tok).WithRaw(tok))
	}

	result, err := c.dispatcher.Dispatch(ctx, c.caller, callee, args)
	c.record(ctx, line, callee, err)

	if err != nil {
		fmt.Fprintf(c.out, "error: %v\n", err)
		return err
	}

	if result != nil {
		fmt.Fprintf(c.out, "%v\n", result)
	}

	return nil
}

func (c *Console) record(ctx context.Context, line, callee string, dispatchErr error) {
	if c.store == nil {
		return
	}

	entry := history.Entry{
		ID:     uuid.New(),
		Caller: c.caller.Name,
		Line:   line,
		Callee: callee,
		OK:     dispatchErr == nil,
		At:     time.Now().UTC(),
	}
	if dispatchErr != nil {
		entry.Error = dispatchErr.Error()
	}

	if err := c.store.Record(ctx, entry); err != nil {
		c.logger.Warn("failed to record invocation", "error", err)
	}
}
