// Package shell is the interactive TaleTrail command line. It drives the
// API client and the session the same way the web pages do: one command per
// page action.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/atinyakov/taletrail/internal/client/api"
	"github.com/atinyakov/taletrail/internal/client/session"
)

var (
	errExit          = errors.New("exit")
	errLoginRequired = errors.New("please log in first")
	// errNotified marks failures the session has already shown the user.
	errNotified = errors.New("already reported")
)

type usageError struct {
	usage string
}

func (e *usageError) Error() string { return "usage: " + e.usage }

// Tokens gives read access to the current access token.
type Tokens interface {
	Token() string
}

type command struct {
	usage string
	help  string
	// auth commands are refused without a request when signed out.
	auth bool
	run  func(ctx context.Context, args []string) error
}

// Shell reads commands and prints their results.
type Shell struct {
	client *api.Client
	sess   *session.Session
	tokens Tokens
	prompt *Prompter
	out    io.Writer
	log    *zap.Logger

	commands map[string]command
}

// New wires a shell. in and out are usually stdin and stdout.
func New(client *api.Client, sess *session.Session, tokens Tokens, in io.Reader, out io.Writer, logger *zap.Logger) *Shell {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Shell{
		client: client,
		sess:   sess,
		tokens: tokens,
		prompt: NewPrompter(in, out),
		out:    out,
		log:    logger,
	}
	s.commands = s.register()
	return s
}

// Run is the read-eval loop. It returns nil at end of input or on exit.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "TaleTrail. Type 'help' for a list of commands.")
	for {
		fmt.Fprint(s.out, s.label())
		line, ok := s.prompt.Scan()
		if !ok {
			fmt.Fprintln(s.out)
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.Exec(ctx, line)
		if errors.Is(err, errExit) {
			return nil
		}
		s.Report(err)
	}
}

// Exec runs a single command line.
func (s *Shell) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	cmd, ok := s.commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q, type 'help' for a list", name)
	}
	if cmd.auth && !s.sess.IsAuthenticated() {
		return errLoginRequired
	}
	s.log.Debug("running command", zap.String("command", name), zap.Int("args", len(args)))
	return cmd.run(ctx, args)
}

// Report prints err unless the user has already been told about it.
func (s *Shell) Report(err error) {
	switch {
	case err == nil, errors.Is(err, errExit), errors.Is(err, errNotified):
		return
	case errors.Is(err, api.ErrSessionExpired):
		// the console printed the redirect notice
		s.log.Debug("command ended by expired session")
		return
	}
	fmt.Fprintf(s.out, "Error: %v\n", err)
}

func (s *Shell) label() string {
	if u, ok := s.sess.User(); ok {
		return "taletrail(" + u.Username + ")> "
	}
	return "taletrail> "
}

func (s *Shell) help(_ context.Context, _ []string) error {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := newTable(s.out)
	for _, name := range names {
		cmd := s.commands[name]
		help := cmd.help
		if cmd.auth {
			help += " (login required)"
		}
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.usage, help)
	}
	return tw.Flush()
}
