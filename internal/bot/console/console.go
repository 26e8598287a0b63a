// Package console is a line-oriented transport for running the diary bot
// locally: every input line is a message from one fixed user and replies are
// printed back.
//
// Besides plain text and slash commands it understands
//
//	/photo <path>   add a local image file to the pending entry
//	/exit | /quit   leave
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dmitrijs2005/fooddiary/internal/bot/handler"
	"github.com/dmitrijs2005/fooddiary/internal/diary/pending"
	"github.com/dmitrijs2005/fooddiary/internal/logging"
	"golang.org/x/term"
)

// DefaultUser is the user id console messages are attributed to.
const DefaultUser pending.UserID = 1

const prompt = "diary> "

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

type Dispatcher interface {
	Dispatch(ctx context.Context, conv handler.Conversation, m handler.Message) error
}

type Console struct {
	in         io.Reader
	out        io.Writer
	user       pending.UserID
	dispatcher Dispatcher
	logger     logging.Logger
	mu         sync.Mutex
}

func New(in io.Reader, out io.Writer, user pending.UserID, d Dispatcher, l logging.Logger) *Console {
	return &Console{
		in:         in,
		out:        out,
		user:       user,
		dispatcher: d,
		logger:     l.With("module", "console"),
	}
}

// Send prints a reply.
func (c *Console) Send(ctx context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintln(c.out, text)
	return err
}

// Run reads lines until EOF, /exit or ctx cancellation.
func (c *Console) Run(ctx context.Context) error {
	lines := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(c.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errs <- sc.Err()
	}()

	interactive := c.interactive()
	for {
		if interactive {
			c.mu.Lock()
			fmt.Fprint(c.out, prompt)
			c.mu.Unlock()
		}

		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errs:
					return err
				default:
					return nil
				}
			}
			if quit := c.handleLine(ctx, line); quit {
				return nil
			}
		}
	}
}

func (c *Console) interactive() bool {
	f, ok := c.in.(*os.File)
	return ok && isTerminal(int(f.Fd()))
}

func (c *Console) handleLine(ctx context.Context, line string) (quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	msg, quit := parseLine(c.user, line)
	if quit {
		_ = c.Send(ctx, "Bye!")
		return true
	}

	if err := c.dispatcher.Dispatch(ctx, c, msg); err != nil {
		c.logger.Warn(ctx, "dispatch failed", "error", err)
	}
	return false
}

// parseLine turns one trimmed input line into a handler message.
func parseLine(user pending.UserID, line string) (handler.Message, bool) {
	msg := handler.Message{User: user}

	if !strings.HasPrefix(line, "/") {
		msg.Text = line
		return msg, false
	}

	name, args, _ := strings.Cut(line[1:], " ")
	args = strings.TrimSpace(args)

	switch strings.ToLower(name) {
	case "exit", "quit":
		return msg, true
	case "photo":
		if args == "" {
			msg.Command = "photo"
			return msg, false
		}
		msg.Photo = openFile(args)
		msg.PhotoExt = strings.ToLower(filepath.Ext(args))
	default:
		msg.Command = name
		msg.Args = args
	}
	return msg, false
}

func openFile(path string) handler.Fetch {
	return func(ctx context.Context) (io.ReadCloser, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return os.Open(path)
	}
}
