// internal/console/console.go
//
// Line-oriented console play.
// Responsibilities:
//   - Read the startup line ("<maxchar> <dimensions> <seed>").
//   - Read guesses one line at a time, re-prompting on bad entries.
//   - Ask whether to play another game after each win.
//   - Print scores and the running average in the classic format.
//
// Every blocking read either yields a value, a retryable rejection, or
// game.ErrExhausted. The session decides what happens next.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/robalobadob/mastermind/internal/game"
)

const (
	promptConfig  = "Enter maxchar, dimensions, and seed => "
	promptGuess   = "\n %d. Enter your guess: "
	promptRetry   = "    Bad entry.  Try again: "
	promptAnother = "\nAnother game [Y/N]? "
	lineScore     = "    %d Exact and %d Inexact\n"
	lineAverage   = "\n\nCurrent average:  %0.3f\n"
	lineBadConfig = "Bad initial values\n"
	lineEOF       = "Unexpected EOF\n"
)

// Console binds the game to a reader and a writer.
type Console struct {
	in  *bufio.Reader
	out io.Writer
	obs game.Observer
	eof bool
}

// New wraps in and out. obs may be nil.
func New(in io.Reader, out io.Writer, obs game.Observer) *Console {
	return &Console{in: bufio.NewReader(in), out: out, obs: obs}
}

// readLine returns the next line without its terminator. A final line
// without a newline is returned normally; io.EOF comes on the call after.
func (c *Console) readLine() (string, error) {
	if c.eof {
		return "", io.EOF
	}
	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		c.eof = true
		if line == "" {
			return "", io.EOF
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadConfig parses the startup line. Anything malformed, missing or out
// of range is game.ErrBadConfig.
func (c *Console) ReadConfig() (game.Config, error) {
	line, err := c.readLine()
	if err != nil {
		return game.Config{}, fmt.Errorf("%w: %v", game.ErrBadConfig, err)
	}
	return ParseConfig(line)
}

// ParseConfig reads a bound letter, a length and a seed from line. The
// values may be separated by any run of spaces or tabs; anything after the
// seed is ignored.
func ParseConfig(line string) (game.Config, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return game.Config{}, fmt.Errorf("%w: want 3 values, got %d", game.ErrBadConfig, len(fields))
	}
	if len(fields[0]) != 1 {
		return game.Config{}, fmt.Errorf("%w: bound %q is not a single letter", game.ErrBadConfig, fields[0])
	}
	dims, err := strconv.Atoi(fields[1])
	if err != nil {
		return game.Config{}, fmt.Errorf("%w: dimensions: %v", game.ErrBadConfig, err)
	}
	seed, err := strconv.Atoi(fields[2])
	if err != nil {
		return game.Config{}, fmt.Errorf("%w: seed: %v", game.ErrBadConfig, err)
	}
	cfg := game.Config{Bound: fields[0][0], Dims: dims, Seed: seed}
	if err := cfg.Validate(); err != nil {
		return game.Config{}, err
	}
	return cfg, nil
}

// ReadGuess reads one line and normalizes it. A short line at end of input
// cannot be retried and becomes game.ErrExhausted.
func (c *Console) ReadGuess(cfg game.Config) (game.Guess, error) {
	line, err := c.readLine()
	if err != nil {
		return nil, game.ErrExhausted
	}
	g, err := game.ParseGuess(line, cfg)
	if errors.Is(err, game.ErrShortGuess) && c.eof {
		return nil, game.ErrExhausted
	}
	return g, err
}

// ReadAnother reads a Y/N answer. ok is false when the line was neither.
func (c *Console) ReadAnother() (another, ok bool, err error) {
	line, err := c.readLine()
	if err != nil {
		return false, false, game.ErrExhausted
	}
	line = strings.TrimLeft(line, " \t")
	if line == "" {
		return false, false, nil
	}
	switch line[0] {
	case 'Y', 'y':
		return true, true, nil
	case 'N', 'n':
		return false, true, nil
	}
	return false, false, nil
}

// Run plays until the player stops or input runs out. It returns nil on a
// normal finish, game.ErrBadConfig or game.ErrExhausted otherwise; the
// matching diagnostic has already been printed.
func (c *Console) Run() error {
	fmt.Fprint(c.out, promptConfig)
	cfg, err := c.ReadConfig()
	if err != nil {
		fmt.Fprint(c.out, lineBadConfig)
		return err
	}

	sess, err := game.NewSession(cfg, game.NewGenerator(cfg.Seed), c.obs)
	if err != nil {
		fmt.Fprint(c.out, lineBadConfig)
		return err
	}
	if err := sess.StartRound(); err != nil {
		return err
	}

	for !sess.State().IsTerminal() {
		switch sess.State() {
		case game.StateGuessing:
			err = c.attempt(sess)
		case game.StateWonRound:
			err = c.another(sess)
		default:
			err = fmt.Errorf("%w: unexpected %s", game.ErrIllegalTransition, sess.State())
		}
		if err != nil {
			if errors.Is(err, game.ErrExhausted) {
				fmt.Fprint(c.out, lineEOF)
			}
			return err
		}
	}
	return nil
}

// attempt reads until one guess is scored.
func (c *Console) attempt(sess *game.Session) error {
	fmt.Fprintf(c.out, promptGuess, sess.Attempt())
	for {
		g, err := c.ReadGuess(sess.Config())
		switch {
		case errors.Is(err, game.ErrExhausted):
			return sess.Exhaust()
		case game.IsRetryable(err):
			if err := sess.Reject(err); !game.IsRetryable(err) {
				return err
			}
			fmt.Fprint(c.out, promptRetry)
			continue
		case err != nil:
			return err
		}

		sc, err := sess.Submit(g)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, lineScore, sc.Exact, sc.Inexact)
		return nil
	}
}

// another prints the running average and asks for another game.
func (c *Console) another(sess *game.Session) error {
	fmt.Fprintf(c.out, lineAverage, sess.Stats().Average())
	for {
		fmt.Fprint(c.out, promptAnother)
		yes, ok, err := c.ReadAnother()
		if err != nil {
			return sess.Exhaust()
		}
		if ok {
			return sess.Continue(yes)
		}
	}
}
