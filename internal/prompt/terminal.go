package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	rejectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type line struct {
	text string
	err  error
}

// TerminalPrompter asks questions on a line-oriented terminal. Once a read is
// cancelled the prompter is spent and every later Ask returns ErrCancelled.
type TerminalPrompter struct {
	in  io.Reader
	out io.Writer

	once  sync.Once
	lines chan line

	stopOnce sync.Once
	done     chan struct{}
}

// NewTerminalPrompter returns a prompter reading answers from in and writing
// questions to out.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{in: in, out: out, done: make(chan struct{})}
}

// start launches the reader goroutine. Reads block, so they happen off the
// asking goroutine and Ask can return as soon as ctx is done. The goroutine
// exits after its pending read once the prompter is stopped.
func (t *TerminalPrompter) start() {
	t.once.Do(func() {
		t.lines = make(chan line)
		go func() {
			defer close(t.lines)
			r := bufio.NewReader(t.in)
			for {
				s, err := r.ReadString('\n')
				l := line{text: strings.TrimRight(s, "\r\n")}
				if err != nil && s == "" {
					l = line{err: err}
				}
				select {
				case <-t.done:
					return
				default:
				}
				select {
				case t.lines <- l:
				case <-t.done:
					return
				}
				if l.err != nil {
					return
				}
			}
		}()
	})
}

func (t *TerminalPrompter) stop() {
	t.stopOnce.Do(func() { close(t.done) })
}

func (t *TerminalPrompter) readLine(ctx context.Context) (string, error) {
	select {
	case <-t.done:
		return "", ErrCancelled
	default:
	}
	t.start()
	select {
	case <-ctx.Done():
		t.stop()
		fmt.Fprintln(t.out)
		return "", ErrCancelled
	case l, ok := <-t.lines:
		if !ok || l.err == io.EOF {
			fmt.Fprintln(t.out)
			return "", ErrCancelled
		}
		if l.err != nil {
			return "", fmt.Errorf("reading answer: %w", l.err)
		}
		return l.text, nil
	}
}

// Ask renders q and reads one answer. Confirm questions are repeated until
// the answer is recognisably yes or no.
func (t *TerminalPrompter) Ask(ctx context.Context, q Question) (any, error) {
	if q.Kind == KindConfirm {
		return t.confirm(ctx, q)
	}

	def, _ := q.Default.(string)
	if def != "" {
		fmt.Fprint(t.out, questionStyle.Render(q.Message)+" "+hintStyle.Render(fmt.Sprintf("(%s)", def))+": ")
	} else {
		fmt.Fprint(t.out, questionStyle.Render(q.Message)+": ")
	}

	answer, err := t.readLine(ctx)
	if err != nil {
		return nil, err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

func (t *TerminalPrompter) confirm(ctx context.Context, q Question) (any, error) {
	def, _ := q.Default.(bool)
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}

	for {
		fmt.Fprint(t.out, questionStyle.Render(q.Message)+" "+hintStyle.Render(hint)+": ")
		answer, err := t.readLine(ctx)
		if err != nil {
			return nil, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		t.Reject(q, fmt.Errorf("please answer yes or no"))
	}
}

// Reject prints why an answer was refused.
func (t *TerminalPrompter) Reject(_ Question, err error) {
	fmt.Fprintln(t.out, rejectStyle.Render("  ✗ "+err.Error()))
}
