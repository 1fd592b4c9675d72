package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agentx-labs/create-lit-component/internal/options"
)

// ErrCancelled is returned when the user aborts an interactive session.
var ErrCancelled = errors.New("prompt cancelled")

// Kind selects how a question is rendered and how its answer is parsed.
type Kind int

const (
	// KindInput asks for a line of text.
	KindInput Kind = iota
	// KindConfirm asks a yes/no question.
	KindConfirm
)

// Question is one step of an interactive session.
type Question struct {
	Name     string // option key the answer is stored under
	Kind     Kind
	Message  string
	Default  any                    // string for inputs, bool for confirms; nil for none
	Validate func(string) error     // inputs only
	When     func(options.Set) bool // nil means always ask
	Required bool                   // the key has no usable default
}

// Prompter asks a single question and returns the raw answer: a string for
// KindInput, a bool for KindConfirm.
type Prompter interface {
	Ask(ctx context.Context, q Question) (any, error)
	// Reject tells the user why the last answer to q was not accepted.
	Reject(q Question, err error)
}

// Run asks qs in order and returns the collected answers. A question is
// skipped when its When predicate is false for base merged with the answers
// gathered so far. Answers failing validation are rejected and asked again.
func Run(ctx context.Context, p Prompter, base options.Set, qs []Question) (options.Set, error) {
	answers := options.Set{}
	for _, q := range qs {
		state := options.Merge(
			options.Source{Name: "config", Values: base},
			options.Source{Name: "answers", Values: answers},
		)
		if q.When != nil && !q.When(state) {
			continue
		}

		value, err := ask(ctx, p, q)
		if err != nil {
			return nil, err
		}
		answers[q.Name] = value
	}
	return answers, nil
}

func ask(ctx context.Context, p Prompter, q Question) (any, error) {
	for {
		if ctx.Err() != nil {
			return nil, ErrCancelled
		}
		value, err := p.Ask(ctx, q)
		if err != nil {
			if errors.Is(err, ErrCancelled) || ctx.Err() != nil {
				return nil, ErrCancelled
			}
			return nil, fmt.Errorf("asking %s: %w", q.Name, err)
		}

		if q.Kind == KindConfirm {
			b, ok := value.(bool)
			if !ok {
				return nil, fmt.Errorf("asking %s: expected a yes/no answer, got %T", q.Name, value)
			}
			return b, nil
		}

		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("asking %s: expected text, got %T", q.Name, value)
		}
		s = strings.TrimSpace(s)
		if q.Validate != nil {
			if err := q.Validate(s); err != nil {
				p.Reject(q, err)
				continue
			}
		}
		return s, nil
	}
}
