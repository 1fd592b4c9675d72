package prompt

import (
	"context"
	"fmt"

	"github.com/agentx-labs/create-lit-component/internal/elementname"
	"github.com/agentx-labs/create-lit-component/internal/options"
	"github.com/agentx-labs/create-lit-component/internal/userdata"
)

// Questions returns the canonical ordered question list. Defaults come from
// the stored preferences.
func Questions(prefs userdata.Preferences) []Question {
	var scopeDefault any
	if prefs.Scope != "" {
		scopeDefault = prefs.Scope
	}
	return []Question{
		{
			Name:     options.Name,
			Kind:     KindInput,
			Message:  "Component name",
			Validate: elementname.Validate,
			Required: true,
		},
		{
			Name:    options.UseScope,
			Kind:    KindConfirm,
			Message: "Publish under an npm scope?",
			Default: prefs.UseScope,
		},
		{
			Name:    options.Scope,
			Kind:    KindInput,
			Message: "Scope for the npm package",
			Default: scopeDefault,
			When: func(s options.Set) bool {
				use, _ := s.Bool(options.UseScope)
				return use
			},
		},
		{
			Name:     options.Description,
			Kind:     KindInput,
			Message:  "Description",
			Required: true,
		},
	}
}

// Resolver fills in the options that configuration left open.
type Resolver struct {
	Prompter Prompter
}

// Resolve returns cfg completed with answers for every unanswered question.
// Answers never override a key present in cfg. When no required question is
// left, the remaining keys take their defaults without prompting. When
// useScope resolves to false the result carries no scope.
func (r *Resolver) Resolve(ctx context.Context, cfg options.Set, prefs userdata.Preferences) (options.Set, error) {
	implied := options.Set{}
	if cfg.Has(options.Scope) && !cfg.Has(options.UseScope) {
		implied[options.UseScope] = true
	}
	base := options.Merge(
		options.Source{Name: "implied", Values: implied},
		options.Source{Name: "config", Values: cfg},
	)

	var pending []Question
	required := false
	for _, q := range Questions(prefs) {
		if base.Has(q.Name) {
			continue
		}
		pending = append(pending, q)
		required = required || q.Required
	}

	var answers options.Set
	switch {
	case len(pending) == 0:
		answers = options.Set{}
	case required:
		if r.Prompter == nil {
			return nil, fmt.Errorf("missing required option %q and no terminal to ask", pending[0].Name)
		}
		var err error
		answers, err = Run(ctx, r.Prompter, base, pending)
		if err != nil {
			return nil, err
		}
	default:
		answers = Defaults(base, pending)
	}

	result := options.Merge(
		options.Source{Name: "answers", Values: answers},
		options.Source{Name: "config", Values: base},
	)
	// A declined scope is dropped whichever source supplied it.
	if use, ok := result.Bool(options.UseScope); ok && !use {
		delete(result, options.Scope)
	}
	return result, nil
}

// Defaults answers qs from their defaults, honouring When predicates, without
// any interaction. Questions without a default stay unanswered.
func Defaults(base options.Set, qs []Question) options.Set {
	answers := options.Set{}
	for _, q := range qs {
		state := options.Merge(
			options.Source{Name: "config", Values: base},
			options.Source{Name: "answers", Values: answers},
		)
		if q.When != nil && !q.When(state) {
			continue
		}
		if q.Default != nil {
			answers[q.Name] = q.Default
		}
	}
	return answers
}
