package prompt

import (
	"context"
	"testing"

	"github.com/agentx-labs/create-lit-component/internal/options"
	"github.com/agentx-labs/create-lit-component/internal/userdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveNothingMissing(t *testing.T) {
	p := &scripted{}
	r := &Resolver{Prompter: p}
	cfg := options.Set{
		options.Name:        "my-card",
		options.UseScope:    false,
		options.Description: "x",
	}

	got, err := r.Resolve(context.Background(), cfg, userdata.Preferences{})
	require.NoError(t, err)
	assert.Empty(t, p.asked)
	assert.Equal(t, cfg, got)
}

func TestResolveOnlyRequiredGivenUsesDefaults(t *testing.T) {
	p := &scripted{}
	r := &Resolver{Prompter: p}
	cfg := options.Set{options.Name: "foo-bar", options.Description: "x"}

	t.Run("no preferences", func(t *testing.T) {
		got, err := r.Resolve(context.Background(), cfg, userdata.Preferences{})
		require.NoError(t, err)
		assert.Empty(t, p.asked)
		assert.Equal(t, false, got[options.UseScope])
		assert.False(t, got.Has(options.Scope))
	})

	t.Run("stored scope", func(t *testing.T) {
		got, err := r.Resolve(context.Background(), cfg, userdata.Preferences{Scope: "@acme", UseScope: true})
		require.NoError(t, err)
		assert.Empty(t, p.asked)
		assert.Equal(t, true, got[options.UseScope])
		assert.Equal(t, "@acme", got[options.Scope])
	})
}

func TestResolveScopeImpliesUseScope(t *testing.T) {
	p := &scripted{answers: []any{"my-card"}}
	r := &Resolver{Prompter: p}
	cfg := options.Set{options.Scope: "acme", options.Description: "x"}

	got, err := r.Resolve(context.Background(), cfg, userdata.Preferences{})
	require.NoError(t, err)
	assert.Equal(t, []string{options.Name}, p.asked)
	assert.Equal(t, true, got[options.UseScope])
	assert.Equal(t, "acme", got[options.Scope])
}

func TestResolvePromptsMissing(t *testing.T) {
	p := &scripted{answers: []any{"Bad_Name", "my-card", true, "acme", "A card"}}
	r := &Resolver{Prompter: p}

	got, err := r.Resolve(context.Background(), options.Set{options.Install: false}, userdata.Preferences{})
	require.NoError(t, err)
	assert.Equal(t, []string{options.Name, options.Name, options.UseScope, options.Scope, options.Description}, p.asked)
	assert.Equal(t, []string{options.Name}, p.rejected)
	assert.Equal(t, options.Set{
		options.Name:        "my-card",
		options.UseScope:    true,
		options.Scope:       "acme",
		options.Description: "A card",
		options.Install:     false,
	}, got)
}

func TestResolveDeclinedScopeSkipsQuestion(t *testing.T) {
	p := &scripted{answers: []any{false, "A card"}}
	r := &Resolver{Prompter: p}

	got, err := r.Resolve(context.Background(), options.Set{options.Name: "my-card"}, userdata.Preferences{Scope: "@acme", UseScope: true})
	require.NoError(t, err)
	assert.Equal(t, []string{options.UseScope, options.Description}, p.asked)
	assert.False(t, got.Has(options.Scope))
}

func TestResolveConfigNeverOverridden(t *testing.T) {
	p := &scripted{answers: []any{"A card"}}
	r := &Resolver{Prompter: p}
	cfg := options.Set{options.Name: "my-card", options.UseScope: true, options.Scope: "cfg"}

	got, err := r.Resolve(context.Background(), cfg, userdata.Preferences{Scope: "@stored"})
	require.NoError(t, err)
	assert.Equal(t, "cfg", got[options.Scope])
	assert.Equal(t, []string{options.Description}, p.asked)
}

func TestResolveCancelled(t *testing.T) {
	r := &Resolver{Prompter: &scripted{}}

	_, err := r.Resolve(context.Background(), options.Set{}, userdata.Preferences{})
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestResolveWithoutPrompter(t *testing.T) {
	r := &Resolver{}

	_, err := r.Resolve(context.Background(), options.Set{options.Description: "x"}, userdata.Preferences{})
	assert.ErrorContains(t, err, `"name"`)
}

func TestDefaults(t *testing.T) {
	qs := Questions(userdata.Preferences{Scope: "@acme", UseScope: false})

	got := Defaults(options.Set{}, qs)
	assert.Equal(t, options.Set{options.UseScope: false}, got)

	got = Defaults(options.Set{options.UseScope: true}, qs)
	assert.Equal(t, "@acme", got[options.Scope])
}

func TestResolveUseScopeFalseDropsScope(t *testing.T) {
	tests := []struct {
		name    string
		cfg     options.Set
		prefs   userdata.Preferences
		answers []any
		asked   []string
	}{
		{
			name: "from config",
			cfg:  options.Set{options.Name: "my-card", options.Description: "x", options.UseScope: false, options.Scope: "acme"},
		},
		{
			name:  "from preference default",
			cfg:   options.Set{options.Name: "my-card", options.Description: "x"},
			prefs: userdata.Preferences{Scope: "@stored", UseScope: false},
		},
		{
			name:    "from answer",
			cfg:     options.Set{},
			prefs:   userdata.Preferences{Scope: "@stored", UseScope: true},
			answers: []any{"my-card", false, "x"},
			asked:   []string{options.Name, options.UseScope, options.Description},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &scripted{answers: tt.answers}
			r := &Resolver{Prompter: p}

			got, err := r.Resolve(context.Background(), tt.cfg, tt.prefs)
			require.NoError(t, err)
			assert.Equal(t, tt.asked, p.asked)
			assert.Equal(t, false, got[options.UseScope])
			assert.False(t, got.Has(options.Scope))
			assert.Empty(t, got.Scope())
		})
	}
}
