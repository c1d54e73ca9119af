package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Engine.Run ---

func TestEngineRun_EmptyContext(t *testing.T) {
	engine := NewEngine(DefaultThresholds, 0)

	for _, ctx := range []*Context{nil, {}, {SessionCount: 3, TotalDuration: 0}} {
		suggestions := engine.Run(ctx)
		require.Len(t, suggestions, 1)
		assert.Equal(t, InsufficientDataRule, suggestions[0].Rule)
		assert.Equal(t, InsufficientDataMessage, suggestions[0].Message)
	}
}

func TestEngineRun_HealthyContextProducesNothing(t *testing.T) {
	engine := NewEngine(DefaultThresholds, 0)
	suggestions := engine.Run(baseContext())
	assert.NotNil(t, suggestions)
	assert.Empty(t, suggestions)
}

func TestEngineRun_FixedPriorityOrder(t *testing.T) {
	engine := NewEngine(DefaultThresholds, 0)
	ctx := baseContext()
	// Fires fragmentation, consistency, underwork and dominance.
	ctx.SessionCount = 6
	ctx.TotalDuration = 6 * 600
	ctx.AvgSessionDuration = 600
	ctx.AvgDailyDuration = float64(ctx.TotalDuration) / 7
	ctx.WorkBlocks = 1
	ctx.CategoryShares = map[string]float64{"development": 1.0}

	suggestions := engine.Run(ctx)
	var ids []string
	for _, s := range suggestions {
		ids = append(ids, s.Rule)
	}
	assert.Equal(t, []string{"dominance", "underwork", "consistency", "fragmentation"}, ids)
}

func TestEngineRun_Limit(t *testing.T) {
	ctx := baseContext()
	ctx.CategoryShares = map[string]float64{"development": 1.0}
	ctx.AvgDailyDuration = 60
	ctx.WorkBlocks = 0

	all := NewEngine(DefaultThresholds, 0).Run(ctx)
	require.Greater(t, len(all), 2)

	limited := NewEngine(DefaultThresholds, 2).Run(ctx)
	require.Len(t, limited, 2)
	assert.Equal(t, all[:2], limited)
}

func TestEngineRun_CustomRule(t *testing.T) {
	custom := Rule{
		ID:      "custom",
		Applies: func(*Context, Thresholds) bool { return true },
		Message: func(ctx *Context, _ Thresholds) string { return "custom advice" },
	}
	engine := &Engine{rules: []Rule{custom, {ID: "nil-predicate"}}, thresholds: DefaultThresholds}

	suggestions := engine.Run(baseContext())
	require.Len(t, suggestions, 1)
	assert.Equal(t, Suggestion{Rule: "custom", Message: "custom advice"}, suggestions[0])
}

func TestEngineRun_NoRules(t *testing.T) {
	engine := &Engine{}
	assert.Empty(t, engine.Run(baseContext()))
}

func TestEngineRun_Deterministic(t *testing.T) {
	engine := NewEngine(DefaultThresholds, 0)
	ctx := baseContext()
	ctx.CategoryShares = map[string]float64{"development": 0.9, "docs": 0.1}
	assert.Equal(t, engine.Run(ctx), engine.Run(ctx))
}

// --- NewEngine ---

func TestNewEngine_HasAllRules(t *testing.T) {
	rules := NewEngine(DefaultThresholds, 0).Rules()
	require.Len(t, rules, 8)
	assert.Equal(t, "dominance", rules[0].ID)
	assert.Equal(t, "affirm", rules[len(rules)-1].ID)

	seen := make(map[string]bool)
	for _, r := range rules {
		assert.False(t, seen[r.ID], "duplicate rule id %s", r.ID)
		seen[r.ID] = true
		assert.NotNil(t, r.Applies)
		assert.NotNil(t, r.Message)
	}
}

func TestMessages(t *testing.T) {
	got := Messages([]Suggestion{{Rule: "a", Message: "one"}, {Rule: "b", Message: "two"}})
	assert.Equal(t, []string{"one", "two"}, got)
	assert.Empty(t, Messages(nil))
}
