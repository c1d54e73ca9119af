package suggest

// Engine evaluates an ordered rule table against a Context and collects the
// messages of every rule whose predicate holds.
type Engine struct {
	rules      []Rule
	thresholds Thresholds
	limit      int
}

// NewEngine creates a suggest engine with the built-in rules registered.
// A limit of 0 means unlimited.
func NewEngine(th Thresholds, limit int) *Engine {
	return &Engine{
		rules:      DefaultRules(),
		thresholds: th,
		limit:      limit,
	}
}

// Rules returns the registered rules in evaluation order.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Run evaluates all rules in priority order and returns the suggestions of
// those that apply, truncated to the engine's limit. With no tracked time it
// returns the single insufficient-data suggestion.
func (e *Engine) Run(ctx *Context) []Suggestion {
	if ctx == nil || ctx.SessionCount == 0 || ctx.TotalDuration <= 0 {
		return []Suggestion{{Rule: InsufficientDataRule, Message: InsufficientDataMessage}}
	}

	suggestions := []Suggestion{}
	for _, rule := range e.rules {
		if e.limit > 0 && len(suggestions) >= e.limit {
			break
		}
		if rule.Applies == nil || !rule.Applies(ctx, e.thresholds) {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Rule:    rule.ID,
			Message: rule.Message(ctx, e.thresholds),
		})
	}
	return suggestions
}

// Messages returns just the message text of the given suggestions.
func Messages(suggestions []Suggestion) []string {
	out := make([]string, len(suggestions))
	for i, s := range suggestions {
		out[i] = s.Message
	}
	return out
}
