package ratelimit

// RuleSet maps action names to rules with a default fallback. It is built
// once at startup and read-only afterwards; Set is not safe to call
// concurrently with Rule.
type RuleSet struct {
	def     Rule
	actions map[string]Rule
}

// NewRuleSet creates a RuleSet that answers def for unregistered actions.
func NewRuleSet(def Rule) *RuleSet {
	return &RuleSet{
		def:     def,
		actions: make(map[string]Rule),
	}
}

// Set registers a rule for an action, replacing any previous one.
func (s *RuleSet) Set(action string, r Rule) {
	s.actions[action] = r
}

// Rule returns the rule for an action, or the default when none is registered.
func (s *RuleSet) Rule(action string) Rule {
	if r, ok := s.actions[action]; ok {
		return r
	}
	return s.def
}
