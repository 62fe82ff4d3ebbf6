package records

import "context"

// Rule is a single business precondition checked before a mutating
// operation. A nil result means the precondition holds; otherwise the
// returned Problem is surfaced to the caller unchanged.
type Rule interface {
	Check(ctx context.Context) *Problem
}

// RuleFunc adapts a plain function to the Rule interface.
type RuleFunc func(ctx context.Context) *Problem

func (f RuleFunc) Check(ctx context.Context) *Problem {
	return f(ctx)
}

// runRules evaluates rules in order and returns the first failure.
func runRules(ctx context.Context, rules []Rule) *Problem {
	for _, rule := range rules {
		if prob := rule.Check(ctx); prob != nil {
			return prob
		}
	}
	return nil
}
