// api/auth/context.go
package auth

import "context"

type decisionContextKey struct{}

// WithDecision memoizes a gate decision on the request context so nested call
// sites reuse it instead of repeating the session and role lookups.
func WithDecision(ctx context.Context, decision Decision) context.Context {
	return context.WithValue(ctx, decisionContextKey{}, &decision)
}

// DecisionFromContext returns the memoized gate decision, if any.
func DecisionFromContext(ctx context.Context) (Decision, bool) {
	if ctx == nil {
		return Decision{}, false
	}
	v, ok := ctx.Value(decisionContextKey{}).(*Decision)
	if !ok || v == nil {
		return Decision{}, false
	}
	return *v, true
}
