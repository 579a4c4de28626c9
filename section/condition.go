package section

import (
	"context"
)

// Predicate decides at execution time whether a section plays.
type Predicate func(ctx context.Context) (bool, error)

// Condition is either a fixed boolean or a Predicate evaluated lazily when the section executes.
type Condition struct {
	literal   bool
	predicate Predicate
}

// Literal returns a Condition that always evaluates to b.
func Literal(b bool) Condition {
	return Condition{literal: b}
}

// When returns a Condition that defers to p.
func When(p Predicate) Condition {
	return Condition{predicate: p}
}

// IsPredicate reports whether the condition is evaluated by calling a function.
func (c Condition) IsPredicate() bool {
	return c.predicate != nil
}

// Evaluate resolves the condition, calling the predicate if there is one.
func (c Condition) Evaluate(ctx context.Context) (bool, error) {
	if c.predicate != nil {
		return c.predicate(ctx)
	}
	return c.literal, nil
}

// conditionFrom converts the values accepted by PlayIf. ok is false for anything that isn't a boolean or a
// supported function shape.
func conditionFrom(v interface{}) (c Condition, ok bool) {
	switch cond := v.(type) {
	case bool:
		return Literal(cond), true
	case Condition:
		return cond, true
	case Predicate:
		return When(cond), cond != nil
	case func(context.Context) (bool, error):
		return When(cond), cond != nil
	case func(context.Context) bool:
		return When(func(ctx context.Context) (bool, error) { return cond(ctx), nil }), cond != nil
	case func() (bool, error):
		return When(func(context.Context) (bool, error) { return cond() }), cond != nil
	case func() bool:
		return When(func(context.Context) (bool, error) { return cond(), nil }), cond != nil
	}
	return Condition{}, false
}
