// Package validation evaluates ordered, named rules where the first failure wins.
package validation

import (
	"context"
	"fmt"
)

// Rule is one named predicate over an input of type T.
// Check returns nil when the input passes, or a *Failure describing why not.
type Rule[T any] struct {
	Name  string
	Check func(ctx context.Context, in T) *Failure
}

// Failure is the reason a rule rejected its input.
type Failure struct {
	// Rule is the name of the rule that failed. Run fills it in.
	Rule string

	// Message is the user-facing text.
	Message string

	// Err is the underlying cause, if the rule failed because of an error
	// rather than a rejected value.
	Err error
}

// Error implements error. It returns the user-facing message.
func (f *Failure) Error() string {
	return f.Message
}

// Unwrap returns the underlying cause.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Reject returns a failure with the given message.
func Reject(message string) *Failure {
	return &Failure{Message: message}
}

// RejectErr returns a failure with the given message caused by err.
func RejectErr(message string, err error) *Failure {
	return &Failure{Message: message, Err: err}
}

// Run evaluates rules in order and returns the first failure, or nil when every
// rule passes. Rules after the first failure are not evaluated.
func Run[T any](ctx context.Context, rules []Rule[T], in T) *Failure {
	for _, rule := range rules {
		if rule.Check == nil {
			panic(fmt.Sprintf("validation: rule %q has no check", rule.Name))
		}
		if f := rule.Check(ctx, in); f != nil {
			f.Rule = rule.Name
			return f
		}
	}
	return nil
}
