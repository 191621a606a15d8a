package query

import (
	"strings"

	"github.com/mertcandav/MochaDB-sub001/table"
)

// String Functions

// StartsWithFunc tests whether a string starts with a prefix
type StartsWithFunc struct{}

func (f *StartsWithFunc) Name() string  { return "STARTW" }
func (f *StartsWithFunc) MinArity() int { return 1 }
func (f *StartsWithFunc) MaxArity() int { return 1 }
func (f *StartsWithFunc) Check(target table.Kind, args []table.Kind) error {
	return checkTextKinds(f.Name(), target, args)
}
func (f *StartsWithFunc) Evaluate(target Value, args []Value) (bool, error) {
	return strings.HasPrefix(target.Str, args[0].Str), nil
}

// EndsWithFunc tests whether a string ends with a suffix
type EndsWithFunc struct{}

func (f *EndsWithFunc) Name() string  { return "ENDW" }
func (f *EndsWithFunc) MinArity() int { return 1 }
func (f *EndsWithFunc) MaxArity() int { return 1 }
func (f *EndsWithFunc) Check(target table.Kind, args []table.Kind) error {
	return checkTextKinds(f.Name(), target, args)
}
func (f *EndsWithFunc) Evaluate(target Value, args []Value) (bool, error) {
	return strings.HasSuffix(target.Str, args[0].Str), nil
}

// ContainsFunc tests whether a string contains a substring
type ContainsFunc struct{}

func (f *ContainsFunc) Name() string  { return "CONTAINS" }
func (f *ContainsFunc) MinArity() int { return 1 }
func (f *ContainsFunc) MaxArity() int { return 1 }
func (f *ContainsFunc) Check(target table.Kind, args []table.Kind) error {
	return checkTextKinds(f.Name(), target, args)
}
func (f *ContainsFunc) Evaluate(target Value, args []Value) (bool, error) {
	return strings.Contains(target.Str, args[0].Str), nil
}

// NotContainsFunc tests whether a string does not contain a substring
type NotContainsFunc struct{}

func (f *NotContainsFunc) Name() string  { return "NOTCONTAINS" }
func (f *NotContainsFunc) MinArity() int { return 1 }
func (f *NotContainsFunc) MaxArity() int { return 1 }
func (f *NotContainsFunc) Check(target table.Kind, args []table.Kind) error {
	return checkTextKinds(f.Name(), target, args)
}
func (f *NotContainsFunc) Evaluate(target Value, args []Value) (bool, error) {
	return !strings.Contains(target.Str, args[0].Str), nil
}
