package query

import (
	"github.com/mertcandav/MochaDB-sub001/table"
)

// Comparison Functions

// BetweenFunc tests lo <= target <= hi
type BetweenFunc struct{}

func (f *BetweenFunc) Name() string  { return "BETWEEN" }
func (f *BetweenFunc) MinArity() int { return 2 }
func (f *BetweenFunc) MaxArity() int { return 2 }
func (f *BetweenFunc) Check(target table.Kind, args []table.Kind) error {
	return checkOrderedKinds(target, args)
}
func (f *BetweenFunc) Evaluate(target Value, args []Value) (bool, error) {
	lo, err := target.Compare(args[0])
	if err != nil {
		return false, err
	}
	hi, err := target.Compare(args[1])
	if err != nil {
		return false, err
	}
	return lo >= 0 && hi <= 0, nil
}

// BiggerFunc tests target > arg
type BiggerFunc struct{}

func (f *BiggerFunc) Name() string  { return "BIGGER" }
func (f *BiggerFunc) MinArity() int { return 1 }
func (f *BiggerFunc) MaxArity() int { return 1 }
func (f *BiggerFunc) Check(target table.Kind, args []table.Kind) error {
	return checkOrderedKinds(target, args)
}
func (f *BiggerFunc) Evaluate(target Value, args []Value) (bool, error) {
	c, err := target.Compare(args[0])
	return c > 0, err
}

// LowerFunc tests target < arg
type LowerFunc struct{}

func (f *LowerFunc) Name() string  { return "LOWER" }
func (f *LowerFunc) MinArity() int { return 1 }
func (f *LowerFunc) MaxArity() int { return 1 }
func (f *LowerFunc) Check(target table.Kind, args []table.Kind) error {
	return checkOrderedKinds(target, args)
}
func (f *LowerFunc) Evaluate(target Value, args []Value) (bool, error) {
	c, err := target.Compare(args[0])
	return c < 0, err
}

// EqualFunc tests target == arg
type EqualFunc struct{}

func (f *EqualFunc) Name() string  { return "EQUAL" }
func (f *EqualFunc) MinArity() int { return 1 }
func (f *EqualFunc) MaxArity() int { return 1 }
func (f *EqualFunc) Check(target table.Kind, args []table.Kind) error {
	return checkSameKinds(target, args)
}
func (f *EqualFunc) Evaluate(target Value, args []Value) (bool, error) {
	return target.Equal(args[0])
}

// NotEqualFunc tests target != arg
type NotEqualFunc struct{}

func (f *NotEqualFunc) Name() string  { return "NOTEQUAL" }
func (f *NotEqualFunc) MinArity() int { return 1 }
func (f *NotEqualFunc) MaxArity() int { return 1 }
func (f *NotEqualFunc) Check(target table.Kind, args []table.Kind) error {
	return checkSameKinds(target, args)
}
func (f *NotEqualFunc) Evaluate(target Value, args []Value) (bool, error) {
	eq, err := target.Equal(args[0])
	return !eq, err
}
