package query

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mertcandav/MochaDB-sub001/table"
)

// Function is a named condition usable in MUST clauses, either infix
// (amount BETWEEN #1, #5) or as a call (BETWEEN(amount, #1, #5)).
type Function interface {
	// Name returns the function name (case-insensitive)
	Name() string
	// MinArity returns the minimum number of arguments after the target
	MinArity() int
	// MaxArity returns the maximum number of arguments after the target
	MaxArity() int
	// Check validates the kinds of the target and arguments before any row
	// is evaluated
	Check(target table.Kind, args []table.Kind) error
	// Evaluate tests the target value against the arguments
	Evaluate(target Value, args []Value) (bool, error)
}

// FunctionRegistry manages function lookup and registration
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
}

// NewFunctionRegistry creates a new function registry
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		functions: make(map[string]Function),
	}
}

// Register registers a function
func (r *FunctionRegistry) Register(f Function) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.functions[strings.ToUpper(f.Name())] = f
}

// Get retrieves a function by name (case-insensitive)
func (r *FunctionRegistry) Get(name string) (Function, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, exists := r.functions[strings.ToUpper(name)]
	return f, exists
}

// globalRegistry is the default function registry
var globalRegistry *FunctionRegistry

func init() {
	globalRegistry = NewFunctionRegistry()

	// ordering
	globalRegistry.Register(&BetweenFunc{})
	globalRegistry.Register(&BiggerFunc{})
	globalRegistry.Register(&LowerFunc{})

	// equality
	globalRegistry.Register(&EqualFunc{})
	globalRegistry.Register(&NotEqualFunc{})

	// text
	globalRegistry.Register(&StartsWithFunc{})
	globalRegistry.Register(&EndsWithFunc{})
	globalRegistry.Register(&ContainsFunc{})
	globalRegistry.Register(&NotContainsFunc{})
}

// GetGlobalRegistry returns the global function registry
func GetGlobalRegistry() *FunctionRegistry {
	return globalRegistry
}

// checkArity validates the argument count of a function call
func checkArity(f Function, n int) error {
	if n < f.MinArity() || (f.MaxArity() >= 0 && n > f.MaxArity()) {
		if f.MinArity() == f.MaxArity() {
			return fmt.Errorf("%w: %s expects %d argument(s), got %d", ErrInvalidArgument, f.Name(), f.MinArity(), n)
		}
		return fmt.Errorf("%w: %s expects %d to %d arguments, got %d", ErrInvalidArgument, f.Name(), f.MinArity(), f.MaxArity(), n)
	}
	return nil
}

func checkSameKinds(target table.Kind, args []table.Kind) error {
	for _, k := range args {
		if err := checkKinds(target, k); err != nil {
			return err
		}
	}
	return nil
}

func checkOrderedKinds(target table.Kind, args []table.Kind) error {
	if err := checkOrdered(target); err != nil {
		return err
	}
	return checkSameKinds(target, args)
}

func checkTextKinds(name string, target table.Kind, args []table.Kind) error {
	if target != table.KindString {
		return fmt.Errorf("%w: %s requires a String value, got %s", ErrIncompatibleTypes, name, target)
	}
	return checkSameKinds(target, args)
}
