package query

import (
	"errors"
	"fmt"

	"github.com/mertcandav/MochaDB-sub001/table"
)

// MaxQueryLength is the maximum allowed command length (1MB)
const MaxQueryLength = 1024 * 1024

var (
	// ErrMalformedClause is returned when a clause keyword is present but its
	// body cannot be determined or parsed
	ErrMalformedClause = errors.New("malformed clause")

	// ErrUnknownClause is returned for text that does not start a known clause
	ErrUnknownClause = errors.New("unknown clause")

	// ErrOutOfOrderClause is returned when MUST, GROUPBY and ORDERBY are not
	// written in that order
	ErrOutOfOrderClause = errors.New("clause out of order")

	// ErrUnknownColumn is returned when a column reference does not resolve
	ErrUnknownColumn = errors.New("unknown column")

	// ErrUnknownTable is returned when the source has no table of that name
	ErrUnknownTable = table.ErrUnknownTable

	// ErrInvalidArgument is returned for bad pagination or function parameters
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIncompatibleTypes is returned when values of different kinds are
	// compared, or when an ordering comparison is applied to strings
	ErrIncompatibleTypes = errors.New("incompatible types")

	// ErrUnbalancedBrackets is returned when a bracket or quote is not closed
	ErrUnbalancedBrackets = errors.New("unbalanced brackets")

	// ErrSubqueryShape is returned when an IN or INEQ subquery does not yield
	// exactly one column of the referenced kind
	ErrSubqueryShape = errors.New("invalid subquery shape")

	// ErrQueryTooLong is returned when a command exceeds MaxQueryLength
	ErrQueryTooLong = errors.New("query too long")

	// ErrNotReader is returned when a command that does not end with RETURN is
	// executed as a reader, or a RETURN command is executed as a mutation
	ErrNotReader = errors.New("command is not a reader")

	// ErrUnsupported is returned for mutating commands
	ErrUnsupported = errors.New("unsupported command")
)

// ValidateQuery performs input validation on a command before parsing
func ValidateQuery(cmd string) error {
	if len(cmd) > MaxQueryLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrQueryTooLong, len(cmd), MaxQueryLength)
	}
	return nil
}
