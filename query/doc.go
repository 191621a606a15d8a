// Package query parses and executes MHQL commands against a column source.
//
// An MHQL command is a sequence of clauses ending with a terminal keyword:
//   - USE with an optional FROM selects the working columns
//   - MUST filters rows with AND-joined conditions and {subqueries}
//   - GROUPBY groups rows and computes COUNT, SUM, AVG, MAX and MIN
//   - ORDERBY sorts rows, CORDERBY sorts columns by name
//   - SUBROW, DELROW, SUBCOL, DELCOL and ADDROW reshape the result
//   - RETURN ends a reading command; REMOVE is validated only
//
// Clauses must appear in that order. The whole command is parsed and checked
// before any row is read, and every clause builds a new table, so a failing
// command never leaves a partial result behind.
//
// # Basic Usage
//
// Executing a command:
//
//	engine := query.NewEngine(reader.NewDirectory("data"))
//	result, err := engine.Query(`
//	    USE city, SUM(amount) AS total, COUNT(*) FROM sales
//	    MUST amount BIGGER #0 AND city STARTW "A"
//	    GROUPBY city
//	    ORDERBY total DESC
//	    RETURN`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Iterating over rows:
//
//	rows, err := engine.ExecuteReader(`USE * FROM sales RETURN`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i, row := range rows.All() {
//	    fmt.Println(i, row)
//	}
//
// # Literals
//
// "text" is a String, 'c' a Char, #12.5 a number and TRUE or FALSE a Boolean.
// Any other word is a column. Values are only compared with values of the
// same kind, and String values support equality and text functions but no
// ordering.
//
// # Errors
//
// Every failure wraps one of the sentinel errors declared in validation.go,
// so callers classify errors with errors.Is:
//
//	if errors.Is(err, query.ErrOutOfOrderClause) {
//	    ...
//	}
package query
