// Package output provides formatters for writing query results.
//
// This package defines the Formatter interface and provides implementations
// for JSON Lines, CSV and aligned text tables. All formatters work on a
// *table.TableResult and name fields by column display name, so AS aliases
// appear in the output.
//
// # Supported Formats
//
//   - JSON Lines: One JSON object per line, keys in column order
//   - CSV: Comma-separated values with header row
//   - Table: Bordered text table with a trailing row count
//
// # Basic Usage
//
// Selecting a formatter by name:
//
//	formatter, err := output.New("csv", os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := formatter.Format(result); err != nil {
//	    log.Fatal(err)
//	}
//
// # Type Handling
//
// The JSON formatter writes numeric cells as JSON numbers without losing
// decimal precision and Boolean cells as true or false. Everything else is
// written as its text form. The CSV formatter prefixes text that starts with
// a formula character with a single quote.
package output
