// Package reader provides the column sources MHQL commands execute against.
//
// A Directory exposes every parquet file in a directory as a table; a Memory
// source holds tables built in code.
//
// # Basic Usage
//
// Querying a directory of parquet files:
//
//	src := reader.NewDirectory("data")
//	engine := query.NewEngine(src)
//	result, err := engine.Query(`USE city, SUM(amount) AS total FROM sales GROUPBY city RETURN`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Schema Introspection
//
// Accessing a table's schema:
//
//	infos, err := src.Schema("sales")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, info := range infos {
//	    fmt.Printf("%s: %s (%s)\n", info.Name, info.DataType, info.PhysicalType)
//	}
//
// # Type Mapping
//
// BOOLEAN reads as Boolean, INT32 as Int32, INT64 as Int64, FLOAT as Single,
// DOUBLE as Double, DECIMAL as Decimal, UUID as Unique, DATE and TIMESTAMP
// as DateTime. Every other leaf, including repeated fields, reads as String.
//
// The package uses github.com/parquet-go/parquet-go for the underlying
// parquet file operations.
package reader
