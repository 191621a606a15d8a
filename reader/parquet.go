package reader

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/shopspring/decimal"

	"github.com/mertcandav/MochaDB-sub001/table"
)

// Reader reads one parquet file as a table.
//
// It maintains both an OS file handle and a parquet file handle to enable
// proper resource cleanup.
type Reader struct {
	file   *os.File
	pqFile *parquet.File
}

// NewReader creates a new parquet reader for the specified file path.
//
// The file is opened and validated as a parquet file. Returns an error if
// the file doesn't exist or is not a valid parquet file.
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &Reader{
		file:   file,
		pqFile: pqFile,
	}, nil
}

// ReadAll reads all rows from the parquet file into memory.
//
// Each row is returned as a map where keys are column names and values are
// the column values. Nested groups are nested maps.
func (r *Reader) ReadAll() ([]map[string]interface{}, error) {
	rows := make([]map[string]interface{}, 0, r.pqFile.NumRows())

	reader := parquet.NewReader(r.pqFile)
	defer func() { _ = reader.Close() }()

	for {
		row := make(map[string]interface{})
		err := reader.Read(&row)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Schema returns the parquet file schema.
func (r *Reader) Schema() *parquet.Schema {
	return r.pqFile.Schema()
}

// Columns reads the whole file column by column. Every leaf field becomes a
// column; nested fields use dot notation (address.street).
func (r *Reader) Columns() ([]table.Column, error) {
	var leaves []leaf
	for _, field := range r.Schema().Fields() {
		leaves = append(leaves, collectLeaves(field, nil, false)...)
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	columns := make([]table.Column, len(leaves))
	for j, lf := range leaves {
		col := table.NewColumn(strings.Join(lf.path, "."), lf.dataType)
		col.Data = make([]table.Data, len(rows))
		for i, row := range rows {
			d, err := convertValue(lf, lookup(row, lf.path))
			if err != nil {
				return nil, fmt.Errorf("column %s row %d: %w", col.Name, i, err)
			}
			col.Data[i] = d
		}
		columns[j] = col
	}
	return columns, nil
}

// Close closes the parquet reader and releases associated resources.
func (r *Reader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}

// ReadColumns opens path, reads its columns and closes it
func ReadColumns(path string) ([]table.Column, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	cols, readErr := r.Columns()
	closeErr := r.Close()

	// Preserve the first error encountered
	if readErr != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, readErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("failed to close %s: %w", path, closeErr)
	}
	return cols, nil
}

// leaf is a primitive field of the schema
type leaf struct {
	path     []string
	field    parquet.Field
	dataType table.DataType
	repeated bool
}

func collectLeaves(field parquet.Field, prefix []string, parentRepeated bool) []leaf {
	path := append(append([]string(nil), prefix...), field.Name())
	repeated := parentRepeated || field.Repeated()

	if children := field.Fields(); len(children) > 0 {
		var leaves []leaf
		for _, child := range children {
			leaves = append(leaves, collectLeaves(child, path, repeated)...)
		}
		return leaves
	}

	dt := dataTypeOf(field)
	if repeated {
		dt = table.String
	}
	return []leaf{{path: path, field: field, dataType: dt, repeated: repeated}}
}

// lookup walks nested maps along path
func lookup(row map[string]interface{}, path []string) interface{} {
	var v interface{} = row
	for _, name := range path {
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil
		}
		v = m[name]
	}
	return v
}

const (
	millisPerDay = 24 * 60 * 60 * 1000
)

// convertValue converts a value read from parquet into a cell
func convertValue(lf leaf, v interface{}) (table.Data, error) {
	if v == nil {
		return table.DefaultData(lf.dataType), nil
	}
	if lf.repeated {
		return table.NewData(table.String, fmt.Sprintf("%v", v))
	}

	switch lf.dataType {
	case table.DateTime:
		switch val := v.(type) {
		case int32:
			return table.NewData(table.DateTime, time.UnixMilli(int64(val)*millisPerDay).UTC())
		case int64:
			return table.NewData(table.DateTime, timestamp(lf.field, val))
		}
	case table.Decimal:
		if d, ok := unscaledDecimal(lf.field, v); ok {
			return table.NewData(table.Decimal, d)
		}
	case table.Unique:
		if b, ok := v.([]byte); ok && len(b) == 16 {
			var id [16]byte
			copy(id[:], b)
			return table.NewData(table.Unique, id)
		}
	}
	return table.NewData(lf.dataType, v)
}

// timestamp converts an INT64 timestamp honouring the logical type unit
func timestamp(field parquet.Field, v int64) time.Time {
	unit := ""
	if lt := field.Type().LogicalType(); lt != nil {
		unit = lt.String()
	}
	switch {
	case strings.Contains(unit, "MILLIS"):
		return time.UnixMilli(v).UTC()
	case strings.Contains(unit, "NANOS"):
		return time.Unix(0, v).UTC()
	default:
		return time.UnixMicro(v).UTC()
	}
}

// unscaledDecimal applies the DECIMAL scale to an integer or big-endian
// byte encoded value
func unscaledDecimal(field parquet.Field, v interface{}) (decimal.Decimal, bool) {
	lt := field.Type().LogicalType()
	if lt == nil || lt.Decimal == nil {
		return decimal.Decimal{}, false
	}
	exp := -lt.Decimal.Scale

	switch val := v.(type) {
	case int32:
		return decimal.New(int64(val), exp), true
	case int64:
		return decimal.New(val, exp), true
	case []byte:
		n := new(big.Int).SetBytes(val)
		if len(val) > 0 && val[0]&0x80 != 0 {
			n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(len(val))*8))
		}
		return decimal.NewFromBigInt(n, exp), true
	}
	return decimal.Decimal{}, false
}
