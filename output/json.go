package output

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/mertcandav/MochaDB-sub001/table"
)

// JSONFormatter outputs rows as JSON Lines format
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes one JSON object per row. Keys are the column display names in
// column order.
func (j *JSONFormatter) Format(result *table.TableResult) error {
	names := result.ColumnNames()
	keys := make([][]byte, len(names))
	for i, name := range names {
		k, err := json.Marshal(name)
		if err != nil {
			return err
		}
		keys[i] = k
	}

	var buf bytes.Buffer
	for _, row := range result.Rows {
		buf.Reset()
		buf.WriteByte('{')
		for i, d := range row {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(keys[i])
			buf.WriteByte(':')
			v, err := json.Marshal(jsonValue(d))
			if err != nil {
				return err
			}
			buf.Write(v)
		}
		buf.WriteString("}\n")
		if _, err := j.writer.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// jsonValue maps a cell onto the JSON type it is encoded as
func jsonValue(d table.Data) interface{} {
	switch d.Kind() {
	case table.KindBoolean:
		b, _ := d.Value.(bool)
		return b
	case table.KindArithmetic:
		if _, ok := d.Decimal(); ok {
			return json.Number(d.String())
		}
		return nil
	default:
		return d.String()
	}
}
