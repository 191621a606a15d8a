package reader

import (
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/mertcandav/MochaDB-sub001/table"
)

// SchemaInfo represents metadata about a single column in a Parquet file.
type SchemaInfo struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	DataType     string `json:"data_type"`
	PhysicalType string `json:"physical_type"`
	LogicalType  string `json:"logical_type"`
	Required     bool   `json:"required"`
	Optional     bool   `json:"optional"`
	Repeated     bool   `json:"repeated"`
}

// ExtractSchemaInfo extracts schema information from a Parquet file.
//
// For nested types, field names use dot notation (e.g., "address.street").
// DataType is the column type the file is read as.
func ExtractSchemaInfo(path string) ([]SchemaInfo, error) {
	reader, err := NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = reader.Close() }()

	var schemaInfos []SchemaInfo
	for _, field := range reader.Schema().Fields() {
		for _, lf := range collectLeaves(field, nil, false) {
			schemaInfos = append(schemaInfos, schemaInfo(lf))
		}
	}
	return schemaInfos, nil
}

func schemaInfo(lf leaf) SchemaInfo {
	return SchemaInfo{
		Name:         strings.Join(lf.path, "."),
		Type:         getUserFriendlyType(lf.field),
		DataType:     lf.dataType.String(),
		PhysicalType: getPhysicalType(lf.field),
		LogicalType:  getLogicalType(lf.field),
		Required:     lf.field.Required(),
		Optional:     lf.field.Optional(),
		Repeated:     lf.repeated,
	}
}

// dataTypeOf maps a leaf field onto a column type
func dataTypeOf(field parquet.Field) table.DataType {
	switch getUserFriendlyType(field) {
	case "BOOLEAN":
		return table.Boolean
	case "INT32":
		return table.Int32
	case "INT64":
		return table.Int64
	case "FLOAT32":
		return table.Single
	case "FLOAT64":
		return table.Double
	case "DECIMAL":
		return table.Decimal
	case "UUID":
		return table.Unique
	case "DATE", "TIMESTAMP":
		return table.DateTime
	default:
		return table.String
	}
}

// getPhysicalType returns the physical type name of a Parquet field.
func getPhysicalType(field parquet.Field) string {
	if field.Type() == nil {
		return "GROUP"
	}

	switch field.Type().Kind() {
	case parquet.Boolean:
		return "BOOLEAN"
	case parquet.Int32:
		return "INT32"
	case parquet.Int64:
		return "INT64"
	case parquet.Int96:
		return "INT96"
	case parquet.Float:
		return "FLOAT"
	case parquet.Double:
		return "DOUBLE"
	case parquet.ByteArray:
		return "BYTE_ARRAY"
	case parquet.FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN"
	}
}

// getLogicalType returns the logical type name of a Parquet field.
func getLogicalType(field parquet.Field) string {
	if field.Type() == nil {
		return ""
	}
	logicalType := field.Type().LogicalType()
	if logicalType == nil {
		return ""
	}
	return logicalType.String()
}

// getUserFriendlyType returns a user-friendly type name for a Parquet field.
func getUserFriendlyType(field parquet.Field) string {
	if field.Type() == nil {
		return "GROUP"
	}

	// Check logical type first for more specific typing. Parameterized
	// types render as NAME(...), so match on the prefix.
	if lt := field.Type().LogicalType(); lt != nil {
		name := lt.String()
		if i := strings.IndexByte(name, '('); i >= 0 {
			name = name[:i]
		}
		switch name {
		case "STRING", "UTF8", "ENUM", "JSON":
			return "STRING"
		case "UUID", "DATE", "TIME", "TIMESTAMP", "DECIMAL":
			return name
		}
	}

	switch field.Type().Kind() {
	case parquet.Boolean:
		return "BOOLEAN"
	case parquet.Int32:
		return "INT32"
	case parquet.Int64:
		return "INT64"
	case parquet.Int96:
		return "INT96"
	case parquet.Float:
		return "FLOAT32"
	case parquet.Double:
		return "FLOAT64"
	case parquet.ByteArray:
		return "BYTE_ARRAY"
	case parquet.FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN"
	}
}
