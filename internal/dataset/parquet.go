package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
)

// FromParquet decodes a parquet payload into a Table. The files this
// pipeline moves carry flat schemas; leaf column order follows the file
// schema.
func FromParquet(data []byte) (*Table, error) {
	file, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet payload: %w", err)
	}

	fields := file.Schema().Fields()
	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = field.Name()
	}

	columns := make([][]any, len(names))
	for i := range columns {
		columns[i] = make([]any, 0)
	}

	for _, group := range file.RowGroups() {
		if err := readRowGroup(group, columns); err != nil {
			return nil, err
		}
	}

	table := New()
	for i, name := range names {
		table.AddColumn(name, columns[i])
	}
	return table, nil
}

func readRowGroup(group parquet.RowGroup, columns [][]any) error {
	rows := group.Rows()
	defer rows.Close()

	buf := make([]parquet.Row, 64)
	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			for _, value := range row {
				col := int(value.Column())
				if col < 0 || col >= len(columns) {
					continue
				}
				columns[col] = append(columns[col], decodeValue(value))
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}
}

func decodeValue(v parquet.Value) any {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	default:
		// ByteArray, FixedLenByteArray and Int96 all render through the
		// value's string form.
		return v.String()
	}
}
