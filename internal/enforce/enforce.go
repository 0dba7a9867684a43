// Package enforce reconciles table columns against the declared types of
// a metadata schema.
package enforce

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jovita-brundziene/airflow-de-intro-project-jbru/internal/dataset"
	"github.com/jovita-brundziene/airflow-de-intro-project-jbru/internal/metadata"
)

// Enforcer casts table columns to the types their schema entries declare.
type Enforcer struct {
	log zerolog.Logger
}

// New creates an Enforcer that reports skipped entries on log.
func New(log zerolog.Logger) *Enforcer {
	return &Enforcer{log: log}
}

// Apply walks the schema and casts each matching table column in place.
// Entries naming a column the table does not have, and entries with an
// unrecognized type tag, are logged as warnings and skipped. A value that
// cannot be cast becomes a missing marker; Apply never fails on data.
// Columns the schema does not mention are left untouched, and applying
// the same schema twice yields identical values.
func (e *Enforcer) Apply(table *dataset.Table, schema *metadata.Schema) {
	for _, col := range schema.Columns {
		name := dataset.NormalizeName(col.Name)
		values, ok := table.Column(name)
		if !ok {
			e.log.Warn().Str("column", name).Msg("Column declared in schema not found in table")
			continue
		}

		switch {
		case col.Type == "string":
			table.SetColumn(name, castStrings(values))
		case strings.HasPrefix(col.Type, "timestamp"):
			table.SetColumn(name, castTimestamps(values, col.DatetimeFormat))
		case col.Type == "int" || col.Type == "integer":
			table.SetColumn(name, castInts(values))
		case col.Type == "float" || col.Type == "double":
			table.SetColumn(name, castFloats(values))
		default:
			e.log.Warn().
				Str("column", name).
				Str("type", col.Type).
				Msg("Unsupported type in schema, column left untouched")
		}
	}
}

func castStrings(values []any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		switch s := v.(type) {
		case nil:
		case string:
			out[i] = s
		case time.Time:
			out[i] = s.Format(isoLayout)
		case float64:
			if !math.IsNaN(s) {
				out[i] = strconv.FormatFloat(s, 'g', -1, 64)
			}
		case int64:
			out[i] = strconv.FormatInt(s, 10)
		case bool:
			out[i] = strconv.FormatBool(s)
		default:
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}

func castTimestamps(values []any, format string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		switch t := v.(type) {
		case nil:
		case time.Time:
			out[i] = t
		case string:
			if ts, ok := parseTimestamp(t, format); ok {
				out[i] = ts
			}
		}
	}
	return out
}

func castInts(values []any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		switch n := v.(type) {
		case nil:
		case int64:
			out[i] = n
		case float64:
			if integral(n) {
				out[i] = int64(n)
			}
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
			if err == nil && integral(f) {
				out[i] = int64(f)
			}
		}
	}
	return out
}

func castFloats(values []any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		switch n := v.(type) {
		case nil:
		case float64:
			out[i] = n
		case int64:
			out[i] = float64(n)
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				out[i] = f
			}
		}
	}
	return out
}

// integral reports whether f fits a nullable-integer column.
func integral(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f)
}
