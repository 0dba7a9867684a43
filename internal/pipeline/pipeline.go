// Package pipeline runs the fixed upload → load → normalize → enforce
// sequence over an S3-compatible object store.
package pipeline

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/jovita-brundziene/airflow-de-intro-project-jbru/internal/dataset"
	"github.com/jovita-brundziene/airflow-de-intro-project-jbru/internal/enforce"
	"github.com/jovita-brundziene/airflow-de-intro-project-jbru/internal/metadata"
	"github.com/jovita-brundziene/airflow-de-intro-project-jbru/internal/storage"
)

// Run modes.
const (
	ModePreview = "preview"
	ModeWrite   = "write"
)

// Config holds the run parameters for one pipeline execution.
type Config struct {
	LocalDirectory string
	Prefix         string
	Extension      string
	MetadataFile   string
	ISODateColumns []string
	DryRun         bool
	RunMode        string
	OutputDir      string
	PreviewRows    int
}

// Pipeline executes the sequence once per invocation: single-threaded,
// sequential, no retries beyond the uploader's existence check.
type Pipeline struct {
	store storage.ObjectStorage
	cfg   Config
	log   zerolog.Logger
}

// New creates a Pipeline with defaults filled in.
func New(store storage.ObjectStorage, cfg Config, log zerolog.Logger) *Pipeline {
	if cfg.Extension == "" {
		cfg.Extension = ".parquet"
	}
	if cfg.PreviewRows <= 0 {
		cfg.PreviewRows = 5
	}
	return &Pipeline{
		store: store,
		cfg:   cfg,
		log:   log,
	}
}

// Run executes the pipeline and returns the enforced table. Per-file
// upload and read failures are isolated inside their steps; listing and
// schema failures abort the run.
func (p *Pipeline) Run(ctx context.Context) (*dataset.Table, error) {
	uploader := NewUploader(p.store, p.log)
	uploaded, err := uploader.Upload(ctx, p.cfg.LocalDirectory, p.cfg.Prefix, p.cfg.Extension, p.cfg.DryRun)
	if err != nil {
		return nil, err
	}
	p.log.Info().Strs("files", uploaded).Msg("Upload step finished")

	loader := NewLoader(p.store, p.log)
	table, err := loader.Load(ctx, p.cfg.Prefix, p.cfg.Extension)
	if err != nil {
		return nil, err
	}

	table.NormalizeColumns()

	schema, err := metadata.Load(p.cfg.MetadataFile)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("metadata schema is invalid: %w", err)
	}

	p.convertISODateColumns(table)

	enforce.New(p.log).Apply(table, schema)

	p.logPreview(table)

	if p.cfg.RunMode == ModeWrite {
		if err := p.writeCSV(table, schema.Name); err != nil {
			return nil, err
		}
	}

	return table, nil
}

// convertISODateColumns rewrites the configured date columns from
// YYYY-MM-DD strings to the ISO 8601 combined form before enforcement,
// so they match the schema's declared datetime format. Malformed values
// become missing markers.
func (p *Pipeline) convertISODateColumns(table *dataset.Table) {
	for _, name := range p.cfg.ISODateColumns {
		name = dataset.NormalizeName(name)
		values, ok := table.Column(name)
		if !ok {
			p.log.Warn().Str("column", name).Msg("Date column configured for ISO conversion not found in table")
			continue
		}

		out := make([]any, len(values))
		for i, v := range values {
			s, isString := v.(string)
			if !isString {
				out[i] = v
				continue
			}
			iso, ok := enforce.ToISOTimestamp(s)
			if !ok {
				p.log.Warn().Str("column", name).Str("value", s).Msg("Failed to convert date to ISO timestamp")
				continue
			}
			out[i] = iso
		}
		table.SetColumn(name, out)
	}
}

func (p *Pipeline) logPreview(table *dataset.Table) {
	types := make(map[string]string, len(table.Columns()))
	for _, name := range table.Columns() {
		values, _ := table.Column(name)
		types[name] = columnType(values)
	}
	p.log.Info().Interface("types", types).Msg("Column types after enforcement")

	n := table.NumRows()
	if n > p.cfg.PreviewRows {
		n = p.cfg.PreviewRows
	}
	for i := 0; i < n; i++ {
		p.log.Info().Int("row", i).Interface("values", table.Row(i)).Msg("Preview row")
	}
}

// columnType reports the type of the first present value; a column of
// nothing but missing markers is "unknown".
func columnType(values []any) string {
	for _, v := range values {
		switch v.(type) {
		case nil:
			continue
		case string:
			return "string"
		case int64:
			return "int64"
		case float64:
			return "float64"
		case time.Time:
			return "timestamp"
		case bool:
			return "bool"
		default:
			return fmt.Sprintf("%T", v)
		}
	}
	return "unknown"
}

// writeCSV emits the enforced table into the output directory, named
// after the schema when the metadata document carries a name.
func (p *Pipeline) writeCSV(table *dataset.Table, schemaName string) error {
	if schemaName == "" {
		schemaName = "output"
	}
	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", p.cfg.OutputDir, err)
	}
	path := filepath.Join(p.cfg.OutputDir, schemaName+".csv")

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(table.Columns()); err != nil {
		return fmt.Errorf("failed to write csv header to %s: %w", path, err)
	}
	for i := 0; i < table.NumRows(); i++ {
		record := make([]string, 0, len(table.Columns()))
		for _, v := range table.Row(i) {
			record = append(record, formatCell(v))
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row to %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv output %s: %w", path, err)
	}

	p.log.Info().Str("path", path).Int("rows", table.NumRows()).Msg("Wrote enforced table")
	return nil
}

func formatCell(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case int64:
		return strconv.FormatInt(c, 10)
	case float64:
		return strconv.FormatFloat(c, 'g', -1, 64)
	case time.Time:
		return c.Format("2006-01-02T15:04:05")
	default:
		return fmt.Sprint(c)
	}
}
