package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jovita-brundziene/airflow-de-intro-project-jbru/internal/dataset"
	"github.com/jovita-brundziene/airflow-de-intro-project-jbru/internal/storage"
)

// Loader reads remote parquet objects back into a single in-memory table.
type Loader struct {
	store storage.ObjectStorage
	log   zerolog.Logger
}

// NewLoader creates a new Loader.
func NewLoader(store storage.ObjectStorage, log zerolog.Logger) *Loader {
	return &Loader{
		store: store,
		log:   log,
	}
}

// Load lists the objects under prefix with the target extension and
// concatenates every readable one into a single table, appending files
// in listing order with row order preserved. A key that cannot be
// fetched or decoded is logged and excluded. If nothing could be read
// the result is an empty table with no columns. Listing failure aborts
// the run.
func (l *Loader) Load(ctx context.Context, prefix, ext string) (*dataset.Table, error) {
	objects, err := l.store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list objects under prefix %s: %w", prefix, err)
	}

	combined := dataset.New()
	read := 0
	for _, obj := range objects {
		if !strings.HasSuffix(obj.Key, ext) {
			continue
		}
		data, err := l.store.Get(ctx, obj.Key)
		if err != nil {
			l.log.Error().Err(err).Str("key", obj.Key).Msg("Failed to read object, excluding from table")
			continue
		}
		table, err := dataset.FromParquet(data)
		if err != nil {
			l.log.Error().Err(err).Str("key", obj.Key).Msg("Failed to decode parquet object, excluding from table")
			continue
		}
		combined.Append(table)
		read++
	}

	l.log.Info().
		Int("files", read).
		Int("rows", combined.NumRows()).
		Msg("Loaded table from object store")
	return combined, nil
}
