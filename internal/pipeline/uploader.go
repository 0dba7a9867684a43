package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jovita-brundziene/airflow-de-intro-project-jbru/internal/storage"
)

// Uploader pushes local parquet files to the object store, skipping keys
// that already exist remotely.
type Uploader struct {
	store storage.ObjectStorage
	log   zerolog.Logger
}

// NewUploader creates a new Uploader.
func NewUploader(store storage.ObjectStorage, log zerolog.Logger) *Uploader {
	return &Uploader{
		store: store,
		log:   log,
	}
}

// Upload enumerates localDir for files with the target extension and
// uploads each one to prefix + "/" + filename. Files already present
// remotely are skipped, dry runs log intent without side effects, and
// per-file failures are logged without aborting the batch. The returned
// list holds the names of the files actually uploaded; dry-run and
// skipped files are excluded. Upload order follows directory iteration
// order and callers must not rely on it.
func (u *Uploader) Upload(ctx context.Context, localDir, prefix, ext string, dryRun bool) ([]string, error) {
	entries, err := os.ReadDir(localDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read local directory %s: %w", localDir, err)
	}

	uploaded := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		localPath := filepath.Join(localDir, entry.Name())
		key := prefix + "/" + entry.Name()

		present, err := u.store.Exists(ctx, key)
		if err != nil {
			u.log.Error().Err(err).Str("key", key).Msg("Failed to check existence, skipping file")
			continue
		}
		if present {
			u.log.Info().Str("key", key).Msg("File already exists remotely, skipping upload")
			continue
		}

		if dryRun {
			u.log.Info().Str("path", localPath).Str("key", key).Msg("[DRY RUN] Would upload")
			continue
		}

		if err := u.store.Upload(ctx, key, localPath); err != nil {
			u.log.Error().Err(err).Str("path", localPath).Str("key", key).Msg("Failed to upload file")
			continue
		}
		u.log.Info().Str("path", localPath).Str("key", key).Msg("Successfully uploaded file")
		uploaded = append(uploaded, entry.Name())
	}

	return uploaded, nil
}
