package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"

	"github.com/jovita-brundziene/airflow-de-intro-project-jbru/internal/storage"
)

// fakeStorage is an in-memory ObjectStorage standing in for the S3
// client. Listing returns keys in lexicographic order, matching what the
// real backend does.
type fakeStorage struct {
	objects   map[string][]byte
	statErr   map[string]error
	uploadErr map[string]error
	getErr    map[string]error
	listErr   error
	uploads   []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		objects:   make(map[string][]byte),
		statErr:   make(map[string]error),
		uploadErr: make(map[string]error),
		getErr:    make(map[string]error),
	}
}

func (f *fakeStorage) Exists(_ context.Context, key string) (bool, error) {
	if err, ok := f.statErr[key]; ok {
		return false, err
	}
	_, ok := f.objects[key]
	return ok, nil
}

func (f *fakeStorage) Upload(_ context.Context, key, localPath string) error {
	if err := f.uploadErr[key]; err != nil {
		return err
	}
	data, err := os.ReadFile(localPath)
	if err != nil {
		return err
	}
	f.objects[key] = data
	f.uploads = append(f.uploads, key)
	return nil
}

func (f *fakeStorage) List(_ context.Context, prefix string) ([]storage.ObjectInfo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	keys := make([]string, 0, len(f.objects))
	for key := range f.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	infos := make([]storage.ObjectInfo, 0, len(keys))
	for _, key := range keys {
		infos = append(infos, storage.ObjectInfo{Key: key, Size: int64(len(f.objects[key]))})
	}
	return infos, nil
}

func (f *fakeStorage) Get(_ context.Context, key string) ([]byte, error) {
	if err, ok := f.getErr[key]; ok {
		return nil, err
	}
	data, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("no such key %s", key)
	}
	return data, nil
}

var _ storage.ObjectStorage = (*fakeStorage)(nil)

// personRow is the flat shape used for parquet fixtures across the
// pipeline tests.
type personRow struct {
	Name        string `parquet:"Name"`
	DateOfBirth string `parquet:"Date_Of_Birth"`
	Age         string `parquet:"age"`
	Score       string `parquet:"score"`
}

func writeParquet(t *testing.T, rows []personRow) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := parquet.NewGenericWriter[personRow](&buf)
	_, err := w.Write(rows)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func writeLocalFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(dir+"/"+name, data, 0o644))
}
