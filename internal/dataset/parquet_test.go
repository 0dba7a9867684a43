package dataset

import (
	"bytes"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type personRow struct {
	Name  string  `parquet:"name"`
	Age   int64   `parquet:"age"`
	Score float64 `parquet:"score"`
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

func TestFromParquet(t *testing.T) {
	data := writeParquet(t, []personRow{
		{Name: "a", Age: 30, Score: 1.5},
		{Name: "b", Age: 25, Score: 2.5},
	})

	table, err := FromParquet(data)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"name", "age", "score"}, table.Columns())
	assert.Equal(t, 2, table.NumRows())

	name, ok := table.Column("name")
	require.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, name)

	age, ok := table.Column("age")
	require.True(t, ok)
	assert.Equal(t, []any{int64(30), int64(25)}, age)

	score, ok := table.Column("score")
	require.True(t, ok)
	assert.Equal(t, []any{1.5, 2.5}, score)
}

func TestFromParquet_ConcatPreservesRowOrder(t *testing.T) {
	first, err := FromParquet(writeParquet(t, []personRow{
		{Name: "a", Age: 1},
		{Name: "b", Age: 2},
	}))
	require.NoError(t, err)

	second, err := FromParquet(writeParquet(t, []personRow{
		{Name: "c", Age: 3},
	}))
	require.NoError(t, err)

	first.Append(second)

	name, _ := first.Column("name")
	assert.Equal(t, []any{"a", "b", "c"}, name)
}

func TestFromParquet_RejectsGarbage(t *testing.T) {
	_, err := FromParquet([]byte("this is not a parquet payload"))
	assert.Error(t, err)
}
