package fetcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestFile is a helper that writes data to a file path.
func writeTestFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func TestStreamFile_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Dataset.csv")
	require.NoError(t, writeTestFile(path, "District , Market\n Pune , Pune \n"))

	rowCh, errCh, err := StreamFile(context.Background(), path)
	require.NoError(t, err)
	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"District", "Market"}, rows[0])
	assert.Equal(t, []string{"Pune", "Pune"}, rows[1])
}

func TestStreamFile_XLSX(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {{"District"}, {"Nashik"}},
	})

	rowCh, errCh, err := StreamFile(context.Background(), path)
	require.NoError(t, err)
	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestStreamFile_Missing(t *testing.T) {
	_, _, err := StreamFile(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(eris.Cause(err)))

	_, _, err = StreamFile(context.Background(), filepath.Join(t.TempDir(), "nope.xlsx"))
	require.Error(t, err)
}
