package fetcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// StreamFile streams the rows of a CSV or XLSX file, chosen by extension.
// Anything other than .xlsx is parsed as comma-separated text with fields
// trimmed. The open error is returned directly so callers can tell a missing
// file apart from a malformed one.
func StreamFile(ctx context.Context, path string) (<-chan []string, <-chan error, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		if _, err := os.Stat(path); err != nil {
			return nil, nil, eris.Wrapf(err, "fetcher: stat %s", path)
		}
		rows, errs := StreamXLSX(ctx, path, XLSXOptions{})
		return rows, errs, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "fetcher: open %s", path)
	}

	rows, errs := StreamCSV(ctx, f, CSVOptions{TrimSpace: true, LazyQuotes: true})

	// Close the file once the parser goroutine is done with it.
	errOut := make(chan error, 1)
	go func() {
		defer close(errOut)
		defer f.Close() //nolint:errcheck
		for err := range errs {
			errOut <- err
		}
	}()
	return rows, errOut, nil
}
