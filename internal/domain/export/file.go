package export

import (
	"fmt"
	"io"
	"os"
	"time"
)

// BOM is the UTF-8 byte order mark prepended to every emitted CSV so that
// spreadsheet tools detect the encoding.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVContentType is the media type of emitted CSV bodies.
const CSVContentType = "text/csv; charset=utf-8"

// WithBOM returns csv as bytes with the BOM in front.
func WithBOM(csv string) []byte {
	out := make([]byte, 0, len(BOM)+len(csv))
	out = append(out, BOM...)
	return append(out, csv...)
}

// Write emits the BOM and csv to w.
func Write(w io.Writer, csv string) error {
	if _, err := w.Write(WithBOM(csv)); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteFile writes the BOM-prefixed csv to path.
func WriteFile(path, csv string) error {
	if err := os.WriteFile(path, WithBOM(csv), 0o644); err != nil {
		return fmt.Errorf("write csv file %s: %w", path, err)
	}
	return nil
}

// DefaultFilename returns "<prefix>-export-YYYY-MM-DD.<ext>" for the UTC date of now.
func DefaultFilename(prefix string, now time.Time) string {
	return DefaultFilenameExt(prefix, "csv", now)
}

// DefaultFilenameExt is DefaultFilename with a chosen extension.
func DefaultFilenameExt(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s-export-%s.%s", prefix, now.UTC().Format("2006-01-02"), ext)
}
