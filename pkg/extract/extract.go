package extract

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/dslipak/pdf"
)

// Document is the raw material the statement parser consumes:
// layout-preserving page text in document order plus the creation
// timestamp from the PDF metadata.
type Document struct {
	Pages     []string
	CreatedAt time.Time
}

// Read opens a statement PDF, decrypting with password when the file
// needs one, and extracts the pages that carry transaction detail.
func Read(path, password string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat pdf: %w", err)
	}

	return read(f, info.Size(), password)
}

// ReadBytes parses an in-memory PDF, for callers that receive uploads
// rather than files on disk.
func ReadBytes(data []byte, password string) (*Document, error) {
	return read(bytes.NewReader(data), int64(len(data)), password)
}

func read(f io.ReaderAt, size int64, password string) (*Document, error) {
	r, err := pdf.NewReaderEncrypted(f, size, func() string { return password })
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	doc := &Document{CreatedAt: creationDate(r)}

	// The first page is the summary cover and the last one legal
	// furniture; neither carries transaction rows.
	for n := 2; n < r.NumPage(); n++ {
		p := r.Page(n)
		if p.V.IsNull() {
			continue
		}
		text, err := pageText(p)
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", n, err)
		}
		doc.Pages = append(doc.Pages, text)
	}
	return doc, nil
}

// creationDate reads Info/CreationDate from the document trailer. A
// missing or unparseable value yields the zero time; the parser rejects
// that before touching any line.
func creationDate(r *pdf.Reader) time.Time {
	v := r.Trailer().Key("Info").Key("CreationDate")
	if v.Kind() != pdf.String {
		return time.Time{}
	}
	t, err := parsePDFDate(v.RawString())
	if err != nil {
		return time.Time{}
	}
	return t
}

// parsePDFDate parses the PDF date syntax, D:YYYYMMDDHHMMSS followed by
// Z or an offset written as ±HH'mm'. Truncated forms are valid per the
// PDF spec and default the missing fields.
func parsePDFDate(s string) (time.Time, error) {
	s = strings.TrimPrefix(s, "D:")
	s = strings.ReplaceAll(s, "'", "")
	for _, layout := range []string{
		"20060102150405Z0700",
		"20060102150405",
		"200601021504",
		"20060102",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized pdf date %q", s)
}

// pageText rebuilds layout-preserving text from positioned fragments.
// Horizontal gaps between fragments become runs of spaces sized by the
// fragment's font, so table columns come out separated by runs of four
// or more spaces the way the tokenizer expects.
func pageText(p pdf.Page) (string, error) {
	rows, err := p.GetTextByRow()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		var cursor float64
		for j, t := range row.Content {
			if j > 0 {
				b.WriteString(strings.Repeat(" ", spaceRun(t.X-cursor, t.FontSize)))
			}
			b.WriteString(t.S)
			cursor = t.X + t.W
		}
	}
	return b.String(), nil
}

// spaceRun converts the horizontal gap before a fragment into a space
// count, approximating the space glyph as half the font size. Sub-glyph
// gaps are kerning, not separation.
func spaceRun(gap, fontSize float64) int {
	w := fontSize / 2
	if w <= 0 {
		w = 4
	}
	if gap < w*0.3 {
		return 0
	}
	n := int(math.Round(gap / w))
	if n < 1 {
		n = 1
	}
	return n
}
