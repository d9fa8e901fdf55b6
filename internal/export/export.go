// Package export writes the persisted form of a summary: one JSON document
// whose shape matches the in-memory model exactly, optionally gzipped.
package export

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"repolens/internal/summary"
)

// Marshal renders the summary as indented, stable JSON. Slices inside the
// summary are already sorted by the pipeline, so output diffs cleanly.
func Marshal(sum *summary.RepoSummary) ([]byte, error) {
	return json.MarshalIndent(sum, "", "  ")
}

// Write streams the JSON document to w, gzipped when compress is set.
func Write(w io.Writer, sum *summary.RepoSummary, compress bool) error {
	data, err := Marshal(sum)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if compress {
		gw := gzip.NewWriter(w)
		if _, err := gw.Write(data); err != nil {
			_ = gw.Close()
			return err
		}
		return gw.Close()
	}

	_, err = w.Write(data)
	return err
}

// WriteFile persists the summary to path. A ".gz" suffix implies
// compression regardless of the flag.
func WriteFile(path string, sum *summary.RepoSummary, compress bool) error {
	if strings.HasSuffix(path, ".gz") {
		compress = true
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, sum, compress); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Read loads a summary document, transparently handling gzip.
func Read(r io.Reader) (*summary.RepoSummary, error) {
	br := newPeekReader(r)
	if br.isGzip() {
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		return decode(gr)
	}
	return decode(br)
}

// ReadFile loads a summary document from disk.
func ReadFile(path string) (*summary.RepoSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

func decode(r io.Reader) (*summary.RepoSummary, error) {
	var sum summary.RepoSummary
	if err := json.NewDecoder(r).Decode(&sum); err != nil {
		return nil, err
	}
	return &sum, nil
}

// peekReader sniffs the gzip magic bytes without consuming them.
type peekReader struct {
	r      io.Reader
	peeked []byte
}

func newPeekReader(r io.Reader) *peekReader {
	buf := make([]byte, 2)
	n, _ := io.ReadFull(r, buf)
	return &peekReader{r: r, peeked: buf[:n]}
}

func (p *peekReader) isGzip() bool {
	return len(p.peeked) == 2 && p.peeked[0] == 0x1f && p.peeked[1] == 0x8b
}

func (p *peekReader) Read(b []byte) (int, error) {
	if len(p.peeked) > 0 {
		n := copy(b, p.peeked)
		p.peeked = p.peeked[n:]
		return n, nil
	}
	return p.r.Read(b)
}
