package export

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"repolens/internal/lang"
	"repolens/internal/scan"
	"repolens/internal/summary"
)

func sampleSummary() *summary.RepoSummary {
	return &summary.RepoSummary{
		AnalysisID:       "0f1e2d3c-0000-0000-0000-000000000000",
		AnalyzedAt:       "2026-03-01T12:00:00Z",
		RootPath:         "/repo",
		LanguagesPresent: []string{"python"},
		Files: []scan.FileRecord{
			{Path: "a.py", Language: scan.LangPython, Role: scan.RoleSource, SizeBytes: 12},
		},
		Modules: []lang.ModuleDescriptor{
			{
				Path:     "a.py",
				Language: scan.LangPython,
				Exports: []lang.ExportRecord{
					{Name: "run", Kind: lang.KindFunction, LineNumber: 1, IsExported: true},
				},
				Imports:        []string{"os"},
				ComplexityTier: lang.TierLow,
			},
		},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	for _, compress := range []bool{false, true} {
		var buf bytes.Buffer
		if err := Write(&buf, sampleSummary(), compress); err != nil {
			t.Fatalf("Write(compress=%v): %v", compress, err)
		}

		got, err := Read(&buf)
		if err != nil {
			t.Fatalf("Read(compress=%v): %v", compress, err)
		}
		if !reflect.DeepEqual(got, sampleSummary()) {
			t.Errorf("round trip with compress=%v altered the summary", compress)
		}
	}
}

func TestWritePlainIsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleSummary(), false); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "{") || !strings.HasSuffix(out, "}\n") {
		t.Errorf("plain output is not a newline-terminated JSON object: %q", out[:20])
	}
	if !strings.Contains(out, `"analysisId"`) {
		t.Error("expected analysisId field in output")
	}
}

func TestWriteFileGzSuffixImpliesCompression(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json.gz")
	if err := WriteFile(path, sampleSummary(), false); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read raw: %v", err)
	}
	if len(raw) < 2 || raw[0] != 0x1f || raw[1] != 0x8b {
		t.Error("expected gzip magic bytes in .gz output")
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got.AnalysisID != sampleSummary().AnalysisID {
		t.Errorf("analysisId = %q", got.AnalysisID)
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	if _, err := Read(strings.NewReader("not json at all")); err == nil {
		t.Fatal("expected decode error")
	}
}
