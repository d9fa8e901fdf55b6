package lang

import (
	"context"
	"reflect"
	"testing"

	"repolens/internal/slogutil"
)

const pythonSample = `"""Module docstring."""
import os
import sys as system
from pathlib import Path

MAX_RETRIES = 3
_INTERNAL: int = 7


def fetch(url: str, timeout: int = 30) -> bytes:
    """Fetch a URL.

    Retries on transient failures.
    """
    return b""


async def fetch_async(url: str) -> bytes:
    return b""


def _helper():
    pass


class Client(BaseClient):
    """HTTP client."""

    def get(self, url):
        return None
`

func newPythonParser() *PythonParser {
	return NewPythonParser(DefaultTierPolicy(), DefaultLimits(), slogutil.NewDiscardLogger())
}

func exportNamed(t *testing.T, desc *ModuleDescriptor, name string) ExportRecord {
	t.Helper()
	for _, e := range desc.Exports {
		if e.Name == name {
			return e
		}
	}
	t.Fatalf("export %q not found in %v", name, desc.Exports)
	return ExportRecord{}
}

func TestPythonParse(t *testing.T) {
	desc := newPythonParser().Parse(context.Background(), []byte(pythonSample), "pkg/client.py")

	if desc.Degraded {
		t.Fatal("well-formed source should not degrade")
	}
	if desc.Path != "pkg/client.py" {
		t.Errorf("path = %q", desc.Path)
	}

	wantImports := []string{"os", "pathlib", "sys"}
	if !reflect.DeepEqual(desc.Imports, wantImports) {
		t.Errorf("imports = %v, expected %v", desc.Imports, wantImports)
	}

	// MAX_RETRIES, _INTERNAL, fetch, fetch_async, _helper, Client.
	if len(desc.Exports) != 6 {
		t.Fatalf("expected 6 exports, got %d: %v", len(desc.Exports), desc.Exports)
	}

	fetch := exportNamed(t, desc, "fetch")
	if fetch.Kind != KindFunction {
		t.Errorf("fetch kind = %s", fetch.Kind)
	}
	if fetch.Signature != "(url: str, timeout: int = 30) -> bytes" {
		t.Errorf("fetch signature = %q", fetch.Signature)
	}
	if fetch.Docstring != "Fetch a URL." {
		t.Errorf("fetch docstring = %q, expected first line only", fetch.Docstring)
	}
	if fetch.IsAsync || !fetch.IsExported {
		t.Errorf("fetch flags async=%v exported=%v", fetch.IsAsync, fetch.IsExported)
	}

	if async := exportNamed(t, desc, "fetch_async"); !async.IsAsync {
		t.Error("fetch_async should be marked async")
	}

	if helper := exportNamed(t, desc, "_helper"); helper.IsExported {
		t.Error("underscore-prefixed function should not be exported")
	}

	client := exportNamed(t, desc, "Client")
	if client.Kind != KindClass {
		t.Errorf("Client kind = %s", client.Kind)
	}
	if client.Signature != "(BaseClient)" {
		t.Errorf("Client signature = %q", client.Signature)
	}
	if client.Docstring != "HTTP client." {
		t.Errorf("Client docstring = %q", client.Docstring)
	}

	retries := exportNamed(t, desc, "MAX_RETRIES")
	if retries.Kind != KindConstant || !retries.IsExported {
		t.Errorf("MAX_RETRIES = %+v", retries)
	}

	internal := exportNamed(t, desc, "_INTERNAL")
	if internal.IsExported {
		t.Error("_INTERNAL should not be exported")
	}
	if internal.Signature != ": int" {
		t.Errorf("_INTERNAL signature = %q", internal.Signature)
	}

	if desc.ComplexityTier != TierMedium {
		t.Errorf("tier = %s, expected medium for 6 exports", desc.ComplexityTier)
	}
}

func TestPythonParseDecorated(t *testing.T) {
	source := "@lru_cache\ndef cached():\n    pass\n"
	desc := newPythonParser().Parse(context.Background(), []byte(source), "a.py")

	if len(desc.Exports) != 1 || desc.Exports[0].Name != "cached" {
		t.Errorf("decorated definition not unwrapped: %v", desc.Exports)
	}
}

func TestPythonParseSkipsNestedDefinitions(t *testing.T) {
	source := "def outer():\n    def inner():\n        pass\n    return inner\n"
	desc := newPythonParser().Parse(context.Background(), []byte(source), "a.py")

	if len(desc.Exports) != 1 || desc.Exports[0].Name != "outer" {
		t.Errorf("expected only top-level outer, got %v", desc.Exports)
	}
}

func TestPythonParseDeterministic(t *testing.T) {
	parser := newPythonParser()
	first := parser.Parse(context.Background(), []byte(pythonSample), "a.py")
	second := parser.Parse(context.Background(), []byte(pythonSample), "a.py")

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated parses of identical source must be identical")
	}
}

func TestPythonParseEmptySource(t *testing.T) {
	desc := newPythonParser().Parse(context.Background(), []byte(""), "empty.py")

	if desc.Degraded {
		t.Error("empty source is valid, not degraded")
	}
	if len(desc.Exports) != 0 || len(desc.Imports) != 0 {
		t.Errorf("expected empty descriptor, got %+v", desc)
	}
	if desc.ComplexityTier != TierLow {
		t.Errorf("tier = %s", desc.ComplexityTier)
	}
}
