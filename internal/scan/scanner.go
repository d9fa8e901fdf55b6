package scan

import (
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"repolens/internal/config"
	"repolens/internal/paths"
)

// auxiliary (non-source) extensions that still yield FileRecords, so that
// docs and manifests show up in the summary with language "other".
var auxExtensions = map[string]bool{
	".md":   true,
	".rst":  true,
	".adoc": true,
	".txt":  true,
	".json": true,
	".toml": true,
	".yaml": true,
	".yml":  true,
	".ini":  true,
	".cfg":  true,
}

// Scanner walks a directory tree and produces classified FileRecords.
type Scanner struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewScanner creates a scanner with the given configuration.
func NewScanner(cfg *config.Config, logger *slog.Logger) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Scanner{cfg: cfg, logger: logger}
}

// Scan walks root and returns one FileRecord per recognized file.
// Output is deduplicated but unordered; callers sort if order matters.
// A stat failure on an individual file drops that file, never the scan.
func (s *Scanner) Scan(root string) ([]FileRecord, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var records []FileRecord

	walkErr := filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr // Skip inaccessible entries, continue walking
		}

		if info.IsDir() {
			base := info.Name()
			if p != root && (skipDirs[base] || strings.HasPrefix(base, ".")) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := paths.Rel(root, p)
		if relErr != nil || !paths.IsWithin(rel) {
			return nil
		}

		if !s.recognized(rel) {
			return nil
		}
		if seen[rel] {
			return nil
		}

		// Re-stat through the walk info; a lost race here (file deleted
		// mid-walk) drops the file silently per the scan error policy.
		fi, statErr := os.Stat(p)
		if statErr != nil {
			s.logger.Debug("stat failed, dropping file", "path", rel, "error", statErr.Error())
			return nil
		}

		seen[rel] = true
		records = append(records, FileRecord{
			Path:         rel,
			Language:     LanguageForPath(rel),
			Role:         RoleForPath(rel),
			SizeBytes:    fi.Size(),
			LastModified: fi.ModTime().UTC().Format(time.RFC3339),
		})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return records, nil
}

// recognized applies extension recognition, minified-artifact exclusion,
// and the configured include/exclude globs.
func (s *Scanner) recognized(rel string) bool {
	base := strings.ToLower(path.Base(rel))
	if isMinified(base) {
		return false
	}

	if !RecognizedExtension(rel) {
		ext := strings.ToLower(path.Ext(rel))
		name := strings.TrimSuffix(base, ext)
		wellKnown := name == "readme" || name == "license" || name == "makefile" || name == "dockerfile"
		if !auxExtensions[ext] && !wellKnown {
			return false
		}
	}

	if matchesAny(s.cfg.Scan.Exclude, rel) {
		return false
	}
	if len(s.cfg.Scan.Include) > 0 && !matchesAny(s.cfg.Scan.Include, rel) {
		return false
	}
	return true
}

// matchesAny checks a path against glob patterns. Patterns match either the
// whole relative path, its basename, or a leading directory.
func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		normalized := paths.Normalize(pattern)
		if ok, _ := path.Match(normalized, rel); ok {
			return true
		}
		if ok, _ := path.Match(normalized, path.Base(rel)); ok {
			return true
		}
		dir := strings.TrimSuffix(normalized, "/") + "/"
		if strings.HasPrefix(rel, dir) {
			return true
		}
	}
	return false
}

// SortRecords orders records by path, the canonical summary order.
func SortRecords(records []FileRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Path < records[j].Path
	})
}
