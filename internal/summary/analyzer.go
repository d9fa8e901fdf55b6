package summary

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"repolens/internal/config"
	"repolens/internal/configdetect"
	"repolens/internal/errors"
	"repolens/internal/filetree"
	"repolens/internal/history"
	"repolens/internal/lang"
	"repolens/internal/paths"
	"repolens/internal/scan"
)

// Options controls one Analyze call.
type Options struct {
	// OnlyFiles restricts scanning and parsing to the given root-relative
	// paths (incremental mode). History, config detection, and the file
	// tree are still computed over the full tree.
	OnlyFiles []string

	// BaselineRevision, when set, populates RevisionInfo.ChangedSince with
	// the source files differing between that revision and the working tree.
	BaselineRevision string
}

// Analyzer sequences the pipeline: scan, parse, history, config, tree,
// merge. It holds no state across calls.
type Analyzer struct {
	cfg      *config.Config
	logger   *slog.Logger
	scanner  *scan.Scanner
	registry *lang.Registry
	detector *configdetect.Detector
}

// NewAnalyzer wires an analyzer from configuration. The parser registry is
// owned here and passed down explicitly; there is no process-wide cache.
func NewAnalyzer(cfg *config.Config, logger *slog.Logger) *Analyzer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	policy := lang.TierPolicy{LowMax: cfg.Tiers.LowMax, MediumMax: cfg.Tiers.MediumMax}
	limits := lang.Limits{MaxDepth: cfg.Parse.MaxDepth, MaxErrorNodes: cfg.Parse.MaxErrorNodes}

	return &Analyzer{
		cfg:      cfg,
		logger:   logger,
		scanner:  scan.NewScanner(cfg, logger),
		registry: lang.NewRegistry(policy, limits, logger),
		detector: configdetect.NewDetector(logger),
	}
}

// Analyze runs the pipeline over root and returns the merged summary.
// The only hard failure is an unusable root; everything below degrades
// per component and is logged instead.
func (a *Analyzer) Analyze(ctx context.Context, root string, opts Options) (*RepoSummary, error) {
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		return nil, errors.New(errors.RootNotFound, "analysis root is not a readable directory", err).
			WithDetails(map[string]interface{}{"root": root})
	}

	start := time.Now()

	allFiles, err := a.scanner.Scan(root)
	if err != nil {
		return nil, errors.New(errors.InternalError, "scan failed", err)
	}
	scan.SortRecords(allFiles)

	files := allFiles
	if len(opts.OnlyFiles) > 0 {
		files = restrict(allFiles, opts.OnlyFiles)
	}

	modules := a.parseAll(ctx, root, files)

	collector := history.NewCollector(root, a.cfg.History, a.logger)
	revision := collector.Collect(ctx, opts.BaselineRevision)

	configInfo := a.detector.Detect(root)

	// The tree always covers the full scan, also in incremental mode;
	// it is cheap next to parsing and keeps display output stable.
	tree := filetree.Build(allFiles)
	if leaves := filetree.CountLeaves(tree); leaves != len(allFiles) {
		a.logger.Warn("file tree leaf count mismatch", "leaves", leaves, "files", len(allFiles))
	}

	summary := &RepoSummary{
		AnalysisID:       uuid.NewString(),
		AnalyzedAt:       time.Now().UTC().Format(time.RFC3339),
		RootPath:         root,
		LanguagesPresent: languagesOf(files),
		Files:            files,
		Modules:          modules,
		ConfigInfo:       configInfo,
		RevisionInfo:     revision,
		FileTree:         tree,
	}

	a.logger.Info("analysis complete",
		"files", len(summary.Files),
		"modules", len(summary.Modules),
		"incremental", len(opts.OnlyFiles) > 0,
		"duration", time.Since(start))

	return summary, nil
}

// parseAll runs the grammar parsers over a bounded worker pool. Results
// land in per-index slots so worker completion order never leaks into the
// output; the final list follows the sorted file order.
func (a *Analyzer) parseAll(ctx context.Context, root string, files []scan.FileRecord) []lang.ModuleDescriptor {
	slots := make([]*lang.ModuleDescriptor, len(files))

	g, gctx := errgroup.WithContext(ctx)
	workers := a.cfg.Parse.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for i := range files {
		file := files[i]
		parser, ok := a.registry.ForPath(file.Path)
		if !ok {
			continue
		}
		if a.cfg.Scan.MaxFileSizeBytes > 0 && file.SizeBytes > a.cfg.Scan.MaxFileSizeBytes {
			a.logger.Warn("file exceeds parse size cap, degrading", "path", file.Path, "size", file.SizeBytes)
			slots[i] = degradedDescriptor(file)
			continue
		}

		idx := i
		g.Go(func() error {
			source, err := os.ReadFile(paths.Join(root, file.Path))
			if err != nil {
				// Read failure after scan: treat like a scan error and
				// drop the module; the file record stays.
				a.logger.Warn("read failed, skipping module", "path", file.Path, "error", err.Error())
				return nil
			}
			slots[idx] = parser.Parse(gctx, source, file.Path)
			return nil
		})
	}

	// Workers only ever return nil; Wait is for completion.
	_ = g.Wait()

	modules := make([]lang.ModuleDescriptor, 0, len(files))
	for _, m := range slots {
		if m != nil {
			modules = append(modules, *m)
		}
	}
	return modules
}

// degradedDescriptor builds the "present but unparsed" descriptor for a
// file the pipeline refuses to parse.
func degradedDescriptor(file scan.FileRecord) *lang.ModuleDescriptor {
	return &lang.ModuleDescriptor{
		Path:           file.Path,
		Language:       file.Language,
		Exports:        []lang.ExportRecord{},
		Imports:        []string{},
		ComplexityTier: lang.TierLow,
		Degraded:       true,
	}
}

// restrict filters sorted records to the requested subset.
func restrict(records []scan.FileRecord, only []string) []scan.FileRecord {
	want := make(map[string]bool, len(only))
	for _, p := range only {
		want[paths.Normalize(p)] = true
	}
	filtered := make([]scan.FileRecord, 0, len(only))
	for _, r := range records {
		if want[r.Path] {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// languagesOf returns the sorted distinct source languages present.
func languagesOf(files []scan.FileRecord) []string {
	seen := map[string]bool{}
	var langs []string
	for _, f := range files {
		if !scan.IsSourceLanguage(f.Language) {
			continue
		}
		if !seen[string(f.Language)] {
			seen[string(f.Language)] = true
			langs = append(langs, string(f.Language))
		}
	}
	sort.Strings(langs)
	if langs == nil {
		langs = []string{}
	}
	return langs
}
