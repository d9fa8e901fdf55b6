package history

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"time"

	"repolens/internal/config"
	"repolens/internal/paths"
	"repolens/internal/scan"
)

const (
	// maxOutputBytes caps the stdout of any single git invocation.
	maxOutputBytes = 10 << 20

	// churnWindow bounds how many commits feed the hot-file ranking.
	churnWindow = 500
)

// Collector queries git through read-only argv-array subprocess calls.
// Calls are serialized; every call carries a timeout and an output cap.
type Collector struct {
	repoRoot string
	cfg      config.HistoryConfig
	logger   *slog.Logger
}

// NewCollector creates a history collector for the given root.
func NewCollector(repoRoot string, cfg config.HistoryConfig, logger *slog.Logger) *Collector {
	if cfg.TimeoutMs <= 0 {
		cfg.TimeoutMs = 5000
	}
	return &Collector{repoRoot: repoRoot, cfg: cfg, logger: logger}
}

// IsRepository reports whether the root is under git version control.
func (c *Collector) IsRepository(ctx context.Context) bool {
	_, err := c.git(ctx, "rev-parse", "--git-dir")
	return err == nil
}

// Collect gathers the full RevisionInfo. Returns nil (absence, not an
// error) when the root is not a git repository. Individual query failures
// degrade to empty fields.
func (c *Collector) Collect(ctx context.Context, baseline string) *RevisionInfo {
	if !c.IsRepository(ctx) {
		return nil
	}

	info := &RevisionInfo{
		ChangedSince:  []string{},
		RecentCommits: []CommitRecord{},
		FileHistory:   []FileHistoryRecord{},
	}

	if out, err := c.git(ctx, "rev-parse", "HEAD"); err == nil {
		info.CurrentCommit = strings.TrimSpace(out)
	} else {
		c.logger.Warn("rev-parse HEAD failed", "error", err.Error())
	}

	if out, err := c.git(ctx, "rev-parse", "--abbrev-ref", "HEAD"); err == nil {
		info.Branch = strings.TrimSpace(out)
	} else {
		c.logger.Warn("branch lookup failed", "error", err.Error())
	}

	info.RecentCommits = c.recentCommits(ctx)
	info.FileHistory = c.fileHistory(ctx)

	if baseline != "" {
		info.BaselineCommit = baseline
		info.ChangedSince = c.ChangedSince(ctx, baseline)
	}

	return info
}

// recentCommits returns the bounded window of recent commits with
// files-changed counts.
func (c *Collector) recentCommits(ctx context.Context) []CommitRecord {
	limit := c.cfg.RecentCommits
	if limit <= 0 {
		limit = 20
	}

	// One record per commit: header line then a shortstat line.
	out, err := c.git(ctx, "log",
		"--format=%H|%h|%an|%aI|%s",
		"--shortstat",
		"-n"+strconv.Itoa(limit))
	if err != nil {
		c.logger.Warn("recent commit log failed", "error", err.Error())
		return []CommitRecord{}
	}

	return parseLogWithStats(out)
}

// parseLogWithStats parses `git log --format=%H|%h|%an|%aI|%s --shortstat`.
func parseLogWithStats(out string) []CommitRecord {
	commits := []CommitRecord{}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if parts := strings.SplitN(line, "|", 5); len(parts) == 5 && len(parts[0]) == 40 {
			commits = append(commits, CommitRecord{
				Hash:      parts[0],
				ShortHash: parts[1],
				Author:    parts[2],
				Date:      parts[3],
				Subject:   parts[4],
			})
			continue
		}
		// Shortstat: " 3 files changed, 10 insertions(+), 2 deletions(-)"
		if strings.Contains(line, "changed") && len(commits) > 0 {
			fields := strings.Fields(line)
			if n, err := strconv.Atoi(fields[0]); err == nil {
				commits[len(commits)-1].FilesChanged = n
			}
		}
	}
	return commits
}

// fileHistory aggregates per-file churn over a bounded commit window and
// returns the most frequently modified source files.
func (c *Collector) fileHistory(ctx context.Context) []FileHistoryRecord {
	out, err := c.git(ctx, "log",
		"--format=\x01%aI\x02%an",
		"--name-only",
		"-n"+strconv.Itoa(churnWindow))
	if err != nil {
		c.logger.Warn("churn log failed", "error", err.Error())
		return []FileHistoryRecord{}
	}

	limit := c.cfg.HotFiles
	if limit <= 0 {
		limit = 25
	}
	perFile := c.cfg.ContributorsPerFile
	if perFile <= 0 {
		perFile = 5
	}

	return aggregateChurn(out, limit, perFile)
}

// aggregateChurn parses the \x01-delimited churn log into ranked records.
func aggregateChurn(out string, limit, contributorsPerFile int) []FileHistoryRecord {
	type agg struct {
		count        int
		lastModified string
		contributors []string
		seen         map[string]bool
	}
	files := map[string]*agg{}
	var order []string

	var date, author string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(line, "\x01") {
			parts := strings.SplitN(strings.TrimPrefix(line, "\x01"), "\x02", 2)
			date = parts[0]
			if len(parts) == 2 {
				author = parts[1]
			}
			continue
		}
		path := paths.Normalize(strings.TrimSpace(line))
		if path == "" || !scan.RecognizedExtension(path) {
			continue
		}

		a, ok := files[path]
		if !ok {
			a = &agg{seen: map[string]bool{}}
			files[path] = a
			order = append(order, path)
		}
		a.count++
		// Log is newest-first; the first date seen is the last modification.
		if a.lastModified == "" {
			a.lastModified = date
		}
		if author != "" && !a.seen[author] && len(a.contributors) < contributorsPerFile {
			a.seen[author] = true
			a.contributors = append(a.contributors, author)
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if files[order[i]].count != files[order[j]].count {
			return files[order[i]].count > files[order[j]].count
		}
		return order[i] < order[j]
	})

	if len(order) > limit {
		order = order[:limit]
	}

	records := make([]FileHistoryRecord, 0, len(order))
	for _, path := range order {
		a := files[path]
		contributors := a.contributors
		if contributors == nil {
			contributors = []string{}
		}
		records = append(records, FileHistoryRecord{
			Path:         path,
			CommitCount:  a.count,
			LastModified: a.lastModified,
			Contributors: contributors,
		})
	}
	return records
}

// ChangedSince returns the source-file paths that differ between baseline
// and the working tree, including untracked files. Failures degrade to an
// empty list.
func (c *Collector) ChangedSince(ctx context.Context, baseline string) []string {
	changed := []string{}
	seen := map[string]bool{}

	add := func(raw []byte) {
		for _, p := range bytes.Split(raw, []byte{0}) {
			path := paths.Normalize(string(p))
			if path == "" || seen[path] || !scan.RecognizedExtension(path) {
				continue
			}
			seen[path] = true
			changed = append(changed, path)
		}
	}

	if out, err := c.git(ctx, "diff", "--name-only", "-z", baseline); err == nil {
		add([]byte(out))
	} else {
		c.logger.Warn("baseline diff failed", "baseline", baseline, "error", err.Error())
	}

	if out, err := c.git(ctx, "ls-files", "-z", "--others", "--exclude-standard"); err == nil {
		add([]byte(out))
	}

	sort.Strings(changed)
	return changed
}

// git runs one read-only git command with a timeout and a capped output
// buffer. No shell is involved; arguments pass as an argv array.
func (c *Collector) git(ctx context.Context, args ...string) (string, error) {
	timeout := time.Duration(c.cfg.TimeoutMs) * time.Millisecond
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, "git", args...)
	cmd.Dir = c.repoRoot

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", err
	}
	if err := cmd.Start(); err != nil {
		return "", err
	}

	data, readErr := io.ReadAll(io.LimitReader(stdout, maxOutputBytes))
	// Drain anything past the cap so Wait cannot block on a full pipe.
	_, _ = io.Copy(io.Discard, stdout)
	waitErr := cmd.Wait()
	if readErr != nil {
		return "", readErr
	}
	if waitErr != nil {
		return "", waitErr
	}
	return string(data), nil
}
