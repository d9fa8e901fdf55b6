// Package history mines the git backend for commit and churn signals.
// Absence of version control is absence of data, never an error.
package history

// CommitRecord is one commit of the recent-history window.
type CommitRecord struct {
	Hash         string `json:"hash"`
	ShortHash    string `json:"shortHash"`
	Author       string `json:"author"`
	Date         string `json:"date"` // ISO 8601
	Subject      string `json:"subject"`
	FilesChanged int    `json:"filesChanged"`
}

// FileHistoryRecord ranks one source file by change frequency.
// Contributors holds at most the configured number of author names.
type FileHistoryRecord struct {
	Path         string   `json:"path"`
	CommitCount  int      `json:"commitCount"`
	LastModified string   `json:"lastModified"`
	Contributors []string `json:"contributors"`
}

// RevisionInfo is the version-control section of a summary. It is absent
// entirely when no backend is detected; individual fields degrade to empty
// when a single query fails.
type RevisionInfo struct {
	CurrentCommit  string              `json:"currentCommit"`
	Branch         string              `json:"branch"`
	BaselineCommit string              `json:"baselineCommit,omitempty"`
	ChangedSince   []string            `json:"changedSince"`
	RecentCommits  []CommitRecord      `json:"recentCommits"`
	FileHistory    []FileHistoryRecord `json:"fileHistory"`
}
