// Package summary assembles scan, parse, history, and config results into
// one immutable RepoSummary document.
package summary

import (
	"repolens/internal/configdetect"
	"repolens/internal/filetree"
	"repolens/internal/history"
	"repolens/internal/lang"
	"repolens/internal/scan"
)

// RepoSummary is the root aggregate produced by one Analyze call.
// It is constructed once, never mutated afterwards, and consumed
// read-only by every downstream component. The wire shape of the
// serialized JSON document matches this struct exactly.
type RepoSummary struct {
	AnalysisID       string                  `json:"analysisId"`
	AnalyzedAt       string                  `json:"analyzedAt"` // ISO 8601, staleness checks
	RootPath         string                  `json:"rootPath"`
	LanguagesPresent []string                `json:"languagesPresent"`
	Files            []scan.FileRecord       `json:"files"`
	Modules          []lang.ModuleDescriptor `json:"modules"`
	ConfigInfo       configdetect.ConfigInfo `json:"configInfo"`
	RevisionInfo     *history.RevisionInfo   `json:"revisionInfo,omitempty"`
	FileTree         *filetree.Node          `json:"fileTree,omitempty"`
}

// ModuleByPath returns the descriptor for a path, if present.
func (s *RepoSummary) ModuleByPath(path string) (*lang.ModuleDescriptor, bool) {
	for i := range s.Modules {
		if s.Modules[i].Path == path {
			return &s.Modules[i], true
		}
	}
	return nil, false
}

// FileByPath returns the file record for a path, if present.
func (s *RepoSummary) FileByPath(path string) (*scan.FileRecord, bool) {
	for i := range s.Files {
		if s.Files[i].Path == path {
			return &s.Files[i], true
		}
	}
	return nil, false
}
