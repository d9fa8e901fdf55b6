// Package scan discovers and classifies the files of a source tree.
package scan

// Language identifies the language a file is written in.
type Language string

const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangOther      Language = "other"
)

// Role classifies what a file is for.
type Role string

const (
	RoleSource Role = "source"
	RoleTest   Role = "test"
	RoleConfig Role = "config"
	RoleDocs   Role = "docs"
)

// FileRecord describes one discovered file.
// Paths are root-relative with forward slashes and unique within a scan.
type FileRecord struct {
	Path         string   `json:"path"`
	Language     Language `json:"language"`
	Role         Role     `json:"role"`
	SizeBytes    int64    `json:"sizeBytes"`
	LastModified string   `json:"lastModified"`
}

// IsSourceLanguage reports whether the language has a grammar parser.
func IsSourceLanguage(lang Language) bool {
	return lang == LangPython || lang == LangJavaScript || lang == LangTypeScript
}
