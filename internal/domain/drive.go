package domain

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

const (
	MimeGoogleSheet = "application/vnd.google-apps.spreadsheet"
	MimeCSV         = "text/csv"
	MimeXLSX        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type DriveFile struct {
	ID       string
	Name     string
	MimeType string
}

// Stem is the file name without extension.
func (f DriveFile) Stem() string {
	return strings.TrimSuffix(f.Name, path.Ext(f.Name))
}

func (f DriveFile) IsSheet() bool {
	return f.MimeType == MimeGoogleSheet
}

type LoadMode string

const (
	LoadAppend       LoadMode = "append"
	LoadReplace      LoadMode = "replace"
	LoadUnionReplace LoadMode = "union_replace"
)

func ParseLoadMode(s string) (LoadMode, error) {
	switch mode := LoadMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case LoadAppend, LoadReplace, LoadUnionReplace:
		return mode, nil
	case "":
		return LoadAppend, nil
	default:
		return "", fmt.Errorf("unknown load mode %q", s)
	}
}

// FileTransform names the preprocessing applied to a routed file.
type FileTransform string

const (
	FileTransformNone          FileTransform = ""
	FileTransformEmplifi       FileTransform = "emplifi"
	FileTransformPublishedDate FileTransform = "published_date"
	FileTransformClientHistory FileTransform = "client_history"
)

// NameMatcher matches a lowercased name. Contains entries match as substrings,
// Tokens entries match whole alphanumeric tokens, Requires entries must all be
// present as substrings. A matcher with no Contains and no Tokens matches any name.
type NameMatcher struct {
	Contains []string `yaml:"contains"`
	Tokens   []string `yaml:"tokens"`
	Requires []string `yaml:"requires"`
}

var tokenSplitter = regexp.MustCompile(`[^a-z0-9]+`)

func (m NameMatcher) Match(name string) bool {
	lower := strings.ToLower(name)

	for _, required := range m.Requires {
		if !strings.Contains(lower, strings.ToLower(required)) {
			return false
		}
	}

	if len(m.Contains) == 0 && len(m.Tokens) == 0 {
		return true
	}

	for _, substring := range m.Contains {
		if strings.Contains(lower, strings.ToLower(substring)) {
			return true
		}
	}

	if len(m.Tokens) > 0 {
		tokens := tokenSplitter.Split(lower, -1)
		for _, wanted := range m.Tokens {
			for _, token := range tokens {
				if token == strings.ToLower(wanted) {
					return true
				}
			}
		}
	}

	return false
}

// FileRoute sends matching drive files to a fixed destination. An empty Table
// means the client fallback: reuse an existing "Historical Data" table or
// create "{db} Historical Data".
type FileRoute struct {
	Name      string        `yaml:"name"`
	Match     NameMatcher   `yaml:"match"`
	Database  string        `yaml:"database"`
	Table     string        `yaml:"table"`
	Mode      LoadMode      `yaml:"mode"`
	Transform FileTransform `yaml:"transform"`
}

// ReservedDatabaseRule short-circuits database name derivation.
type ReservedDatabaseRule struct {
	Match    NameMatcher `yaml:"match"`
	Database string      `yaml:"database"`
}
