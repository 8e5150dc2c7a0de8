package resolving

import (
	"regexp"
	"strings"

	"github.com/vfg2006/paid-media-etl/internal/domain"
)

// DefaultDatabaseName is used when a name yields no usable identifier.
const DefaultDatabaseName = "files"

var (
	suffixPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\s*-\s*praytell\s*$`),
		regexp.MustCompile(`\s*praytell\s*$`),
		regexp.MustCompile(`\s*campus\s*$`),
	}
	parenthetical  = regexp.MustCompile(`\s*\(.*?\)`)
	nonWord        = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)

	agencyDelimiter = regexp.MustCompile(`(?i)\s*[-–—]\s*praytell\s*`)
	nonAlnumRuns    = regexp.MustCompile(`[^a-z0-9]+`)
	exportSuffix    = regexp.MustCompile(`\s*-\s*(export.*|str.*)\s*$`)
)

// DefaultReservedDatabases are the two reserved advertiser stores.
var DefaultReservedDatabases = []domain.ReservedDatabaseRule{
	{Match: domain.NameMatcher{Contains: []string{"g-p"}}, Database: "g_p"},
	{Match: domain.NameMatcher{Tokens: []string{"ao"}, Contains: []string{"angry orchard"}}, Database: "angry_orchard"},
}

// NormalizeAccountName folds an account display name into its advertiser key.
// The pipeline repeats until stable, so the result is always a fixed point.
func NormalizeAccountName(name string) string {
	current := name
	for range 8 {
		next := normalizeOnce(current)
		if next == current {
			return next
		}
		current = next
	}
	return current
}

func normalizeOnce(name string) string {
	name = strings.ToLower(name)
	for _, suffix := range suffixPatterns {
		name = suffix.ReplaceAllString(name, "")
	}
	name = parenthetical.ReplaceAllString(name, "")
	name = nonWord.ReplaceAllString(name, "")
	name = whitespaceRuns.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// Namer derives storage identifiers from advertiser and file names.
type Namer struct {
	reserved []domain.ReservedDatabaseRule
}

// NewNamer uses rules when given, the default reserved stores otherwise.
func NewNamer(rules []domain.ReservedDatabaseRule) *Namer {
	if len(rules) == 0 {
		rules = DefaultReservedDatabases
	}
	return &Namer{reserved: rules}
}

// DatabaseName maps an advertiser name to its database identifier.
func (n *Namer) DatabaseName(name string) string {
	normalized := NormalizeAccountName(name)
	if normalized == "" {
		return DefaultDatabaseName
	}

	for _, rule := range n.reserved {
		if rule.Match.Match(normalized) {
			return rule.Database
		}
	}

	parts := agencyDelimiter.Split(normalized, 2)
	client := strings.TrimSpace(parts[0])
	if client == "" {
		return DefaultDatabaseName
	}

	dbName := strings.Trim(nonAlnumRuns.ReplaceAllString(client, "_"), "_")
	if dbName == "" {
		return DefaultDatabaseName
	}
	return dbName
}

// ClientDatabaseName derives the database of a drop file from its stem,
// ignoring trailing "- export..." and "- str..." annotations.
func (n *Namer) ClientDatabaseName(stem string) string {
	stem = exportSuffix.ReplaceAllString(stem, "")
	stem = strings.TrimSpace(whitespaceRuns.ReplaceAllString(stem, " "))
	return n.DatabaseName(stem)
}

// Slug lowercases and underscores a free-form label, e.g. an industry.
func Slug(label string) string {
	slug := strings.Trim(nonAlnumRuns.ReplaceAllString(strings.ToLower(label), "_"), "_")
	if slug == "" {
		return "unknown"
	}
	return slug
}
