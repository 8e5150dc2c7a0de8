package transforming

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	NotFound    = "Not Found"
	Unknown     = "Unknown"
	NoPlacement = "No Placement"
)

// RuleInput is what the heuristic rules look at: the naming hierarchy of an ad
// and the start of its campaign (zero when the platform did not report one).
type RuleInput struct {
	AdName       string
	AdSetName    string
	CampaignName string
	Start        time.Time
}

func (in RuleInput) year() (int, bool) {
	if in.Start.IsZero() {
		return 0, false
	}
	return in.Start.Year(), true
}

// legacy reports the 2021 JBL campaign family, which kept its taxonomy spread
// over all three names instead of the ad set.
func (in RuleInput) legacy() bool {
	year, ok := in.year()
	return ok && year == 2021 && strings.Contains(strings.ToLower(in.CampaignName), "jbl")
}

func (in RuleInput) names() []string {
	return []string{in.AdName, in.AdSetName, in.CampaignName}
}

// Rule is one predicate/derivation pair of a derived field.
type Rule struct {
	Name   string
	When   func(RuleInput) bool
	Derive func(RuleInput) string
}

// RuleSet evaluates its rules in order; the first rule whose predicate holds
// decides the value.
type RuleSet struct {
	Field    string
	Rules    []Rule
	Fallback string
}

func (s RuleSet) Apply(in RuleInput) string {
	for _, rule := range s.Rules {
		if rule.When == nil || rule.When(in) {
			return rule.Derive(in)
		}
	}
	return s.Fallback
}

func always(RuleInput) bool { return true }

func isLegacy(in RuleInput) bool { return in.legacy() }

// keywordRule maps any of its keywords to Label.
type keywordRule struct {
	Label    string
	Keywords []string
}

func matchContains(table []keywordRule, text string) (string, bool) {
	for _, rule := range table {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, keyword) {
				return rule.Label, true
			}
		}
	}
	return "", false
}

func matchPrefix(table []keywordRule, text string) (string, bool) {
	for _, rule := range table {
		for _, keyword := range rule.Keywords {
			if strings.HasPrefix(text, keyword) {
				return rule.Label, true
			}
		}
	}
	return "", false
}

var objectiveKeywords = []keywordRule{
	{Label: "Awareness", Keywords: []string{"awareness", "reach"}},
	{Label: "Traffic", Keywords: []string{"traffic"}},
	{Label: "Engagement", Keywords: []string{"engagement"}},
	{Label: "Profile Visit", Keywords: []string{"profile visit"}},
	{Label: "Lead", Keywords: []string{"lead"}},
	{Label: "Conversion", Keywords: []string{"conversion"}},
	{Label: "Search", Keywords: []string{"search"}},
	{Label: "Community Interaction", Keywords: []string{"community interaction"}},
	{Label: "App", Keywords: []string{"app"}},
	{Label: "Landing Page View", Keywords: []string{"landing page view", "lpv", "high spending power"}},
	{Label: "Video Views", Keywords: []string{"video views", "video view", "view", "views"}},
}

var audienceKeywords = []keywordRule{
	{Label: "Interest/Behavior", Keywords: []string{"interest", "behavior"}},
	{Label: "Retargeting", Keywords: []string{"retargeting"}},
	{Label: "Lookalike", Keywords: []string{"lookalike"}},
	{Label: "Statsocial", Keywords: []string{"statsocial"}},
	{Label: "Broad", Keywords: []string{"broad"}},
}

// legacyAudiences are reported verbatim by the legacy family.
var legacyAudiences = []string{"interest", "retargeting", "lookalike", "statsocial", "broad"}

// contentKeywords are stripped from two-part content names, longest first so
// "video views" wins over "view".
var contentKeywords = []string{
	"community interaction", "high spending power", "landing page view", "interest/behavior",
	"profile visit", "video views", "video view", "engagement", "conversion", "awareness",
	"traffic", "search", "video", "views", "reach", "lead", "view", "app", "lpv",
}

var (
	placementWords   = []string{"feed", "stories", "story"}
	destinationNoise = []string{"interest", "behavior", "retargeting", "lookalike", "statsocial"}

	roundPattern          = regexp.MustCompile(`(?i)V(\d+)`)
	trailingHandlePattern = regexp.MustCompile(`@(\S+?)$`)
	handlePattern         = regexp.MustCompile(`@(\S+)`)
	urnPattern            = regexp.MustCompile(`urn:li:\S+`)

	titleCaser = cases.Title(language.Und)
)

// ObjectiveFromName classifies a campaign (or ad set) name by its objective
// keyword: leading keywords win over keywords found anywhere. Without a
// keyword the first dash segment is used, title-cased.
func ObjectiveFromName(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))

	if label, ok := matchPrefix(objectiveKeywords, lower); ok {
		return label
	}
	if label, ok := matchContains(objectiveKeywords, lower); ok {
		return label
	}

	if first := strings.TrimSpace(strings.Split(lower, "-")[0]); first != "" {
		return titleCaser.String(first)
	}
	return NotFound
}

var objectiveFromCampaign = RuleSet{
	Field: "Objective",
	Rules: []Rule{
		{Name: "legacy", When: isLegacy, Derive: func(RuleInput) string { return "Traffic" }},
		{Name: "keyword", When: always, Derive: func(in RuleInput) string {
			if label, ok := matchContains(objectiveKeywords, strings.ToLower(in.CampaignName)); ok {
				return label
			}
			return Unknown
		}},
	},
	Fallback: Unknown,
}

// ObjectiveFromCampaign is the objective used by the paid-social paths.
func ObjectiveFromCampaign(in RuleInput) string {
	return objectiveFromCampaign.Apply(in)
}

var audience = RuleSet{
	Field: "Audience",
	Rules: []Rule{
		{Name: "legacy", When: isLegacy, Derive: func(in RuleInput) string {
			for _, keyword := range legacyAudiences {
				for _, name := range in.names() {
					if strings.Contains(strings.ToLower(name), keyword) {
						return keyword
					}
				}
			}
			return NotFound
		}},
		{Name: "ad set", When: always, Derive: func(in RuleInput) string {
			if label, ok := matchContains(audienceKeywords, strings.ToLower(in.AdSetName)); ok {
				return label
			}
			return Unknown
		}},
	},
	Fallback: Unknown,
}

func Audience(in RuleInput) string {
	return audience.Apply(in)
}

// AudienceSegment returns the second dash part of a name ("Traffic - Gen Z - V1"
// gives "Gen Z"), or the whole name when it has no dash.
func AudienceSegment(name string) string {
	parts := splitTrim(name, "-")
	if len(parts) > 1 {
		return parts[1]
	}
	return parts[0]
}

// ContentName extracts the content part of "Objective - Audience - Content"
// names. Two-part names drop the objective keyword instead.
func ContentName(name string) string {
	lower := strings.ToLower(name)
	parts := splitTrim(lower, " - ")

	switch {
	case len(parts) == 2:
		for _, keyword := range contentKeywords {
			if strings.Contains(lower, keyword) {
				stripped := strings.TrimSpace(strings.ReplaceAll(lower, keyword, ""))
				return strings.TrimSpace(strings.Trim(stripped, "-"))
			}
		}
		return parts[1]
	case len(parts) > 2:
		return parts[len(parts)-1]
	}
	return parts[0]
}

var destination = RuleSet{
	Field: "Destination",
	Rules: []Rule{
		{
			Name: "jbl copy",
			When: func(in RuleInput) bool {
				year, ok := in.year()
				return ok && year == 2022 &&
					strings.Contains(in.AdName, " - Copy") &&
					strings.Contains(strings.ToLower(in.CampaignName), "jbl")
			},
			Derive: func(RuleInput) string { return "JBL.com" },
		},
		{
			Name: "apothic",
			When: func(in RuleInput) bool {
				return strings.Contains(strings.ToLower(in.CampaignName), "apothic")
			},
			Derive: func(in RuleInput) string {
				return orNotFound(lastSegment(in.AdName))
			},
		},
		{Name: "ad set", When: always, Derive: func(in RuleInput) string {
			segment := strings.ToLower(lastSegment(in.AdSetName))
			if segment == "" || strings.ContainsAny(segment, "_@") || segment == "post" || contains(placementWords, segment) {
				return NotFound
			}
			for _, noise := range destinationNoise {
				if strings.Contains(segment, noise) {
					return NotFound
				}
			}
			return segment
		}},
	},
	Fallback: NotFound,
}

func Destination(in RuleInput) string {
	return destination.Apply(in)
}

var placement = RuleSet{
	Field: "Placement",
	Rules: []Rule{
		{Name: "legacy", When: isLegacy, Derive: func(in RuleInput) string {
			return formatPlacements(foundPlacements(in.names()...), NotFound)
		}},
		{Name: "ad set", When: always, Derive: func(in RuleInput) string {
			return formatPlacements(foundPlacements(in.AdSetName), NoPlacement)
		}},
	},
	Fallback: NoPlacement,
}

func Placement(in RuleInput) string {
	return placement.Apply(in)
}

func foundPlacements(names ...string) []string {
	var found []string
	for _, word := range placementWords {
		for _, name := range names {
			if strings.Contains(strings.ToLower(name), word) {
				found = append(found, word)
				break
			}
		}
	}
	if contains(found, "stories") {
		return []string{"story"}
	}
	return found
}

func formatPlacements(found []string, empty string) string {
	if len(found) == 0 {
		return empty
	}
	return "IG " + strings.Join(found, ", ")
}

var round = RuleSet{
	Field: "Round",
	Rules: []Rule{
		{Name: "legacy", When: isLegacy, Derive: func(in RuleInput) string {
			for _, name := range in.names() {
				if r, ok := roundOf(name); ok {
					return r
				}
			}
			return NotFound
		}},
		{Name: "ad", When: always, Derive: func(in RuleInput) string {
			if r, ok := roundOf(in.AdName); ok {
				return r
			}
			return NotFound
		}},
	},
	Fallback: NotFound,
}

func Round(in RuleInput) string {
	return round.Apply(in)
}

func roundOf(name string) (string, bool) {
	match := roundPattern.FindStringSubmatch(name)
	if match == nil {
		return "", false
	}
	return "Round " + match[1], true
}

var influencer = RuleSet{
	Field: "Influencer",
	Rules: []Rule{
		{
			Name: "legacy ad set handle",
			When: func(in RuleInput) bool {
				year, ok := in.year()
				if !ok || year >= 2022 || !strings.Contains(strings.ToLower(in.AdSetName), "jbl") {
					return false
				}
				return trailingHandlePattern.MatchString(in.AdSetName)
			},
			Derive: func(in RuleInput) string {
				return trailingHandlePattern.FindStringSubmatch(in.AdSetName)[1]
			},
		},
		{Name: "ad handle", When: always, Derive: func(in RuleInput) string {
			if match := handlePattern.FindStringSubmatch(in.AdName); match != nil {
				return match[1]
			}
			return NotFound
		}},
	},
	Fallback: NotFound,
}

func Influencer(in RuleInput) string {
	return influencer.Apply(in)
}

// CleanAdName repairs the mojibake apostrophe and drops LinkedIn URNs that
// stand in for unnamed creatives.
func CleanAdName(name string) string {
	name = strings.ReplaceAll(name, "€™", "'")
	if strings.Contains(name, "urn:li:") {
		name = strings.TrimSpace(urnPattern.ReplaceAllString(name, ""))
	}
	return name
}

func lastSegment(name string) string {
	parts := strings.Split(name, "-")
	return strings.TrimSpace(parts[len(parts)-1])
}

func splitTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func orNotFound(s string) string {
	if s == "" {
		return NotFound
	}
	return s
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
