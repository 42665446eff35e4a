// Package urls finds profile links in resume text and classifies them.
package urls

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-intake/internal/types"
)

// urlPattern matches http(s) and bare www. tokens up to whitespace, quotes or angle brackets.
var urlPattern = regexp.MustCompile(`(?i)(?:https?://|www\.)[^\s"'<>]+`)

// Slot names a single-valued field of types.ExtractedURLs.
type Slot string

const (
	SlotLinkedIn  Slot = "linkedin"
	SlotGitHub    Slot = "github"
	SlotTwitter   Slot = "twitter"
	SlotPortfolio Slot = "portfolio"
)

// Rule assigns candidates matching Match to Slot.
type Rule struct {
	Slot  Slot
	Match func(string) bool
}

var (
	linkedInPattern = regexp.MustCompile(`(?i)linkedin\.com/(?:in|pub|company)/[^/?#\s]+`)
	gitHubPattern   = regexp.MustCompile(`(?i)(?:^|[/.])github\.com/[^/?#\s]+`)
	twitterPattern  = regexp.MustCompile(`(?i)(?:^|[/.])(?:twitter|x)\.com/[^/?#\s]+`)
)

// Rules is the classification precedence, evaluated top to bottom. A candidate
// belongs to the first rule it matches; if that slot is taken it is treated as
// unclassified.
var Rules = []Rule{
	{Slot: SlotLinkedIn, Match: IsLinkedIn},
	{Slot: SlotGitHub, Match: IsGitHub},
	{Slot: SlotTwitter, Match: IsTwitter},
	{Slot: SlotPortfolio, Match: IsPortfolio},
}

// portfolioKeywords mark personal sites. Matched case-insensitively as substrings.
var portfolioKeywords = []string{
	"portfolio",
	"about",
	"dev",
	"design",
	"blog",
	"projects",
	"github.io",
	"gitlab.io",
	"behance",
	"dribbble",
	"netlify.app",
	"vercel.app",
	"personal",
}

// IsLinkedIn reports whether u is a LinkedIn profile, public or company page.
func IsLinkedIn(u string) bool { return linkedInPattern.MatchString(u) }

// IsGitHub reports whether u points into github.com.
func IsGitHub(u string) bool { return gitHubPattern.MatchString(u) }

// IsTwitter reports whether u points into twitter.com or x.com.
func IsTwitter(u string) bool { return twitterPattern.MatchString(u) }

// IsPortfolio reports whether u looks like a personal site. Links carrying an
// '@' are handles or addresses, never portfolios.
func IsPortfolio(u string) bool {
	if strings.Contains(u, "@") {
		return false
	}
	lower := strings.ToLower(u)
	for _, kw := range portfolioKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Extract finds URLs in text, merges them with annotationLinks and classifies
// them. It performs no network access and is idempotent.
func Extract(text string, annotationLinks []string) types.ExtractedURLs {
	candidates := Candidates(text, annotationLinks)

	slots := make(map[Slot]string, len(Rules))
	other := []string{}
	for _, c := range candidates {
		if slot, ok := classify(c); ok {
			if _, taken := slots[slot]; !taken {
				slots[slot] = c
				continue
			}
		}
		if !strings.Contains(c, "@") {
			other = append(other, c)
		}
	}
	sort.Strings(other)

	return types.ExtractedURLs{
		LinkedinURL:  slots[SlotLinkedIn],
		GithubURL:    slots[SlotGitHub],
		TwitterURL:   slots[SlotTwitter],
		PortfolioURL: slots[SlotPortfolio],
		OtherLinks:   other,
	}
}

// classify returns the slot of the first rule matching u.
func classify(u string) (Slot, bool) {
	for _, rule := range Rules {
		if rule.Match(u) {
			return rule.Slot, true
		}
	}
	return "", false
}

// Candidates returns the cleaned, deduplicated URLs found in text followed by
// annotationLinks, in discovery order.
func Candidates(text string, annotationLinks []string) []string {
	matches := urlPattern.FindAllString(text, -1)

	seen := make(map[string]bool, len(matches)+len(annotationLinks))
	out := make([]string, 0, len(matches)+len(annotationLinks))
	add := func(raw string) {
		u := clean(raw)
		if !hasHost(u) || seen[u] {
			return
		}
		seen[u] = true
		out = append(out, u)
	}

	for _, m := range matches {
		add(strings.TrimRight(m, ".,;:)"))
	}
	for _, l := range annotationLinks {
		add(l)
	}
	return out
}

func clean(u string) string {
	return strings.TrimRight(strings.TrimSpace(u), "/")
}

// hasHost rejects bare schemes left over after trimming.
func hasHost(u string) bool {
	lower := strings.ToLower(u)
	for _, prefix := range []string{"https://", "http://", "www."} {
		if strings.HasPrefix(lower, prefix) {
			return len(lower) > len(prefix)
		}
	}
	return u != ""
}
