package scoring

import (
	"sort"
	"strings"
	"time"

	"github.com/jonathan/resume-intake/internal/types"
)

// dateLayouts are the experience date formats understood, most specific first.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006/01",
	"01/2006",
	"1/2006",
	"Jan 2006",
	"Jan. 2006",
	"January 2006",
	"2006",
}

// presentWords mark an experience entry that is still ongoing.
var presentWords = map[string]bool{
	"present": true,
	"current": true,
	"now":     true,
	"ongoing": true,
	"today":   true,
}

const hoursPerYear = 24 * 365.25

type span struct {
	start time.Time
	end   time.Time
}

// parseDate reads a resume date. Present-like words resolve to now.
func parseDate(value string, now time.Time) (time.Time, bool) {
	value = strings.Join(strings.Fields(value), " ")
	if value == "" {
		return time.Time{}, false
	}
	if presentWords[strings.ToLower(value)] {
		return now, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CandidateYears totals the years covered by the experience entries. Overlapping
// ranges are counted once, a missing end date means the role is ongoing, and
// entries with unreadable dates are skipped.
func CandidateYears(entries []types.ExperienceEntry, now time.Time) float64 {
	spans := make([]span, 0, len(entries))
	for _, e := range entries {
		start, ok := parseDate(e.StartDate, now)
		if !ok || start.After(now) {
			continue
		}

		end := now
		if strings.TrimSpace(e.EndDate) != "" {
			if end, ok = parseDate(e.EndDate, now); !ok {
				continue
			}
		}
		if end.After(now) {
			end = now
		}
		if !end.After(start) {
			continue
		}
		spans = append(spans, span{start: start, end: end})
	}

	total := time.Duration(0)
	for _, s := range mergeSpans(spans) {
		total += s.end.Sub(s.start)
	}
	return total.Hours() / hoursPerYear
}

// mergeSpans sorts spans by start and joins any that overlap or touch.
func mergeSpans(spans []span) []span {
	if len(spans) == 0 {
		return nil
	}
	sort.Slice(spans, func(i, j int) bool {
		return spans[i].start.Before(spans[j].start)
	})

	merged := []span{spans[0]}
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if !s.start.After(last.end) {
			if s.end.After(last.end) {
				last.end = s.end
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// experienceScore is the share of the required years the candidate covers.
func experienceScore(years, minYears float64) float64 {
	if minYears <= 0 {
		return 100
	}
	return clamp(years/minYears, 0, 1) * 100
}
