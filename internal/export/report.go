package export

import (
	"sort"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aeolytics/aeo-backend/internal/aggregate"
	"github.com/aeolytics/aeo-backend/internal/domain"
)

// Visibility thresholds selecting the recommendation copy.
const (
	lowVisibility = 40
	midVisibility = 70
)

// defaultBranding heads reports for plans without the white-label feature.
const defaultBranding = "AEOlytics"

// EngineShare is one engine's slice of all citation checks.
type EngineShare struct {
	Engine       string `json:"engine"`
	Citations    int    `json:"citations"`
	SharePct     int    `json:"share_pct"`
	CitationRate int    `json:"citation_rate"`
}

// Report is the visibility report document: computed metrics plus the
// recommendation copy selected by threshold rules.
type Report struct {
	Title           string        `json:"title"`
	Branding        string        `json:"branding"`
	GeneratedAt     time.Time     `json:"generated_at"`
	TotalCitations  int           `json:"total_citations"`
	CitedQueries    int           `json:"cited_queries"`
	VisibilityScore int           `json:"visibility_score"`
	Engines         []EngineShare `json:"engines"`
	Recommendations []string      `json:"recommendations"`
}

// titleCaser renders report headings; engine names are stored display-ready.
var titleCaser = cases.Title(language.English)

// BuildReport computes the report document for a set of citations and their
// sibling queries. branding overrides the product name for white-label plans;
// pass "" for the default. The output is a pure function of the inputs and
// the generatedAt stamp.
func BuildReport(citations []domain.Citation, queries []domain.Query, branding string, generatedAt time.Time) Report {
	stats := aggregate.ComputeStats(citations)

	if branding == "" {
		branding = defaultBranding
	}
	r := Report{
		Title:           titleCaser.String(branding + " visibility report"),
		Branding:        branding,
		GeneratedAt:     generatedAt,
		TotalCitations:  stats.Total,
		VisibilityScore: stats.VisibilityScore,
	}

	// Distinct queries with at least one cited citation.
	cited := make(map[string]struct{})
	for _, c := range citations {
		if c.Cited {
			cited[c.QueryID] = struct{}{}
		}
	}
	for _, q := range queries {
		if _, ok := cited[q.ID]; ok {
			r.CitedQueries++
		}
	}

	// Ranked engine list with share of all checks. Ties break on name so the
	// order is stable across runs.
	engines := make([]string, 0, len(stats.EngineStats))
	for e := range stats.EngineStats {
		engines = append(engines, e)
	}
	sort.Slice(engines, func(i, j int) bool {
		ci, cj := stats.EngineStats[engines[i]], stats.EngineStats[engines[j]]
		if ci != cj {
			return ci > cj
		}
		return engines[i] < engines[j]
	})
	for _, e := range engines {
		share := 0
		if stats.Total > 0 {
			share = int(float64(stats.EngineStats[e])/float64(stats.Total)*100 + 0.5)
		}
		r.Engines = append(r.Engines, EngineShare{
			Engine:       e,
			Citations:    stats.EngineStats[e],
			SharePct:     share,
			CitationRate: aggregate.EngineRate(citations, e),
		})
	}

	r.Recommendations = recommendations(stats.VisibilityScore)
	return r
}

// recommendations selects the fixed copy for a visibility score band.
func recommendations(score int) []string {
	switch {
	case score < lowVisibility:
		return []string{
			"Your brand is rarely cited. Publish direct, quotable answers for your highest-intent queries.",
			"Add FAQ structured data so AI engines can attribute answers to your pages.",
			"Generate Fix-It briefs for your uncited queries and implement them first.",
		}
	case score < midVisibility:
		return []string{
			"Visibility is improving. Focus on the engines where your citation rate lags the average.",
			"Refresh pages behind your middle- and bottom-position citations to move them up.",
			"Expand coverage: add queries for adjacent topics your cited pages already rank for.",
		}
	default:
		return []string{
			"Strong visibility. Monitor daily trends to catch regressions early.",
			"Defend top positions by keeping cited pages current and statistics up to date.",
			"Broaden into new engines to grow total citation volume.",
		}
	}
}
