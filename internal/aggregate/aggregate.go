// Package aggregate computes visibility analytics from in-memory citation
// records: overall scores, per-engine and per-query citation rates, position
// distributions, query rankings, and daily trend series.
//
// Every function here is pure and total: callers hand in already-fetched,
// owner-scoped slices, and empty or malformed input degrades to zero-valued
// results instead of failing, so dashboards always render. Whenever a rate's
// denominator is zero the rate is 0, never NaN. Inputs are never mutated.
package aggregate

import (
	"sort"
	"time"

	"github.com/aeolytics/aeo-backend/internal/domain"
)

// Stats summarizes a set of citation records.
type Stats struct {
	Total           int            `json:"total"`
	Cited           int            `json:"cited"`
	Uncited         int            `json:"uncited"`
	VisibilityScore int            `json:"visibility_score"`
	EngineStats     map[string]int `json:"engine_stats"`
}

// QueryRate is the citation rate of a single query.
type QueryRate struct {
	Cited int `json:"cited"`
	Total int `json:"total"`
	Rate  int `json:"rate"`
}

// QueryRank pairs a query with its citation rate for ranking.
type QueryRank struct {
	Query domain.Query `json:"query"`
	Rate  QueryRate    `json:"rate"`
}

// PositionBuckets is the distribution of citations across response positions.
// A cited record whose position is unknown belongs to none of the buckets, so
// Top+Middle+Bottom+NotCited may be less than the record count.
type PositionBuckets struct {
	Top      int `json:"top"`
	Middle   int `json:"middle"`
	Bottom   int `json:"bottom"`
	NotCited int `json:"not_cited"`
}

// TrendPoint is one calendar day of visibility data.
type TrendPoint struct {
	Date            string `json:"date"` // YYYY-MM-DD
	VisibilityScore int    `json:"visibility_score"`
	Citations       int    `json:"citations"`
	Cited           int    `json:"cited"`
}

// pct returns round(100*part/total), or 0 when total is 0.
func pct(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(part)/float64(total)*100 + 0.5)
}

// VisibilityScore returns the percentage of citations where the brand was
// found cited, rounded to the nearest integer. Empty input scores 0.
func VisibilityScore(citations []domain.Citation) int {
	cited := 0
	for _, c := range citations {
		if c.Cited {
			cited++
		}
	}
	return pct(cited, len(citations))
}

// ComputeStats returns counts, visibility score, and a per-engine citation
// count (cited or not) for the given records.
func ComputeStats(citations []domain.Citation) Stats {
	s := Stats{EngineStats: make(map[string]int)}
	for _, c := range citations {
		s.Total++
		if c.Cited {
			s.Cited++
		} else {
			s.Uncited++
		}
		s.EngineStats[c.Engine]++
	}
	s.VisibilityScore = pct(s.Cited, s.Total)
	return s
}

// EngineRate returns the citation rate among records for one engine,
// or 0 when the engine has no records.
func EngineRate(citations []domain.Citation, engine string) int {
	cited, total := 0, 0
	for _, c := range citations {
		if c.Engine != engine {
			continue
		}
		total++
		if c.Cited {
			cited++
		}
	}
	return pct(cited, total)
}

// QueryCitationRate returns the citation rate restricted to records belonging
// to one query.
func QueryCitationRate(citations []domain.Citation, queryID string) QueryRate {
	var r QueryRate
	for _, c := range citations {
		if c.QueryID != queryID {
			continue
		}
		r.Total++
		if c.Cited {
			r.Cited++
		}
	}
	r.Rate = pct(r.Cited, r.Total)
	return r
}

// TopQueries ranks queries by citation rate, descending, and returns at most
// n entries. Ties keep the original input order (stable sort); no secondary
// key is applied.
func TopQueries(queries []domain.Query, citations []domain.Citation, n int) []QueryRank {
	ranked := make([]QueryRank, 0, len(queries))
	for _, q := range queries {
		ranked = append(ranked, QueryRank{Query: q, Rate: QueryCitationRate(citations, q.ID)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rate.Rate > ranked[j].Rate.Rate
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// PositionDistribution buckets citations by where the brand appeared in the
// response. Uncited records land in NotCited regardless of their position
// value; cited records with no recorded position are excluded entirely.
func PositionDistribution(citations []domain.Citation) PositionBuckets {
	var b PositionBuckets
	for _, c := range citations {
		if !c.Cited {
			b.NotCited++
			continue
		}
		if c.Position == nil {
			continue
		}
		switch *c.Position {
		case domain.PositionTop:
			b.Top++
		case domain.PositionMiddle:
			b.Middle++
		case domain.PositionBottom:
			b.Bottom++
		}
	}
	return b
}

// TrendSeries buckets citations into one entry per calendar day, oldest
// first, for the `days` days ending at now's date. Bucketing compares exact
// calendar dates in now's location, not rolling 24h windows. days <= 0
// returns an empty series.
func TrendSeries(citations []domain.Citation, days int, now time.Time) []TrendPoint {
	if days <= 0 {
		return []TrendPoint{}
	}
	type bucket struct{ total, cited int }
	byDate := make(map[string]*bucket, days)

	series := make([]TrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		series = append(series, TrendPoint{Date: date})
		byDate[date] = &bucket{}
	}
	for _, c := range citations {
		date := c.RunDate.In(now.Location()).Format("2006-01-02")
		b, ok := byDate[date]
		if !ok {
			continue
		}
		b.total++
		if c.Cited {
			b.cited++
		}
	}
	for i := range series {
		b := byDate[series[i].Date]
		series[i].Citations = b.total
		series[i].Cited = b.cited
		series[i].VisibilityScore = pct(b.cited, b.total)
	}
	return series
}
