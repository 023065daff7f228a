// Package entitlement maps subscription plans to quotas, allowed AI engines,
// and feature flags. Everything here is a pure function over the fixed plan
// enum: no I/O, no error cases. An unrecognized plan value resolves to the
// free tier (fail-safe), and an unknown feature name is never enabled.
//
// Every write path in the service layer consults this package before touching
// the store; nothing here is ever mutated at runtime.
package entitlement

import "github.com/aeolytics/aeo-backend/internal/domain"

// Feature names gated by plan.
const (
	FeatureCSVExport   = "csv_export"
	FeaturePDFReports  = "pdf_reports"
	FeatureFixItBriefs = "fix_it_briefs"
	FeatureBulkOps     = "bulk_operations"
	FeatureTrends      = "trend_analytics"
	FeatureWhiteLabel  = "white_label"
	FeatureAPIAccess   = "api_access"
)

// Limits describes what one plan permits: entity quotas, the engines a query
// may target, and boolean feature flags.
type Limits struct {
	MaxQueries     int             `json:"max_queries"`
	MaxDomains     int             `json:"max_domains"`
	AllowedEngines []string        `json:"allowed_engines"`
	Features       map[string]bool `json:"features"`
}

// planLimits is the authoritative plan table. Slices and maps in here are
// treated as read-only; ResolveLimits hands out copies.
var planLimits = map[domain.Plan]Limits{
	domain.PlanFree: {
		MaxQueries:     25,
		MaxDomains:     1,
		AllowedEngines: []string{domain.EngineChatGPT},
		Features:       map[string]bool{},
	},
	domain.PlanPro: {
		MaxQueries:     1000,
		MaxDomains:     10,
		AllowedEngines: []string{domain.EngineChatGPT, domain.EnginePerplexity, domain.EngineGemini},
		Features: map[string]bool{
			FeatureCSVExport:   true,
			FeaturePDFReports:  true,
			FeatureFixItBriefs: true,
			FeatureBulkOps:     true,
			FeatureTrends:      true,
		},
	},
	domain.PlanAgency: {
		MaxQueries:     10000,
		MaxDomains:     50,
		AllowedEngines: []string{domain.EngineChatGPT, domain.EnginePerplexity, domain.EngineGemini, domain.EngineCopilot},
		Features: map[string]bool{
			FeatureCSVExport:   true,
			FeaturePDFReports:  true,
			FeatureFixItBriefs: true,
			FeatureBulkOps:     true,
			FeatureTrends:      true,
			FeatureWhiteLabel:  true,
			FeatureAPIAccess:   true,
		},
	},
}

// ResolveLimits returns the quota limits, allowed engines, and feature flags
// for a plan. Plans outside the known enum resolve to the free tier. The
// returned Limits is a copy and safe for the caller to modify.
func ResolveLimits(plan domain.Plan) Limits {
	l, ok := planLimits[plan]
	if !ok {
		l = planLimits[domain.PlanFree]
	}
	out := Limits{
		MaxQueries:     l.MaxQueries,
		MaxDomains:     l.MaxDomains,
		AllowedEngines: append([]string(nil), l.AllowedEngines...),
		Features:       make(map[string]bool, len(l.Features)),
	}
	for k, v := range l.Features {
		out.Features[k] = v
	}
	return out
}

// CanUseEngine reports whether the plan may target the given engine.
func CanUseEngine(plan domain.Plan, engine string) bool {
	for _, e := range ResolveLimits(plan).AllowedEngines {
		if e == engine {
			return true
		}
	}
	return false
}

// CanAccessFeature reports whether the plan enables the named feature.
// Unknown feature names return false.
func CanAccessFeature(plan domain.Plan, feature string) bool {
	return ResolveLimits(plan).Features[feature]
}

// FilterEngines intersects the requested engines with the plan's allowed set,
// preserving request order and dropping duplicates. Engines outside the plan
// are silently removed; the result may be empty.
func FilterEngines(plan domain.Plan, requested []string) []string {
	allowed := make(map[string]struct{})
	for _, e := range ResolveLimits(plan).AllowedEngines {
		allowed[e] = struct{}{}
	}
	out := make([]string, 0, len(requested))
	seen := make(map[string]struct{}, len(requested))
	for _, e := range requested {
		if _, ok := allowed[e]; !ok {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
