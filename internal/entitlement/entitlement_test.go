package entitlement

import (
	"reflect"
	"testing"

	"github.com/aeolytics/aeo-backend/internal/domain"
)

func TestResolveLimits_PerPlan(t *testing.T) {
	free := ResolveLimits(domain.PlanFree)
	if free.MaxQueries != 25 || free.MaxDomains != 1 {
		t.Fatalf("free limits unexpected: %+v", free)
	}
	if !reflect.DeepEqual(free.AllowedEngines, []string{domain.EngineChatGPT}) {
		t.Fatalf("free engines unexpected: %#v", free.AllowedEngines)
	}
	if len(free.Features) != 0 {
		t.Fatalf("free should have no features: %#v", free.Features)
	}

	pro := ResolveLimits(domain.PlanPro)
	if pro.MaxQueries != 1000 || pro.MaxDomains != 10 {
		t.Fatalf("pro limits unexpected: %+v", pro)
	}
	if !pro.Features[FeatureCSVExport] || !pro.Features[FeatureBulkOps] || pro.Features[FeatureWhiteLabel] {
		t.Fatalf("pro features unexpected: %#v", pro.Features)
	}

	agency := ResolveLimits(domain.PlanAgency)
	if agency.MaxQueries != 10000 || agency.MaxDomains != 50 {
		t.Fatalf("agency limits unexpected: %+v", agency)
	}
	if !reflect.DeepEqual(agency.AllowedEngines, domain.AllEngines) {
		t.Fatalf("agency engines unexpected: %#v", agency.AllowedEngines)
	}
	if !agency.Features[FeatureWhiteLabel] || !agency.Features[FeatureAPIAccess] {
		t.Fatalf("agency features unexpected: %#v", agency.Features)
	}
}

func TestResolveLimits_UnknownPlanDegradesToFree(t *testing.T) {
	got := ResolveLimits(domain.Plan("enterprise-gold"))
	want := ResolveLimits(domain.PlanFree)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unknown plan should resolve as free:\n got %+v\nwant %+v", got, want)
	}
}

func TestResolveLimits_ReturnsCopy(t *testing.T) {
	a := ResolveLimits(domain.PlanPro)
	a.AllowedEngines[0] = "mutated"
	a.Features[FeatureWhiteLabel] = true

	b := ResolveLimits(domain.PlanPro)
	if b.AllowedEngines[0] == "mutated" {
		t.Fatalf("AllowedEngines aliases internal state")
	}
	if b.Features[FeatureWhiteLabel] {
		t.Fatalf("Features aliases internal state")
	}
}

func TestCanUseEngine(t *testing.T) {
	if !CanUseEngine(domain.PlanFree, domain.EngineChatGPT) {
		t.Fatalf("free should allow ChatGPT")
	}
	if CanUseEngine(domain.PlanFree, domain.EnginePerplexity) {
		t.Fatalf("free should not allow Perplexity")
	}
	if !CanUseEngine(domain.PlanAgency, domain.EngineCopilot) {
		t.Fatalf("agency should allow Copilot")
	}
	if CanUseEngine(domain.PlanPro, "Bard") {
		t.Fatalf("unknown engine should be denied")
	}
}

func TestCanAccessFeature_UnknownFeature(t *testing.T) {
	if CanAccessFeature(domain.PlanAgency, "teleportation") {
		t.Fatalf("unknown feature must be denied even for agency")
	}
	if CanAccessFeature(domain.PlanFree, FeatureCSVExport) {
		t.Fatalf("free must not get csv export")
	}
	if !CanAccessFeature(domain.PlanPro, FeatureTrends) {
		t.Fatalf("pro should get trend analytics")
	}
}

func TestFilterEngines(t *testing.T) {
	t.Run("silently drops disallowed", func(t *testing.T) {
		got := FilterEngines(domain.PlanFree, []string{domain.EngineChatGPT, domain.EnginePerplexity})
		if !reflect.DeepEqual(got, []string{domain.EngineChatGPT}) {
			t.Fatalf("free filter unexpected: %#v", got)
		}
	})

	t.Run("preserves request order and dedups", func(t *testing.T) {
		got := FilterEngines(domain.PlanPro, []string{
			domain.EngineGemini, domain.EngineChatGPT, domain.EngineGemini,
		})
		if !reflect.DeepEqual(got, []string{domain.EngineGemini, domain.EngineChatGPT}) {
			t.Fatalf("order/dedup unexpected: %#v", got)
		}
	})

	t.Run("may be empty", func(t *testing.T) {
		got := FilterEngines(domain.PlanFree, []string{domain.EngineCopilot})
		if len(got) != 0 {
			t.Fatalf("expected empty result, got %#v", got)
		}
	})
}
