// Package domain defines the persistence models for profiles, domains,
// queries, citations, and Fix-It briefs. These types are mapped with GORM
// and form the core data layer of the AEOlytics backend.
package domain

import "time"

// Plan identifies a subscription tier. The value is supplied by the external
// billing provider and stored on the Profile; the backend only ever reads it.
type Plan string

// Subscription tiers.
const (
	PlanFree   Plan = "free"
	PlanPro    Plan = "pro"
	PlanAgency Plan = "agency"
)

// AI engines that can be monitored. Citation rows store the engine name
// unconstrained, but query creation only accepts members of this set.
const (
	EngineChatGPT    = "ChatGPT"
	EnginePerplexity = "Perplexity"
	EngineGemini     = "Gemini"
	EngineCopilot    = "Copilot"
)

// AllEngines lists every engine the platform knows how to monitor.
var AllEngines = []string{EngineChatGPT, EnginePerplexity, EngineGemini, EngineCopilot}

// Domain statuses.
const (
	DomainStatusPending = "pending"
	DomainStatusActive  = "active"
	DomainStatusError   = "error"
)

// Query statuses. Deletion is a soft delete: the row stays but every read
// filters StatusDeleted out.
const (
	QueryStatusActive  = "active"
	QueryStatusPaused  = "paused"
	QueryStatusDeleted = "deleted"
)

// Citation positions within an engine response.
const (
	PositionTop    = "top"
	PositionMiddle = "middle"
	PositionBottom = "bottom"
)

// Brief statuses. Transitions only move forward:
// generated -> downloaded -> implemented.
const (
	BriefStatusGenerated   = "generated"
	BriefStatusDownloaded  = "downloaded"
	BriefStatusImplemented = "implemented"
)

// Profile holds per-user account state, most importantly the billing plan
// that drives every entitlement decision. The plan column is written only by
// the billing sync endpoint.
type Profile struct {
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);primaryKey"`
	Email     string    `json:"email"      gorm:"type:varchar(255)"`
	Plan      Plan      `json:"plan"       gorm:"type:varchar(16);not null;default:'free'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Profile.
func (Profile) TableName() string { return "profiles" }

// Domain is a tracked website owned by a user. Hostname is stored normalized
// (scheme stripped, trailing slash stripped, lowercased) and is unique per
// owner. Domains are hard-deleted.
//
// QueriesCount and CitationsCount are denormalized counters bumped by the
// ingest path; LastCheck is the run date of the most recent citation.
type Domain struct {
	ID             string     `json:"id"              gorm:"type:char(36);primaryKey"`
	UserID         string     `json:"user_id"         gorm:"type:varchar(64);not null;index:idx_user_domains;uniqueIndex:ux_user_hostname,priority:1"`
	Hostname       string     `json:"hostname"        gorm:"type:varchar(255);not null;uniqueIndex:ux_user_hostname,priority:2"`
	Status         string     `json:"status"          gorm:"type:varchar(16);not null;default:'pending';check:status IN ('pending','active','error')"`
	QueriesCount   int        `json:"queries_count"   gorm:"not null;default:0"`
	CitationsCount int        `json:"citations_count" gorm:"not null;default:0"`
	LastCheck      *time.Time `json:"last_check,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName returns the database table name for Domain.
func (Domain) TableName() string { return "domains" }

// Query is a monitored prompt owned by a user. It may belong to one domain
// (weak reference; nil means "all domains"). Engines holds the subset of
// AllEngines the owner's plan allowed at creation time; a later plan change
// does not rewrite it.
type Query struct {
	ID         string     `json:"id"          gorm:"type:char(36);primaryKey"`
	UserID     string     `json:"user_id"     gorm:"type:varchar(64);not null;index:idx_user_queries"`
	Text       string     `json:"text"        gorm:"type:text;not null"`
	DomainID   *string    `json:"domain_id,omitempty" gorm:"type:char(36);index"`
	IntentTags []string   `json:"intent_tags" gorm:"serializer:json"`
	Engines    []string   `json:"engines"     gorm:"serializer:json"`
	Status     string     `json:"status"      gorm:"type:varchar(16);not null;default:'active';check:status IN ('active','paused','deleted')"`
	LastRun    *time.Time `json:"last_run,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName returns the database table name for Query.
func (Query) TableName() string { return "queries" }

// Citation records one check of one query against one engine: whether the
// brand was cited, where in the response, and with what confidence. Rows are
// produced by the external processing pipeline and never mutated afterwards;
// they can only be deleted.
//
// Position is meaningful only when Cited is true and may still be nil when
// the pipeline could not locate the mention.
type Citation struct {
	ID              string    `json:"id"               gorm:"type:char(36);primaryKey"`
	QueryID         string    `json:"query_id"         gorm:"type:char(36);not null;index:idx_query_citations"`
	UserID          string    `json:"user_id"          gorm:"type:varchar(64);not null;index:idx_user_citations,priority:1"`
	Engine          string    `json:"engine"           gorm:"type:varchar(32);not null"`
	ResponseText    string    `json:"response_text"    gorm:"type:text"`
	Cited           bool      `json:"cited"            gorm:"not null;default:false"`
	Position        *string   `json:"position,omitempty" gorm:"type:varchar(16)"`
	ConfidenceScore float64   `json:"confidence_score" gorm:"not null;default:0"`
	RunDate         time.Time `json:"run_date"         gorm:"not null;index:idx_user_citations,priority:2"`
	CreatedAt       time.Time `json:"created_at"`

	// Query is the parent query. Citations are cascade-deleted when their
	// query row is removed.
	Query Query `json:"-" gorm:"foreignKey:QueryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Citation.
func (Citation) TableName() string { return "citations" }

// ConfidencePct reports the confidence score the way it is shown to users,
// as a whole percentage.
func (c Citation) ConfidencePct() int {
	return int(c.ConfidenceScore*100 + 0.5)
}

// FAQEntry is one question/answer pair inside a Fix-It brief.
type FAQEntry struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Keywords []string `json:"keywords,omitempty"`
}

// FixItBrief is an externally generated content-optimization recommendation
// tied to one query. The backend persists whatever the generator returned
// without validating its internal consistency.
type FixItBrief struct {
	ID              string     `json:"id"               gorm:"type:char(36);primaryKey"`
	QueryID         string     `json:"query_id"         gorm:"type:char(36);not null;index"`
	UserID          string     `json:"user_id"          gorm:"type:varchar(64);not null;index:idx_user_briefs"`
	Title           string     `json:"title"            gorm:"type:varchar(255)"`
	MetaDescription string     `json:"meta_description" gorm:"type:text"`
	SchemaMarkup    string     `json:"schema_markup"    gorm:"type:text"`
	ContentBrief    string     `json:"content_brief"    gorm:"type:text"`
	FAQEntries      []FAQEntry `json:"faq_entries"      gorm:"serializer:json"`
	Status          string     `json:"status"           gorm:"type:varchar(16);not null;default:'generated';check:status IN ('generated','downloaded','implemented')"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TableName returns the database table name for FixItBrief.
func (FixItBrief) TableName() string { return "fix_it_briefs" }
