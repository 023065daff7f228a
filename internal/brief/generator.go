// Package brief wraps the external content-brief generation service. The
// backend's only contract with it is: hand over the query text plus an
// optional instruction, get back a brief structure, persist it verbatim.
// Internal consistency of the returned fields is not validated here.
package brief

import "context"

// Content is the structure returned by a generator. It maps one-to-one onto
// the persisted FixItBrief fields.
type Content struct {
	Title           string     `json:"title"`
	MetaDescription string     `json:"meta_description"`
	SchemaMarkup    string     `json:"schema_markup"`
	ContentBrief    string     `json:"content_brief"`
	FAQEntries      []FAQEntry `json:"faq_entries"`
}

// FAQEntry is one suggested question/answer pair.
type FAQEntry struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Keywords []string `json:"keywords,omitempty"`
}

// Generator produces a content brief for a monitored query.
type Generator interface {
	Generate(ctx context.Context, queryText, instruction string) (*Content, error)
}
