package brief

import (
	"context"
	"fmt"
)

// StaticGenerator produces a deterministic template brief from the query text
// alone. It backs local development and tests when no generator endpoint is
// configured.
type StaticGenerator struct{}

// Generate fills the brief template with the query text.
func (StaticGenerator) Generate(_ context.Context, queryText, instruction string) (*Content, error) {
	c := &Content{
		Title:           fmt.Sprintf("How to answer: %s", queryText),
		MetaDescription: fmt.Sprintf("A direct, citable answer for the query %q.", queryText),
		SchemaMarkup:    fmt.Sprintf(`{"@context":"https://schema.org","@type":"FAQPage","name":%q}`, queryText),
		ContentBrief: fmt.Sprintf(
			"Write a concise, authoritative answer to %q. Lead with the answer in the first sentence, "+
				"back it with one concrete statistic, and keep the section under 120 words so AI engines can quote it whole.",
			queryText),
		FAQEntries: []FAQEntry{
			{
				Question: queryText,
				Answer:   fmt.Sprintf("Answer the question %q directly in one to two sentences.", queryText),
				Keywords: []string{"answer engine optimization"},
			},
		},
	}
	if instruction != "" {
		c.ContentBrief += " Additional guidance: " + instruction
	}
	return c, nil
}
