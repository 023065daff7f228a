// Package services – BriefService
//
// This file implements BriefService, which gates Fix-It brief generation
// behind the fix_it_briefs plan feature (report-and-refuse, unlike the silent
// engine filter), persists whatever the external generator returns, and
// advances brief status strictly forward along
// generated -> downloaded -> implemented.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/aeolytics/aeo-backend/internal/brief"
	"github.com/aeolytics/aeo-backend/internal/domain"
	"github.com/aeolytics/aeo-backend/internal/entitlement"
	"github.com/aeolytics/aeo-backend/internal/repo"
)

// briefRank orders brief statuses for the forward-only transition check.
var briefRank = map[string]int{
	domain.BriefStatusGenerated:   0,
	domain.BriefStatusDownloaded:  1,
	domain.BriefStatusImplemented: 2,
}

// BriefService coordinates brief generation, persistence, and status
// transitions.
type BriefService struct {
	DB        *gorm.DB
	Generator brief.Generator
}

// NewBriefService constructs a BriefService with the deterministic static
// generator; callers inject an HTTP generator when one is configured.
func NewBriefService(db *gorm.DB) *BriefService {
	return &BriefService{DB: db, Generator: brief.StaticGenerator{}}
}

// Generate produces and persists a brief for one of the user's queries.
// Plans without the fix_it_briefs feature are refused with ErrNotEntitled
// before any store or generator call.
func (s *BriefService) Generate(ctx context.Context, userID string, plan domain.Plan, queryID, instruction string) (*domain.FixItBrief, error) {
	tr := otel.Tracer("services/BriefService")
	ctx, span := tr.Start(ctx, "Generate",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("query.id", queryID),
		),
	)
	defer span.End()

	if !entitlement.CanAccessFeature(plan, entitlement.FeatureFixItBriefs) {
		return nil, ErrNotEntitled
	}

	q, err := repo.GetQuery(ctx, s.DB, queryID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQueryNotFound
		}
		return nil, err
	}

	content, err := s.Generator.Generate(ctx, q.Text, instruction)
	if err != nil {
		return nil, err
	}

	b := &domain.FixItBrief{
		QueryID:         q.ID,
		UserID:          userID,
		Title:           content.Title,
		MetaDescription: content.MetaDescription,
		SchemaMarkup:    content.SchemaMarkup,
		ContentBrief:    content.ContentBrief,
		Status:          domain.BriefStatusGenerated,
	}
	for _, f := range content.FAQEntries {
		b.FAQEntries = append(b.FAQEntries, domain.FAQEntry{
			Question: f.Question,
			Answer:   f.Answer,
			Keywords: f.Keywords,
		})
	}
	return repo.CreateBrief(ctx, s.DB, b)
}

// List returns all briefs for a user, newest first.
func (s *BriefService) List(ctx context.Context, userID string) ([]domain.FixItBrief, error) {
	return repo.ListBriefs(ctx, s.DB, userID)
}

// Get fetches one brief owned by userID.
func (s *BriefService) Get(ctx context.Context, userID, id string) (*domain.FixItBrief, error) {
	b, err := repo.GetBrief(ctx, s.DB, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBriefNotFound
	}
	return b, err
}

// Advance moves a brief to the given status. Transitions only move forward;
// repeating the current status is a no-op, moving backwards is
// ErrInvalidStatus.
func (s *BriefService) Advance(ctx context.Context, userID, id, status string) (*domain.FixItBrief, error) {
	next, ok := briefRank[status]
	if !ok {
		return nil, ErrInvalidStatus
	}
	b, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	cur := briefRank[b.Status]
	if next < cur {
		return nil, ErrInvalidStatus
	}
	if next == cur {
		return b, nil
	}
	if err := repo.UpdateBriefStatus(ctx, s.DB, id, userID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBriefNotFound
		}
		return nil, err
	}
	b.Status = status
	return b, nil
}

// Delete hard-deletes one brief owned by userID.
func (s *BriefService) Delete(ctx context.Context, userID, id string) error {
	err := repo.DeleteBrief(ctx, s.DB, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrBriefNotFound
	}
	return err
}
