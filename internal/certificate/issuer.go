// Package certificate derives publicly verifiable certificates from
// finalized exam attempts. A certificate is never stored: it is a
// projection over an attempt that is valid, ended, and at or above the
// exam's passing score.
package certificate

import (
	"context"
	"fmt"
	"time"

	"github.com/examforge/examforge/internal/apperr"
)

type Certificate struct {
	CertificateID string    `json:"certificate_id"`
	ExamTitle     string    `json:"exam_title"`
	ProfileName   string    `json:"profile_name"`
	PassingDate   time.Time `json:"passing_date"`
	Score         float64   `json:"score"`
}

// Record is an attempt joined with the exam and holder data the
// eligibility rule and the projection need.
type Record struct {
	AttemptID    string
	ExamTitle    string
	HolderName   string
	PassingScore float64
	EndedAt      *time.Time
	IsValid      bool
	Score        *float64
}

// Store reads certificate source records. ByAttempt returns
// apperr.ErrNotFound when the attempt does not exist.
type Store interface {
	ByUser(ctx context.Context, userID string) ([]Record, error)
	ByAttempt(ctx context.Context, attemptID string) (Record, error)
}

type Issuer struct {
	store Store
}

func NewIssuer(store Store) *Issuer { return &Issuer{store: store} }

// ListMine returns certificates for all of the caller's qualifying
// attempts.
func (i *Issuer) ListMine(ctx context.Context, userID string) ([]Certificate, error) {
	recs, err := i.store.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []Certificate{}
	for _, r := range recs {
		if eligible(r) {
			out = append(out, project(r))
		}
	}
	return out, nil
}

// Get looks up a certificate by attempt id with no ownership check:
// certificates are verifiable by anyone who holds the id. Ineligible
// attempts yield apperr.ErrNotEligible with no score details attached.
func (i *Issuer) Get(ctx context.Context, attemptID string) (Certificate, error) {
	r, err := i.store.ByAttempt(ctx, attemptID)
	if err != nil {
		return Certificate{}, err
	}
	if !eligible(r) {
		return Certificate{}, fmt.Errorf("attempt %s: %w", attemptID, apperr.ErrNotEligible)
	}
	return project(r), nil
}

// eligible: finalized, still valid, and score at or above the passing
// threshold (inclusive boundary).
func eligible(r Record) bool {
	return r.IsValid && r.EndedAt != nil && r.Score != nil && *r.Score >= r.PassingScore
}

func project(r Record) Certificate {
	return Certificate{
		CertificateID: r.AttemptID,
		ExamTitle:     r.ExamTitle,
		ProfileName:   r.HolderName,
		PassingDate:   *r.EndedAt,
		Score:         *r.Score,
	}
}
