package domain

import (
	"context"
	"errors"
	"time"

	"github.com/kapitulo/kapitulo/pkg/money"
)

type CreateContributionRequest struct {
	ActivityID       string
	MemberID         string
	Amount           money.Amount
	ContributionDate time.Time
	Notes            string
}

type Service interface {
	Create(ctx context.Context, req CreateContributionRequest) (Contribution, error)
	List(ctx context.Context) ([]Contribution, error)
	ListByActivity(ctx context.Context, activityID string) ([]Contribution, error)
	ListByMember(ctx context.Context, memberID string) ([]Contribution, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID            = errors.New("invalid_id")
	ErrInvalidActivityID    = errors.New("invalid_activity_id")
	ErrInvalidMemberID      = errors.New("invalid_member_id")
	ErrInvalidAmount        = errors.New("invalid_amount")
	ErrInvalidDate          = errors.New("invalid_contribution_date")
	ErrActivityNotFound     = errors.New("activity_not_found")
	ErrMemberNotFound       = errors.New("member_not_found")
	ErrActivityNotAccepting = errors.New("activity_not_accepting_contributions")
	ErrNotFound             = errors.New("not_found")
)
