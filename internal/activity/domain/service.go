package domain

import (
	"context"
	"errors"
	"time"

	"github.com/kapitulo/kapitulo/pkg/money"
)

type CreateActivityRequest struct {
	Name         string
	Description  string
	TargetAmount money.Amount
	Status       ActivityStatus
	StartDate    time.Time
	EndDate      *time.Time
}

type UpdateActivityRequest struct {
	Name         *string
	Description  *string
	TargetAmount *money.Amount
	Status       *ActivityStatus
	StartDate    *time.Time
	EndDate      *time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateActivityRequest) (Activity, error)
	List(ctx context.Context) ([]Activity, error)
	GetByID(ctx context.Context, id string) (Activity, error)
	Update(ctx context.Context, id string, req UpdateActivityRequest) (Activity, error)
	Delete(ctx context.Context, id string) error
	RecomputeCurrentAmount(ctx context.Context, id string) (Activity, error)
}

var (
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidTargetAmount = errors.New("invalid_target_amount")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrInvalidStartDate    = errors.New("invalid_start_date")
	ErrNotFound            = errors.New("not_found")
)
