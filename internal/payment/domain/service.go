package domain

import (
	"context"
	"errors"
	"time"

	"github.com/kapitulo/kapitulo/pkg/money"
)

type CreatePaymentRequest struct {
	MemberID    string
	Amount      money.Amount
	PaymentDate time.Time
	Notes       string
}

type Service interface {
	Create(ctx context.Context, req CreatePaymentRequest) (Payment, error)
	List(ctx context.Context) ([]Payment, error)
	ListByMember(ctx context.Context, memberID string) ([]Payment, error)
	Recent(ctx context.Context, limit int) ([]RecentPayment, error)
	Delete(ctx context.Context, id string) error
	ClearAll(ctx context.Context) (int64, error)
}

var (
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidMemberID    = errors.New("invalid_member_id")
	ErrInvalidAmount      = errors.New("invalid_amount")
	ErrInvalidPaymentDate = errors.New("invalid_payment_date")
	ErrMemberNotFound     = errors.New("member_not_found")
	ErrNotFound           = errors.New("not_found")
)

// DefaultRecentLimit caps the dashboard feed when no limit is supplied.
const DefaultRecentLimit = 5
