package domain

import (
	"context"
	"errors"
	"time"
)

type CreateMemberRequest struct {
	Name           string
	Email          string
	BatchNumber    string
	BatchName      string
	Address        string
	MemberType     MemberType
	InitiationDate *time.Time
	WelcomingDate  *time.Time
	Status         MemberStatus
}

// UpdateMemberRequest carries a partial update; nil fields keep their
// current value. JoinedAt is immutable and has no field here.
type UpdateMemberRequest struct {
	Name           *string
	Email          *string
	BatchNumber    *string
	BatchName      *string
	Address        *string
	MemberType     *MemberType
	InitiationDate *time.Time
	WelcomingDate  *time.Time
	Status         *MemberStatus
}

type Service interface {
	Create(ctx context.Context, req CreateMemberRequest) (Member, error)
	List(ctx context.Context) ([]Member, error)
	GetByID(ctx context.Context, id string) (Member, error)
	GetByBatchNumber(ctx context.Context, batchNumber string) (Member, error)
	Update(ctx context.Context, id string, req UpdateMemberRequest) (Member, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidName           = errors.New("invalid_name")
	ErrInvalidEmail          = errors.New("invalid_email")
	ErrInvalidBatchNumber    = errors.New("invalid_batch_number")
	ErrInvalidMemberType     = errors.New("invalid_member_type")
	ErrInvalidStatus         = errors.New("invalid_status")
	ErrWelcomingDateRequired = errors.New("invalid_welcoming_date")
	ErrInvalidID             = errors.New("invalid_id")
	ErrNotFound              = errors.New("not_found")
	ErrDuplicateEmail        = errors.New("duplicate_email")
	ErrDuplicateBatchNumber  = errors.New("duplicate_batch_number")
)
