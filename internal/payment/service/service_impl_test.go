package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/kapitulo/kapitulo/internal/clock"
	memberdomain "github.com/kapitulo/kapitulo/internal/member/domain"
	memberrepository "github.com/kapitulo/kapitulo/internal/member/repository"
	"github.com/kapitulo/kapitulo/internal/payment/domain"
	"github.com/kapitulo/kapitulo/internal/payment/repository"
	"github.com/kapitulo/kapitulo/pkg/money"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func setupPaymentService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&memberdomain.Member{}, &domain.Payment{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:         db,
		Log:        zaptest.NewLogger(t),
		GenID:      node,
		Clock:      clock.NewFakeClock(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)),
		Repo:       repository.Provide(),
		MemberRepo: memberrepository.Provide(),
	})
	return svc, db, node
}

func seedMember(t *testing.T, db *gorm.DB, node *snowflake.Node, name string) memberdomain.Member {
	t.Helper()
	member := memberdomain.Member{
		ID:          node.Generate(),
		Name:        name,
		Email:       name + "@example.com",
		BatchNumber: node.Generate().String(),
		MemberType:  memberdomain.MemberTypePureBlooded,
		Status:      memberdomain.MemberStatusActive,
		JoinedAt:    time.Now().UTC(),
	}
	require.NoError(t, db.Create(&member).Error)
	return member
}

func TestCreatePayment(t *testing.T) {
	svc, db, node := setupPaymentService(t)
	ctx := context.Background()
	member := seedMember(t, db, node, "juan")

	amount, err := money.Parse("500.00")
	require.NoError(t, err)

	payment, err := svc.Create(ctx, domain.CreatePaymentRequest{
		MemberID:    member.ID.String(),
		Amount:      amount,
		PaymentDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Notes:       "March dues",
	})
	require.NoError(t, err)
	require.Equal(t, "500.00", payment.Amount.String(), "amount survives the round trip exactly")

	stored, err := svc.ListByMember(ctx, member.ID.String())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, amount, stored[0].Amount)
}

func TestCreatePaymentUnknownMember(t *testing.T) {
	svc, _, node := setupPaymentService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreatePaymentRequest{
		MemberID:    node.Generate().String(),
		Amount:      money.FromMajor(100),
		PaymentDate: time.Now(),
	})
	require.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestRecentPaymentsCarryMemberName(t *testing.T) {
	svc, db, node := setupPaymentService(t)
	ctx := context.Background()
	member := seedMember(t, db, node, "maria")

	for i := 0; i < 7; i++ {
		_, err := svc.Create(ctx, domain.CreatePaymentRequest{
			MemberID:    member.ID.String(),
			Amount:      money.FromMajor(100),
			PaymentDate: time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}

	recent, err := svc.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	for _, r := range recent {
		require.Equal(t, "maria", r.MemberName)
	}

	// A non-positive limit falls back to the default feed size.
	recent, err = svc.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, domain.DefaultRecentLimit)
}

func TestClearAllPayments(t *testing.T) {
	svc, db, node := setupPaymentService(t)
	ctx := context.Background()
	member := seedMember(t, db, node, "pedro")

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, domain.CreatePaymentRequest{
			MemberID:    member.ID.String(),
			Amount:      money.FromMajor(50),
			PaymentDate: time.Now(),
		})
		require.NoError(t, err)
	}

	deleted, err := svc.ClearAll(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, deleted)

	payments, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, payments)
}

func TestDeletePaymentNotFound(t *testing.T) {
	svc, _, node := setupPaymentService(t)
	require.ErrorIs(t, svc.Delete(context.Background(), node.Generate().String()), domain.ErrNotFound)
}
