package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/kapitulo/kapitulo/internal/activity/domain"
	"github.com/kapitulo/kapitulo/internal/activity/repository"
	"github.com/kapitulo/kapitulo/internal/clock"
	contributiondomain "github.com/kapitulo/kapitulo/internal/contribution/domain"
	memberdomain "github.com/kapitulo/kapitulo/internal/member/domain"
	"github.com/kapitulo/kapitulo/pkg/money"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type activityFixture struct {
	svc  domain.Service
	repo domain.Repository
	db   *gorm.DB
	node *snowflake.Node
}

func setupActivityService(t *testing.T) activityFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&memberdomain.Member{},
		&domain.Activity{},
		&contributiondomain.Contribution{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	repo := repository.Provide()
	svc := New(Params{
		DB:    db,
		Log:   zaptest.NewLogger(t),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)),
		Repo:  repo,
	})

	return activityFixture{svc: svc, repo: repo, db: db, node: node}
}

func (f activityFixture) createActivity(t *testing.T) domain.Activity {
	t.Helper()
	activity, err := f.svc.Create(context.Background(), domain.CreateActivityRequest{
		Name:         "Scholarship Drive",
		TargetAmount: money.FromMajor(1000),
		StartDate:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return activity
}

func fetchActivity(t *testing.T, db *gorm.DB, id snowflake.ID) domain.Activity {
	t.Helper()
	var activity domain.Activity
	require.NoError(t, db.First(&activity, "id = ?", id).Error)
	return activity
}

// A contribution can commit between the fetch and the write of an admin
// update. The persisted counter must survive the write even when the
// struct being saved still carries the pre-contribution value.
func TestUpdateKeepsConcurrentContributionTotal(t *testing.T) {
	f := setupActivityService(t)
	ctx := context.Background()
	created := f.createActivity(t)

	require.NoError(t, f.db.Exec(
		`UPDATE activities SET current_amount = current_amount + ? WHERE id = ?`,
		int64(money.FromMajor(250)), created.ID,
	).Error)

	stale := created
	stale.Name = "Scholarship Drive 2024"
	require.NoError(t, f.repo.Update(ctx, f.db, &stale))

	got := fetchActivity(t, f.db, created.ID)
	require.Equal(t, "Scholarship Drive 2024", got.Name)
	require.Equal(t, money.FromMajor(250), got.CurrentAmount)
}

func TestUpdateActivityLeavesCounterToContributionPath(t *testing.T) {
	f := setupActivityService(t)
	ctx := context.Background()
	created := f.createActivity(t)

	require.NoError(t, f.db.Exec(
		`UPDATE activities SET current_amount = current_amount + ? WHERE id = ?`,
		int64(money.FromMajor(400)), created.ID,
	).Error)

	target := money.FromMajor(2000)
	updated, err := f.svc.Update(ctx, created.ID.String(), domain.UpdateActivityRequest{
		TargetAmount: &target,
	})
	require.NoError(t, err)
	require.Equal(t, target, updated.TargetAmount)
	require.Equal(t, money.FromMajor(400), fetchActivity(t, f.db, created.ID).CurrentAmount)
}

func TestRecomputeCurrentAmount(t *testing.T) {
	f := setupActivityService(t)
	ctx := context.Background()
	created := f.createActivity(t)

	member := memberdomain.Member{
		ID:          f.node.Generate(),
		Name:        "Juan Dela Cruz",
		Email:       "juan@example.com",
		BatchNumber: "2020-001",
		MemberType:  memberdomain.MemberTypePureBlooded,
		Status:      memberdomain.MemberStatusActive,
		JoinedAt:    time.Now().UTC(),
	}
	require.NoError(t, f.db.Create(&member).Error)

	for _, amount := range []money.Amount{money.FromMajor(150), money.FromMajor(350)} {
		require.NoError(t, f.db.Create(&contributiondomain.Contribution{
			ID:               f.node.Generate(),
			ActivityID:       created.ID,
			MemberID:         member.ID,
			Amount:           amount,
			ContributionDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			CreatedAt:        time.Now().UTC(),
		}).Error)
	}

	// Drift the counter so the repair has something to fix.
	require.NoError(t, f.db.Exec(
		`UPDATE activities SET current_amount = 0 WHERE id = ?`, created.ID,
	).Error)

	repaired, err := f.svc.RecomputeCurrentAmount(ctx, created.ID.String())
	require.NoError(t, err)
	require.Equal(t, money.FromMajor(500), repaired.CurrentAmount)
	require.Equal(t, money.FromMajor(500), fetchActivity(t, f.db, created.ID).CurrentAmount)
}
