package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	activitydomain "github.com/kapitulo/kapitulo/internal/activity/domain"
	authdomain "github.com/kapitulo/kapitulo/internal/auth/domain"
	chapterdomain "github.com/kapitulo/kapitulo/internal/chapter/domain"
	contributiondomain "github.com/kapitulo/kapitulo/internal/contribution/domain"
	memberdomain "github.com/kapitulo/kapitulo/internal/member/domain"
	paymentdomain "github.com/kapitulo/kapitulo/internal/payment/domain"
	"gorm.io/gorm"
)

// RunMigrations applies the embedded SQL migrations. Postgres only; the
// sqlite/mysql dev path goes through AutoMigrate instead.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// AutoMigrate creates the schema from the gorm models.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&authdomain.User{},
		&memberdomain.Member{},
		&paymentdomain.Payment{},
		&chapterdomain.ChapterInfo{},
		&activitydomain.Activity{},
		&contributiondomain.Contribution{},
	)
}
