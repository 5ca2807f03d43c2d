package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/kapitulo/kapitulo/internal/auth/domain"
	"github.com/kapitulo/kapitulo/internal/auth/password"
	"github.com/kapitulo/kapitulo/internal/auth/token"
	"github.com/kapitulo/kapitulo/internal/clock"
	"github.com/kapitulo/kapitulo/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Cfg   config.Config
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	cfg   config.Config
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("auth.service"),
		cfg:   p.Cfg,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

// Login verifies admin credentials. A missing user and a wrong password
// both return ErrInvalidCredentials; the caller is told nothing about
// which check failed.
func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResult, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return domain.LoginResult{}, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, s.db, username)
	if err != nil {
		return domain.LoginResult{}, err
	}
	if user == nil || !password.Verify(req.Password, user.PasswordHash) {
		return domain.LoginResult{}, domain.ErrInvalidCredentials
	}

	result := domain.LoginResult{
		User: domain.Identity{
			ID:       user.ID,
			Username: user.Username,
			Name:     user.Name,
			Position: user.Position,
			Role:     domain.RoleAdmin,
		},
	}

	if s.cfg.AuthJWTSecret != "" {
		signed, err := token.Issue(s.cfg.AuthJWTSecret, user.ID.String(), user.Username, domain.RoleAdmin, token.DefaultTTL)
		if err != nil {
			return domain.LoginResult{}, err
		}
		result.Token = signed
	}

	s.log.Info("admin login", zap.String("username", user.Username))
	return result, nil
}

func (s *Service) UpdateAccount(ctx context.Context, userID string, req domain.UpdateAccountRequest) (domain.Identity, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(userID))
	if err != nil || id == 0 {
		return domain.Identity{}, domain.ErrInvalidID
	}

	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Identity{}, err
	}
	if user == nil {
		return domain.Identity{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name != "" {
			user.Name = name
		}
	}
	if req.Position != nil {
		user.Position = strings.TrimSpace(*req.Position)
	}
	if req.Password != nil {
		if len(*req.Password) < 4 {
			return domain.Identity{}, domain.ErrInvalidPassword
		}
		hashed, err := password.Hash(*req.Password)
		if err != nil {
			return domain.Identity{}, err
		}
		user.PasswordHash = hashed
	}
	user.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, user); err != nil {
		return domain.Identity{}, err
	}

	return domain.Identity{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Position: user.Position,
		Role:     domain.RoleAdmin,
	}, nil
}
