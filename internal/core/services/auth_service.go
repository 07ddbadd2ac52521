package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crickclub/club_funds_app/internal/apperrors"
	"github.com/crickclub/club_funds_app/internal/core/domain"
	portsrepo "github.com/crickclub/club_funds_app/internal/core/ports/repositories"
	"github.com/crickclub/club_funds_app/internal/middleware"
	"github.com/crickclub/club_funds_app/internal/platform/config"
	"github.com/crickclub/club_funds_app/internal/utils"
)

// AuthService exchanges a roster member id plus the shared club password for
// a role-bearing JWT. Roles come from configuration: one admin, one fund
// manager, one match fund manager; everyone else on the roster is a member.
type AuthService struct {
	rosterRepo portsrepo.RosterRepository
	cfg        *config.Config
}

// NewAuthService builds the auth service.
func NewAuthService(rosterRepo portsrepo.RosterRepository, cfg *config.Config) *AuthService {
	return &AuthService{rosterRepo: rosterRepo, cfg: cfg}
}

// Login validates the caller against the roster and the club password hash
// and issues a signed token carrying the resolved role.
func (s *AuthService) Login(ctx context.Context, playerID, password string) (string, domain.Role, time.Time, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	players, err := s.rosterRepo.GetRoster(ctx)
	if err != nil {
		return "", "", time.Time{}, err
	}
	onRoster := false
	for _, p := range players {
		if p.PlayerID == playerID {
			onRoster = true
			break
		}
	}
	if !onRoster {
		logger.Warn("Login attempt for unknown player", slog.String("player_id", playerID))
		return "", "", time.Time{}, fmt.Errorf("%w: unknown player", apperrors.ErrUnauthorized)
	}

	if !utils.CheckPasswordHash(password, s.cfg.ClubPasswordHash) {
		logger.Warn("Login attempt with wrong password", slog.String("player_id", playerID))
		return "", "", time.Time{}, fmt.Errorf("%w: wrong password", apperrors.ErrUnauthorized)
	}

	role := s.resolveRole(playerID)
	token, expiresAt, err := utils.GenerateJWT(playerID, role, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	logger.Info("Login succeeded", slog.String("player_id", playerID), slog.String("role", string(role)))
	return token, role, expiresAt, nil
}

func (s *AuthService) resolveRole(playerID string) domain.Role {
	switch playerID {
	case s.cfg.AdminID:
		return domain.RoleAdmin
	case s.cfg.FundManagerID:
		return domain.RoleFundManager
	case s.cfg.MatchFundManagerID:
		return domain.RoleMatchFundManager
	default:
		return domain.RoleMember
	}
}
