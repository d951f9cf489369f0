package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
	"github.com/dnflvus-wq/engTest-sub000/internal/repository"
)

// UserService handles profile selection and user queries.
type UserService struct {
	users  *repository.UserRepository
	exams  *repository.ExamRepository
	auth   *AuthService
	events *EventQueue
	log    zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	users *repository.UserRepository,
	exams *repository.ExamRepository,
	auth *AuthService,
	events *EventQueue,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		users:  users,
		exams:  exams,
		auth:   auth,
		events: events,
		log:    log.With().Str("component", "user_service").Logger(),
	}
}

// Login selects a profile by name, creating it on first use, and issues
// a profile token. The LOGIN event feeds the achievement worker.
func (s *UserService) Login(ctx context.Context, name string) (*model.LoginResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidProfileName
	}

	user, err := s.users.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	created := false
	if user == nil {
		user, err = s.users.Create(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		created = true
		s.log.Info().Int64("user_id", user.ID).Str("name", user.Name).Msg("profile created")
	}

	token, err := s.auth.GenerateToken(user.ID, user.Name)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	if err := s.events.EnqueueActivityLog(ctx, model.ActivityLog{
		UserID:   user.ID,
		UserName: user.Name,
		Action:   "LOGIN",
	}); err != nil {
		s.log.Warn().Err(err).Msg("enqueue login log failed")
	}
	if err := s.events.EnqueueAchievementCheck(ctx, model.CheckEvent{
		UserID: user.ID,
		Event:  model.CheckEventLogin,
	}); err != nil {
		s.log.Warn().Err(err).Msg("enqueue login check failed")
	}

	return &model.LoginResponse{Token: token, User: *user, Created: created}, nil
}

// List retrieves all profiles.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// Get retrieves one profile.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return user, err
}

// Stats aggregates one profile's exam history.
func (s *UserService) Stats(ctx context.Context, id int64) (*model.UserStats, error) {
	stats, err := s.exams.UserStats(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return stats, err
}
