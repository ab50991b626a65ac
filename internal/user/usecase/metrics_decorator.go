package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/identity/internal/auth/domain"
	"github.com/allisson/identity/internal/metrics"
	"github.com/allisson/identity/internal/user/domain"
)

// userUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusFromError(err)
	u.metrics.RecordOperation(ctx, "user", operation, status)
	u.metrics.RecordDuration(ctx, "user", operation, time.Since(start), status)
}

// Register records metrics for user registration.
func (u *userUseCaseWithMetrics) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Register(ctx, input)
	u.record(ctx, "register", start, err)
	return user, err
}

// Authenticate records metrics for password logins.
func (u *userUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	email, password string,
) (*authDomain.Token, error) {
	start := time.Now()
	token, err := u.next.Authenticate(ctx, email, password)
	u.record(ctx, "login", start, err)
	return token, err
}

// GetProfile records metrics for profile reads.
func (u *userUseCaseWithMetrics) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	start := time.Now()
	profile, err := u.next.GetProfile(ctx, userID)
	u.record(ctx, "profile_get", start, err)
	return profile, err
}
