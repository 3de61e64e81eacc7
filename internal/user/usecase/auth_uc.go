package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobee/jobee-api/internal/apperror"
	"github.com/jobee/jobee-api/internal/auth"
	jobdomain "github.com/jobee/jobee-api/internal/job/domain"
	"github.com/jobee/jobee-api/internal/user/domain"
)

const SubjectUserRegistered = "users.registered"

// Mailer delivers transactional mail; only the reset flow uses it today.
type Mailer interface {
	Send(to, subject, body string) error
}

// EventPublisher emits best-effort domain events.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

type UserUsecase struct {
	users     domain.UserRepository
	jobs      jobdomain.JobRepository
	storage   jobdomain.ResumeStorage
	mailer    Mailer
	jwt       *auth.JWTManager
	publisher EventPublisher
	logger    *zap.Logger
}

func NewUserUsecase(
	users domain.UserRepository,
	jobs jobdomain.JobRepository,
	storage jobdomain.ResumeStorage,
	mailer Mailer,
	jwt *auth.JWTManager,
	publisher EventPublisher,
	logger *zap.Logger,
) *UserUsecase {
	return &UserUsecase{
		users:     users,
		jobs:      jobs,
		storage:   storage,
		mailer:    mailer,
		jwt:       jwt,
		publisher: publisher,
		logger:    logger.Named("UserUsecase"),
	}
}

// Register creates an account and returns it with a fresh token. An empty
// role defaults to "user"; the admin role is never accepted from a client.
func (u *UserUsecase) Register(ctx context.Context, name, email, password, role string) (*domain.User, string, error) {
	if role == "" {
		role = domain.RoleUser
	}
	if err := domain.ValidateRegistration(name, email, password, role); err != nil {
		return nil, "", apperror.Validation(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		u.logger.Error("failed to hash password", zap.Error(err))
		return nil, "", err
	}

	user := &domain.User{
		Name:      name,
		Email:     email,
		Role:      role,
		Password:  string(hash),
		CreatedAt: time.Now(),
	}
	id, err := u.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, "", apperror.Conflict("An account with this email already exists")
		}
		u.logger.Error("failed to create user", zap.String("email", email), zap.Error(err))
		return nil, "", err
	}
	user.ID = id

	token, err := u.jwt.Sign(id)
	if err != nil {
		u.logger.Error("failed to sign token", zap.String("userID", id), zap.Error(err))
		return nil, "", err
	}

	if err := u.publisher.Publish(ctx, SubjectUserRegistered, map[string]string{
		"userId": id,
		"role":   role,
	}); err != nil {
		u.logger.Warn("failed to publish user registered event", zap.String("userID", id), zap.Error(err))
	}
	u.logger.Info("user registered", zap.String("userID", id), zap.String("role", role))
	return user, token, nil
}

// Login verifies the credentials and returns the user with a fresh token.
// Both an unknown email and a wrong password produce the same error so the
// response never reveals which check failed.
func (u *UserUsecase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", apperror.Validation("Please enter email and password")
	}

	invalidCredentials := apperror.Unauthenticated("Invalid email or password")

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", invalidCredentials
		}
		u.logger.Error("failed to look up user for login", zap.Error(err))
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", invalidCredentials
	}

	token, err := u.jwt.Sign(user.ID)
	if err != nil {
		u.logger.Error("failed to sign token", zap.String("userID", user.ID), zap.Error(err))
		return nil, "", err
	}
	return user, token, nil
}

// ForgotPassword stores a hashed reset token and mails the raw one to the
// account address. If the mail can not be delivered the stored token is
// rolled back so no orphaned token remains.
func (u *UserUsecase) ForgotPassword(ctx context.Context, email, resetURLBase string) error {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return apperror.NotFound("No user found with this email")
		}
		return err
	}

	rawToken, err := user.GenerateResetToken(time.Now())
	if err != nil {
		u.logger.Error("failed to generate reset token", zap.String("userID", user.ID), zap.Error(err))
		return err
	}
	if err := u.users.SetResetToken(ctx, user.ID, user.ResetPasswordToken, *user.ResetPasswordExpire); err != nil {
		u.logger.Error("failed to store reset token", zap.String("userID", user.ID), zap.Error(err))
		return err
	}

	resetURL := resetURLBase + "/api/v1/password/reset/" + rawToken
	body := fmt.Sprintf("Your password reset link is:\n\n%s\n\nIf you did not request this, please ignore this email.", resetURL)
	if err := u.mailer.Send(user.Email, "Jobee Password Recovery", body); err != nil {
		u.logger.Error("reset email delivery failed, rolling back token", zap.String("userID", user.ID), zap.Error(err))
		if clearErr := u.users.ClearResetToken(ctx, user.ID); clearErr != nil {
			u.logger.Error("failed to clear reset token after delivery failure", zap.String("userID", user.ID), zap.Error(clearErr))
		}
		return apperror.Internal("Email could not be sent")
	}

	u.logger.Info("reset email sent", zap.String("userID", user.ID))
	return nil
}

// ResetPassword sets a new password for the account holding the unexpired
// token and clears the token fields.
func (u *UserUsecase) ResetPassword(ctx context.Context, rawToken, newPassword string) (*domain.User, string, error) {
	user, err := u.users.FindByResetToken(ctx, domain.HashResetToken(rawToken), time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", apperror.Validation("Password reset token is invalid or has expired")
		}
		return nil, "", err
	}

	if len(newPassword) < 8 {
		return nil, "", apperror.Validation(domain.ErrPasswordTooShort.Error())
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	if err := u.users.ResetPassword(ctx, user.ID, string(hash)); err != nil {
		u.logger.Error("failed to reset password", zap.String("userID", user.ID), zap.Error(err))
		return nil, "", err
	}

	token, err := u.jwt.Sign(user.ID)
	if err != nil {
		return nil, "", err
	}
	u.logger.Info("password reset", zap.String("userID", user.ID))
	return user, token, nil
}
