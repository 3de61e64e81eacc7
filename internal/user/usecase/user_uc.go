package usecase

import (
	"context"
	"errors"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobee/jobee-api/internal/apifilters"
	"github.com/jobee/jobee-api/internal/apperror"
	"github.com/jobee/jobee-api/internal/auth"
	jobdomain "github.com/jobee/jobee-api/internal/job/domain"
	"github.com/jobee/jobee-api/internal/user/domain"
)

// Profile returns the user together with the jobs they published. The
// relation is an explicit query by owner id, not a stored field.
func (u *UserUsecase) Profile(ctx context.Context, userID string) (*domain.User, []*jobdomain.Job, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, mapUserError(err)
	}
	jobs, err := u.jobs.FindByOwner(ctx, userID)
	if err != nil {
		u.logger.Error("failed to load published jobs", zap.String("userID", userID), zap.Error(err))
		return nil, nil, err
	}
	return user, jobs, nil
}

// UpdateProfile changes name and email only.
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID, name, email string) (*domain.User, error) {
	if name == "" {
		return nil, apperror.Validation(domain.ErrNameRequired.Error())
	}
	if !domain.ValidEmail(email) {
		return nil, apperror.Validation(domain.ErrInvalidEmail.Error())
	}

	if err := u.users.UpdateProfile(ctx, userID, name, email); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, apperror.Conflict("An account with this email already exists")
		}
		return nil, mapUserError(err)
	}
	return u.users.FindByID(ctx, userID)
}

// UpdatePassword verifies the current password before setting the new one.
func (u *UserUsecase) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (string, error) {
	user, err := u.users.FindByIDWithPassword(ctx, userID)
	if err != nil {
		return "", mapUserError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return "", apperror.Unauthenticated("Current password is incorrect")
	}
	if len(newPassword) < 8 {
		return "", apperror.Validation(domain.ErrPasswordTooShort.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	if err := u.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return "", mapUserError(err)
	}

	u.logger.Info("password updated", zap.String("userID", userID))
	return u.jwt.Sign(userID)
}

// DeleteAccount removes the caller's own account with full cascade.
func (u *UserUsecase) DeleteAccount(ctx context.Context, userID string) error {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return mapUserError(err)
	}
	return u.deleteUserData(ctx, user)
}

// AdminDeleteUser removes any account with full cascade. Admin only.
func (u *UserUsecase) AdminDeleteUser(ctx context.Context, callerRole, targetID string) error {
	if err := auth.RequireRole(callerRole, domain.RoleAdmin); err != nil {
		return err
	}
	user, err := u.users.FindByID(ctx, targetID)
	if err != nil {
		return mapUserError(err)
	}
	return u.deleteUserData(ctx, user)
}

// AdminListUsers pages through all accounts via the filter builder. Admin
// only.
func (u *UserUsecase) AdminListUsers(ctx context.Context, callerRole string, params url.Values) ([]*domain.User, error) {
	if err := auth.RequireRole(callerRole, domain.RoleAdmin); err != nil {
		return nil, err
	}
	query := apifilters.Build(params, "createdAt")
	users, err := u.users.Search(ctx, query)
	if err != nil {
		u.logger.Error("failed to list users", zap.Error(err))
		return nil, err
	}
	return users, nil
}

// deleteUserData applies the deletion cascade before removing the account:
// employers lose their job postings; applicants are pulled out of every job
// they applied to, resume files included. File removals are best effort.
func (u *UserUsecase) deleteUserData(ctx context.Context, user *domain.User) error {
	switch user.Role {
	case domain.RoleEmployer:
		deleted, err := u.jobs.DeleteByOwner(ctx, user.ID)
		if err != nil {
			u.logger.Error("failed to delete owned jobs", zap.String("userID", user.ID), zap.Error(err))
			return err
		}
		u.logger.Info("deleted owned jobs", zap.String("userID", user.ID), zap.Int64("count", deleted))

	case domain.RoleUser:
		applied, err := u.jobs.FindByApplicant(ctx, user.ID)
		if err != nil {
			u.logger.Error("failed to load applied jobs", zap.String("userID", user.ID), zap.Error(err))
			return err
		}
		for _, job := range applied {
			for _, applicant := range job.ApplicantApplied {
				if applicant.ID != user.ID {
					continue
				}
				if err := u.storage.Remove(ctx, applicant.Resume); err != nil {
					u.logger.Warn("failed to remove resume file",
						zap.String("jobID", job.ID),
						zap.String("resume", applicant.Resume),
						zap.Error(err))
				}
			}
			if err := u.jobs.PullApplicant(ctx, job.ID, user.ID); err != nil {
				u.logger.Error("failed to pull applicant from job",
					zap.String("jobID", job.ID),
					zap.String("userID", user.ID),
					zap.Error(err))
				return err
			}
		}
	}

	if err := u.users.Delete(ctx, user.ID); err != nil {
		return mapUserError(err)
	}
	u.logger.Info("user deleted", zap.String("userID", user.ID), zap.String("role", user.Role))
	return nil
}

func mapUserError(err error) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return apperror.NotFound("User not found")
	}
	return err
}
