package usecase

import (
	"context"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/jobee/jobee-api/internal/apperror"
	"github.com/jobee/jobee-api/internal/auth"
	"github.com/jobee/jobee-api/internal/job/domain"
	userdomain "github.com/jobee/jobee-api/internal/user/domain"
)

var resumeContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// Apply records the caller's application with an uploaded resume. The resume
// object name is deterministic: {sanitizedUserName}_{jobID}{ext}, so a user's
// file for a given job is always addressable.
func (u *JobUsecase) Apply(ctx context.Context, callerID, callerName, jobID, fileName string, data []byte) (*domain.Applicant, error) {
	job, err := u.repo.FindByIDWithApplicants(ctx, jobID)
	if err != nil {
		return nil, mapJobError(err)
	}

	if job.Expired(time.Now()) {
		return nil, apperror.Validation("You can not apply to this job, the application date is over")
	}
	if job.HasApplicant(callerID) {
		return nil, apperror.Conflict("You have already applied to this job")
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	contentType, ok := resumeContentTypes[ext]
	if !ok {
		return nil, apperror.Validation("Please upload your resume as a .pdf or .docx file")
	}
	if len(data) == 0 {
		return nil, apperror.Validation("Please upload a resume file")
	}
	if int64(len(data)) > u.maxResumeSize {
		return nil, apperror.Validation("Please upload a resume smaller than the allowed size")
	}

	objectName := sanitizeName(callerName) + "_" + jobID + ext
	if err := u.storage.Upload(ctx, objectName, data, contentType); err != nil {
		u.logger.Error("resume upload failed",
			zap.String("jobID", jobID),
			zap.String("object", objectName),
			zap.Error(err))
		return nil, apperror.Internal("Resume upload failed, please try again")
	}

	applicant := domain.Applicant{ID: callerID, Resume: objectName}
	if err := u.repo.PushApplicant(ctx, jobID, applicant); err != nil {
		u.logger.Error("failed to record application", zap.String("jobID", jobID), zap.Error(err))
		return nil, mapJobError(err)
	}

	if err := u.publisher.Publish(ctx, SubjectJobApplied, map[string]string{
		"jobId":  jobID,
		"userId": callerID,
	}); err != nil {
		u.logger.Warn("failed to publish job applied event", zap.String("jobID", jobID), zap.Error(err))
	}
	u.logger.Info("application recorded", zap.String("jobID", jobID), zap.String("userID", callerID))
	return &applicant, nil
}

// Applied returns every job the caller has applied to, applicant list
// included. Only the user role applies to jobs.
func (u *JobUsecase) Applied(ctx context.Context, callerID, callerRole string) ([]*domain.Job, error) {
	if err := auth.RequireRole(callerRole, userdomain.RoleUser); err != nil {
		return nil, err
	}
	return u.repo.FindByApplicant(ctx, callerID)
}

// sanitizeName collapses anything outside letters and digits into single
// underscores so the name is safe as an object key.
func sanitizeName(name string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore:
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
