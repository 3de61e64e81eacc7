package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jobee/jobee-api/internal/apperror"
	"github.com/jobee/jobee-api/internal/job/domain"
	"github.com/jobee/jobee-api/internal/job/usecase"
	"github.com/jobee/jobee-api/internal/platform/metrics"
)

type JobHandler struct {
	jobs    *usecase.JobUsecase
	metrics *metrics.MetricsManager
	logger  *zap.Logger

	maxResumeSize int64
}

func NewJobHandler(jobs *usecase.JobUsecase, mm *metrics.MetricsManager, maxResumeSize int64, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		jobs:          jobs,
		metrics:       mm,
		maxResumeSize: maxResumeSize,
		logger:        logger.Named("JobHandler"),
	}
}

// List serves the filterable, sortable, paginated job listing.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.List(r.Context(), r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "", map[string]interface{}{
		"results": len(jobs),
		"jobs":    jobs,
	})
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.Get(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "", job)
}

func (h *JobHandler) InRadius(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.InRadius(r.Context(), chi.URLParam(r, "zipcode"), chi.URLParam(r, "distance"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "", map[string]interface{}{
		"results": len(jobs),
		"jobs":    jobs,
	})
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var job domain.Job
	if err := decodeBody(r, &job); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.jobs.Create(r.Context(), callerID(r), callerRole(r), &job)
	if err != nil {
		writeError(w, err)
		return
	}
	h.metrics.JobsCreatedTotal.Inc()
	writeJSON(w, http.StatusCreated, "Job created successfully", created)
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	var job domain.Job
	if err := decodeBody(r, &job); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.jobs.Update(r.Context(), callerID(r), callerRole(r), chi.URLParam(r, "id"), &job)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Job updated successfully", updated)
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.jobs.Delete(r.Context(), callerID(r), callerRole(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	h.metrics.JobsDeletedTotal.Inc()
	writeJSON(w, http.StatusOK, "Job deleted successfully", nil)
}

func (h *JobHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.jobs.Stats(r.Context(), chi.URLParam(r, "topic"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "", stats)
}

// Apply accepts a multipart upload with the resume under the "file" field.
func (h *JobHandler) Apply(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxResumeSize); err != nil {
		writeError(w, apperror.Validation("Please upload a resume file"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, apperror.Validation("Please upload a resume file"))
		return
	}
	defer file.Close()

	// One byte over the limit makes the read fail; the exact size check
	// happens in the usecase.
	data, err := io.ReadAll(io.LimitReader(file, h.maxResumeSize+1))
	if err != nil {
		h.logger.Error("failed to read resume upload", zap.Error(err))
		writeError(w, apperror.Internal("Failed to read the uploaded file"))
		return
	}

	applicant, err := h.jobs.Apply(r.Context(), callerID(r), callerName(r), chi.URLParam(r, "id"), header.Filename, data)
	if err != nil {
		writeError(w, err)
		return
	}
	h.metrics.ApplicationsTotal.Inc()
	writeJSON(w, http.StatusOK, "Applied to job successfully", applicant)
}

// Applied lists the jobs the caller has applied to.
func (h *JobHandler) Applied(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.Applied(r.Context(), callerID(r), callerRole(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "", map[string]interface{}{
		"results": len(jobs),
		"jobs":    jobs,
	})
}

// Published lists the jobs the caller has posted.
func (h *JobHandler) Published(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.Published(r.Context(), callerID(r), callerRole(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "", map[string]interface{}{
		"results": len(jobs),
		"jobs":    jobs,
	})
}
