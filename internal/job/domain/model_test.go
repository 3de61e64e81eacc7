package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validJob() *Job {
	return &Job{
		Title:        "Go Developer",
		Description:  "Build backend services",
		Address:      "200 Main St, Boston, MA",
		Company:      "Acme",
		Industry:     []string{"IT"},
		JobType:      TypePermanent,
		MinEducation: EducationBachelors,
		Experience:   Experience1to2,
		Salary:       95000,
		UserID:       "owner-1",
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Go Developer", "go-developer"},
		{"Senior C++ Engineer!!", "senior-c-engineer"},
		{"  spaced   out  ", "spaced-out"},
		{"Node.js / React Dev", "node-js-react-dev"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.title))
	}
}

func TestApplyDefaults(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	job := validJob()
	job.ApplyDefaults(now)

	assert.Equal(t, "go-developer", job.Slug)
	assert.Equal(t, 1, job.Positions)
	assert.Equal(t, now, job.PostingDate)
	assert.Equal(t, now.AddDate(0, 0, 7), job.LastDate)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	now := time.Now()
	job := validJob()
	job.Positions = 4
	job.LastDate = now.AddDate(0, 1, 0)
	job.ApplyDefaults(now)

	assert.Equal(t, 4, job.Positions)
	assert.Equal(t, now.AddDate(0, 1, 0), job.LastDate)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validJob().Validate())

	tests := []struct {
		name   string
		mutate func(*Job)
	}{
		{"missing title", func(j *Job) { j.Title = "" }},
		{"title too long", func(j *Job) { j.Title = string(make([]byte, 101)) }},
		{"missing description", func(j *Job) { j.Description = "" }},
		{"missing address", func(j *Job) { j.Address = "" }},
		{"missing company", func(j *Job) { j.Company = "" }},
		{"missing industry", func(j *Job) { j.Industry = nil }},
		{"unknown industry", func(j *Job) { j.Industry = []string{"Farming"} }},
		{"unknown job type", func(j *Job) { j.JobType = "Gig" }},
		{"unknown education", func(j *Job) { j.MinEducation = "Bootcamp" }},
		{"unknown experience", func(j *Job) { j.Experience = "10+" }},
		{"missing salary", func(j *Job) { j.Salary = 0 }},
		{"bad contact email", func(j *Job) { j.Email = "not-an-email" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := validJob()
			tt.mutate(job)
			err := job.Validate()
			assert.True(t, errors.Is(err, ErrInvalidJobData), "expected validation error, got %v", err)
		})
	}
}

func TestExpiredAndHasApplicant(t *testing.T) {
	now := time.Now()
	job := validJob()
	job.LastDate = now.Add(-time.Hour)
	assert.True(t, job.Expired(now))

	job.LastDate = now.Add(time.Hour)
	assert.False(t, job.Expired(now))

	job.ApplicantApplied = []Applicant{{ID: "u1", Resume: "alice_1.pdf"}}
	assert.True(t, job.HasApplicant("u1"))
	assert.False(t, job.HasApplicant("u2"))
}
