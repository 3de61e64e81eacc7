package domain

import (
	"strings"
	"time"
	"unicode"
)

type JobType string

const (
	TypePermanent  JobType = "Permanent"
	TypeTemporary  JobType = "Temporary"
	TypeInternship JobType = "Internship"
)

type Education string

const (
	EducationBachelors Education = "Bachelors"
	EducationMasters   Education = "Masters"
	EducationPhD       Education = "PhD"
)

type Experience string

const (
	ExperienceNone  Experience = "None"
	Experience1to2  Experience = "1 to 2"
	Experience2to5  Experience = "2 to 5"
	Experience5Plus Experience = "5+"
)

var Industries = []string{"Business", "IT", "Banking", "Training", "TCOMM", "Others"}

const (
	maxTitleLength       = 100
	maxDescriptionLength = 1000
	defaultPostingWindow = 7 * 24 * time.Hour
)

// Location is always derived from the job's address via geocoding before the
// job is persisted.
type Location struct {
	Type             string    `json:"type" bson:"type"`
	Coordinates      []float64 `json:"coordinates" bson:"coordinates"`
	FormattedAddress string    `json:"formattedAddress" bson:"formattedAddress"`
	City             string    `json:"city" bson:"city"`
	State            string    `json:"state" bson:"state"`
	Zipcode          string    `json:"zipcode" bson:"zipcode"`
	Country          string    `json:"country" bson:"country"`
}

// Applicant is one entry of a job's applicantApplied list.
type Applicant struct {
	ID     string `json:"id" bson:"id"`
	Resume string `json:"resume" bson:"resume"`
}

type Job struct {
	ID               string      `json:"id" bson:"_id,omitempty"`
	Title            string      `json:"title" bson:"title"`
	Slug             string      `json:"slug" bson:"slug"`
	Description      string      `json:"description" bson:"description"`
	Email            string      `json:"email,omitempty" bson:"email,omitempty"`
	Address          string      `json:"address" bson:"address"`
	Location         Location    `json:"location" bson:"location"`
	Company          string      `json:"company" bson:"company"`
	Industry         []string    `json:"industry" bson:"industry"`
	JobType          JobType     `json:"jobType" bson:"jobType"`
	MinEducation     Education   `json:"minEducation" bson:"minEducation"`
	Positions        int         `json:"positions" bson:"positions"`
	Experience       Experience  `json:"experience" bson:"experience"`
	Salary           float64     `json:"salary" bson:"salary"`
	PostingDate      time.Time   `json:"postingDate" bson:"postingDate"`
	LastDate         time.Time   `json:"lastDate" bson:"lastDate"`
	ApplicantApplied []Applicant `json:"applicantApplied,omitempty" bson:"applicantApplied,omitempty"`
	UserID           string      `json:"user" bson:"user"`
}

// ApplyDefaults fills the schema defaults before first persistence: slug from
// title, positions, posting window.
func (j *Job) ApplyDefaults(now time.Time) {
	j.Slug = Slugify(j.Title)
	if j.Positions <= 0 {
		j.Positions = 1
	}
	if j.PostingDate.IsZero() {
		j.PostingDate = now
	}
	if j.LastDate.IsZero() {
		j.LastDate = now.Add(defaultPostingWindow)
	}
}

// Expired reports whether the application window has closed.
func (j *Job) Expired(now time.Time) bool {
	return j.LastDate.Before(now)
}

// HasApplicant reports whether the given user already applied.
func (j *Job) HasApplicant(userID string) bool {
	for _, a := range j.ApplicantApplied {
		if a.ID == userID {
			return true
		}
	}
	return false
}

// Validate checks the required fields and enum memberships of a job.
func (j *Job) Validate() error {
	switch {
	case strings.TrimSpace(j.Title) == "":
		return NewValidationError("Please enter a job title")
	case len(j.Title) > maxTitleLength:
		return NewValidationError("Job title can not exceed 100 characters")
	case strings.TrimSpace(j.Description) == "":
		return NewValidationError("Please enter a job description")
	case len(j.Description) > maxDescriptionLength:
		return NewValidationError("Job description can not exceed 1000 characters")
	case strings.TrimSpace(j.Address) == "":
		return NewValidationError("Please add an address")
	case strings.TrimSpace(j.Company) == "":
		return NewValidationError("Please add a company name")
	case len(j.Industry) == 0:
		return NewValidationError("Please add an industry")
	case j.Salary <= 0:
		return NewValidationError("Please list an expected salary")
	}
	for _, industry := range j.Industry {
		if !contains(Industries, industry) {
			return NewValidationError("Please select a correct industry option")
		}
	}
	switch j.JobType {
	case TypePermanent, TypeTemporary, TypeInternship:
	default:
		return NewValidationError("Please select a correct job type")
	}
	switch j.MinEducation {
	case EducationBachelors, EducationMasters, EducationPhD:
	default:
		return NewValidationError("Please select a correct education level")
	}
	switch j.Experience {
	case ExperienceNone, Experience1to2, Experience2to5, Experience5Plus:
	default:
		return NewValidationError("Please select a correct experience level")
	}
	if j.Email != "" && !strings.Contains(j.Email, "@") {
		return NewValidationError("Please add a valid contact email address")
	}
	return nil
}

// Slugify lowers the title and collapses everything outside [a-z0-9] into
// single hyphens.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLower(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func contains(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}
