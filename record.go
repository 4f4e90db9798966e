package unibot

import (
	"context"
	"strings"
)

// Faculty is a structured record for a member of staff.
type Faculty struct {
	Name              string `yaml:"name" json:"name"`
	Designation       string `yaml:"designation" json:"designation,omitempty"`
	Department        string `yaml:"department" json:"department,omitempty"`
	Email             string `yaml:"email" json:"email,omitempty"`
	ResearchInterests string `yaml:"research_interests" json:"research_interests,omitempty"`
	Bio               string `yaml:"bio" json:"bio,omitempty"`
}

// Validate returns an error if the record contains invalid fields.
func (f *Faculty) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return Errorf(EINVALID, "faculty name required")
	}
	return nil
}

// Department is a structured record for an academic department.
type Department struct {
	Name         string `yaml:"name" json:"name"`
	Description  string `yaml:"description" json:"description,omitempty"`
	Head         string `yaml:"head" json:"head,omitempty"`
	FacultyCount int    `yaml:"faculty_count" json:"faculty_count,omitempty"`
	Programs     string `yaml:"programs" json:"programs,omitempty"`
}

// Validate returns an error if the record contains invalid fields.
func (d *Department) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return Errorf(EINVALID, "department name required")
	}
	if d.FacultyCount < 0 {
		return Errorf(EINVALID, "department %q: faculty count must not be negative", d.Name)
	}
	return nil
}

// Notification is a dated university announcement.
// Date is kept as published; it is parsed only for ordering.
type Notification struct {
	Title   string `yaml:"title" json:"title"`
	Date    string `yaml:"date" json:"date,omitempty"`
	Content string `yaml:"content" json:"content,omitempty"`
}

// Validate returns an error if the record contains invalid fields.
func (n *Notification) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return Errorf(EINVALID, "notification title required")
	}
	return nil
}

// RecordService represents a service for appending structured records.
type RecordService interface {
	CreateFaculty(ctx context.Context, f *Faculty) error
	CreateDepartment(ctx context.Context, d *Department) error
	CreateNotification(ctx context.Context, n *Notification) error
}
