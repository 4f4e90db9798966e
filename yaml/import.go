// Package yaml imports structured records (faculty, departments,
// notifications) from YAML files into a unibot.RecordService.
package yaml

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MuhammadAbbas01/unibot"
	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a records file.
type File struct {
	Faculty       []*unibot.Faculty      `yaml:"faculty"`
	Departments   []*unibot.Department   `yaml:"departments"`
	Notifications []*unibot.Notification `yaml:"notifications"`
}

// Counts reports how many records of each kind were imported.
type Counts struct {
	Faculty       int
	Departments   int
	Notifications int
}

// Decode reads a records file. Unknown keys are rejected so that a typo in
// a field name fails loudly instead of dropping data. Every record is
// validated before anything is returned.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, unibot.Errorf(unibot.EINVALID, "parse records: %v", err)
	}

	for i, rec := range f.Faculty {
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("faculty[%d]: %w", i, err)
		}
	}
	for i, rec := range f.Departments {
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("departments[%d]: %w", i, err)
		}
	}
	for i, rec := range f.Notifications {
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("notifications[%d]: %w", i, err)
		}
	}
	return &f, nil
}

// Import decodes r and appends its records to svc in file order.
func Import(ctx context.Context, r io.Reader, svc unibot.RecordService) (Counts, error) {
	var counts Counts

	f, err := Decode(r)
	if err != nil {
		return counts, err
	}

	for _, rec := range f.Faculty {
		if err := svc.CreateFaculty(ctx, rec); err != nil {
			return counts, fmt.Errorf("create faculty %q: %w", rec.Name, err)
		}
		counts.Faculty++
	}
	for _, rec := range f.Departments {
		if err := svc.CreateDepartment(ctx, rec); err != nil {
			return counts, fmt.Errorf("create department %q: %w", rec.Name, err)
		}
		counts.Departments++
	}
	for _, rec := range f.Notifications {
		if err := svc.CreateNotification(ctx, rec); err != nil {
			return counts, fmt.Errorf("create notification %q: %w", rec.Title, err)
		}
		counts.Notifications++
	}
	return counts, nil
}
