package sqlite

import (
	"context"

	"github.com/MuhammadAbbas01/unibot"
)

// Compile-time interface verification.
var _ unibot.RecordService = (*RecordService)(nil)

const (
	facultyColumns      = "name, designation, department, email, research_interests, bio"
	departmentColumns   = "name, description, head, faculty_count, programs"
	notificationColumns = "title, date, content"
)

// RecordService implements unibot.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// CreateFaculty appends a faculty record.
func (s *RecordService) CreateFaculty(ctx context.Context, f *unibot.Faculty) error {
	if err := f.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO faculty (`+facultyColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		f.Name, f.Designation, f.Department, f.Email, f.ResearchInterests, f.Bio)
	return err
}

// CreateDepartment appends a department record.
func (s *RecordService) CreateDepartment(ctx context.Context, d *unibot.Department) error {
	if err := d.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO departments (`+departmentColumns+`) VALUES (?, ?, ?, ?, ?)`,
		d.Name, d.Description, d.Head, d.FacultyCount, d.Programs)
	return err
}

// CreateNotification appends a notification record.
func (s *RecordService) CreateNotification(ctx context.Context, n *unibot.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO notifications (`+notificationColumns+`) VALUES (?, ?, ?)`,
		n.Title, n.Date, n.Content)
	return err
}

func scanFaculty(row scanner) (*unibot.Faculty, error) {
	var f unibot.Faculty
	if err := row.Scan(&f.Name, &f.Designation, &f.Department, &f.Email, &f.ResearchInterests, &f.Bio); err != nil {
		return nil, err
	}
	return &f, nil
}

func scanDepartment(row scanner) (*unibot.Department, error) {
	var d unibot.Department
	if err := row.Scan(&d.Name, &d.Description, &d.Head, &d.FacultyCount, &d.Programs); err != nil {
		return nil, err
	}
	return &d, nil
}

func scanNotification(row scanner) (*unibot.Notification, error) {
	var n unibot.Notification
	if err := row.Scan(&n.Title, &n.Date, &n.Content); err != nil {
		return nil, err
	}
	return &n, nil
}
