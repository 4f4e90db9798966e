package mock

import (
	"context"

	"github.com/MuhammadAbbas01/unibot"
)

// Compile-time interface verification.
var (
	_ unibot.KnowledgeStore = (*KnowledgeStore)(nil)
	_ unibot.RecordService  = (*RecordService)(nil)
)

// KnowledgeStore is a mock implementation of unibot.KnowledgeStore.
type KnowledgeStore struct {
	LoadRecordsFn func(ctx context.Context) (*unibot.Records, error)
}

func (s *KnowledgeStore) LoadRecords(ctx context.Context) (*unibot.Records, error) {
	return s.LoadRecordsFn(ctx)
}

// RecordService is a mock implementation of unibot.RecordService.
type RecordService struct {
	CreateFacultyFn      func(ctx context.Context, f *unibot.Faculty) error
	CreateDepartmentFn   func(ctx context.Context, d *unibot.Department) error
	CreateNotificationFn func(ctx context.Context, n *unibot.Notification) error
}

func (s *RecordService) CreateFaculty(ctx context.Context, f *unibot.Faculty) error {
	return s.CreateFacultyFn(ctx, f)
}

func (s *RecordService) CreateDepartment(ctx context.Context, d *unibot.Department) error {
	return s.CreateDepartmentFn(ctx, d)
}

func (s *RecordService) CreateNotification(ctx context.Context, n *unibot.Notification) error {
	return s.CreateNotificationFn(ctx, n)
}
