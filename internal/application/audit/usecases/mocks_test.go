package usecases

import (
	"context"

	"abono/internal/domain/audit"
	"abono/internal/shared/logger"
)

type mockRevisionRepository struct {
	AppendFunc       func(ctx context.Context, revision *audit.Revision) error
	ListByEntityFunc func(ctx context.Context, entityType audit.EntityType, entityID uint) ([]*audit.Revision, error)
	GetByNumberFunc  func(ctx context.Context, entityType audit.EntityType, entityID uint, number uint64) (*audit.Revision, error)
	RecentByTypeFunc func(ctx context.Context, entityType audit.EntityType, limit int) ([]*audit.Revision, error)
}

func (m *mockRevisionRepository) Append(ctx context.Context, revision *audit.Revision) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, revision)
	}
	return nil
}

func (m *mockRevisionRepository) ListByEntity(ctx context.Context, entityType audit.EntityType, entityID uint) ([]*audit.Revision, error) {
	if m.ListByEntityFunc != nil {
		return m.ListByEntityFunc(ctx, entityType, entityID)
	}
	return nil, nil
}

func (m *mockRevisionRepository) GetByNumber(ctx context.Context, entityType audit.EntityType, entityID uint, number uint64) (*audit.Revision, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, entityType, entityID, number)
	}
	return nil, nil
}

func (m *mockRevisionRepository) RecentByType(ctx context.Context, entityType audit.EntityType, limit int) ([]*audit.Revision, error) {
	if m.RecentByTypeFunc != nil {
		return m.RecentByTypeFunc(ctx, entityType, limit)
	}
	return nil, nil
}

type mockLogger struct {
	WarnwFunc func(msg string, keysAndValues ...interface{})
}

func (m *mockLogger) Debug(msg string, args ...any) {}
func (m *mockLogger) Info(msg string, args ...any)  {}
func (m *mockLogger) Warn(msg string, args ...any)  {}
func (m *mockLogger) Error(msg string, args ...any) {}

func (m *mockLogger) With(args ...any) logger.Interface  { return m }
func (m *mockLogger) Named(name string) logger.Interface { return m }

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}

func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{}) {
	if m.WarnwFunc != nil {
		m.WarnwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
