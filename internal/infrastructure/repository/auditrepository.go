package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"abono/internal/domain/audit"
	"abono/internal/infrastructure/persistence/models"
	"abono/internal/shared/db"
	"abono/internal/shared/logger"
)

// AuditRepositoryImpl is the revision store. It implements both the
// Recorder port the entity repositories append through and the query-side
// RevisionRepository. The table's auto-increment primary key is the
// revision number, so numbering is non-decreasing and never reused
// without any counter of our own.
type AuditRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewAuditRepository(gormDB *gorm.DB, logger logger.Interface) *AuditRepositoryImpl {
	return &AuditRepositoryImpl{
		db:     gormDB,
		logger: logger,
	}
}

// Record appends one revision inside the caller's transaction when the
// context carries one.
func (r *AuditRepositoryImpl) Record(ctx context.Context, entityType audit.EntityType, entityID uint, kind audit.ChangeKind, snapshot any) error {
	raw, err := audit.MarshalSnapshot(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal audit snapshot: %w", err)
	}

	revision, err := audit.NewRevision(entityType, entityID, kind, raw)
	if err != nil {
		return fmt.Errorf("failed to build revision: %w", err)
	}

	return r.Append(ctx, revision)
}

func (r *AuditRepositoryImpl) Append(ctx context.Context, revision *audit.Revision) error {
	model := &models.AuditRevisionModel{
		Timestamp:  revision.Timestamp(),
		EntityType: string(revision.EntityType()),
		EntityID:   revision.EntityID(),
		ChangeKind: string(revision.Kind()),
		Snapshot:   []byte(revision.Snapshot()),
	}

	if err := db.FromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to append audit revision",
			"error", err,
			"entity_type", revision.EntityType(),
			"entity_id", revision.EntityID(),
		)
		return fmt.Errorf("failed to append audit revision: %w", err)
	}

	return revision.SetNumber(model.ID)
}

func (r *AuditRepositoryImpl) ListByEntity(ctx context.Context, entityType audit.EntityType, entityID uint) ([]*audit.Revision, error) {
	var revisionModels []*models.AuditRevisionModel
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", string(entityType), entityID).
		Order("id ASC").
		Find(&revisionModels).Error
	if err != nil {
		r.logger.Errorw("failed to list audit revisions", "error", err, "entity_type", entityType, "entity_id", entityID)
		return nil, fmt.Errorf("failed to list audit revisions: %w", err)
	}

	return r.toEntities(revisionModels)
}

func (r *AuditRepositoryImpl) GetByNumber(ctx context.Context, entityType audit.EntityType, entityID uint, number uint64) (*audit.Revision, error) {
	var model models.AuditRevisionModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND entity_type = ? AND entity_id = ?", number, string(entityType), entityID).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get audit revision", "error", err, "revision", number)
		return nil, fmt.Errorf("failed to get audit revision: %w", err)
	}

	return r.toEntity(&model)
}

func (r *AuditRepositoryImpl) RecentByType(ctx context.Context, entityType audit.EntityType, limit int) ([]*audit.Revision, error) {
	var revisionModels []*models.AuditRevisionModel
	err := r.db.WithContext(ctx).
		Where("entity_type = ?", string(entityType)).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&revisionModels).Error
	if err != nil {
		r.logger.Errorw("failed to list recent audit revisions", "error", err, "entity_type", entityType)
		return nil, fmt.Errorf("failed to list recent audit revisions: %w", err)
	}

	return r.toEntities(revisionModels)
}

func (r *AuditRepositoryImpl) toEntity(model *models.AuditRevisionModel) (*audit.Revision, error) {
	return audit.ReconstructRevision(
		model.ID,
		model.Timestamp,
		audit.EntityType(model.EntityType),
		model.EntityID,
		audit.ChangeKind(model.ChangeKind),
		[]byte(model.Snapshot),
	)
}

func (r *AuditRepositoryImpl) toEntities(revisionModels []*models.AuditRevisionModel) ([]*audit.Revision, error) {
	revisions := make([]*audit.Revision, 0, len(revisionModels))
	for _, model := range revisionModels {
		revision, err := r.toEntity(model)
		if err != nil {
			return nil, err
		}
		revisions = append(revisions, revision)
	}
	return revisions, nil
}
