package implementation

import (
	"context"
	"errors"

	"maplemed-support-be/internal/mapper"
	"maplemed-support-be/internal/model"
	"maplemed-support-be/internal/repository/contract"
	"maplemed-support-be/pkg/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProfileMapper
}

func NewProfileRepository(db *gorm.DB) contract.ProfileRepository {
	return &ProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewProfileMapper(),
	}
}

func (r *ProfileRepositoryImpl) FindByUserID(ctx context.Context, userID string) (*store.Profile, error) {
	var m model.UserProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToStore(&m), nil
}

// Save upserts on user_id; both maps are replaced wholesale.
func (r *ProfileRepositoryImpl) Save(ctx context.Context, profile *store.Profile) error {
	m := r.mapper.ToModel(profile)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"profile_values", "persistent_memory", "updated_at"}),
	}).Create(m).Error
}

func (r *ProfileRepositoryImpl) Delete(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.UserProfile{}).Error
}
