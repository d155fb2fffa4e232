package mapper

import (
	"maplemed-support-be/internal/model"
	"maplemed-support-be/pkg/store"
	"maplemed-support-be/pkg/support/memory"

	"gorm.io/datatypes"
)

type ProfileMapper struct{}

func NewProfileMapper() *ProfileMapper {
	return &ProfileMapper{}
}

func (m *ProfileMapper) ToStore(p *model.UserProfile) *store.Profile {
	if p == nil {
		return nil
	}
	return &store.Profile{
		UserID:     p.UserId,
		Values:     memory.Map(p.Values.Data()).Clone(),
		Persistent: memory.Map(p.Persistent.Data()).Clone(),
		UpdatedAt:  p.UpdatedAt,
	}
}

func (m *ProfileMapper) ToModel(p *store.Profile) *model.UserProfile {
	if p == nil {
		return nil
	}
	return &model.UserProfile{
		UserId:     p.UserID,
		Values:     datatypes.NewJSONType(map[string]string(p.Values.Clone())),
		Persistent: datatypes.NewJSONType(map[string]string(p.Persistent.Clone())),
		UpdatedAt:  p.UpdatedAt,
	}
}
