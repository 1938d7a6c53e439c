package repository

import (
	"elevate/internal/models"
	"elevate/internal/storage"
)

type SkillModules struct {
	*Repository[models.SkillModule]
}

func NewSkillModules(store *storage.RecordStore) *SkillModules {
	return &SkillModules{New(store, Config[models.SkillModule]{
		Key:    models.KeyModules,
		Prefix: "mod",
		KeyOf:  func(m models.SkillModule) string { return m.ID },
		SetID:  func(m *models.SkillModule, id string) { m.ID = id },
		Order:  Append,
		Seed:   models.DefaultSkillModules,
	})}
}
