package repository

import (
	"elevate/internal/models"
	"elevate/internal/storage"
)

type ModuleProgress struct {
	*Repository[models.ModuleProgress]
}

func progressKey(userName, moduleID string) string {
	return userName + "|" + moduleID
}

func NewModuleProgress(store *storage.RecordStore) *ModuleProgress {
	return &ModuleProgress{New(store, Config[models.ModuleProgress]{
		Key:   models.KeyModuleProgress,
		KeyOf: func(p models.ModuleProgress) string { return progressKey(p.UserName, p.ModuleID) },
		Order: Append,
	})}
}

// Record upserts the progress of userName on moduleID. Progress is clamped
// to 0..100; the first time it reaches 100 the completion time is stamped.
func (m *ModuleProgress) Record(userName, moduleID string, progress int) (models.ModuleProgress, error) {
	progress = min(max(progress, 0), 100)
	key := progressKey(userName, moduleID)

	var result models.ModuleProgress
	_, err := m.Modify(func(current []models.ModuleProgress) ([]models.ModuleProgress, bool) {
		for i := range current {
			if progressKey(current[i].UserName, current[i].ModuleID) == key {
				current[i].Progress = progress
				if progress == 100 && current[i].CompletedAt == "" {
					current[i].CompletedAt = timestamp()
				}
				if progress < 100 {
					current[i].CompletedAt = ""
				}
				result = current[i]
				return current, true
			}
		}
		result = models.ModuleProgress{UserName: userName, ModuleID: moduleID, Progress: progress}
		if progress == 100 {
			result.CompletedAt = timestamp()
		}
		return append(current, result), true
	})
	return result, err
}

func (m *ModuleProgress) ListByUser(userName string) []models.ModuleProgress {
	return m.List(func(p models.ModuleProgress) bool { return p.UserName == userName })
}

// CompletedModules resolves the user's completed modules against catalog.
func (m *ModuleProgress) CompletedModules(userName string, catalog []models.SkillModule) []models.SkillModule {
	done := make(map[string]bool)
	for _, p := range m.ListByUser(userName) {
		if p.Completed() {
			done[p.ModuleID] = true
		}
	}
	out := make([]models.SkillModule, 0, len(done))
	for _, mod := range catalog {
		if done[mod.ID] {
			out = append(out, mod)
		}
	}
	return out
}
