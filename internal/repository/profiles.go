package repository

import (
	"elevate/internal/models"
	"elevate/internal/storage"
)

type Profiles struct {
	*Repository[models.StudentProfile]
}

func NewProfiles(store *storage.RecordStore) *Profiles {
	return &Profiles{New(store, Config[models.StudentProfile]{
		Key:   models.KeyProfiles,
		KeyOf: func(p models.StudentProfile) string { return p.UserName },
		Order: Append,
	})}
}

func newProfile(userName string) models.StudentProfile {
	return models.StudentProfile{
		UserName:       userName,
		Skills:         []string{},
		Interests:      []string{},
		Projects:       []string{},
		Certifications: []string{},
		Deadlines:      []models.Deadline{},
	}
}

// GetOrCreate finds the profile of userName, creating an empty one if needed.
func (p *Profiles) GetOrCreate(userName string) (models.StudentProfile, error) {
	var profile models.StudentProfile
	_, err := p.Modify(func(current []models.StudentProfile) ([]models.StudentProfile, bool) {
		for _, x := range current {
			if x.UserName == userName {
				profile = x
				return current, false
			}
		}
		profile = newProfile(userName)
		return append(current, profile), true
	})
	return profile, err
}

// AddDeadline appends deadline to the profile of userName, creating the
// profile if needed, in a single write.
func (p *Profiles) AddDeadline(userName string, deadline models.Deadline) (models.Deadline, error) {
	deadline.ID = NewID("dl")
	_, err := p.Modify(func(current []models.StudentProfile) ([]models.StudentProfile, bool) {
		for i := range current {
			if current[i].UserName == userName {
				current[i].Deadlines = append(current[i].Deadlines, deadline)
				return current, true
			}
		}
		profile := newProfile(userName)
		profile.Deadlines = append(profile.Deadlines, deadline)
		return append(current, profile), true
	})
	return deadline, err
}

func (p *Profiles) RemoveDeadline(userName, deadlineID string) (bool, error) {
	removed := false
	_, err := p.Modify(func(current []models.StudentProfile) ([]models.StudentProfile, bool) {
		for i := range current {
			if current[i].UserName != userName {
				continue
			}
			for j, d := range current[i].Deadlines {
				if d.ID == deadlineID {
					current[i].Deadlines = append(current[i].Deadlines[:j], current[i].Deadlines[j+1:]...)
					removed = true
					return current, true
				}
			}
		}
		return current, false
	})
	return removed, err
}
