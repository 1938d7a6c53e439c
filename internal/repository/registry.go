package repository

import "elevate/internal/storage"

type Repositories struct {
	Store *storage.RecordStore

	Postings       *Postings
	Applications   *Applications
	Logbook        *Logbook
	Modules        *SkillModules
	ModuleProgress *ModuleProgress
	Notifications  *Notifications
	Verifications  *Verifications
	Mentors        *Mentors
	Sessions       *Sessions
	Profiles       *Profiles
	Badges         *Badges
	Events         *Events
	Feedback       *Feedback
}

func NewRepositories(store *storage.RecordStore) *Repositories {
	notifications := NewNotifications(store)
	postings := NewPostings(store)
	return &Repositories{
		Store:          store,
		Postings:       postings,
		Applications:   NewApplications(store, postings, notifications),
		Logbook:        NewLogbook(store),
		Modules:        NewSkillModules(store),
		ModuleProgress: NewModuleProgress(store),
		Notifications:  notifications,
		Verifications:  NewVerifications(store, notifications),
		Mentors:        NewMentors(store),
		Sessions:       NewSessions(store),
		Profiles:       NewProfiles(store),
		Badges:         NewBadges(store),
		Events:         NewEvents(store),
		Feedback:       NewFeedback(store),
	}
}
