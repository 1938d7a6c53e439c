package repository

import (
	"elevate/internal/models"
	"elevate/internal/storage"
)

type Badges struct {
	*Repository[models.Badge]
}

func NewBadges(store *storage.RecordStore) *Badges {
	return &Badges{New(store, Config[models.Badge]{
		Key:    models.KeyBadges,
		Prefix: "badge",
		KeyOf:  func(b models.Badge) string { return b.ID },
		SetID:  func(b *models.Badge, id string) { b.ID = id },
		Order:  Prepend,
	})}
}

func (b *Badges) Award(badge models.Badge) (models.Badge, error) {
	badge.AwardedAt = timestamp()
	return b.Insert(badge)
}

func (b *Badges) ListByStudent(studentName string) []models.Badge {
	return b.List(func(x models.Badge) bool { return x.StudentName == studentName })
}

type Events struct {
	*Repository[models.Event]
}

func NewEvents(store *storage.RecordStore) *Events {
	return &Events{New(store, Config[models.Event]{
		Key:    models.KeyEvents,
		Prefix: "event",
		KeyOf:  func(e models.Event) string { return e.ID },
		SetID:  func(e *models.Event, id string) { e.ID = id },
		Order:  Prepend,
	})}
}

func (e *Events) Create(event models.Event) (models.Event, error) {
	event.CreatedAt = timestamp()
	return e.Insert(event)
}

type Feedback struct {
	*Repository[models.IndustryFeedback]
}

func NewFeedback(store *storage.RecordStore) *Feedback {
	return &Feedback{New(store, Config[models.IndustryFeedback]{
		Key:    models.KeyFeedback,
		Prefix: "fb",
		KeyOf:  func(f models.IndustryFeedback) string { return f.ID },
		SetID:  func(f *models.IndustryFeedback, id string) { f.ID = id },
		Order:  Prepend,
	})}
}

func (f *Feedback) Submit(feedback models.IndustryFeedback) (models.IndustryFeedback, error) {
	feedback.CreatedAt = timestamp()
	return f.Insert(feedback)
}

func (f *Feedback) ListByStudent(studentName string) []models.IndustryFeedback {
	return f.List(func(x models.IndustryFeedback) bool { return x.StudentName == studentName })
}
