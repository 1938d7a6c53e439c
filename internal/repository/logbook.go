package repository

import (
	"elevate/internal/models"
	"elevate/internal/storage"
)

type Logbook struct {
	*Repository[models.LogbookEntry]
}

func NewLogbook(store *storage.RecordStore) *Logbook {
	return &Logbook{New(store, Config[models.LogbookEntry]{
		Key:    models.KeyLogbook,
		Prefix: "log",
		KeyOf:  func(e models.LogbookEntry) string { return e.ID },
		SetID:  func(e *models.LogbookEntry, id string) { e.ID = id },
		Order:  Prepend,
	})}
}

func (l *Logbook) Add(entry models.LogbookEntry) (models.LogbookEntry, error) {
	entry.Verified = false
	return l.Insert(entry)
}

func (l *Logbook) Verify(id string) (bool, error) {
	return l.Update(id, func(e *models.LogbookEntry) {
		e.Verified = true
	})
}

func (l *Logbook) ListByStudent(studentName string) []models.LogbookEntry {
	return l.List(func(e models.LogbookEntry) bool { return e.StudentName == studentName })
}

func (l *Logbook) VerifiedHours(studentName string) float64 {
	var hours float64
	for _, e := range l.ListByStudent(studentName) {
		if e.Verified {
			hours += e.Hours
		}
	}
	return hours
}
