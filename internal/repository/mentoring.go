package repository

import (
	"elevate/internal/models"
	"elevate/internal/storage"
)

type Mentors struct {
	*Repository[models.Mentor]
}

func NewMentors(store *storage.RecordStore) *Mentors {
	return &Mentors{New(store, Config[models.Mentor]{
		Key:    models.KeyMentors,
		Prefix: "mentor",
		KeyOf:  func(m models.Mentor) string { return m.ID },
		SetID:  func(m *models.Mentor, id string) { m.ID = id },
		Order:  Append,
	})}
}

func (m *Mentors) ListByDepartment(department string) []models.Mentor {
	return m.List(func(x models.Mentor) bool { return x.Department == department })
}

type Sessions struct {
	*Repository[models.MentoringSession]
}

func NewSessions(store *storage.RecordStore) *Sessions {
	return &Sessions{New(store, Config[models.MentoringSession]{
		Key:    models.KeySessions,
		Prefix: "session",
		KeyOf:  func(s models.MentoringSession) string { return s.ID },
		SetID:  func(s *models.MentoringSession, id string) { s.ID = id },
		Order:  Prepend,
	})}
}

func (s *Sessions) Schedule(session models.MentoringSession) (models.MentoringSession, error) {
	session.Status = models.SessionScheduled
	return s.Insert(session)
}

func (s *Sessions) Complete(id, notes string) (bool, error) {
	return s.Update(id, func(x *models.MentoringSession) {
		x.Status = models.SessionCompleted
		if notes != "" {
			x.Notes = notes
		}
	})
}

func (s *Sessions) Cancel(id string) (bool, error) {
	return s.Update(id, func(x *models.MentoringSession) {
		x.Status = models.SessionCancelled
	})
}

func (s *Sessions) ListByMentor(mentorID string) []models.MentoringSession {
	return s.List(func(x models.MentoringSession) bool { return x.MentorID == mentorID })
}

func (s *Sessions) ListByStudent(studentName string) []models.MentoringSession {
	return s.List(func(x models.MentoringSession) bool { return x.StudentName == studentName })
}
