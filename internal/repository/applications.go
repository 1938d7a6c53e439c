package repository

import (
	"elevate/internal/models"
	"elevate/internal/storage"
	"errors"
	"fmt"
)

var (
	ErrInvalidStatus  = errors.New("invalid status")
	ErrAlreadyApplied = errors.New("already applied to this internship")
)

type Applications struct {
	*Repository[models.StudentApplication]
	postings      *Postings
	notifications *Notifications
}

func NewApplications(store *storage.RecordStore, postings *Postings, notifications *Notifications) *Applications {
	return &Applications{
		Repository: New(store, Config[models.StudentApplication]{
			Key:    models.KeyApplications,
			Prefix: "app",
			KeyOf:  func(a models.StudentApplication) string { return a.ID },
			SetID:  func(a *models.StudentApplication, id string) { a.ID = id },
			Order:  Prepend,
		}),
		postings:      postings,
		notifications: notifications,
	}
}

// Apply records a pending application, bumps the posting's counter and
// alerts industry users.
func (a *Applications) Apply(app models.StudentApplication) (models.StudentApplication, error) {
	if posting, ok := a.postings.Get(app.InternshipID); ok {
		if app.InternshipTitle == "" {
			app.InternshipTitle = posting.Title
		}
		if app.Company == "" {
			app.Company = posting.Company
		}
	}
	app.Status = models.StatusPending
	app.AppliedAt = timestamp()
	app.RejectionReason = ""
	app.RejectionCategory = ""

	var (
		result    models.StudentApplication
		duplicate bool
	)
	_, err := a.Modify(func(current []models.StudentApplication) ([]models.StudentApplication, bool) {
		for _, x := range current {
			if x.StudentName == app.StudentName && x.InternshipID == app.InternshipID {
				result, duplicate = x, true
				return current, false
			}
		}
		current, result = a.add(current, app)
		return current, true
	})
	if err != nil {
		return models.StudentApplication{}, err
	}
	if duplicate {
		return result, ErrAlreadyApplied
	}

	if _, err := a.postings.IncrementApplications(result.InternshipID); err != nil {
		return result, fmt.Errorf("increment applications: %w", err)
	}
	_, err = a.notifications.Push(models.RoleIndustry, "New application",
		fmt.Sprintf("%s applied for %s", result.StudentName, result.InternshipTitle))
	return result, err
}

// SetStatus moves an application to status. Rejection metadata is kept only
// for rejections.
func (a *Applications) SetStatus(id, status, reason, category string) (bool, error) {
	if !models.ValidApplicationStatus(status) {
		return false, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var updated models.StudentApplication
	found, err := a.Update(id, func(app *models.StudentApplication) {
		app.Status = status
		if status == models.StatusRejected {
			app.RejectionReason = reason
			app.RejectionCategory = category
		} else {
			app.RejectionReason = ""
			app.RejectionCategory = ""
		}
		updated = *app
	})
	if err != nil || !found {
		return found, err
	}

	_, err = a.notifications.Push(models.RoleStudent, "Application "+status,
		fmt.Sprintf("Your application for %s at %s is now %s", updated.InternshipTitle, updated.Company, status))
	return true, err
}

func (a *Applications) ListByStudent(studentName string) []models.StudentApplication {
	return a.List(func(app models.StudentApplication) bool { return app.StudentName == studentName })
}

func (a *Applications) ListByInternship(internshipID string) []models.StudentApplication {
	return a.List(func(app models.StudentApplication) bool { return app.InternshipID == internshipID })
}
