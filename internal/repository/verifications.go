package repository

import (
	"elevate/internal/models"
	"elevate/internal/storage"
	"fmt"
)

type Verifications struct {
	*Repository[models.CompanyVerification]
	notifications *Notifications
}

func NewVerifications(store *storage.RecordStore, notifications *Notifications) *Verifications {
	return &Verifications{
		Repository: New(store, Config[models.CompanyVerification]{
			Key:    models.KeyVerifications,
			Prefix: "verif",
			KeyOf:  func(v models.CompanyVerification) string { return v.ID },
			SetID:  func(v *models.CompanyVerification, id string) { v.ID = id },
			Order:  Prepend,
		}),
		notifications: notifications,
	}
}

func (v *Verifications) Submit(req models.CompanyVerification) (models.CompanyVerification, error) {
	req.Status = models.VerificationPending
	req.SubmittedAt = timestamp()
	created, err := v.Insert(req)
	if err != nil {
		return created, err
	}
	_, err = v.notifications.Push(models.RoleAdmin, "Company verification requested",
		fmt.Sprintf("%s is waiting for verification", created.CompanyName))
	return created, err
}

func (v *Verifications) SetStatus(id, status string) (bool, error) {
	switch status {
	case models.VerificationPending, models.VerificationApproved, models.VerificationRejected:
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var company string
	found, err := v.Update(id, func(x *models.CompanyVerification) {
		x.Status = status
		company = x.CompanyName
	})
	if err != nil || !found {
		return found, err
	}
	_, err = v.notifications.Push(models.RoleIndustry, "Company verification "+status,
		fmt.Sprintf("%s verification is %s", company, status))
	return true, err
}
