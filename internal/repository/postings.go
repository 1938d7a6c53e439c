package repository

import (
	"elevate/internal/models"
	"elevate/internal/storage"
)

type Postings struct {
	*Repository[models.Posting]
}

func NewPostings(store *storage.RecordStore) *Postings {
	return &Postings{New(store, Config[models.Posting]{
		Key:    models.KeyPostings,
		Prefix: "post",
		KeyOf:  func(p models.Posting) string { return p.ID },
		SetID:  func(p *models.Posting, id string) { p.ID = id },
		Order:  Prepend,
	})}
}

// Submit stores an industry submission awaiting admin approval.
func (p *Postings) Submit(posting models.Posting) (models.Posting, error) {
	posting.Verified = false
	posting.Applications = 0
	posting.PostedAt = timestamp()
	if posting.Skills == nil {
		posting.Skills = []string{}
	}
	return p.Insert(posting)
}

func (p *Postings) Approve(id string) (bool, error) {
	return p.Update(id, func(posting *models.Posting) {
		posting.Verified = true
	})
}

func (p *Postings) IncrementApplications(id string) (bool, error) {
	return p.Update(id, func(posting *models.Posting) {
		posting.Applications++
	})
}

func (p *Postings) ListVerified() []models.Posting {
	return p.List(func(posting models.Posting) bool { return posting.Verified })
}
