package models

const (
	StatusPending     = "pending"
	StatusAccepted    = "accepted"
	StatusRejected    = "rejected"
	StatusShortlisted = "shortlisted"
)

type StudentApplication struct {
	ID                string `json:"id" validate:"required"`
	StudentName       string `json:"studentName" validate:"required"`
	InternshipID      string `json:"internshipId" validate:"required"`
	Status            string `json:"status" validate:"required|in:pending,accepted,rejected,shortlisted"`
	InternshipTitle   string `json:"internshipTitle"`
	Company           string `json:"company"`
	AppliedAt         string `json:"appliedAt"`
	ReadinessScore    *int   `json:"readinessScore,omitempty"`
	RejectionReason   string `json:"rejectionReason,omitempty"`
	RejectionCategory string `json:"rejectionCategory,omitempty"`
}

func ValidApplicationStatus(status string) bool {
	switch status {
	case StatusPending, StatusAccepted, StatusRejected, StatusShortlisted:
		return true
	}
	return false
}
