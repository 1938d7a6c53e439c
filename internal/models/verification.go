package models

const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

type CompanyVerification struct {
	ID          string `json:"id" validate:"required"`
	CompanyName string `json:"companyName" validate:"required"`
	ContactName string `json:"contactName"`
	Email       string `json:"email" validate:"email"`
	Status      string `json:"status" validate:"required|in:pending,approved,rejected"`
	SubmittedAt string `json:"submittedAt"`
}
