package models

const (
	SessionScheduled = "scheduled"
	SessionCompleted = "completed"
	SessionCancelled = "cancelled"
)

type Mentor struct {
	ID         string   `json:"id" validate:"required"`
	Name       string   `json:"name" validate:"required"`
	Email      string   `json:"email" validate:"email"`
	Department string   `json:"department"`
	Expertise  []string `json:"expertise"`
}

type MentoringSession struct {
	ID          string `json:"id" validate:"required"`
	MentorID    string `json:"mentorId" validate:"required"`
	StudentName string `json:"studentName" validate:"required"`
	ScheduledAt string `json:"scheduledAt"`
	Topic       string `json:"topic"`
	Notes       string `json:"notes,omitempty"`
	Status      string `json:"status" validate:"required|in:scheduled,completed,cancelled"`
}
