package models

type Badge struct {
	ID          string `json:"id" validate:"required"`
	StudentName string `json:"studentName" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	AwardedAt   string `json:"awardedAt"`
}

type Event struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Date        string `json:"date"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

type IndustryFeedback struct {
	ID          string `json:"id" validate:"required"`
	StudentName string `json:"studentName" validate:"required"`
	Company     string `json:"company"`
	Rating      int    `json:"rating" validate:"min:1|max:5"`
	Comments    string `json:"comments,omitempty"`
	CreatedAt   string `json:"createdAt"`
}
