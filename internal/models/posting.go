package models

type Posting struct {
	ID           string   `json:"id" validate:"required"`
	Title        string   `json:"title" validate:"required"`
	Company      string   `json:"company" validate:"required"`
	Location     string   `json:"location"`
	Duration     string   `json:"duration"`
	Verified     bool     `json:"verified"`
	Skills       []string `json:"skills"`
	Stipend      string   `json:"stipend,omitempty"`
	Description  string   `json:"description,omitempty"`
	PostedAt     string   `json:"postedAt"`
	Applications int      `json:"applications" validate:"min:0"`
}
