package models

type LogbookEntry struct {
	ID          string  `json:"id" validate:"required"`
	Date        string  `json:"date" validate:"required"`
	Hours       float64 `json:"hours" validate:"min:0"`
	Summary     string  `json:"summary"`
	Verified    bool    `json:"verified"`
	StudentName string  `json:"studentName,omitempty"`
}
