package models

type Deadline struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Due   string `json:"due"`
	Done  bool   `json:"done"`
}

type AcademicDetails struct {
	Institution string   `json:"institution,omitempty"`
	RollNumber  string   `json:"rollNumber,omitempty"`
	CGPA        *float64 `json:"cgpa,omitempty"`
}

// StudentProfile is keyed by UserName.
type StudentProfile struct {
	UserName        string          `json:"userName" validate:"required"`
	Department      string          `json:"department"`
	Year            int             `json:"year" validate:"min:0"`
	Semester        int             `json:"semester" validate:"min:0"`
	Skills          []string        `json:"skills"`
	Interests       []string        `json:"interests"`
	Projects        []string        `json:"projects"`
	Certifications  []string        `json:"certifications"`
	Internships     int             `json:"internships" validate:"min:0"`
	AcademicDetails AcademicDetails `json:"academicDetails"`
	Deadlines       []Deadline      `json:"deadlines"`
}
