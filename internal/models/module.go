package models

type SkillModule struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Points      int    `json:"points" validate:"min:0"`
}

// ModuleProgress is keyed by the (UserName, ModuleID) pair.
type ModuleProgress struct {
	UserName    string `json:"userName" validate:"required"`
	ModuleID    string `json:"moduleId" validate:"required"`
	Progress    int    `json:"progress" validate:"min:0|max:100"`
	CompletedAt string `json:"completedAt,omitempty"`
}

func (p ModuleProgress) Completed() bool {
	return p.Progress >= 100
}

func DefaultSkillModules() []SkillModule {
	return []SkillModule{
		{ID: "mod_resume", Title: "Resume Building", Description: "Write a targeted one-page resume", Points: 2},
		{ID: "mod_interview", Title: "Interview Preparation", Description: "Behavioural and technical interview practice", Points: 3},
		{ID: "mod_communication", Title: "Professional Communication", Description: "Email etiquette and workplace communication", Points: 2},
		{ID: "mod_git", Title: "Version Control with Git", Description: "Branching, pull requests and code review", Points: 3},
		{ID: "mod_agile", Title: "Agile Fundamentals", Description: "Scrum ceremonies and iterative delivery", Points: 2},
		{ID: "mod_ethics", Title: "Workplace Ethics", Description: "Confidentiality, integrity and compliance", Points: 1},
	}
}
