package services

import (
	"elevate/internal/repository"
)

type ProgressServiceInterface interface {
	Credits(userName string) CreditSummary
	Readiness(userName string) (int, error)
	Eligibility(userName string) (Eligibility, error)
}

type CreditSummary struct {
	UserName         string  `json:"userName"`
	VerifiedHours    float64 `json:"verifiedHours"`
	CompletedModules int     `json:"completedModules"`
	TotalModules     int     `json:"totalModules"`
	Credits          int     `json:"credits"`
}

// ProgressService derives credits, readiness and eligibility from the
// stored logbook, module progress and profile of a student.
type ProgressService struct {
	repos *repository.Repositories
}

func NewProgressService(repos *repository.Repositories) ProgressServiceInterface {
	return &ProgressService{repos: repos}
}

func (ps *ProgressService) Credits(userName string) CreditSummary {
	catalog := ps.repos.Modules.List()
	completed := ps.repos.ModuleProgress.CompletedModules(userName, catalog)
	hours := ps.repos.Logbook.VerifiedHours(userName)

	return CreditSummary{
		UserName:         userName,
		VerifiedHours:    hours,
		CompletedModules: len(completed),
		TotalModules:     len(catalog),
		Credits:          ComputeCredits(hours, completed),
	}
}

func (ps *ProgressService) Readiness(userName string) (int, error) {
	profile, err := ps.repos.Profiles.GetOrCreate(userName)
	if err != nil {
		return 0, err
	}
	summary := ps.Credits(userName)

	return CalculateReadinessScore(ReadinessInputs{
		CompletedModules:   summary.CompletedModules,
		TotalModules:       summary.TotalModules,
		CGPA:               profile.AcademicDetails.CGPA,
		ProjectCount:       len(profile.Projects),
		CertificationCount: len(profile.Certifications),
		InternshipCount:    profile.Internships,
	}), nil
}

func (ps *ProgressService) Eligibility(userName string) (Eligibility, error) {
	profile, err := ps.repos.Profiles.GetOrCreate(userName)
	if err != nil {
		return Eligibility{}, err
	}
	summary := ps.Credits(userName)

	var cgpa float64
	if profile.AcademicDetails.CGPA != nil {
		cgpa = *profile.AcademicDetails.CGPA
	}
	return CheckCreditTransferEligibility(profile.Department, summary.VerifiedHours, summary.CompletedModules, cgpa), nil
}
