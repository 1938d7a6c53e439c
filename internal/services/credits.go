package services

import (
	"elevate/internal/models"
	"fmt"
	"math"
)

// HoursPerCredit is the number of verified logbook hours worth one credit.
const HoursPerCredit = 30

// ComputeCredits returns floor(verifiedHours/30) plus the points of every
// completed module.
func ComputeCredits(verifiedHours float64, completedModules []models.SkillModule) int {
	credits := int(math.Floor(max(verifiedHours, 0) / HoursPerCredit))
	for _, m := range completedModules {
		credits += m.Points
	}
	return credits
}

type ReadinessInputs struct {
	CompletedModules   int      `json:"completedModules"`
	TotalModules       int      `json:"totalModules"`
	CGPA               *float64 `json:"cgpa,omitempty"`
	ProjectCount       int      `json:"projectCount"`
	CertificationCount int      `json:"certificationCount"`
	InternshipCount    int      `json:"internshipCount"`
}

// CalculateReadinessScore weighs module completion (30), academics (20),
// projects (20), certifications (15) and internships (15).
func CalculateReadinessScore(in ReadinessInputs) int {
	var moduleRatio float64
	if in.TotalModules > 0 {
		moduleRatio = min(float64(in.CompletedModules)/float64(in.TotalModules), 1)
	}

	academic := 15.0
	if in.CGPA != nil {
		academic = *in.CGPA / 10 * 20
	}

	score := moduleRatio*30 +
		academic +
		float64(min(max(in.ProjectCount, 0)*5, 20)) +
		float64(min(max(in.CertificationCount, 0)*5, 15)) +
		float64(min(max(in.InternshipCount, 0)*15, 15))

	return int(math.Round(score))
}

type Regulation struct {
	Department     string  `json:"department"`
	MinHours       float64 `json:"minHours"`
	MinModules     int     `json:"minModules"`
	MinCGPA        float64 `json:"minCgpa"`
	CreditsAwarded int     `json:"creditsAwarded"`
}

// Regulations is ordered; the first entry applies to unknown departments.
var Regulations = []Regulation{
	{Department: "Computer Science", MinHours: 160, MinModules: 2, MinCGPA: 6.0, CreditsAwarded: 4},
	{Department: "Information Technology", MinHours: 150, MinModules: 2, MinCGPA: 6.0, CreditsAwarded: 4},
	{Department: "Electronics", MinHours: 140, MinModules: 2, MinCGPA: 5.5, CreditsAwarded: 3},
	{Department: "Mechanical", MinHours: 120, MinModules: 1, MinCGPA: 5.5, CreditsAwarded: 3},
	{Department: "Civil", MinHours: 120, MinModules: 1, MinCGPA: 5.0, CreditsAwarded: 3},
}

func RegulationFor(department string) Regulation {
	for _, r := range Regulations {
		if r.Department == department {
			return r
		}
	}
	return Regulations[0]
}

type Eligibility struct {
	Eligible       bool       `json:"eligible"`
	Reason         string     `json:"reason"`
	CreditsAwarded int        `json:"creditsAwarded"`
	Regulation     Regulation `json:"regulation"`
}

// CheckCreditTransferEligibility reports the first unmet threshold, checking
// hours, then modules, then CGPA.
func CheckCreditTransferEligibility(department string, verifiedHours float64, completedModules int, cgpa float64) Eligibility {
	reg := RegulationFor(department)
	result := Eligibility{Regulation: reg}

	switch {
	case verifiedHours < reg.MinHours:
		result.Reason = fmt.Sprintf("Need %s more verified hours", formatAmount(reg.MinHours-verifiedHours))
	case completedModules < reg.MinModules:
		result.Reason = fmt.Sprintf("Need %d more completed modules", reg.MinModules-completedModules)
	case cgpa < reg.MinCGPA:
		result.Reason = fmt.Sprintf("CGPA %.1f is below the required %.1f", cgpa, reg.MinCGPA)
	default:
		result.Eligible = true
		result.CreditsAwarded = reg.CreditsAwarded
		result.Reason = fmt.Sprintf("Eligible for %d credits", reg.CreditsAwarded)
	}
	return result
}

func formatAmount(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.1f", v)
}
