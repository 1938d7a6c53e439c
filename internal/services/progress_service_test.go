package services

import (
	"elevate/internal/models"
	"elevate/internal/repository"
	"elevate/internal/storage"
	"elevate/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	store := storage.NewRecordStore(storage.NewMemoryBackend(), nil, &testutil.MockLogger{}, testutil.NewMockMetrics())
	repos := repository.NewRepositories(store)

	for _, hours := range []float64{40, 25} {
		e, err := repos.Logbook.Add(models.LogbookEntry{Date: "2026-01-10", Hours: hours, StudentName: "asha"})
		require.NoError(t, err)
		_, err = repos.Logbook.Verify(e.ID)
		require.NoError(t, err)
	}
	_, err := repos.Logbook.Add(models.LogbookEntry{Date: "2026-01-11", Hours: 30, StudentName: "asha"})
	require.NoError(t, err)

	for _, id := range []string{"mod_resume", "mod_interview", "mod_ethics"} {
		_, err := repos.ModuleProgress.Record("asha", id, 100)
		require.NoError(t, err)
	}
	_, err = repos.ModuleProgress.Record("asha", "mod_git", 50)
	require.NoError(t, err)

	profile, err := repos.Profiles.GetOrCreate("asha")
	require.NoError(t, err)
	profile.Department = "Computer Science"
	profile.AcademicDetails.CGPA = cgpa(8)
	profile.Projects = []string{"a", "b", "c", "d"}
	profile.Certifications = []string{"aws", "gcp"}
	profile.Internships = 1
	_, err = repos.Profiles.Upsert(profile)
	require.NoError(t, err)

	return repos
}

func TestProgressService_Credits(t *testing.T) {
	ps := NewProgressService(seededRepos(t))

	got := ps.Credits("asha")

	assert.Equal(t, "asha", got.UserName)
	assert.InDelta(t, 65, got.VerifiedHours, 1e-9)
	assert.Equal(t, 3, got.CompletedModules)
	assert.Equal(t, 6, got.TotalModules)
	// floor(65/30)=2 plus 2+3+1 points
	assert.Equal(t, 8, got.Credits)
}

func TestProgressService_Readiness(t *testing.T) {
	ps := NewProgressService(seededRepos(t))

	score, err := ps.Readiness("asha")

	require.NoError(t, err)
	assert.Equal(t, 76, score)
}

func TestProgressService_ReadinessOfNewStudent(t *testing.T) {
	repos := seededRepos(t)
	ps := NewProgressService(repos)

	score, err := ps.Readiness("ben")

	require.NoError(t, err)
	assert.Equal(t, 15, score)
	_, ok := repos.Profiles.Get("ben")
	assert.True(t, ok)
}

func TestProgressService_Eligibility(t *testing.T) {
	ps := NewProgressService(seededRepos(t))

	got, err := ps.Eligibility("asha")

	require.NoError(t, err)
	assert.False(t, got.Eligible)
	assert.Equal(t, "Need 95 more verified hours", got.Reason)
}
