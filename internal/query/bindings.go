package query

import "elevate/internal/models"

// Named query topics. Parameterised queries use "<topic>:<param>".
const (
	TopicPostings       = "postings"
	TopicApplications   = "applications"
	TopicLogbook        = "logbook"
	TopicModules        = "modules"
	TopicModuleProgress = "moduleProgress"
	TopicNotifications  = "notifications"
	TopicVerifications  = "verifications"
	TopicMentors        = "mentors"
	TopicSessions       = "sessions"
	TopicProfiles       = "profiles"
	TopicBadges         = "badges"
	TopicEvents         = "events"
	TopicFeedback       = "feedback"
	TopicCredits        = "credits"
	TopicReadiness      = "readiness"
	TopicEligibility    = "eligibility"
)

// ProgressTopics are the derived queries computed from logbook, modules,
// module progress and profiles.
var ProgressTopics = []string{TopicCredits, TopicReadiness, TopicEligibility}

// Bindings maps a storage key to the topics its change invalidates.
type Bindings map[string][]string

func DefaultBindings() Bindings {
	return Bindings{
		models.KeyPostings:       {TopicPostings},
		models.KeyApplications:   {TopicApplications, TopicPostings},
		models.KeyLogbook:        {TopicLogbook, TopicCredits, TopicReadiness, TopicEligibility},
		models.KeyModules:        {TopicModules, TopicCredits, TopicReadiness, TopicEligibility},
		models.KeyModuleProgress: {TopicModuleProgress, TopicCredits, TopicReadiness, TopicEligibility},
		models.KeyNotifications:  {TopicNotifications},
		models.KeyVerifications:  {TopicVerifications},
		models.KeyMentors:        {TopicMentors},
		models.KeySessions:       {TopicSessions},
		models.KeyProfiles:       {TopicProfiles, TopicCredits, TopicReadiness, TopicEligibility},
		models.KeyBadges:         {TopicBadges},
		models.KeyEvents:         {TopicEvents},
		models.KeyFeedback:       {TopicFeedback},
	}
}

// Name builds a parameterised query name.
func Name(topic, param string) string {
	if param == "" {
		return topic
	}
	return topic + ":" + param
}

// covers reports whether invalidating topic invalidates name.
func covers(topic, name string) bool {
	if topic == name {
		return true
	}
	return len(name) > len(topic) && name[:len(topic)] == topic && name[len(topic)] == ':'
}
