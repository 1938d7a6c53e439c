package models

// Storage keys of the persisted collections. Query bindings and external
// clients depend on these exact names.
const (
	KeyPostings       = "elevate.postings"
	KeyApplications   = "elevate.applications"
	KeyLogbook        = "elevate.logbook"
	KeyModules        = "elevate.modules"
	KeyModuleProgress = "elevate.moduleProgress"
	KeyNotifications  = "elevate.notifications"
	KeyVerifications  = "elevate.verifications"
	KeyMentors        = "elevate.mentors"
	KeySessions       = "elevate.sessions"
	KeyProfiles       = "elevate.profiles"
	KeyBadges         = "elevate.badges"
	KeyEvents         = "elevate.events"
	KeyFeedback       = "elevate.feedback"
)

// AllKeys lists every collection key in a stable order.
var AllKeys = []string{
	KeyPostings,
	KeyApplications,
	KeyLogbook,
	KeyModules,
	KeyModuleProgress,
	KeyNotifications,
	KeyVerifications,
	KeyMentors,
	KeySessions,
	KeyProfiles,
	KeyBadges,
	KeyEvents,
	KeyFeedback,
}
