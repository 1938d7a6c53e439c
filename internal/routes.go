package internal

import (
	"elevate/internal/controllers"
	"elevate/internal/providers"
	"net/http"
)

func InitRoutes(api *controllers.ApiController, events *controllers.EventsController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/postings", http.HandlerFunc(api.ListPostings))
	routers.Post("/postings", http.HandlerFunc(api.SubmitPosting))
	routers.Put("/postings", http.HandlerFunc(api.UpsertPosting))
	routers.Delete("/postings", http.HandlerFunc(api.RemovePosting))
	routers.Post("/postings/approve", http.HandlerFunc(api.ApprovePosting))

	routers.Get("/applications", http.HandlerFunc(api.ListApplications))
	routers.Post("/applications", http.HandlerFunc(api.Apply))
	routers.Delete("/applications", http.HandlerFunc(api.RemoveApplication))
	routers.Put("/applications/status", http.HandlerFunc(api.SetApplicationStatus))

	routers.Get("/logbook", http.HandlerFunc(api.ListLogbook))
	routers.Post("/logbook", http.HandlerFunc(api.AddLogbookEntry))
	routers.Delete("/logbook", http.HandlerFunc(api.RemoveLogbookEntry))
	routers.Post("/logbook/verify", http.HandlerFunc(api.VerifyLogbookEntry))

	routers.Get("/modules", http.HandlerFunc(api.ListModules))
	routers.Put("/modules", http.HandlerFunc(api.ReplaceModules))
	routers.Get("/progress", http.HandlerFunc(api.ListProgress))
	routers.Post("/progress", http.HandlerFunc(api.RecordProgress))

	routers.Get("/notifications", http.HandlerFunc(api.ListNotifications))
	routers.Post("/notifications", http.HandlerFunc(api.PushNotification))
	routers.Post("/notifications/read", http.HandlerFunc(api.MarkNotificationsRead))

	routers.Get("/verifications", http.HandlerFunc(api.ListVerifications))
	routers.Post("/verifications", http.HandlerFunc(api.SubmitVerification))
	routers.Put("/verifications", http.HandlerFunc(api.SetVerificationStatus))

	routers.Get("/profiles", http.HandlerFunc(api.GetProfile))
	routers.Put("/profiles", http.HandlerFunc(api.UpsertProfile))

	routers.Get("/mentors", http.HandlerFunc(api.ListMentors))
	routers.Post("/mentors", http.HandlerFunc(api.CreateMentor))
	routers.Put("/mentors", http.HandlerFunc(api.UpsertMentor))
	routers.Get("/sessions", http.HandlerFunc(api.ListSessions))
	routers.Post("/sessions", http.HandlerFunc(api.ScheduleSession))
	routers.Put("/sessions", http.HandlerFunc(api.UpdateSession))
	routers.Get("/badges", http.HandlerFunc(api.ListBadges))
	routers.Post("/badges", http.HandlerFunc(api.AwardBadge))
	routers.Get("/events", http.HandlerFunc(api.ListEvents))
	routers.Post("/events", http.HandlerFunc(api.CreateEvent))
	routers.Get("/feedback", http.HandlerFunc(api.ListFeedback))
	routers.Post("/feedback", http.HandlerFunc(api.SubmitFeedback))

	routers.Get("/credits", http.HandlerFunc(api.GetCredits))
	routers.Get("/readiness", http.HandlerFunc(api.GetReadiness))
	routers.Get("/eligibility", http.HandlerFunc(api.GetEligibility))

	routers.Get("/records", http.HandlerFunc(api.Summary))
	routers.Delete("/records", http.HandlerFunc(api.ClearRecords))
	routers.Get("/events/stream", http.HandlerFunc(events.Stream))
	return routers
}
