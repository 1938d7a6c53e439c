package controllers

import (
	"elevate/internal/models"
	"elevate/internal/providers"
	"elevate/internal/query"
	"elevate/internal/repository"
	"elevate/internal/services"
	"errors"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

const maxRequestBodySize = 1 << 20 // 1 MB

var errInvalidSessionStatus = fmt.Errorf("%w: session status must be completed or cancelled", repository.ErrInvalidStatus)

type ApiController struct {
	logger   providers.Logger
	repos    *repository.Repositories
	queries  *query.Client
	progress services.ProgressServiceInterface
}

func NewApiController(logger providers.Logger, repos *repository.Repositories, queries *query.Client, progress services.ProgressServiceInterface) *ApiController {
	return &ApiController{
		logger:   logger,
		repos:    repos,
		queries:  queries,
		progress: progress,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

func requireParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		http.Error(w, "Missing parameter: "+name, http.StatusBadRequest)
		return "", false
	}
	return v, true
}

// limit trims list to the non-negative "limit" query parameter, if present.
func limit[T any](r *http.Request, list []T) []T {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return list
	}
	n, err := cast.ToIntE(raw)
	if err != nil || n < 0 || n >= len(list) {
		return list
	}
	return list[:n]
}

// serveQuery answers from the named query, fetching on a cache miss.
func serveQuery[T any](ac *ApiController, w http.ResponseWriter, name string, fetch func() (T, error)) {
	result, err := query.Fetch(ac.queries, name, fetch)
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "Query %s failed: %s", name, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func serveList[T any](ac *ApiController, w http.ResponseWriter, r *http.Request, name string, list func() []T) {
	result, err := query.Fetch(ac.queries, name, func() ([]T, error) {
		return list(), nil
	})
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "Query %s failed: %s", name, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, limit(r, result))
}

// mutate runs write through the query client. write reports whether its
// target existed; a missing target answers 404.
func (ac *ApiController) mutate(w http.ResponseWriter, status int, write func() (any, bool, error), topics ...string) {
	var (
		result any
		found  bool
	)
	err := query.Mutate(ac.queries, func() error {
		var err error
		result, found, err = write()
		return err
	}, topics...)

	switch {
	case errors.Is(err, models.ErrInvalidRecord), errors.Is(err, repository.ErrInvalidStatus):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repository.ErrAlreadyApplied):
		http.Error(w, err.Error(), http.StatusConflict)
	case err != nil:
		ac.logger.Errorf(providers.TypePost, "Mutation failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	case !found:
		http.Error(w, "Not Found", http.StatusNotFound)
	case result == nil:
		w.WriteHeader(status)
	default:
		writeJSON(w, status, result)
	}
}

func created[T any](v T, err error) (any, bool, error) {
	return v, true, err
}

func existed(found bool, err error) (any, bool, error) {
	return nil, found, err
}

// --- postings ---

func (ac *ApiController) ListPostings(w http.ResponseWriter, r *http.Request) {
	if cast.ToBool(r.URL.Query().Get("verified")) {
		serveList(ac, w, r, query.Name(query.TopicPostings, "verified"), ac.repos.Postings.ListVerified)
		return
	}
	serveList(ac, w, r, query.TopicPostings, func() []models.Posting { return ac.repos.Postings.List() })
}

func (ac *ApiController) SubmitPosting(w http.ResponseWriter, r *http.Request) {
	var payload models.Posting
	if !decodeBody(w, r, &payload) {
		return
	}
	ac.mutate(w, http.StatusCreated, func() (any, bool, error) {
		return created(ac.repos.Postings.Submit(payload))
	}, query.TopicPostings)
}

func (ac *ApiController) UpsertPosting(w http.ResponseWriter, r *http.Request) {
	var payload models.Posting
	if !decodeBody(w, r, &payload) {
		return
	}
	ac.mutate(w, http.StatusOK, func() (any, bool, error) {
		return created(ac.repos.Postings.Upsert(payload))
	}, query.TopicPostings)
}

func (ac *ApiController) RemovePosting(w http.ResponseWriter, r *http.Request) {
	id, ok := requireParam(w, r, "id")
	if !ok {
		return
	}
	ac.mutate(w, http.StatusNoContent, func() (any, bool, error) {
		return existed(ac.repos.Postings.Remove(id))
	}, query.TopicPostings)
}

func (ac *ApiController) ApprovePosting(w http.ResponseWriter, r *http.Request) {
	id, ok := requireParam(w, r, "id")
	if !ok {
		return
	}
	ac.mutate(w, http.StatusNoContent, func() (any, bool, error) {
		return existed(ac.repos.Postings.Approve(id))
	}, query.TopicPostings)
}

// --- applications ---

func (ac *ApiController) ListApplications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	switch {
	case q.Get("student") != "":
		student := q.Get("student")
		serveList(ac, w, r, query.Name(query.TopicApplications, "student="+student), func() []models.StudentApplication {
			return ac.repos.Applications.ListByStudent(student)
		})
	case q.Get("internship") != "":
		internship := q.Get("internship")
		serveList(ac, w, r, query.Name(query.TopicApplications, "internship="+internship), func() []models.StudentApplication {
			return ac.repos.Applications.ListByInternship(internship)
		})
	default:
		serveList(ac, w, r, query.TopicApplications, func() []models.StudentApplication {
			return ac.repos.Applications.List()
		})
	}
}

func (ac *ApiController) Apply(w http.ResponseWriter, r *http.Request) {
	var payload models.StudentApplication
	if !decodeBody(w, r, &payload) {
		return
	}
	ac.mutate(w, http.StatusCreated, func() (any, bool, error) {
		return created(ac.repos.Applications.Apply(payload))
	}, query.TopicApplications, query.TopicPostings, query.TopicNotifications)
}

type statusPayload struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Reason   string `json:"reason,omitempty"`
	Category string `json:"category,omitempty"`
}

func (ac *ApiController) SetApplicationStatus(w http.ResponseWriter, r *http.Request) {
	var payload statusPayload
	if !decodeBody(w, r, &payload) {
		return
	}
	ac.mutate(w, http.StatusNoContent, func() (any, bool, error) {
		return existed(ac.repos.Applications.SetStatus(payload.ID, payload.Status, payload.Reason, payload.Category))
	}, query.TopicApplications, query.TopicNotifications)
}

func (ac *ApiController) RemoveApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := requireParam(w, r, "id")
	if !ok {
		return
	}
	ac.mutate(w, http.StatusNoContent, func() (any, bool, error) {
		return existed(ac.repos.Applications.Remove(id))
	}, query.TopicApplications)
}

// --- logbook ---

func (ac *ApiController) ListLogbook(w http.ResponseWriter, r *http.Request) {
	if student := r.URL.Query().Get("student"); student != "" {
		serveList(ac, w, r, query.Name(query.TopicLogbook, student), func() []models.LogbookEntry {
			return ac.repos.Logbook.ListByStudent(student)
		})
		return
	}
	serveList(ac, w, r, query.TopicLogbook, func() []models.LogbookEntry { return ac.repos.Logbook.List() })
}

func (ac *ApiController) AddLogbookEntry(w http.ResponseWriter, r *http.Request) {
	var payload models.LogbookEntry
	if !decodeBody(w, r, &payload) {
		return
	}
	ac.mutate(w, http.StatusCreated, func() (any, bool, error) {
		return created(ac.repos.Logbook.Add(payload))
	}, append([]string{query.TopicLogbook}, query.ProgressTopics...)...)
}

func (ac *ApiController) VerifyLogbookEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := requireParam(w, r, "id")
	if !ok {
		return
	}
	ac.mutate(w, http.StatusNoContent, func() (any, bool, error) {
		return existed(ac.repos.Logbook.Verify(id))
	}, append([]string{query.TopicLogbook}, query.ProgressTopics...)...)
}

func (ac *ApiController) RemoveLogbookEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := requireParam(w, r, "id")
	if !ok {
		return
	}
	ac.mutate(w, http.StatusNoContent, func() (any, bool, error) {
		return existed(ac.repos.Logbook.Remove(id))
	}, append([]string{query.TopicLogbook}, query.ProgressTopics...)...)
}

// --- modules and progress ---

func (ac *ApiController) ListModules(w http.ResponseWriter, r *http.Request) {
	serveList(ac, w, r, query.TopicModules, func() []models.SkillModule { return ac.repos.Modules.List() })
}

// ReplaceModules swaps the whole skill module catalog. An empty catalog is
// re-seeded with the defaults on the next read.
func (ac *ApiController) ReplaceModules(w http.ResponseWriter, r *http.Request) {
	var payload []models.SkillModule
	if !decodeBody(w, r, &payload) {
		return
	}
	ac.mutate(w, http.StatusNoContent, func() (any, bool, error) {
		return existed(true, ac.repos.Modules.Replace(payload))
	}, append([]string{query.TopicModules}, query.ProgressTopics...)...)
}

func (ac *ApiController) ListProgress(w http.ResponseWriter, r *http.Request) {
	user, ok := requireParam(w, r, "user")
	if !ok {
		return
	}
	serveList(ac, w, r, query.Name(query.TopicModuleProgress, user), func() []models.ModuleProgress {
		return ac.repos.ModuleProgress.ListByUser(user)
	})
}

type progressPayload struct {
	UserName string `json:"userName"`
	ModuleID string `json:"moduleId"`
	Progress any    `json:"progress"`
}

func (ac *ApiController) RecordProgress(w http.ResponseWriter, r *http.Request) {
	var payload progressPayload
	if !decodeBody(w, r, &payload) {
		return
	}
	progress, err := cast.ToIntE(payload.Progress)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if _, ok := ac.repos.Modules.Get(payload.ModuleID); !ok {
		http.Error(w, "Unknown module", http.StatusBadRequest)
		return
	}
	ac.mutate(w, http.StatusOK, func() (any, bool, error) {
		return created(ac.repos.ModuleProgress.Record(payload.UserName, payload.ModuleID, progress))
	}, append([]string{query.TopicModuleProgress}, query.ProgressTopics...)...)
}

// --- notifications ---

func (ac *ApiController) ListNotifications(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	serveList(ac, w, r, query.Name(query.TopicNotifications, role), func() []models.Notification {
		return ac.repos.Notifications.ListForRole(role)
	})
}

func (ac *ApiController) PushNotification(w http.ResponseWriter, r *http.Request) {
	var payload models.Notification
	if !decodeBody(w, r, &payload) {
		return
	}
	ac.mutate(w, http.StatusCreated, func() (any, bool, error) {
		return created(ac.repos.Notifications.Push(payload.UserRole, payload.Title, payload.Body))
	}, query.TopicNotifications)
}

// MarkNotificationsRead marks one notification (?id=) or every notification
// visible to a role (?role=) as read.
func (ac *ApiController) MarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if id := q.Get("id"); id != "" {
		ac.mutate(w, http.StatusNoContent, func() (any, bool, error) {
			return existed(ac.repos.Notifications.MarkRead(id))
		}, query.TopicNotifications)
		return
	}
	role := q.Get("role")
	ac.mutate(w, http.StatusNoContent, func() (any, bool, error) {
		_, err := ac.repos.Notifications.MarkAllRead(role)
		return nil, true, err
	}, query.TopicNotifications)
}

// --- company verifications ---

func (ac *ApiController) ListVerifications(w http.ResponseWriter, r *http.Request) {
	serveList(ac, w, r, query.TopicVerifications, func() []models.CompanyVerification {
		return ac.repos.Verifications.List()
	})
}

func (ac *ApiController) SubmitVerification(w http.ResponseWriter, r *http.Request) {
	var payload models.CompanyVerification
	if !decodeBody(w, r, &payload) {
		return
	}
	ac.mutate(w, http.StatusCreated, func() (any, bool, error) {
		return created(ac.repos.Verifications.Submit(payload))
	}, query.TopicVerifications, query.TopicNotifications)
}

func (ac *ApiController) SetVerificationStatus(w http.ResponseWriter, r *http.Request) {
	var payload statusPayload
	if !decodeBody(w, r, &payload) {
		return
	}
	ac.mutate(w, http.StatusNoContent, func() (any, bool, error) {
		return existed(ac.repos.Verifications.SetStatus(payload.ID, payload.Status))
	}, query.TopicVerifications, query.TopicNotifications)
}

// --- profiles ---

func (ac *ApiController) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := requireParam(w, r, "user")
	if !ok {
		return
	}
	serveQuery(ac, w, query.Name(query.TopicProfiles, user), func() (models.StudentProfile, error) {
		return ac.repos.Profiles.GetOrCreate(user)
	})
}

func (ac *ApiController) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	var payload models.StudentProfile
	if !decodeBody(w, r, &payload) {
		return
	}
	ac.mutate(w, http.StatusOK, func() (any, bool, error) {
		return created(ac.repos.Profiles.Upsert(payload))
	}, append([]string{query.TopicProfiles}, query.ProgressTopics...)...)
}

// --- derived progress ---

func (ac *ApiController) GetCredits(w http.ResponseWriter, r *http.Request) {
	user, ok := requireParam(w, r, "user")
	if !ok {
		return
	}
	serveQuery(ac, w, query.Name(query.TopicCredits, user), func() (services.CreditSummary, error) {
		return ac.progress.Credits(user), nil
	})
}

type readinessResponse struct {
	UserName string `json:"userName"`
	Score    int    `json:"score"`
}

func (ac *ApiController) GetReadiness(w http.ResponseWriter, r *http.Request) {
	user, ok := requireParam(w, r, "user")
	if !ok {
		return
	}
	serveQuery(ac, w, query.Name(query.TopicReadiness, user), func() (readinessResponse, error) {
		score, err := ac.progress.Readiness(user)
		return readinessResponse{UserName: user, Score: score}, err
	})
}

func (ac *ApiController) GetEligibility(w http.ResponseWriter, r *http.Request) {
	user, ok := requireParam(w, r, "user")
	if !ok {
		return
	}
	serveQuery(ac, w, query.Name(query.TopicEligibility, user), func() (services.Eligibility, error) {
		return ac.progress.Eligibility(user)
	})
}

// Summary reports how many records each collection holds.
func (ac *ApiController) Summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{
		"postings":      ac.repos.Postings.Count(),
		"applications":  ac.repos.Applications.Count(),
		"logbook":       ac.repos.Logbook.Count(),
		"modules":       ac.repos.Modules.Count(),
		"notifications": ac.repos.Notifications.Count(),
		"verifications": ac.repos.Verifications.Count(),
		"mentors":       ac.repos.Mentors.Count(),
		"sessions":      ac.repos.Sessions.Count(),
		"profiles":      ac.repos.Profiles.Count(),
		"badges":        ac.repos.Badges.Count(),
		"events":        ac.repos.Events.Count(),
		"feedback":      ac.repos.Feedback.Count(),
	})
}

// ClearRecords deletes every stored collection.
func (ac *ApiController) ClearRecords(w http.ResponseWriter, r *http.Request) {
	if err := ac.repos.Store.Clear(); err != nil {
		ac.logger.Errorf(providers.TypePost, "Clear failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	ac.queries.InvalidateAll()
	w.WriteHeader(http.StatusNoContent)
}
