package controllers

import (
	"elevate/internal/models"
	"elevate/internal/query"
	"net/http"
)

func (ac *ApiController) ListMentors(w http.ResponseWriter, r *http.Request) {
	if department := r.URL.Query().Get("department"); department != "" {
		serveList(ac, w, r, query.Name(query.TopicMentors, department), func() []models.Mentor {
			return ac.repos.Mentors.ListByDepartment(department)
		})
		return
	}
	serveList(ac, w, r, query.TopicMentors, func() []models.Mentor { return ac.repos.Mentors.List() })
}

func (ac *ApiController) CreateMentor(w http.ResponseWriter, r *http.Request) {
	var payload models.Mentor
	if !decodeBody(w, r, &payload) {
		return
	}
	ac.mutate(w, http.StatusCreated, func() (any, bool, error) {
		return created(ac.repos.Mentors.Insert(payload))
	}, query.TopicMentors)
}

func (ac *ApiController) UpsertMentor(w http.ResponseWriter, r *http.Request) {
	var payload models.Mentor
	if !decodeBody(w, r, &payload) {
		return
	}
	ac.mutate(w, http.StatusOK, func() (any, bool, error) {
		return created(ac.repos.Mentors.Upsert(payload))
	}, query.TopicMentors)
}

func (ac *ApiController) ListSessions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	switch {
	case q.Get("mentor") != "":
		mentor := q.Get("mentor")
		serveList(ac, w, r, query.Name(query.TopicSessions, "mentor="+mentor), func() []models.MentoringSession {
			return ac.repos.Sessions.ListByMentor(mentor)
		})
	case q.Get("student") != "":
		student := q.Get("student")
		serveList(ac, w, r, query.Name(query.TopicSessions, "student="+student), func() []models.MentoringSession {
			return ac.repos.Sessions.ListByStudent(student)
		})
	default:
		serveList(ac, w, r, query.TopicSessions, func() []models.MentoringSession { return ac.repos.Sessions.List() })
	}
}

func (ac *ApiController) ScheduleSession(w http.ResponseWriter, r *http.Request) {
	var payload models.MentoringSession
	if !decodeBody(w, r, &payload) {
		return
	}
	ac.mutate(w, http.StatusCreated, func() (any, bool, error) {
		return created(ac.repos.Sessions.Schedule(payload))
	}, query.TopicSessions)
}

// UpdateSession completes or cancels a session depending on payload status.
func (ac *ApiController) UpdateSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Notes  string `json:"notes,omitempty"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}
	ac.mutate(w, http.StatusNoContent, func() (any, bool, error) {
		switch payload.Status {
		case models.SessionCompleted:
			return existed(ac.repos.Sessions.Complete(payload.ID, payload.Notes))
		case models.SessionCancelled:
			return existed(ac.repos.Sessions.Cancel(payload.ID))
		}
		return nil, false, errInvalidSessionStatus
	}, query.TopicSessions)
}

func (ac *ApiController) ListBadges(w http.ResponseWriter, r *http.Request) {
	if student := r.URL.Query().Get("student"); student != "" {
		serveList(ac, w, r, query.Name(query.TopicBadges, student), func() []models.Badge {
			return ac.repos.Badges.ListByStudent(student)
		})
		return
	}
	serveList(ac, w, r, query.TopicBadges, func() []models.Badge { return ac.repos.Badges.List() })
}

func (ac *ApiController) AwardBadge(w http.ResponseWriter, r *http.Request) {
	var payload models.Badge
	if !decodeBody(w, r, &payload) {
		return
	}
	ac.mutate(w, http.StatusCreated, func() (any, bool, error) {
		return created(ac.repos.Badges.Award(payload))
	}, query.TopicBadges)
}

func (ac *ApiController) ListEvents(w http.ResponseWriter, r *http.Request) {
	serveList(ac, w, r, query.TopicEvents, func() []models.Event { return ac.repos.Events.List() })
}

func (ac *ApiController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var payload models.Event
	if !decodeBody(w, r, &payload) {
		return
	}
	ac.mutate(w, http.StatusCreated, func() (any, bool, error) {
		return created(ac.repos.Events.Create(payload))
	}, query.TopicEvents)
}

func (ac *ApiController) ListFeedback(w http.ResponseWriter, r *http.Request) {
	if student := r.URL.Query().Get("student"); student != "" {
		serveList(ac, w, r, query.Name(query.TopicFeedback, student), func() []models.IndustryFeedback {
			return ac.repos.Feedback.ListByStudent(student)
		})
		return
	}
	serveList(ac, w, r, query.TopicFeedback, func() []models.IndustryFeedback { return ac.repos.Feedback.List() })
}

func (ac *ApiController) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var payload models.IndustryFeedback
	if !decodeBody(w, r, &payload) {
		return
	}
	ac.mutate(w, http.StatusCreated, func() (any, bool, error) {
		return created(ac.repos.Feedback.Submit(payload))
	}, query.TopicFeedback)
}
