package controllers

import (
	"elevate/internal/notify"
	"elevate/internal/providers"
	"elevate/internal/query"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

const (
	eventBufferSize   = 64
	keepAliveInterval = 15 * time.Second
)

// EventsController streams change events to HTTP clients as server-sent
// events, so a remote view can invalidate its own copies.
type EventsController struct {
	notifier notify.ChangeNotifierInterface
	bindings query.Bindings
	logger   providers.Logger
}

type streamEvent struct {
	Key    string   `json:"key"`
	Topics []string `json:"topics"`
	Origin string   `json:"origin"`
	Remote bool     `json:"remote"`
	At     string   `json:"at"`
}

func NewEventsController(notifier notify.ChangeNotifierInterface, bindings query.Bindings, logger providers.Logger) *EventsController {
	return &EventsController{
		notifier: notifier,
		bindings: bindings,
		logger:   logger,
	}
}

func (ec *EventsController) Stream(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	// The server write timeout would cut the stream.
	_ = rc.SetWriteDeadline(time.Time{})

	events := make(chan notify.ChangeEvent, eventBufferSize)
	unsubscribe := ec.notifier.Subscribe(func(ev notify.ChangeEvent) {
		select {
		case events <- ev:
		default:
			ec.logger.Warnf(providers.TypeSync, "Event stream %s is full, dropping %s", r.RemoteAddr, ev.Key)
		}
	})
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		ec.logger.Errorf(providers.TypeSync, "Event stream cannot flush: %s", err)
		return
	}

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if _, err := w.Write([]byte(": keep-alive\n\n")); err != nil {
				return
			}
		case ev := <-events:
			data, err := json.Marshal(ec.toStreamEvent(ev))
			if err != nil {
				continue
			}
			if _, err := w.Write(append(append([]byte("event: change\ndata: "), data...), '\n', '\n')); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}

func (ec *EventsController) toStreamEvent(ev notify.ChangeEvent) streamEvent {
	topics := ec.bindings[ev.Key]
	if topics == nil {
		topics = []string{}
	}
	return streamEvent{
		Key:    ev.Key,
		Topics: topics,
		Origin: ev.Origin,
		Remote: ev.Remote,
		At:     ev.At.UTC().Format(time.RFC3339Nano),
	}
}
