package repository

import (
	"elevate/internal/models"
	"elevate/internal/storage"
)

type Notifications struct {
	*Repository[models.Notification]
}

func NewNotifications(store *storage.RecordStore) *Notifications {
	return &Notifications{New(store, Config[models.Notification]{
		Key:    models.KeyNotifications,
		Prefix: "notif",
		KeyOf:  func(n models.Notification) string { return n.ID },
		SetID:  func(n *models.Notification, id string) { n.ID = id },
		Order:  Prepend,
	})}
}

// Push alerts role. An empty role reaches everyone.
func (n *Notifications) Push(role, title, body string) (models.Notification, error) {
	return n.Insert(models.Notification{
		UserRole:  role,
		Title:     title,
		Body:      body,
		CreatedAt: timestamp(),
	})
}

func (n *Notifications) MarkRead(id string) (bool, error) {
	return n.Update(id, func(x *models.Notification) {
		x.Read = true
	})
}

func (n *Notifications) MarkAllRead(role string) (bool, error) {
	return n.Modify(func(current []models.Notification) ([]models.Notification, bool) {
		changed := false
		for i := range current {
			if visibleTo(current[i], role) && !current[i].Read {
				current[i].Read = true
				changed = true
			}
		}
		return current, changed
	})
}

func (n *Notifications) ListForRole(role string) []models.Notification {
	return n.List(func(x models.Notification) bool { return visibleTo(x, role) })
}

func (n *Notifications) UnreadCount(role string) int {
	count := 0
	for _, x := range n.ListForRole(role) {
		if !x.Read {
			count++
		}
	}
	return count
}

func visibleTo(n models.Notification, role string) bool {
	return role == "" || n.UserRole == "" || n.UserRole == role
}
