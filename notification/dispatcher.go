package notification

import (
	"context"
	"errors"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reliefhub/relief-api/consts"
	"github.com/reliefhub/relief-api/fault"
	"github.com/reliefhub/relief-api/presence"
	"github.com/reliefhub/relief-api/schema"
	"github.com/reliefhub/relief-api/store"
)

var log = logrus.WithField("prefix", "notification")

// Dispatcher persists notifications and pushes them to connected owners.
// The stored notification is the source of truth; the push is a hint.
type Dispatcher struct {
	store  store.NotificationStore
	pub    presence.Publisher
	bundle *i18n.Bundle
	lang   string
	now    func() time.Time
}

func NewDispatcher(s store.NotificationStore, pub presence.Publisher, bundle *i18n.Bundle) *Dispatcher {
	return &Dispatcher{
		store:  s,
		pub:    pub,
		bundle: bundle,
		lang:   DefaultLanguage,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Render produces the text of a payload
func (d *Dispatcher) Render(p Payload) (string, error) {
	loc := i18n.NewLocalizer(d.bundle, d.lang)
	return loc.Localize(&i18n.LocalizeConfig{
		MessageID:    p.messageID(),
		TemplateData: p.templateData(),
	})
}

func (d *Dispatcher) build(userID string, p Payload, text string, requestID *primitive.ObjectID) schema.Notification {
	return schema.Notification{
		UserID:           userID,
		Kind:             p.Kind(),
		Message:          text,
		RelatedRequestID: requestID,
		IsRead:           false,
		CreatedAt:        d.now(),
	}
}

// Notify stores a notification for one user and pushes it to the user room
func (d *Dispatcher) Notify(ctx context.Context, userID string, p Payload, requestID *primitive.ObjectID) (*schema.Notification, error) {
	text, err := d.Render(p)
	if err != nil {
		return nil, err
	}

	saved, err := d.store.InsertNotifications(ctx, []schema.Notification{d.build(userID, p, text, requestID)})
	if err != nil {
		return nil, err
	}

	n := saved[0]
	d.pub.Publish(presence.UserRoom(userID), presence.EventNotificationNew, n)
	return &n, nil
}

// NotifyMany stores the same notification for every user in one write, then
// pushes each copy to its owner. It returns the number stored.
func (d *Dispatcher) NotifyMany(ctx context.Context, userIDs []string, p Payload, requestID *primitive.ObjectID) (int, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}

	text, err := d.Render(p)
	if err != nil {
		return 0, err
	}

	notifications := make([]schema.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		notifications = append(notifications, d.build(id, p, text, requestID))
	}

	saved, err := d.store.InsertNotifications(ctx, notifications)
	if err != nil {
		return 0, err
	}

	for _, n := range saved {
		d.pub.Publish(presence.UserRoom(n.UserID), presence.EventNotificationNew, n)
	}

	log.WithField("kind", p.Kind()).WithField("users", len(saved)).Debug("notified users")
	return len(saved), nil
}

// List returns the latest notifications of a user and the unread count
func (d *Dispatcher) List(ctx context.Context, userID string) ([]schema.Notification, int64, error) {
	notifications, err := d.store.ListNotifications(ctx, userID, consts.DefaultNotificationLimit)
	if err != nil {
		return nil, 0, err
	}
	unread, err := d.store.CountUnreadNotifications(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return notifications, unread, nil
}

func (d *Dispatcher) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return d.store.CountUnreadNotifications(ctx, userID)
}

// MarkRead flags a notification of the user as read. A notification owned
// by someone else is reported as not found.
func (d *Dispatcher) MarkRead(ctx context.Context, userID string, id primitive.ObjectID) (*schema.Notification, error) {
	n, err := d.store.MarkNotificationRead(ctx, userID, id)
	if err != nil {
		return nil, notFound(err)
	}
	return n, nil
}

func (d *Dispatcher) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return d.store.MarkAllNotificationsRead(ctx, userID)
}

func (d *Dispatcher) Delete(ctx context.Context, userID string, id primitive.ObjectID) error {
	return notFound(d.store.DeleteNotification(ctx, userID, id))
}

func notFound(err error) error {
	if errors.Is(err, store.ErrNotificationNotFound) {
		return fault.Wrap(fault.NotFound, err, "notification not found")
	}
	return err
}
