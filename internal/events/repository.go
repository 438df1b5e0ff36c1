package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrSessionNotFound = errors.New("event session not found")
)

// Repository interface for event lookups. The engine sells against
// sessions; event CRUD lives in the back office, not here.
type Repository interface {
	CreateEvent(ctx context.Context, event *Event) error
	CreateSession(ctx context.Context, session *EventSession) error

	GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	GetSessionByID(ctx context.Context, id uuid.UUID) (*EventSession, error)
	GetSessionsByEventID(ctx context.Context, eventID uuid.UUID) ([]EventSession, error)
	ListPublished(ctx context.Context) ([]Event, error)

	// GetSellableSession loads a session only if reservations may target
	// it: scheduled or on sale, and not yet started.
	GetSellableSession(ctx context.Context, id uuid.UUID) (*EventSession, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new events repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateEvent(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) CreateSession(ctx context.Context, session *EventSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *repository) GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).Preload("Sessions").First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *repository) GetEventBySlug(ctx context.Context, slug string) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).Preload("Sessions").First(&event, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *repository) GetSessionByID(ctx context.Context, id uuid.UUID) (*EventSession, error) {
	var session EventSession
	err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *repository) GetSessionsByEventID(ctx context.Context, eventID uuid.UUID) ([]EventSession, error) {
	var sessions []EventSession
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("starts_at ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *repository) ListPublished(ctx context.Context) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Preload("Sessions").
		Where("status = ?", EventStatusPublished).
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}

func (r *repository) GetSellableSession(ctx context.Context, id uuid.UUID) (*EventSession, error) {
	var session EventSession
	err := r.db.WithContext(ctx).
		Where("id = ? AND status IN ? AND starts_at > ?", id,
			[]string{SessionStatusScheduled, SessionStatusOnSale}, time.Now().UTC()).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}
