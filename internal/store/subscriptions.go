package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/model"
)

// PutSubscription creates or replaces a subscription and the set of events
// it follows.
func (s *gormStore) PutSubscription(ctx context.Context, sub *model.PushSubscription, eventIDs []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
		}).Omit("Events").Create(sub).Error; err != nil {
			return err
		}

		events := []*model.Event{}
		if len(eventIDs) > 0 {
			if err := tx.Where("id IN ?", eventIDs).Find(&events).Error; err != nil {
				return err
			}
		}
		return tx.Model(sub).Association("Events").Replace(events)
	})
}

func (s *gormStore) GetSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error) {
	var sub model.PushSubscription
	if err := s.db.WithContext(ctx).Preload("Events").First(&sub, "endpoint = ?", endpoint).Error; err != nil {
		return nil, notFound(err)
	}
	return &sub, nil
}

func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM subscription_event_mapping WHERE push_subscription_endpoint = ?", endpoint).Error; err != nil {
			return fmt.Errorf("failed to unlink subscription %s: %w", endpoint, err)
		}
		return tx.Delete(&model.PushSubscription{Endpoint: endpoint}).Error
	})
}

// SubscriptionsForEvent returns the subscriptions following eventID.
func (s *gormStore) SubscriptionsForEvent(ctx context.Context, eventID string) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	err := s.db.WithContext(ctx).
		Joins("JOIN subscription_event_mapping sem ON sem.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("sem.event_id = ?", eventID).
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subscriptions for event %s: %w", eventID, err)
	}
	return subs, nil
}
