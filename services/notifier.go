package services

import (
	"context"
	"fmt"
	"time"

	"foodieride-api/events"
	"foodieride-api/logger"
	"foodieride-api/models"

	"gorm.io/gorm"
)

// Notifier leaves messages for customers about their orders and mirrors them
// to the event broker.
type Notifier struct {
	db        *gorm.DB
	publisher events.Publisher
}

func NewNotifier(db *gorm.DB, publisher events.Publisher) *Notifier {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Notifier{db: db, publisher: publisher}
}

// recordAccepted stores the acceptance notice inside the caller's transaction.
func (n *Notifier) recordAccepted(tx *gorm.DB, order *models.Order) (*models.Notification, error) {
	note := models.Notification{
		CustomerID: order.CustomerID,
		OrderID:    order.ID,
		Message:    fmt.Sprintf("Captain assigned to your food order (ID: %d)!", order.ID),
	}
	if err := tx.Create(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// publishAccepted is best effort: a broker failure is logged and dropped.
func (n *Notifier) publishAccepted(ctx context.Context, order *models.Order, note *models.Notification) {
	var riderID uint
	if order.RiderID != nil {
		riderID = *order.RiderID
	}
	err := n.publisher.PublishOrderAccepted(ctx, events.OrderAccepted{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		RiderID:    riderID,
		Message:    note.Message,
		AcceptedAt: time.Now().UTC(),
	})
	if err != nil {
		logger.Get().Warn().Err(err).Uint("order_id", order.ID).Msg("failed to publish order accepted event")
	}
}

// ForCustomer lists a customer's notices, newest first.
func (n *Notifier) ForCustomer(ctx context.Context, customerID uint) ([]models.Notification, error) {
	var notes []models.Notification
	if err := n.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id desc").
		Find(&notes).Error; err != nil {
		logger.Get().Error().Err(err).Uint("customer_id", customerID).Msg("database error loading notifications")
		return nil, fmt.Errorf("list notifications: %w: %w", ErrStoreFailure, err)
	}
	return notes, nil
}
