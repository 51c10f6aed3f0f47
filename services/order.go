package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foodieride-api/geo"
	"foodieride-api/logger"
	"foodieride-api/metrics"
	"foodieride-api/models"
	"foodieride-api/statemachine"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultFoodAddress is geocoded when a booking names no delivery address.
const DefaultFoodAddress = "Hyderabad"

type BookingRequest struct {
	Type        string
	Restaurant  string
	FoodAddress string
	Item        string
}

// OrderService owns the order lifecycle: it is the only writer of an order's
// status and rider.
type OrderService struct {
	db       *gorm.DB
	geo      geo.Provider
	notifier *Notifier
}

func NewOrderService(db *gorm.DB, geoProvider geo.Provider, notifier *Notifier) *OrderService {
	return &OrderService{db: db, geo: geoProvider, notifier: notifier}
}

// Restaurants lists the restaurants around the default location.
func (s *OrderService) Restaurants(ctx context.Context) []geo.Restaurant {
	lat, lon := s.geo.DefaultLocation()
	return s.geo.DiscoverRestaurants(ctx, lat, lon)
}

// Create books a pending order for customerID.
func (s *OrderService) Create(ctx context.Context, customerID uint, req BookingRequest) (*models.Order, error) {
	orderType, ok := models.ParseOrderType(strings.TrimSpace(req.Type))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedOrderType, req.Type)
	}
	restName := strings.TrimSpace(req.Restaurant)
	if restName == "" {
		return nil, fmt.Errorf("%w: please select a restaurant", ErrMissingField)
	}
	item := strings.TrimSpace(req.Item)
	if item == "" {
		return nil, fmt.Errorf("%w: please specify an item", ErrMissingField)
	}
	address := strings.TrimSpace(req.FoodAddress)
	if address == "" {
		address = DefaultFoodAddress
	}

	rest, found := matchRestaurant(s.Restaurants(ctx), restName)
	if !found {
		return nil, fmt.Errorf("%w: '%s'", ErrRestaurantNotFound, restName)
	}

	foodLat, foodLon := s.geo.ResolveAddress(ctx, address)

	order := models.Order{
		CustomerID: customerID,
		RestName:   rest.Name,
		RestLat:    rest.Lat,
		RestLon:    rest.Lon,
		FoodLat:    foodLat,
		FoodLon:    foodLon,
		Item:       item,
		Status:     models.StatusPending,
		Type:       orderType,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(&order).Error
	})
	if err != nil {
		logger.Get().Error().Err(err).Uint("customer_id", customerID).Msg("database error in book")
		return nil, fmt.Errorf("create order: %w: %w", ErrStoreFailure, err)
	}

	metrics.OrdersCreatedTotal.WithLabelValues(string(orderType)).Inc()
	logger.Get().Info().
		Uint("order_id", order.ID).
		Uint("customer_id", customerID).
		Str("rest_name", order.RestName).
		Float64("food_lat", foodLat).
		Float64("food_lon", foodLon).
		Msg("order booked")
	return &order, nil
}

// matchRestaurant compares names case-insensitively and returns the
// discovered spelling.
func matchRestaurant(restaurants []geo.Restaurant, name string) (geo.Restaurant, bool) {
	for _, r := range restaurants {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return geo.Restaurant{}, false
}

// ListPending returns pending orders of type t in booking order.
func (s *OrderService) ListPending(ctx context.Context, t models.OrderType) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).
		Where("status = ? AND type = ?", models.StatusPending, t).
		Order("id").
		Find(&orders).Error; err != nil {
		logger.Get().Error().Err(err).Msg("database error listing pending orders")
		return nil, fmt.Errorf("list pending orders: %w: %w", ErrStoreFailure, err)
	}
	return orders, nil
}

// ListForCustomer returns the customer's orders with the rider's username and
// phone, which stay nil until a captain accepts.
func (s *OrderService) ListForCustomer(ctx context.Context, customerID uint) ([]models.CustomerOrder, error) {
	var orders []models.CustomerOrder
	if err := s.db.WithContext(ctx).
		Table("orders AS o").
		Select("o.id, o.rest_name, o.food_lat, o.food_lon, o.item, o.status, o.type, u.username AS rider_username, u.phone AS rider_phone").
		Joins("LEFT JOIN users u ON o.rider_id = u.id").
		Where("o.customer_id = ?", customerID).
		Order("o.id").
		Scan(&orders).Error; err != nil {
		logger.Get().Error().Err(err).Uint("customer_id", customerID).Msg("database error listing customer orders")
		return nil, fmt.Errorf("list customer orders: %w: %w", ErrStoreFailure, err)
	}
	return orders, nil
}

// Accept assigns captainID as the rider of a pending order. The update only
// applies while the order is still pending, so of two concurrent accepts
// exactly one wins; the other gets ErrOrderAlreadyAccepted.
func (s *OrderService) Accept(ctx context.Context, orderID, captainID uint) (*models.Order, error) {
	var (
		order models.Order
		note  *models.Notification
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if err := statemachine.CanTransition(order.Status, models.StatusAccepted, models.RoleCaptain); err != nil {
			return fmt.Errorf("%w: %v", ErrOrderAlreadyAccepted, err)
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", orderID, models.StatusPending).
			Updates(map[string]any{
				"status":   models.StatusAccepted,
				"rider_id": captainID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOrderAlreadyAccepted
		}
		order.Status = models.StatusAccepted
		order.RiderID = &captainID

		var err error
		note, err = s.notifier.recordAccepted(tx, &order)
		return err
	})

	log := logger.Get()
	switch {
	case err == nil:
	case errors.Is(err, ErrOrderNotFound):
		metrics.OrdersAcceptedTotal.WithLabelValues("not_found").Inc()
		log.Debug().Uint("order_id", orderID).Msg("food order not found")
		return nil, err
	case errors.Is(err, ErrOrderAlreadyAccepted):
		metrics.OrdersAcceptedTotal.WithLabelValues("already_accepted").Inc()
		log.Info().Uint("order_id", orderID).Uint("captain_id", captainID).Msg("order already accepted")
		return nil, err
	default:
		metrics.OrdersAcceptedTotal.WithLabelValues("error").Inc()
		log.Error().Err(err).Uint("order_id", orderID).Msg("database error in accept")
		return nil, fmt.Errorf("accept order: %w: %w", ErrStoreFailure, err)
	}

	metrics.OrdersAcceptedTotal.WithLabelValues("accepted").Inc()
	log.Info().Uint("order_id", orderID).Uint("captain_id", captainID).Uint("customer_id", order.CustomerID).Msg("food order accepted")
	s.notifier.publishAccepted(ctx, &order, note)
	return &order, nil
}
