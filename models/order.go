package models

import "time"

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusPending  OrderStatus = "pending"
	StatusAccepted OrderStatus = "accepted"
)

// OrderType is the kind of booking. Only food orders exist today.
type OrderType string

const (
	OrderTypeFood OrderType = "food"
)

// ParseOrderType accepts "" as food and rejects anything unknown.
func ParseOrderType(s string) (OrderType, bool) {
	switch OrderType(s) {
	case "", OrderTypeFood:
		return OrderTypeFood, true
	}
	return "", false
}

type Order struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	CustomerID uint        `json:"customer_id" gorm:"index;not null"`
	Customer   User        `json:"-" gorm:"foreignKey:CustomerID"`
	RestName   string      `json:"rest_name" gorm:"not null"`
	RestLat    float64     `json:"rest_lat"`
	RestLon    float64     `json:"rest_lon"`
	FoodLat    float64     `json:"food_lat"`
	FoodLon    float64     `json:"food_lon"`
	Item       string      `json:"item" gorm:"not null"`
	Status     OrderStatus `json:"status" gorm:"index;not null;default:'pending'"`
	RiderID    *uint       `json:"rider_id"`
	Rider      *User       `json:"-" gorm:"foreignKey:RiderID"`
	Type       OrderType   `json:"type" gorm:"index;not null;default:'food'"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// CustomerOrder is an order joined with the identity of its rider, if any.
type CustomerOrder struct {
	ID            uint        `json:"id"`
	RestName      string      `json:"rest_name"`
	FoodLat       float64     `json:"food_lat"`
	FoodLon       float64     `json:"food_lon"`
	Item          string      `json:"item"`
	Status        OrderStatus `json:"status"`
	Type          OrderType   `json:"type"`
	RiderUsername *string     `json:"rider_username"`
	RiderPhone    *string     `json:"rider_phone"`
}

// Notification is a message left for a customer when something happens to
// one of their orders.
type Notification struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CustomerID uint      `json:"customer_id" gorm:"index;not null"`
	OrderID    uint      `json:"order_id" gorm:"not null"`
	Message    string    `json:"message" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}
