package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusOngoing   BookingStatus = "ongoing"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is the persisted source of truth for a rental. The money fields are
// the raw values captured at booking time; derived amounts are never stored.
type Booking struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	BookingNumber int64               `bson:"bookingNumber" json:"bookingNumber"`
	UserID        primitive.ObjectID  `bson:"userId" json:"userId"`
	CompanyID     primitive.ObjectID  `bson:"companyId" json:"companyId"`
	CarID         primitive.ObjectID  `bson:"carId" json:"carId"`
	AgentID       *primitive.ObjectID `bson:"agentId,omitempty" json:"agentId,omitempty"`
	PickupDate    time.Time           `bson:"pickupDate" json:"pickupDate"`
	DropDate      time.Time           `bson:"dropDate" json:"dropDate"`
	Days          int                 `bson:"days" json:"days"`
	DailyRate     float64             `bson:"dailyRate" json:"dailyRate"`
	VATRate       float64             `bson:"vatRate" json:"vatRate"`
	CouponCode    string              `bson:"couponCode,omitempty" json:"couponCode,omitempty"`
	// Percentage values are stored as plain numbers, 15 meaning 15%.
	CouponPercentage   *float64      `bson:"couponPercentage,omitempty" json:"couponPercentage,omitempty"`
	ExtensionDays      *int          `bson:"extensionDays,omitempty" json:"extensionDays,omitempty"`
	DepositAmount      float64       `bson:"depositAmount" json:"depositAmount"`
	CancellationCharge *float64      `bson:"cancellationCharge,omitempty" json:"cancellationCharge,omitempty"`
	CancelledAt        *time.Time    `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	Status             BookingStatus `bson:"status" json:"status"`
	IsDeleted          bool          `bson:"isDeleted" json:"-"`
	CreatedAt          time.Time     `bson:"createdAt" json:"createdAt"`
}

type TransactionStatus string

const (
	TransactionStatusPaid     TransactionStatus = "paid"
	TransactionStatusFailed   TransactionStatus = "failed"
	TransactionStatusRefunded TransactionStatus = "refunded"
)

type Transaction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BookingID primitive.ObjectID `bson:"bookingId" json:"bookingId"`
	CompanyID primitive.ObjectID `bson:"companyId" json:"companyId"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Reference string             `bson:"reference" json:"reference"`
	Amount    float64            `bson:"amount" json:"amount"`
	Method    string             `bson:"method" json:"method"`
	Status    TransactionStatus  `bson:"status" json:"status"`
	IsDeleted bool               `bson:"isDeleted" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
