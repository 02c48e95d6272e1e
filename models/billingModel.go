package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the billing state machine. Pending, partial and paid are
// derived from the amounts; cancelled is only ever set explicitly.
type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusPartial   PaymentStatus = "partial"
	StatusPaid      PaymentStatus = "paid"
	StatusCancelled PaymentStatus = "cancelled"
)

// PaymentMethod records how a payment was made.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCreditCard   PaymentMethod = "credit_card"
	MethodDebitCard    PaymentMethod = "debit_card"
	MethodInsurance    PaymentMethod = "insurance"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

// Bill is the billing aggregate root. Balance and status are derived fields:
// callers never write them directly, Recalculate does.
type Bill struct {
	ID                int64         `gorm:"primaryKey;column:id" json:"id"`
	BillNumber        string        `gorm:"size:30;not null;unique;index;column:bill_number" json:"bill_number"`
	PatientID         int64         `gorm:"column:patient_id;not null;index" json:"patient_id"`
	BillDate          time.Time     `gorm:"column:bill_date;not null" json:"bill_date"`
	DueDate           *time.Time    `gorm:"column:due_date" json:"due_date"`
	TotalAmount       float64       `gorm:"column:total_amount;not null" json:"total_amount"`
	PaidAmount        float64       `gorm:"column:paid_amount;default:0" json:"paid_amount"`
	Balance           float64       `gorm:"column:balance;default:0" json:"balance"`
	Status            PaymentStatus `gorm:"size:20;column:status;default:pending" json:"status"`
	PaymentMethod     PaymentMethod `gorm:"size:20;column:payment_method" json:"payment_method,omitempty"`
	InsuranceProvider string        `gorm:"size:100;column:insurance_provider" json:"insurance_provider,omitempty"`
	InsuranceNumber   string        `gorm:"size:50;column:insurance_number" json:"insurance_number,omitempty"`
	InsuranceCoverage float64       `gorm:"column:insurance_coverage;default:0" json:"insurance_coverage"`
	Notes             string        `gorm:"type:text;column:notes" json:"notes,omitempty"`
	CreatedAt         time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Patient Patient    `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Items   []BillItem `gorm:"foreignKey:BillID;references:ID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Bill) TableName() string {
	return "bills"
}

// BillItem is a line on a bill; it never outlives its bill.
type BillItem struct {
	ID          int64     `gorm:"primaryKey;column:id" json:"id"`
	BillID      int64     `gorm:"column:bill_id;not null;index" json:"bill_id"`
	Description string    `gorm:"size:200;not null;column:description" json:"description"`
	Quantity    int       `gorm:"column:quantity;default:1" json:"quantity"`
	UnitPrice   float64   `gorm:"column:unit_price;not null" json:"unit_price"`
	TotalPrice  float64   `gorm:"column:total_price;not null" json:"total_price"`
	ItemType    string    `gorm:"size:50;column:item_type" json:"item_type"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (BillItem) TableName() string {
	return "bill_items"
}

// Recalculate recomputes the line totals, the bill total, the balance and
// the derived status. The balance formula holds even for cancelled bills,
// but cancellation itself is never derived or undone here.
func (b *Bill) Recalculate() {
	var total float64
	for i := range b.Items {
		b.Items[i].TotalPrice = float64(b.Items[i].Quantity) * b.Items[i].UnitPrice
		total += b.Items[i].TotalPrice
	}
	if len(b.Items) > 0 {
		b.TotalAmount = total
	}
	b.Balance = b.TotalAmount - b.PaidAmount

	if b.Status == StatusCancelled {
		return
	}
	switch {
	case b.Balance <= 0:
		b.Status = StatusPaid
	case b.PaidAmount > 0:
		b.Status = StatusPartial
	default:
		b.Status = StatusPending
	}
}

// ApplyPayment adds a payment and re-derives balance and status. A payment
// landing on a cancelled bill puts it back under amount derivation. It does
// not validate the amount or reject paid bills; the service does that first.
func (b *Bill) ApplyPayment(amount float64, method PaymentMethod) {
	b.PaidAmount += amount
	b.PaymentMethod = method
	if b.Status == StatusCancelled {
		b.Status = StatusPending
	}
	b.Recalculate()
}

// NewBillNumber generates a unique bill number, e.g. BILL-20260831-1A2B3C4D.
func NewBillNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("BILL-%s-%s", now.Format("20060102"), suffix)
}
