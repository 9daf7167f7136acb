package repository

import (
	"context"
	"time"

	"hotel/internal/domain"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

type paymentModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	BookingID     int64     `gorm:"column:booking_id;not null;index"`
	Amount        float64   `gorm:"column:amount;not null"`
	PaymentMethod string    `gorm:"column:payment_method;type:varchar(50);not null"`
	PaymentStatus string    `gorm:"column:payment_status;type:varchar(20);not null;default:pending"`
	TransactionID *string   `gorm:"column:transaction_id;type:varchar(100)"`
	Notes         *string   `gorm:"column:notes;type:text"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (paymentModel) TableName() string { return "payments" }

func toDomainPayment(m paymentModel) *domain.Payment {
	return &domain.Payment{
		ID:            m.ID,
		BookingID:     m.BookingID,
		Amount:        m.Amount,
		Method:        domain.PaymentMethod(m.PaymentMethod),
		Status:        domain.PaymentStatus(m.PaymentStatus),
		TransactionID: derefString(m.TransactionID),
		Notes:         derefString(m.Notes),
		CreatedAt:     m.CreatedAt,
	}
}

func toPaymentModel(p *domain.Payment) paymentModel {
	return paymentModel{
		ID:            p.ID,
		BookingID:     p.BookingID,
		Amount:        p.Amount,
		PaymentMethod: string(p.Method),
		PaymentStatus: string(p.Status),
		TransactionID: optionalString(p.TransactionID),
		Notes:         optionalString(p.Notes),
		CreatedAt:     p.CreatedAt,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	m := toPaymentModel(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*p = *toDomainPayment(m)
	return nil
}

func (r *PaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *PaymentRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	return r.find(r.db.WithContext(ctx).Where("booking_id = ?", bookingID))
}

func (r *PaymentRepository) find(q *gorm.DB) ([]domain.Payment, error) {
	var rows []paymentModel
	if err := q.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Payment, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainPayment(m))
	}
	return out, nil
}
