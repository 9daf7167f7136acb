package repository

import (
	"context"
	"strings"
	"time"

	"hotel/internal/domain"

	"gorm.io/gorm"
)

type GuestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

type guestModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;type:varchar(100);not null"`
	Email     *string   `gorm:"column:email;type:varchar(100)"`
	Phone     string    `gorm:"column:phone;type:varchar(20);not null"`
	Address   *string   `gorm:"column:address;type:text"`
	IDProof   *string   `gorm:"column:id_proof;type:varchar(50)"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (guestModel) TableName() string { return "guests" }

func toDomainGuest(m guestModel) *domain.Guest {
	return &domain.Guest{
		ID:        m.ID,
		Name:      m.Name,
		Email:     derefString(m.Email),
		Phone:     m.Phone,
		Address:   derefString(m.Address),
		IDProof:   derefString(m.IDProof),
		CreatedAt: m.CreatedAt,
	}
}

func toGuestModel(g *domain.Guest) guestModel {
	return guestModel{
		ID:        g.ID,
		Name:      strings.TrimSpace(g.Name),
		Email:     optionalString(strings.TrimSpace(strings.ToLower(g.Email))),
		Phone:     strings.TrimSpace(g.Phone),
		Address:   optionalString(g.Address),
		IDProof:   optionalString(g.IDProof),
		CreatedAt: g.CreatedAt,
	}
}

func (r *GuestRepository) Create(ctx context.Context, g *domain.Guest) error {
	m := toGuestModel(g)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*g = *toDomainGuest(m)
	return nil
}

func (r *GuestRepository) GetByID(ctx context.Context, id int64) (*domain.Guest, error) {
	var m guestModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainGuest(m), nil
}

// List returns guests newest first. query matches name, phone or email.
func (r *GuestRepository) List(ctx context.Context, query string) ([]domain.Guest, error) {
	q := r.db.WithContext(ctx).Model(&guestModel{})
	if query = strings.TrimSpace(query); query != "" {
		like := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	}

	var rows []guestModel
	if err := q.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Guest, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainGuest(m))
	}
	return out, nil
}

func (r *GuestRepository) Update(ctx context.Context, g *domain.Guest) error {
	m := toGuestModel(g)
	res := r.db.WithContext(ctx).
		Model(&guestModel{}).
		Where("id = ?", g.ID).
		Updates(map[string]any{
			"name":     m.Name,
			"email":    m.Email,
			"phone":    m.Phone,
			"address":  m.Address,
			"id_proof": m.IDProof,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GuestRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&guestModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GuestRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&guestModel{}).Count(&n).Error
	return n, err
}
