package repository

import (
	"context"
	"fmt"

	"esports-registration/models"

	"gorm.io/gorm"
)

// ContactFilter narrows a contact listing; empty fields do not filter.
type ContactFilter struct {
	Status string
}

// ContactCounts backs the dashboard statistics.
type ContactCounts struct {
	Total int64
	New   int64
}

type ContactRepository struct {
	conn Connector
}

func NewContactRepository(conn Connector) *ContactRepository {
	return &ContactRepository{conn: conn}
}

func (r *ContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	db, err := r.conn.Conn()
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("create contact: %w", translate(err))
	}
	return nil
}

// List returns one page of messages, newest first, and the total match count.
func (r *ContactRepository) List(ctx context.Context, filter ContactFilter, page Page) ([]models.ContactMessage, int64, error) {
	db, err := r.conn.Conn()
	if err != nil {
		return nil, 0, err
	}
	scope := func() *gorm.DB {
		q := db.WithContext(ctx).Model(&models.ContactMessage{})
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		return q
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	var msgs []models.ContactMessage
	err = scope().Order("created_at DESC").Order("id DESC").Offset(page.Offset).Limit(page.Limit).Find(&msgs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	return msgs, total, nil
}

// UpdateStatus sets the status of one message and returns the updated row.
func (r *ContactRepository) UpdateStatus(ctx context.Context, id, status string) (*models.ContactMessage, error) {
	db, err := r.conn.Conn()
	if err != nil {
		return nil, err
	}
	res := db.WithContext(ctx).Model(&models.ContactMessage{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, fmt.Errorf("update contact status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	var msg models.ContactMessage
	if err := db.WithContext(ctx).First(&msg, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &msg, nil
}

// Delete permanently removes one message.
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	db, err := r.conn.Conn()
	if err != nil {
		return err
	}
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&models.ContactMessage{})
	if res.Error != nil {
		return fmt.Errorf("delete contact: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ContactRepository) Counts(ctx context.Context) (ContactCounts, error) {
	var counts ContactCounts
	db, err := r.conn.Conn()
	if err != nil {
		return counts, err
	}
	if err := db.WithContext(ctx).Model(&models.ContactMessage{}).Count(&counts.Total).Error; err != nil {
		return counts, fmt.Errorf("count contacts: %w", err)
	}
	err = db.WithContext(ctx).Model(&models.ContactMessage{}).
		Where("status = ?", models.ContactStatusNew).Count(&counts.New).Error
	if err != nil {
		return counts, fmt.Errorf("count new contacts: %w", err)
	}
	return counts, nil
}
