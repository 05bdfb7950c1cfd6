package repository

import (
	"context"
	"fmt"

	"esports-registration/models"

	"gorm.io/gorm"
)

// RegistrationFilter narrows a registration listing; empty fields do not filter.
type RegistrationFilter struct {
	Game   string
	Mode   string
	Status string
}

// RegistrationStats aggregates registrations for the dashboard.
type RegistrationStats struct {
	Total    int64
	ByStatus map[string]int64
	ByGame   map[string]int64
	// Revenue sums entry fees of approved registrations only.
	Revenue int64
}

type RegistrationRepository struct {
	conn Connector
}

func NewRegistrationRepository(conn Connector) *RegistrationRepository {
	return &RegistrationRepository{conn: conn}
}

// Create inserts reg. The unique index on transaction_id makes a concurrent
// duplicate fail here with ErrDuplicate even if an earlier lookup missed it.
func (r *RegistrationRepository) Create(ctx context.Context, reg *models.TournamentRegistration) error {
	db, err := r.conn.Conn()
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(reg).Error; err != nil {
		return fmt.Errorf("create registration: %w", translate(err))
	}
	return nil
}

func (r *RegistrationRepository) ExistsByTransactionID(ctx context.Context, txnID string) (bool, error) {
	db, err := r.conn.Conn()
	if err != nil {
		return false, err
	}
	var count int64
	err = db.WithContext(ctx).Model(&models.TournamentRegistration{}).
		Where("transaction_id = ?", txnID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("lookup transaction: %w", err)
	}
	return count > 0, nil
}

// List returns one page of registrations, newest first, and the total match count.
func (r *RegistrationRepository) List(ctx context.Context, filter RegistrationFilter, page Page) ([]models.TournamentRegistration, int64, error) {
	db, err := r.conn.Conn()
	if err != nil {
		return nil, 0, err
	}
	scope := func() *gorm.DB {
		q := db.WithContext(ctx).Model(&models.TournamentRegistration{})
		if filter.Game != "" {
			q = q.Where("game = ?", filter.Game)
		}
		if filter.Mode != "" {
			q = q.Where("mode = ?", filter.Mode)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		return q
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count registrations: %w", err)
	}

	var regs []models.TournamentRegistration
	err = scope().Order("created_at DESC").Order("id DESC").Offset(page.Offset).Limit(page.Limit).Find(&regs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list registrations: %w", err)
	}
	return regs, total, nil
}

func (r *RegistrationRepository) UpdateStatus(ctx context.Context, id, status string) (*models.TournamentRegistration, error) {
	db, err := r.conn.Conn()
	if err != nil {
		return nil, err
	}
	res := db.WithContext(ctx).Model(&models.TournamentRegistration{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, fmt.Errorf("update registration status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	var reg models.TournamentRegistration
	if err := db.WithContext(ctx).First(&reg, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &reg, nil
}

func (r *RegistrationRepository) Stats(ctx context.Context) (RegistrationStats, error) {
	stats := RegistrationStats{
		ByStatus: map[string]int64{},
		ByGame:   map[string]int64{},
	}
	db, err := r.conn.Conn()
	if err != nil {
		return stats, err
	}

	type bucket struct {
		Name  string
		Total int64
	}

	var byStatus []bucket
	err = db.WithContext(ctx).Model(&models.TournamentRegistration{}).
		Select("status AS name, COUNT(*) AS total").Group("status").Scan(&byStatus).Error
	if err != nil {
		return stats, fmt.Errorf("count registrations by status: %w", err)
	}
	for _, b := range byStatus {
		stats.ByStatus[b.Name] = b.Total
		stats.Total += b.Total
	}

	var byGame []bucket
	err = db.WithContext(ctx).Model(&models.TournamentRegistration{}).
		Select("game AS name, COUNT(*) AS total").Group("game").Scan(&byGame).Error
	if err != nil {
		return stats, fmt.Errorf("count registrations by game: %w", err)
	}
	for _, b := range byGame {
		stats.ByGame[b.Name] = b.Total
	}

	err = db.WithContext(ctx).Model(&models.TournamentRegistration{}).
		Where("status = ?", models.RegistrationStatusApproved).
		Select("COALESCE(SUM(entry_fee), 0)").Scan(&stats.Revenue).Error
	if err != nil {
		return stats, fmt.Errorf("sum approved entry fees: %w", err)
	}
	return stats, nil
}
