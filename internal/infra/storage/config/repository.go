package config

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/CHB-BookingService/internal/domain"
	"github.com/m04kA/CHB-BookingService/pkg/dbmetrics"
	"github.com/m04kA/CHB-BookingService/pkg/psqlbuilder"
)

var configColumns = []string{
	"id",
	"venue_id",
	"grid_start_hour",
	"grid_end_hour",
	"grid_end_minute",
	"grid_interval_minutes",
	"min_booking_minutes",
	"max_booking_minutes",
	"requires_approval",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с конфигурацией слотов площадок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByVenueID получает конфигурацию для площадки
// venueID == nil означает общую конфигурацию кампуса (строка с venue_id NULL)
func (r *Repository) GetByVenueID(ctx context.Context, venueID *int64) (*domain.VenueSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(configColumns...).
		From("venue_slots_config")

	if venueID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"venue_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"venue_id": *venueID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueID - build select query: %v", ErrBuildQuery, err)
	}

	config, err := r.scanConfig(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueID - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// GetEffectiveConfig получает конфигурацию с учетом иерархии приоритетов:
// 1. Конфигурация конкретной площадки (venue_id = venueID)
// 2. Общая конфигурация кампуса (venue_id NULL)
// 3. Встроенные значения по умолчанию
// Ошибку возвращает только при сбое запроса — отсутствие строк не ошибка.
func (r *Repository) GetEffectiveConfig(ctx context.Context, venueID int64) (*domain.VenueSlotsConfig, error) {
	config, err := r.GetByVenueID(ctx, &venueID)
	if err == nil {
		return config, nil
	}
	if err != ErrConfigNotFound {
		return nil, fmt.Errorf("%w: GetEffectiveConfig - venue level: %v", ErrExecQuery, err)
	}

	config, err = r.GetByVenueID(ctx, nil)
	if err == nil {
		return config, nil
	}
	if err != ErrConfigNotFound {
		return nil, fmt.Errorf("%w: GetEffectiveConfig - campus level: %v", ErrExecQuery, err)
	}

	return domain.DefaultVenueSlotsConfig(), nil
}

// Upsert создает или обновляет конфигурацию площадки
// Уникальность по venue_id обеспечивается индексом, NULL учитывается отдельно
func (r *Repository) Upsert(ctx context.Context, config *domain.VenueSlotsConfig) (*domain.VenueSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("venue_slots_config").
		Columns(
			"venue_id",
			"grid_start_hour",
			"grid_end_hour",
			"grid_end_minute",
			"grid_interval_minutes",
			"min_booking_minutes",
			"max_booking_minutes",
			"requires_approval",
		).
		Values(
			config.VenueID,
			config.GridStartHour,
			config.GridEndHour,
			config.GridEndMinute,
			config.GridIntervalMinutes,
			config.MinBookingMinutes,
			config.MaxBookingMinutes,
			config.RequiresApproval,
		).
		Suffix(`ON CONFLICT (COALESCE(venue_id, 0)) DO UPDATE SET
			grid_start_hour = EXCLUDED.grid_start_hour,
			grid_end_hour = EXCLUDED.grid_end_hour,
			grid_end_minute = EXCLUDED.grid_end_minute,
			grid_interval_minutes = EXCLUDED.grid_interval_minutes,
			min_booking_minutes = EXCLUDED.min_booking_minutes,
			max_booking_minutes = EXCLUDED.max_booking_minutes,
			requires_approval = EXCLUDED.requires_approval,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// Delete удаляет конфигурацию площадки (возврат к общей конфигурации кампуса)
func (r *Repository) Delete(ctx context.Context, venueID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("venue_slots_config").
		Where(squirrel.Eq{"venue_id": venueID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanConfig(row rowScanner) (*domain.VenueSlotsConfig, error) {
	var config domain.VenueSlotsConfig
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&config.ID,
		&config.VenueID,
		&config.GridStartHour,
		&config.GridEndHour,
		&config.GridEndMinute,
		&config.GridIntervalMinutes,
		&config.MinBookingMinutes,
		&config.MaxBookingMinutes,
		&config.RequiresApproval,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}
