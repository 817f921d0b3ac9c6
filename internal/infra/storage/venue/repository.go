package venue

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/CHB-BookingService/internal/domain"
	"github.com/m04kA/CHB-BookingService/pkg/dbmetrics"
	"github.com/m04kA/CHB-BookingService/pkg/psqlbuilder"
)

var venueColumns = []string{
	"id",
	"name",
	"kind",
	"location",
	"capacity",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с площадками (залами)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает площадку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(venueColumns...).
		From("venues").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var venue domain.Venue
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&venue.ID,
		&venue.Name,
		&venue.Kind,
		&venue.Location,
		&venue.Capacity,
		&venue.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan venue: %v", ErrScanRow, err)
	}

	venue.CreatedAt = createdAt.Time
	venue.UpdatedAt = updatedAt.Time

	return &venue, nil
}

// ListActive получает список активных площадок, опционально фильтруя по типу
func (r *Repository) ListActive(ctx context.Context, kind *domain.VenueKind) ([]*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(venueColumns...).
		From("venues").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC")

	if kind != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"kind": *kind})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	venues := make([]*domain.Venue, 0)

	for rows.Next() {
		var venue domain.Venue
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&venue.ID,
			&venue.Name,
			&venue.Kind,
			&venue.Location,
			&venue.Capacity,
			&venue.IsActive,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}

		venue.CreatedAt = createdAt.Time
		venue.UpdatedAt = updatedAt.Time

		venues = append(venues, &venue)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return venues, nil
}
