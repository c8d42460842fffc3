package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/fieldops-service/internal/domain"
)

// SiteRepository handles persistence for site records. Nested metadata
// groups are stored as jsonb columns.
type SiteRepository interface {
	Create(ctx context.Context, site *domain.Site) error
	Update(ctx context.Context, site *domain.Site) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Site, error)
	List(ctx context.Context) ([]domain.Site, error)
}

type siteRepository struct {
	pool *pgxpool.Pool
}

// NewSiteRepository instantiates the repository.
func NewSiteRepository(pool *pgxpool.Pool) SiteRepository {
	return &siteRepository{pool: pool}
}

const siteColumns = `
        id, site_id, site_name, location, transmission_mode, power_system,
        battery, services, antennas, power, transmission_type, fiber_details,
        landlord_information, maintenance_info, image_url, created_at, updated_at`

func (r *siteRepository) Create(ctx context.Context, site *domain.Site) error {
	const query = `
        INSERT INTO sites (site_id, site_name, location, transmission_mode, power_system,
            battery, services, antennas, power, transmission_type, fiber_details,
            landlord_information, maintenance_info, image_url)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		site.SiteID,
		site.SiteName,
		site.Location,
		site.TransmissionMode,
		site.PowerSystem,
		site.Battery,
		site.Services,
		site.Antennas,
		site.Power,
		site.TransmissionType,
		site.FiberDetails,
		site.LandlordInformation,
		site.MaintenanceInfo,
		site.ImageURL,
	).Scan(&site.ID, &site.CreatedAt, &site.UpdatedAt)
}

// Update replaces the whole record; last writer wins. The row id is never
// touched.
func (r *siteRepository) Update(ctx context.Context, site *domain.Site) error {
	const query = `
        UPDATE sites
        SET site_id=$1, site_name=$2, location=$3, transmission_mode=$4, power_system=$5,
            battery=$6, services=$7, antennas=$8, power=$9, transmission_type=$10,
            fiber_details=$11, landlord_information=$12, maintenance_info=$13,
            image_url=$14, updated_at=NOW()
        WHERE id=$15`

	cmd, err := r.pool.Exec(ctx, query,
		site.SiteID,
		site.SiteName,
		site.Location,
		site.TransmissionMode,
		site.PowerSystem,
		site.Battery,
		site.Services,
		site.Antennas,
		site.Power,
		site.TransmissionType,
		site.FiberDetails,
		site.LandlordInformation,
		site.MaintenanceInfo,
		site.ImageURL,
		site.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *siteRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM sites WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *siteRepository) GetByID(ctx context.Context, id string) (*domain.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM sites WHERE id=$1`

	var site domain.Site
	if err := r.scanSite(r.pool.QueryRow(ctx, query, id), &site); err != nil {
		return nil, err
	}
	return &site, nil
}

func (r *siteRepository) List(ctx context.Context) ([]domain.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM sites ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Site
	for rows.Next() {
		var site domain.Site
		if err := r.scanSite(rows, &site); err != nil {
			return nil, err
		}
		result = append(result, site)
	}
	return result, rows.Err()
}

func (r *siteRepository) scanSite(row pgx.Row, site *domain.Site) error {
	return row.Scan(
		&site.ID,
		&site.SiteID,
		&site.SiteName,
		&site.Location,
		&site.TransmissionMode,
		&site.PowerSystem,
		&site.Battery,
		&site.Services,
		&site.Antennas,
		&site.Power,
		&site.TransmissionType,
		&site.FiberDetails,
		&site.LandlordInformation,
		&site.MaintenanceInfo,
		&site.ImageURL,
		&site.CreatedAt,
		&site.UpdatedAt,
	)
}
