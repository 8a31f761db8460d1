package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/mealfund/internal/db"
	"github.com/alexanderramin/mealfund/internal/domain"
)

const phaseColumns = `id, campaign_id, position, name, location,
		procurement_at, preparation_at, distribution_at,
		ingredient_share, preparation_share, distribution_share,
		created_at, updated_at`

// SQLitePhaseRepo implements PhaseRepo using a SQLite database.
type SQLitePhaseRepo struct {
	db db.DBTX
}

func NewSQLitePhaseRepo(conn db.DBTX) *SQLitePhaseRepo {
	return &SQLitePhaseRepo{db: conn}
}

func (r *SQLitePhaseRepo) Create(ctx context.Context, p *domain.PhaseRecord) error {
	query := `INSERT INTO campaign_phases (` + phaseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.CampaignID,
		p.Position,
		p.Name,
		p.Location,
		p.ProcurementAt,
		p.PreparationAt,
		p.DistributionAt,
		p.IngredientShare,
		p.PreparationShare,
		p.DistributionShare,
		formatTimestamp(p.CreatedAt),
		formatTimestamp(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting phase: %w", err)
	}
	return nil
}

func (r *SQLitePhaseRepo) GetByID(ctx context.Context, id string) (*domain.PhaseRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+phaseColumns+` FROM campaign_phases WHERE id = ?`, id)
	return scanPhase(row)
}

// ListByCampaign returns the campaign's phases in execution order.
func (r *SQLitePhaseRepo) ListByCampaign(ctx context.Context, campaignID string) ([]*domain.PhaseRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+phaseColumns+` FROM campaign_phases WHERE campaign_id = ? ORDER BY position, created_at`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	defer rows.Close()

	var phases []*domain.PhaseRecord
	for rows.Next() {
		p, err := scanPhase(rows)
		if err != nil {
			return nil, err
		}
		phases = append(phases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phases: %w", err)
	}
	return phases, nil
}

func (r *SQLitePhaseRepo) Update(ctx context.Context, p *domain.PhaseRecord) error {
	query := `UPDATE campaign_phases SET position = ?, name = ?, location = ?,
		procurement_at = ?, preparation_at = ?, distribution_at = ?,
		ingredient_share = ?, preparation_share = ?, distribution_share = ?, updated_at = ?
		WHERE id = ? AND campaign_id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Position,
		p.Name,
		p.Location,
		p.ProcurementAt,
		p.PreparationAt,
		p.DistributionAt,
		p.IngredientShare,
		p.PreparationShare,
		p.DistributionShare,
		formatTimestamp(p.UpdatedAt),
		p.ID,
		p.CampaignID,
	)
	if err != nil {
		return fmt.Errorf("updating phase: %w", err)
	}
	return requireOneRow(res, domain.ErrPhaseNotFound)
}

func (r *SQLitePhaseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM campaign_phases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting phase: %w", err)
	}
	return requireOneRow(res, domain.ErrPhaseNotFound)
}

func scanPhase(row rowScanner) (*domain.PhaseRecord, error) {
	var p domain.PhaseRecord
	var createdAt, updatedAt string

	err := row.Scan(
		&p.ID, &p.CampaignID, &p.Position, &p.Name, &p.Location,
		&p.ProcurementAt, &p.PreparationAt, &p.DistributionAt,
		&p.IngredientShare, &p.PreparationShare, &p.DistributionShare,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPhaseNotFound
		}
		return nil, fmt.Errorf("scanning phase: %w", err)
	}

	if p.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTimestamp("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
