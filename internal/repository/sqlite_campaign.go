package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/mealfund/internal/db"
	"github.com/alexanderramin/mealfund/internal/domain"
)

const campaignColumns = `id, short_id, title, target_amount, fundraising_start, fundraising_end, status, created_at, updated_at`

// SQLiteCampaignRepo implements CampaignRepo using a SQLite database.
type SQLiteCampaignRepo struct {
	db db.DBTX
}

func NewSQLiteCampaignRepo(conn db.DBTX) *SQLiteCampaignRepo {
	return &SQLiteCampaignRepo{db: conn}
}

func (r *SQLiteCampaignRepo) Create(ctx context.Context, c *domain.Campaign) error {
	query := `INSERT INTO campaigns (` + campaignColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.ShortID,
		c.Title,
		c.TargetAmount,
		c.FundraisingStart,
		c.FundraisingEnd,
		string(c.Status),
		formatTimestamp(c.CreatedAt),
		formatTimestamp(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting campaign: %w", err)
	}
	return nil
}

func (r *SQLiteCampaignRepo) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = ?`, id)
	return scanCampaign(row)
}

func (r *SQLiteCampaignRepo) GetByShortID(ctx context.Context, shortID string) (*domain.Campaign, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE UPPER(short_id) = UPPER(?)`, shortID)
	return scanCampaign(row)
}

func (r *SQLiteCampaignRepo) List(ctx context.Context) ([]*domain.Campaign, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+campaignColumns+` FROM campaigns ORDER BY fundraising_start, created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []*domain.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating campaigns: %w", err)
	}
	return campaigns, nil
}

func (r *SQLiteCampaignRepo) Update(ctx context.Context, c *domain.Campaign) error {
	query := `UPDATE campaigns SET short_id = ?, title = ?, target_amount = ?, fundraising_start = ?,
		fundraising_end = ?, status = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.ShortID,
		c.Title,
		c.TargetAmount,
		c.FundraisingStart,
		c.FundraisingEnd,
		string(c.Status),
		formatTimestamp(c.UpdatedAt),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating campaign: %w", err)
	}
	return requireOneRow(res, domain.ErrCampaignNotFound)
}

func (r *SQLiteCampaignRepo) UpdateWindow(ctx context.Context, id, start, end string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE campaigns SET fundraising_start = ?, fundraising_end = ?, updated_at = ? WHERE id = ?`,
		start, end, formatTimestamp(nowUTC()), id)
	if err != nil {
		return fmt.Errorf("updating funding window: %w", err)
	}
	return requireOneRow(res, domain.ErrCampaignNotFound)
}

func (r *SQLiteCampaignRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM campaigns WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting campaign: %w", err)
	}
	return requireOneRow(res, domain.ErrCampaignNotFound)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (*domain.Campaign, error) {
	var c domain.Campaign
	var status, createdAt, updatedAt string

	err := row.Scan(
		&c.ID, &c.ShortID, &c.Title, &c.TargetAmount,
		&c.FundraisingStart, &c.FundraisingEnd,
		&status, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("scanning campaign: %w", err)
	}
	c.Status = domain.CampaignStatus(status)

	if c.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTimestamp("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// requireOneRow maps a zero-row write to notFound.
func requireOneRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
