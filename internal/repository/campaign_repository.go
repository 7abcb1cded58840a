package repository

import (
	"database/sql"
	"fmt"
	"time"

	appErrors "github.com/unclebandit/leadleopard-backend/internal/errors"
	"github.com/unclebandit/leadleopard-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	Create(c *model.Campaign) error
	GetByID(id int) (*model.Campaign, error)
	ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error)
	ListByStatus(status model.CampaignStatus) ([]*model.Campaign, error)
	UpdateStatus(campaignID int, status model.CampaignStatus) error

	// Counter bumps; campaign statistics, single-statement each.
	AddTargeted(campaignID, n int) error
	AddResponses(campaignID, n int) error
	AddConversions(campaignID, n int) error
}

type CampaignRepository struct {
	DB *sql.DB
}

const campaignColumns = `id, name, target_industry, target_location, message_template, status,
		   accounts_targeted, responses_received, conversions, created_at, updated_at`

func (r *CampaignRepository) Create(c *model.Campaign) error {
	c.CreatedAt = time.Now()
	if c.Status == "" {
		c.Status = model.CampaignActive
	}
	query := `
		INSERT INTO campaigns (name, target_industry, target_location, message_template, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRow(query, c.Name, c.TargetIndustry, c.TargetLocation,
		c.MessageTemplate, c.Status, c.CreatedAt).Scan(&c.ID)
}

func (r *CampaignRepository) GetByID(id int) (*model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id=$1`
	var c model.Campaign
	err := r.DB.QueryRow(query, id).Scan(
		&c.ID, &c.Name, &c.TargetIndustry, &c.TargetLocation, &c.MessageTemplate,
		&c.Status, &c.AccountsTargeted, &c.ResponsesReceived, &c.Conversions,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error) {
	campaigns := []*model.Campaign{}
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if status != "" {
		query += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		c := &model.Campaign{}
		if err := rows.Scan(&c.ID, &c.Name, &c.TargetIndustry, &c.TargetLocation,
			&c.MessageTemplate, &c.Status, &c.AccountsTargeted, &c.ResponsesReceived,
			&c.Conversions, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		campaigns = append(campaigns, c)
	}

	countQuery := `SELECT COUNT(*) FROM campaigns WHERE 1=1`
	argsCount := []interface{}{}
	if status != "" {
		countQuery += " AND status=$1"
		argsCount = append(argsCount, status)
	}

	var total int
	if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

func (r *CampaignRepository) ListByStatus(status model.CampaignStatus) ([]*model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE status=$1 ORDER BY id ASC`
	rows, err := r.DB.Query(query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []*model.Campaign{}
	for rows.Next() {
		c := &model.Campaign{}
		if err := rows.Scan(&c.ID, &c.Name, &c.TargetIndustry, &c.TargetLocation,
			&c.MessageTemplate, &c.Status, &c.AccountsTargeted, &c.ResponsesReceived,
			&c.Conversions, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

// UpdateStatus rejects transitions the table does not allow (completed is
// terminal).
func (r *CampaignRepository) UpdateStatus(campaignID int, status model.CampaignStatus) error {
	c, err := r.GetByID(campaignID)
	if err != nil {
		return err
	}
	if !model.ValidCampaignTransition(c.Status, status) {
		return appErrors.NewInvalidTransition("campaign", string(c.Status), string(status))
	}

	query := `UPDATE campaigns SET status=$1, updated_at=$2 WHERE id=$3 AND status=$4`
	res, err := r.DB.Exec(query, status, time.Now(), campaignID, c.Status)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return appErrors.NewInvalidTransition("campaign", string(c.Status), string(status))
	}
	return nil
}

func (r *CampaignRepository) AddTargeted(campaignID, n int) error {
	return r.addCounter("accounts_targeted", campaignID, n)
}

func (r *CampaignRepository) AddResponses(campaignID, n int) error {
	return r.addCounter("responses_received", campaignID, n)
}

func (r *CampaignRepository) AddConversions(campaignID, n int) error {
	return r.addCounter("conversions", campaignID, n)
}

func (r *CampaignRepository) addCounter(column string, campaignID, n int) error {
	if n == 0 {
		return nil
	}
	query := fmt.Sprintf(`UPDATE campaigns SET %s=%s+$1, updated_at=NOW() WHERE id=$2`, column, column)
	_, err := r.DB.Exec(query, n, campaignID)
	return err
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
