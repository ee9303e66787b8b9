package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"

	"github.com/xxxsen/adboard/internal/model"
	"github.com/xxxsen/adboard/internal/pkg/dbutil"
	appErr "github.com/xxxsen/adboard/internal/pkg/errors"
	"github.com/xxxsen/adboard/internal/pkg/timeutil"
)

var adFields = []string{"id", "title", "description", "ctime", "owner_id"}

type adRow struct {
	ID          int64  `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Ctime       int64  `db:"ctime"`
	OwnerID     int64  `db:"owner_id"`
}

func (r adRow) toModel() model.Ad {
	return model.Ad{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		CreatedAt:   timeutil.FromUnixMilli(r.Ctime),
		OwnerID:     r.OwnerID,
	}
}

type AdRepo struct {
	db *sqlx.DB
}

func NewAdRepo(db *sqlx.DB) *AdRepo {
	return &AdRepo{db: db}
}

// Create inserts ad and fills in the store-assigned id.
func (r *AdRepo) Create(ctx context.Context, ad *model.Ad) error {
	data := map[string]interface{}{
		"title":       ad.Title,
		"description": ad.Description,
		"ctime":       ad.CreatedAt.UnixMilli(),
		"owner_id":    ad.OwnerID,
	}
	sqlStr, args, err := builder.BuildInsert("ads", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(r.db, sqlStr+" RETURNING id", args)
	if err := r.db.QueryRowxContext(ctx, sqlStr, args...).Scan(&ad.ID); err != nil {
		if dbutil.IsForeignKeyViolation(err) {
			return appErr.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *AdRepo) List(ctx context.Context) ([]model.Ad, error) {
	where := map[string]interface{}{"_orderby": "id asc"}
	sqlStr, args, err := builder.BuildSelect("ads", where, adFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(r.db, sqlStr, args)
	var rows []adRow
	if err := r.db.SelectContext(ctx, &rows, sqlStr, args...); err != nil {
		return nil, err
	}
	ads := make([]model.Ad, 0, len(rows))
	for _, row := range rows {
		ads = append(ads, row.toModel())
	}
	return ads, nil
}

func (r *AdRepo) GetByID(ctx context.Context, adID int64) (*model.Ad, error) {
	where := map[string]interface{}{"id": adID}
	sqlStr, args, err := builder.BuildSelect("ads", where, adFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(r.db, sqlStr, args)
	var row adRow
	if err := r.db.GetContext(ctx, &row, sqlStr, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	ad := row.toModel()
	return &ad, nil
}

// Update writes title and description of an ad still owned by ad.OwnerID.
func (r *AdRepo) Update(ctx context.Context, ad *model.Ad) error {
	where := map[string]interface{}{
		"id":       ad.ID,
		"owner_id": ad.OwnerID,
	}
	update := map[string]interface{}{
		"title":       ad.Title,
		"description": ad.Description,
	}
	sqlStr, args, err := builder.BuildUpdate("ads", where, update)
	if err != nil {
		return err
	}
	return r.execAffecting(ctx, sqlStr, args)
}

func (r *AdRepo) Delete(ctx context.Context, adID, ownerID int64) error {
	where := map[string]interface{}{
		"id":       adID,
		"owner_id": ownerID,
	}
	sqlStr, args, err := builder.BuildDelete("ads", where)
	if err != nil {
		return err
	}
	return r.execAffecting(ctx, sqlStr, args)
}

func (r *AdRepo) execAffecting(ctx context.Context, sqlStr string, args []interface{}) error {
	sqlStr, args = dbutil.Finalize(r.db, sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}
