package inventory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/pkg/apperr"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// =========== Ward Repository ===========

type wardRepoPG struct{ pool *pgxpool.Pool }

func NewWardRepoPG(pool *pgxpool.Pool) WardRepository { return &wardRepoPG{pool: pool} }

func (r *wardRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const wardCols = `id, name, prefix, type, rate_per_day, total_beds, created_at, updated_at`

func scanWard(row pgx.Row) (*Ward, error) {
	var w Ward
	err := row.Scan(&w.ID, &w.Name, &w.Prefix, &w.Type, &w.RatePerDay, &w.TotalBeds, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("ward not found")
	}
	return &w, err
}

func (r *wardRepoPG) Create(ctx context.Context, w *Ward) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO ward (id, name, prefix, type, rate_per_day, total_beds)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		w.ID, w.Name, w.Prefix, w.Type, w.RatePerDay, w.TotalBeds)
	return err
}

func (r *wardRepoPG) GetByID(ctx context.Context, id string) (*Ward, error) {
	return scanWard(r.conn(ctx).QueryRow(ctx, `SELECT `+wardCols+` FROM ward WHERE id = $1`, id))
}

func (r *wardRepoPG) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM ward WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *wardRepoPG) Update(ctx context.Context, w *Ward) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE ward SET name=$2, prefix=$3, type=$4, rate_per_day=$5, total_beds=$6, updated_at=NOW()
		WHERE id = $1`,
		w.ID, w.Name, w.Prefix, w.Type, w.RatePerDay, w.TotalBeds)
	return err
}

func (r *wardRepoPG) Delete(ctx context.Context, id string) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM ward WHERE id = $1`, id)
	return err
}

func (r *wardRepoPG) List(ctx context.Context) ([]*Ward, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+wardCols+` FROM ward ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var wards []*Ward
	for rows.Next() {
		w, err := scanWard(rows)
		if err != nil {
			return nil, err
		}
		wards = append(wards, w)
	}
	return wards, rows.Err()
}

// =========== Bed Repository ===========

type bedRepoPG struct{ pool *pgxpool.Pool }

func NewBedRepoPG(pool *pgxpool.Pool) BedRepository { return &bedRepoPG{pool: pool} }

func (r *bedRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const bedCols = `id, ward_id, number, status, occupant, updated_at`

func scanBed(row pgx.Row) (*Bed, error) {
	var b Bed
	err := row.Scan(&b.ID, &b.WardID, &b.Number, &b.Status, &b.Occupant, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("bed not found")
	}
	return &b, err
}

func (r *bedRepoPG) Create(ctx context.Context, b *Bed) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO bed (id, ward_id, number, status, occupant)
		VALUES ($1,$2,$3,$4,$5)`,
		b.ID, b.WardID, b.Number, b.Status, b.Occupant)
	return err
}

func (r *bedRepoPG) GetByID(ctx context.Context, id string) (*Bed, error) {
	return scanBed(r.conn(ctx).QueryRow(ctx, `SELECT `+bedCols+` FROM bed WHERE id = $1`, id))
}

func (r *bedRepoPG) Update(ctx context.Context, b *Bed) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE bed SET ward_id=$2, number=$3, status=$4, occupant=$5, updated_at=$6
		WHERE id = $1`,
		b.ID, b.WardID, b.Number, b.Status, b.Occupant, b.UpdatedAt)
	return err
}

func (r *bedRepoPG) Rename(ctx context.Context, oldID, newID string) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE bed SET id=$2, updated_at=NOW() WHERE id = $1`, oldID, newID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("bed not found")
	}
	return nil
}

func (r *bedRepoPG) Delete(ctx context.Context, id string) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM bed WHERE id = $1`, id)
	return err
}

func (r *bedRepoPG) DeleteByWard(ctx context.Context, wardID string) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM bed WHERE ward_id = $1`, wardID)
	return err
}

func (r *bedRepoPG) ListByWard(ctx context.Context, wardID string) ([]*Bed, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+bedCols+` FROM bed WHERE ward_id = $1 ORDER BY number`, wardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var beds []*Bed
	for rows.Next() {
		b, err := scanBed(rows)
		if err != nil {
			return nil, err
		}
		beds = append(beds, b)
	}
	return beds, rows.Err()
}

func (r *bedRepoPG) CountByWard(ctx context.Context, wardID string) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM bed WHERE ward_id = $1`, wardID).Scan(&count)
	return count, err
}

func (r *bedRepoPG) StatusCounts(ctx context.Context) (map[BedStatus]int, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT status, COUNT(*) FROM bed GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[BedStatus]int)
	for rows.Next() {
		var status BedStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
