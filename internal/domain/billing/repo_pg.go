package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
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

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const billCols = `id, patient_id, items, total, status, issued_at, created_at, updated_at`

func scanBill(row pgx.Row) (*Bill, error) {
	var b Bill
	err := row.Scan(&b.ID, &b.PatientID, &b.Items, &b.Total, &b.Status,
		&b.IssuedAt, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("bill not found")
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repoPG) Create(ctx context.Context, b *Bill) error {
	b.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO bill (id, patient_id, items, total, status, issued_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		b.ID, b.PatientID, b.Items, b.Total, b.Status, b.IssuedAt)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Bill, error) {
	return scanBill(r.conn(ctx).QueryRow(ctx, `SELECT `+billCols+` FROM bill WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, b *Bill) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE bill SET items=$2, total=$3, status=$4, issued_at=$5, updated_at=NOW()
		WHERE id = $1`,
		b.ID, b.Items, b.Total, b.Status, b.IssuedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("bill not found")
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM bill WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("bill not found")
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Bill, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM bill`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+billCols+` FROM bill ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectBills(rows, total)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Bill, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM bill WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+billCols+` FROM bill WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectBills(rows, total)
}

func collectBills(rows pgx.Rows, total int) ([]*Bill, int, error) {
	var items []*Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, b)
	}
	return items, total, rows.Err()
}
