package surgery

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

const caseCols = `id, patient_id, procedure_name, surgeon, theatre, scheduled_at, status, notes, created_at, updated_at`

func scanCase(row pgx.Row) (*Case, error) {
	var sc Case
	err := row.Scan(&sc.ID, &sc.PatientID, &sc.Procedure, &sc.Surgeon, &sc.Theatre,
		&sc.ScheduledAt, &sc.Status, &sc.Notes, &sc.CreatedAt, &sc.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("surgery case not found")
	}
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func (r *repoPG) Create(ctx context.Context, sc *Case) error {
	sc.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO surgery_case (id, patient_id, procedure_name, surgeon, theatre, scheduled_at, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		sc.ID, sc.PatientID, sc.Procedure, sc.Surgeon, sc.Theatre, sc.ScheduledAt, sc.Status, sc.Notes)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Case, error) {
	return scanCase(r.conn(ctx).QueryRow(ctx, `SELECT `+caseCols+` FROM surgery_case WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, sc *Case) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE surgery_case SET procedure_name=$2, surgeon=$3, theatre=$4, scheduled_at=$5,
			status=$6, notes=$7, updated_at=NOW()
		WHERE id = $1`,
		sc.ID, sc.Procedure, sc.Surgeon, sc.Theatre, sc.ScheduledAt, sc.Status, sc.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("surgery case not found")
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM surgery_case WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("surgery case not found")
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Case, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM surgery_case`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+caseCols+` FROM surgery_case ORDER BY scheduled_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectCases(rows, total)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Case, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM surgery_case WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+caseCols+` FROM surgery_case WHERE patient_id = $1 ORDER BY scheduled_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectCases(rows, total)
}

func collectCases(rows pgx.Rows, total int) ([]*Case, int, error) {
	var items []*Case
	for rows.Next() {
		sc, err := scanCase(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, sc)
	}
	return items, total, rows.Err()
}
