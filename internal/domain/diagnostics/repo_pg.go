package diagnostics

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

// =========== Lab Order Repository ===========

type labOrderRepoPG struct{ pool *pgxpool.Pool }

func NewLabOrderRepoPG(pool *pgxpool.Pool) LabOrderRepository { return &labOrderRepoPG{pool: pool} }

func (r *labOrderRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const labOrderCols = `id, patient_id, test_name, specimen, status, result_value, result_unit, result_flag,
	ordered_at, resulted_at, created_at, updated_at`

func scanLabOrder(row pgx.Row) (*LabOrder, error) {
	var o LabOrder
	err := row.Scan(&o.ID, &o.PatientID, &o.TestName, &o.Specimen, &o.Status,
		&o.ResultValue, &o.ResultUnit, &o.ResultFlag,
		&o.OrderedAt, &o.ResultedAt, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("lab order not found")
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *labOrderRepoPG) Create(ctx context.Context, o *LabOrder) error {
	o.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO lab_order (id, patient_id, test_name, specimen, status, ordered_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		o.ID, o.PatientID, o.TestName, o.Specimen, o.Status, o.OrderedAt)
	return err
}

func (r *labOrderRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*LabOrder, error) {
	return scanLabOrder(r.conn(ctx).QueryRow(ctx, `SELECT `+labOrderCols+` FROM lab_order WHERE id = $1`, id))
}

func (r *labOrderRepoPG) Update(ctx context.Context, o *LabOrder) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE lab_order SET test_name=$2, specimen=$3, status=$4, result_value=$5,
			result_unit=$6, result_flag=$7, resulted_at=$8, updated_at=NOW()
		WHERE id = $1`,
		o.ID, o.TestName, o.Specimen, o.Status, o.ResultValue, o.ResultUnit, o.ResultFlag, o.ResultedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("lab order not found")
	}
	return nil
}

func (r *labOrderRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM lab_order WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("lab order not found")
	}
	return nil
}

func (r *labOrderRepoPG) List(ctx context.Context, limit, offset int) ([]*LabOrder, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM lab_order`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+labOrderCols+` FROM lab_order ORDER BY ordered_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*LabOrder
	for rows.Next() {
		o, err := scanLabOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, o)
	}
	return items, total, rows.Err()
}

// =========== Imaging Study Repository ===========

type imagingStudyRepoPG struct{ pool *pgxpool.Pool }

func NewImagingStudyRepoPG(pool *pgxpool.Pool) ImagingStudyRepository {
	return &imagingStudyRepoPG{pool: pool}
}

func (r *imagingStudyRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const imagingCols = `id, patient_id, modality, body_site, status, report, created_at, updated_at`

func scanImagingStudy(row pgx.Row) (*ImagingStudy, error) {
	var st ImagingStudy
	err := row.Scan(&st.ID, &st.PatientID, &st.Modality, &st.BodySite, &st.Status,
		&st.Report, &st.CreatedAt, &st.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("imaging study not found")
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *imagingStudyRepoPG) Create(ctx context.Context, st *ImagingStudy) error {
	st.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO imaging_study (id, patient_id, modality, body_site, status)
		VALUES ($1,$2,$3,$4,$5)`,
		st.ID, st.PatientID, st.Modality, st.BodySite, st.Status)
	return err
}

func (r *imagingStudyRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*ImagingStudy, error) {
	return scanImagingStudy(r.conn(ctx).QueryRow(ctx, `SELECT `+imagingCols+` FROM imaging_study WHERE id = $1`, id))
}

func (r *imagingStudyRepoPG) Update(ctx context.Context, st *ImagingStudy) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE imaging_study SET modality=$2, body_site=$3, status=$4, report=$5, updated_at=NOW()
		WHERE id = $1`,
		st.ID, st.Modality, st.BodySite, st.Status, st.Report)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("imaging study not found")
	}
	return nil
}

func (r *imagingStudyRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM imaging_study WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("imaging study not found")
	}
	return nil
}

func (r *imagingStudyRepoPG) List(ctx context.Context, limit, offset int) ([]*ImagingStudy, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM imaging_study`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+imagingCols+` FROM imaging_study ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*ImagingStudy
	for rows.Next() {
		st, err := scanImagingStudy(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, st)
	}
	return items, total, rows.Err()
}
