package reference

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caremesh/careplan/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// =========== LabResult Repository ===========

type labResultRepoPG struct{ pool *pgxpool.Pool }

func NewLabResultRepoPG(pool *pgxpool.Pool) LabResultRepository {
	return &labResultRepoPG{pool: pool}
}

func (r *labResultRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const labCols = `id, admission_id, item_code, value, unit, lower_limit, upper_limit, observed_at`

func (r *labResultRepoPG) scan(row pgx.Row) (*LabResult, error) {
	var lr LabResult
	err := row.Scan(&lr.ID, &lr.AdmissionID, &lr.ItemCode, &lr.Value, &lr.Unit,
		&lr.LowerLimit, &lr.UpperLimit, &lr.ObservedAt)
	return &lr, err
}

func (r *labResultRepoPG) Create(ctx context.Context, lr *LabResult) error {
	lr.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO lab_result (id, admission_id, item_code, value, unit, lower_limit, upper_limit, observed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		lr.ID, lr.AdmissionID, lr.ItemCode, lr.Value, lr.Unit, lr.LowerLimit, lr.UpperLimit, lr.ObservedAt)
	return err
}

func (r *labResultRepoPG) LatestByItem(ctx context.Context, admissionID uuid.UUID, itemCode string) (*LabResult, error) {
	lr, err := r.scan(r.conn(ctx).QueryRow(ctx, `
		SELECT `+labCols+` FROM lab_result
		WHERE admission_id = $1 AND item_code = $2
		ORDER BY observed_at DESC LIMIT 1`, admissionID, itemCode))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoData
	}
	return lr, err
}

func (r *labResultRepoPG) ListByAdmission(ctx context.Context, admissionID uuid.UUID, limit, offset int) ([]*LabResult, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM lab_result WHERE admission_id = $1`, admissionID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+labCols+` FROM lab_result WHERE admission_id = $1
		ORDER BY observed_at DESC LIMIT $2 OFFSET $3`, admissionID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*LabResult
	for rows.Next() {
		lr, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, lr)
	}
	return items, total, nil
}

// =========== VitalSigns Repository ===========

type vitalSignsRepoPG struct{ pool *pgxpool.Pool }

func NewVitalSignsRepoPG(pool *pgxpool.Pool) VitalSignsRepository {
	return &vitalSignsRepoPG{pool: pool}
}

func (r *vitalSignsRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const vitalCols = `id, admission_id, pulse, systolic_bp, diastolic_bp, observed_at`

func (r *vitalSignsRepoPG) scan(row pgx.Row) (*VitalSigns, error) {
	var vs VitalSigns
	err := row.Scan(&vs.ID, &vs.AdmissionID, &vs.Pulse, &vs.SystolicBP, &vs.DiastolicBP, &vs.ObservedAt)
	return &vs, err
}

func (r *vitalSignsRepoPG) Create(ctx context.Context, vs *VitalSigns) error {
	vs.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO vital_signs (id, admission_id, pulse, systolic_bp, diastolic_bp, observed_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		vs.ID, vs.AdmissionID, vs.Pulse, vs.SystolicBP, vs.DiastolicBP, vs.ObservedAt)
	return err
}

func (r *vitalSignsRepoPG) Latest(ctx context.Context, admissionID uuid.UUID) (*VitalSigns, error) {
	vs, err := r.scan(r.conn(ctx).QueryRow(ctx, `
		SELECT `+vitalCols+` FROM vital_signs
		WHERE admission_id = $1
		ORDER BY observed_at DESC LIMIT 1`, admissionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoData
	}
	return vs, err
}

func (r *vitalSignsRepoPG) ListByAdmission(ctx context.Context, admissionID uuid.UUID, limit, offset int) ([]*VitalSigns, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM vital_signs WHERE admission_id = $1`, admissionID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+vitalCols+` FROM vital_signs WHERE admission_id = $1
		ORDER BY observed_at DESC LIMIT $2 OFFSET $3`, admissionID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*VitalSigns
	for rows.Next() {
		vs, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, vs)
	}
	return items, total, nil
}
