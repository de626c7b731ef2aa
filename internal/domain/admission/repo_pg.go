package admission

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caremesh/careplan/internal/platform/db"
)

// ErrVersionConflict is returned when an update carries a stale version.
var ErrVersionConflict = errors.New("admission was modified by someone else")

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const admissionCols = `id, patient_name, patient_number, date_of_birth, sex, ward, room,
	status, admitted_at, discharged_at, version_id, created_at, updated_at`

func scanAdmission(row pgx.Row) (*Admission, error) {
	var a Admission
	err := row.Scan(&a.ID, &a.PatientName, &a.PatientNumber, &a.DateOfBirth, &a.Sex,
		&a.Ward, &a.Room, &a.Status, &a.AdmittedAt, &a.DischargedAt,
		&a.VersionID, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Admission) error {
	a.ID = uuid.New()
	a.VersionID = 1
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO admission (
			id, patient_name, patient_number, date_of_birth, sex, ward, room,
			status, admitted_at, version_id
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		a.ID, a.PatientName, a.PatientNumber, a.DateOfBirth, a.Sex, a.Ward, a.Room,
		a.Status, a.AdmittedAt, a.VersionID,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Admission, error) {
	return scanAdmission(r.conn(ctx).QueryRow(ctx,
		`SELECT `+admissionCols+` FROM admission WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context, status string, limit, offset int) ([]*Admission, int, error) {
	where := ``
	args := []interface{}{}
	if status != "" {
		where = ` WHERE status = $1`
		args = append(args, status)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM admission`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT `+admissionCols+` FROM admission%s ORDER BY admitted_at DESC LIMIT $%d OFFSET $%d`,
		where, n+1, n+2)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Admission
	for rows.Next() {
		a, err := scanAdmission(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}

func (r *repoPG) Update(ctx context.Context, a *Admission) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE admission SET
			patient_name=$2, patient_number=$3, date_of_birth=$4, sex=$5,
			ward=$6, room=$7, status=$8, admitted_at=$9, discharged_at=$10,
			version_id=version_id+1, updated_at=NOW()
		WHERE id = $1 AND version_id = $11`,
		a.ID, a.PatientName, a.PatientNumber, a.DateOfBirth, a.Sex,
		a.Ward, a.Room, a.Status, a.AdmittedAt, a.DischargedAt,
		a.VersionID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	a.VersionID++
	return nil
}
