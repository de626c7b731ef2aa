package careplan

import (
	"context"
	"encoding/json"

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

// =========== CarePlan Repository ===========

type planRepoPG struct{ pool *pgxpool.Pool }

func NewPlanRepoPG(pool *pgxpool.Pool) PlanRepository {
	return &planRepoPG{pool: pool}
}

func (r *planRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const planCols = `id, admission_id, created_at, updated_at`

func (r *planRepoPG) scanPlan(row pgx.Row) (*CarePlan, error) {
	var cp CarePlan
	err := row.Scan(&cp.ID, &cp.AdmissionID, &cp.CreatedAt, &cp.UpdatedAt)
	return &cp, err
}

func (r *planRepoPG) Create(ctx context.Context, cp *CarePlan) error {
	cp.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO care_plan (id, admission_id)
		VALUES ($1,$2)`,
		cp.ID, cp.AdmissionID)
	return err
}

func (r *planRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*CarePlan, error) {
	return r.scanPlan(r.conn(ctx).QueryRow(ctx, `SELECT `+planCols+` FROM care_plan WHERE id = $1`, id))
}

func (r *planRepoPG) GetByAdmission(ctx context.Context, admissionID uuid.UUID) (*CarePlan, error) {
	return r.scanPlan(r.conn(ctx).QueryRow(ctx, `SELECT `+planCols+` FROM care_plan WHERE admission_id = $1`, admissionID))
}

// =========== CarePlanItem Repository ===========

type itemRepoPG struct{ pool *pgxpool.Pool }

func NewItemRepoPG(pool *pgxpool.Pool) ItemRepository {
	return &itemRepoPG{pool: pool}
}

func (r *itemRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const itemCols = `id, care_plan_id, category, status, details, instructions,
	current_question_id, created_at, updated_at`

func (r *itemRepoPG) scanItem(row pgx.Row) (*CarePlanItem, error) {
	var it CarePlanItem
	err := row.Scan(&it.ID, &it.CarePlanID, &it.Category, &it.Status, &it.Details,
		&it.Instructions, &it.CurrentQuestionID, &it.CreatedAt, &it.UpdatedAt)
	return &it, err
}

func (r *itemRepoPG) Create(ctx context.Context, item *CarePlanItem) error {
	item.ID = uuid.New()
	if item.Status == "" {
		item.Status = StatusNotStarted
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO care_plan_item (id, care_plan_id, category, status, details)
		VALUES ($1,$2,$3,$4,$5)`,
		item.ID, item.CarePlanID, item.Category, item.Status, item.Details)
	return err
}

func (r *itemRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*CarePlanItem, error) {
	return r.scanItem(r.conn(ctx).QueryRow(ctx, `SELECT `+itemCols+` FROM care_plan_item WHERE id = $1`, id))
}

func (r *itemRepoPG) ListByPlan(ctx context.Context, carePlanID uuid.UUID) ([]*CarePlanItem, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+itemCols+` FROM care_plan_item WHERE care_plan_id = $1 ORDER BY created_at`, carePlanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*CarePlanItem
	for rows.Next() {
		it, err := r.scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func (r *itemRepoPG) UpdateProgress(ctx context.Context, id uuid.UUID, details json.RawMessage, currentQuestionID string) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE care_plan_item
		SET status=$2, details=$3, current_question_id=$4, updated_at=NOW()
		WHERE id = $1`,
		id, StatusInProgress, details, currentQuestionID)
	return err
}

func (r *itemRepoPG) Complete(ctx context.Context, id uuid.UUID, details json.RawMessage, instructions string) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE care_plan_item
		SET status=$2, details=$3, instructions=$4, current_question_id=NULL, updated_at=NOW()
		WHERE id = $1`,
		id, StatusCompleted, details, instructions)
	return err
}

func (r *itemRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status ItemStatus) error {
	if status == StatusInProgress {
		_, err := r.conn(ctx).Exec(ctx, `
			UPDATE care_plan_item SET status=$2, updated_at=NOW() WHERE id = $1`,
			id, status)
		return err
	}
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE care_plan_item SET status=$2, current_question_id=NULL, updated_at=NOW() WHERE id = $1`,
		id, status)
	return err
}
