package workflows

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/leadpipe/pkg/pagination"
	"github.com/JaimeStill/leadpipe/pkg/query"
	"github.com/JaimeStill/leadpipe/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "workflows"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Workflow], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count workflows: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanWorkflow)
	if err != nil {
		return nil, fmt.Errorf("query workflows: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Workflow, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	w, err := repository.QueryOne(ctx, r.db, q, args, scanWorkflow)
	if err != nil {
		return nil, repository.MapError(err, dbErrs)
	}
	return &w, nil
}

func (r *repo) Create(ctx context.Context, tenantID, leadID uuid.UUID) (*Workflow, error) {
	q := `
		INSERT INTO workflows(id, tenant_id, lead_id, status)
		VALUES ($1, $2, $3, 'running')
		RETURNING ` + columns

	w, err := repository.QueryOne(ctx, r.db, q, []any{uuid.New(), tenantID, leadID}, scanWorkflow)
	if err != nil {
		return nil, repository.MapError(err, dbErrs)
	}

	r.logger.Info("workflow created", "id", w.ID, "lead_id", leadID)
	return &w, nil
}

func (r *repo) UpdateOutreach(ctx context.Context, id uuid.UUID, research, draft string) error {
	q := `
		UPDATE workflows
		SET research_results = $2, email_draft = $3
		WHERE id = $1 AND status = 'running'`

	if err := repository.ExecExpectOne(ctx, r.db, q, id, research, draft); err != nil {
		return r.explainMiss(ctx, id, err)
	}
	return nil
}

func (r *repo) Finalize(ctx context.Context, id uuid.UUID, status Status) error {
	if !status.Terminal() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	q := `
		UPDATE workflows
		SET status = $2, completed_at = now()
		WHERE id = $1 AND status = 'running'`

	if err := repository.ExecExpectOne(ctx, r.db, q, id, status); err != nil {
		return r.explainMiss(ctx, id, err)
	}

	r.logger.Info("workflow finalized", "id", id, "status", status)
	return nil
}

func (r *repo) Decide(ctx context.Context, id uuid.UUID, cmd DecisionCommand) (*Workflow, error) {
	reviewer := strings.TrimSpace(cmd.Reviewer)
	if reviewer == "" {
		return nil, fmt.Errorf("%w: reviewer required", ErrInvalidDecision)
	}

	column, leadStatus := "rejected_by", "rejected"
	if cmd.Approve {
		column, leadStatus = "approved_by", "approved"
	}

	decide := `
		UPDATE workflows
		SET ` + column + ` = $2, decided_at = now()
		WHERE id = $1
			AND status = 'completed'
			AND email_draft IS NOT NULL
			AND decided_at IS NULL
		RETURNING lead_id, research_results, email_draft`

	mirror := `
		UPDATE leads
		SET status = $2, research_results = $3, email_draft = $4, updated_at = now()
		WHERE id = $1`

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		var (
			leadID   uuid.UUID
			research *string
			draft    *string
		)

		if err := tx.QueryRowContext(ctx, decide, id, reviewer).Scan(&leadID, &research, &draft); err != nil {
			return struct{}{}, err
		}

		return struct{}{}, repository.ExecExpectOne(ctx, tx, mirror, leadID, leadStatus, research, draft)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, findErr := r.Find(ctx, id); findErr != nil {
				return nil, findErr
			}
			return nil, ErrNotAwaitingDecision
		}
		return nil, repository.MapError(err, dbErrs)
	}

	r.logger.Info("workflow decided", "id", id, "decision", leadStatus, "reviewer", reviewer)
	return r.Find(ctx, id)
}

// explainMiss turns a zero-row update on a running-only statement into
// ErrNotFound or ErrNotRunning.
func (r *repo) explainMiss(ctx context.Context, id uuid.UUID, err error) error {
	if !errors.Is(err, sql.ErrNoRows) {
		return repository.MapError(err, dbErrs)
	}
	if _, findErr := r.Find(ctx, id); findErr != nil {
		return findErr
	}
	return ErrNotRunning
}
