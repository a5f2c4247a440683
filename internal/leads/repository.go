package leads

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/leadpipe/internal/scoring"
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
		logger:     logger.With("system", "leads"),
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
) (*pagination.PageResult[Lead], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Email", "Company")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count leads: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanLead)
	if err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Lead, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	l, err := repository.QueryOne(ctx, r.db, q, args, scanLead)
	if err != nil {
		return nil, repository.MapError(err, dbErrs)
	}
	return &l, nil
}

func (r *repo) FindScore(ctx context.Context, id uuid.UUID) (*scoring.LeadScore, error) {
	q := `
		SELECT readiness_score, total_points, max_possible_points, tier, breakdown, responses
		FROM lead_scores
		WHERE lead_id = $1`

	var (
		s         scoring.LeadScore
		breakdown []byte
		responses []byte
	)

	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ReadinessScore,
		&s.TotalPoints,
		&s.MaxPossiblePoints,
		&s.Tier,
		&breakdown,
		&responses,
	)
	if err != nil {
		return nil, repository.MapError(err, dbErrs)
	}

	if err := json.Unmarshal(breakdown, &s.Breakdown); err != nil {
		return nil, fmt.Errorf("decode score breakdown: %w", err)
	}
	if err := json.Unmarshal(responses, &s.Responses); err != nil {
		return nil, fmt.Errorf("decode score responses: %w", err)
	}

	return &s, nil
}

func (r *repo) Submit(ctx context.Context, cmd SubmitCommand) (*Submission, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	score, err := scoring.Score(cmd.Questions, cmd.Responses)
	if err != nil {
		return nil, err
	}

	breakdown, err := json.Marshal(score.Breakdown)
	if err != nil {
		return nil, fmt.Errorf("encode score breakdown: %w", err)
	}
	responses, err := json.Marshal(score.Responses)
	if err != nil {
		return nil, fmt.Errorf("encode score responses: %w", err)
	}

	insertLead := `
		INSERT INTO leads(id, tenant_id, name, email, phone, company, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	insertScore := `
		INSERT INTO lead_scores(lead_id, readiness_score, total_points, max_possible_points, tier, breakdown, responses)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	id := uuid.New()

	l, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Lead, error) {
		if _, err := tx.ExecContext(ctx, insertLead,
			id, cmd.TenantID, cmd.Name, cmd.Email, cmd.Phone, cmd.Company, cmd.Message,
		); err != nil {
			return Lead{}, err
		}

		if _, err := tx.ExecContext(ctx, insertScore,
			id, score.ReadinessScore, score.TotalPoints, score.MaxPossiblePoints,
			score.Tier, breakdown, responses,
		); err != nil {
			return Lead{}, err
		}

		q, args := query.NewBuilder(projection).BuildSingle("ID", id)
		return repository.QueryOne(ctx, tx, q, args, scanLead)
	})
	if err != nil {
		return nil, repository.MapError(err, dbErrs)
	}

	r.logger.Info(
		"lead submitted",
		"id", l.ID,
		"tenant_id", l.TenantID,
		"readiness_score", score.ReadinessScore,
		"tier", score.Tier,
	)

	return &Submission{Lead: l, Score: *score}, nil
}

func (r *repo) UpdateQualification(ctx context.Context, id uuid.UUID, category Category, reason string) error {
	q := `
		UPDATE leads
		SET qualification_category = $2, qualification_reason = $3, updated_at = now()
		WHERE id = $1`

	if err := repository.ExecExpectOne(ctx, r.db, q, id, category, reason); err != nil {
		return repository.MapError(err, dbErrs)
	}

	r.logger.Info("lead qualified", "id", id, "category", category)
	return nil
}
