package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/printq/printq/internal/domain/errors"
	"github.com/printq/printq/internal/domain/model"
	"github.com/printq/printq/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage relies on. Tests swap it
// for a pgxmock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

type statusRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Status() repository.StatusRepository {
	return &statusRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS print_orders (
            id TEXT PRIMARY KEY,
            student_name TEXT NOT NULL,
            student_id TEXT NOT NULL,
            phone_number TEXT NOT NULL DEFAULT '',
            instructions TEXT NOT NULL DEFAULT '',
            files JSONB NOT NULL DEFAULT '[]',
            color_mode TEXT NOT NULL,
            paper_type TEXT NOT NULL,
            print_sides TEXT NOT NULL,
            page_size TEXT NOT NULL,
            copies INT NOT NULL,
            binding TEXT NOT NULL,
            total_pages INT NOT NULL,
            estimated_cost DOUBLE PRECISION NOT NULL,
            transaction_id TEXT NOT NULL,
            artifact_ref TEXT NOT NULL,
            file_size BIGINT NOT NULL,
            status TEXT NOT NULL,
            submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            completed_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS service_status (
            id BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (id),
            active BOOLEAN NOT NULL DEFAULT TRUE,
            message TEXT NOT NULL DEFAULT '',
            stopped_at TIMESTAMPTZ,
            stopped_by TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE INDEX IF NOT EXISTS idx_print_orders_queue ON print_orders(status, submitted_at, id)`,
		`INSERT INTO service_status (id, active) VALUES (TRUE, TRUE) ON CONFLICT (id) DO NOTHING`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

const orderColumns = `id, student_name, student_id, phone_number, instructions, files,
        color_mode, paper_type, print_sides, page_size, copies, binding,
        total_pages, estimated_cost, transaction_id, artifact_ref, file_size,
        status, submitted_at, completed_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o     model.Order
		files []byte
	)
	err := row.Scan(&o.ID, &o.Student.Name, &o.Student.StudentID, &o.Student.PhoneNumber,
		&o.Student.Instructions, &files,
		&o.Config.ColorMode, &o.Config.PaperType, &o.Config.PrintSides, &o.Config.PageSize,
		&o.Config.Copies, &o.Config.Binding,
		&o.TotalPages, &o.EstimatedCost, &o.TransactionID, &o.ArtifactRef, &o.FileSize,
		&o.Status, &o.SubmittedAt, &o.CompletedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(files, &o.Files); err != nil {
		return nil, fmt.Errorf("decode order files: %w", err)
	}
	return &o, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	files, err := json.Marshal(order.Files)
	if err != nil {
		return nil, fmt.Errorf("encode order files: %w", err)
	}

	created := *order
	err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		// The availability switch is read under a share lock so a concurrent
		// stop cannot interleave with this insert.
		var (
			active  bool
			message string
		)
		if err := tx.QueryRow(ctx, `SELECT active, message FROM service_status WHERE id FOR SHARE`).Scan(&active, &message); err != nil {
			return err
		}
		if !active {
			return domainErrors.ServiceUnavailableError{Message: message}
		}

		const query = `INSERT INTO print_orders (
                id, student_name, student_id, phone_number, instructions, files,
                color_mode, paper_type, print_sides, page_size, copies, binding,
                total_pages, estimated_cost, transaction_id, artifact_ref, file_size, status)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
            RETURNING submitted_at`
		return tx.QueryRow(ctx, query,
			order.ID, order.Student.Name, order.Student.StudentID, order.Student.PhoneNumber,
			order.Student.Instructions, files,
			order.Config.ColorMode, order.Config.PaperType, order.Config.PrintSides,
			order.Config.PageSize, order.Config.Copies, order.Config.Binding,
			order.TotalPages, order.EstimatedCost, order.TransactionID,
			order.ArtifactRef, order.FileSize, model.OrderStatusPending,
		).Scan(&created.SubmittedAt)
	})
	if err != nil {
		return nil, err
	}

	created.Status = model.OrderStatusPending
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM print_orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM print_orders WHERE status=$1 ORDER BY submitted_at, id`
	args := []any{status}
	if status == "" {
		query = `SELECT ` + orderColumns + ` FROM print_orders ORDER BY submitted_at DESC, id`
		args = nil
	}

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) FirstPending(ctx context.Context) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM print_orders
        WHERE status=$1 ORDER BY submitted_at, id LIMIT 1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, model.OrderStatusPending))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) Rank(ctx context.Context, id string) (int, error) {
	// The outer row vanishes when the id is absent or not pending, so
	// ErrNoRows distinguishes a missing target from rank one.
	const query = `SELECT (SELECT COUNT(*) + 1 FROM print_orders e
            WHERE e.status=$2 AND (e.submitted_at, e.id) < (t.submitted_at, t.id))
        FROM print_orders t WHERE t.id=$1 AND t.status=$2`
	var rank int
	err := r.storage.pool.QueryRow(ctx, query, id, model.OrderStatusPending).Scan(&rank)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domainErrors.ErrNotFound
		}
		return 0, err
	}
	return rank, nil
}

func (r *orderRepository) TransitionFirst(ctx context.Context, id string, status model.OrderStatus) error {
	if !status.Terminal() {
		return fmt.Errorf("transition to %q: only terminal states allowed", status)
	}

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		// Lock the head of the queue; concurrent transitions serialize here
		// and the loser sees the winner's effect.
		const headQuery = `SELECT id FROM print_orders WHERE status=$1
            ORDER BY submitted_at, id LIMIT 1 FOR UPDATE`
		var firstID string
		if err := tx.QueryRow(ctx, headQuery, model.OrderStatusPending).Scan(&firstID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		if firstID != id {
			var targetStatus model.OrderStatus
			err := tx.QueryRow(ctx, `SELECT status FROM print_orders WHERE id=$1`, id).Scan(&targetStatus)
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			if err != nil {
				return err
			}
			if targetStatus != model.OrderStatusPending {
				return domainErrors.ErrNotFound
			}
			return domainErrors.ErrNotFirstInQueue
		}

		const update = `UPDATE print_orders
            SET status=$1, completed_at=CASE WHEN $1=$3 THEN NOW() ELSE completed_at END
            WHERE id=$2`
		_, err := tx.Exec(ctx, update, status, id, model.OrderStatusCompleted)
		return err
	})
}

func (r *orderRepository) Stats(ctx context.Context, dayStart time.Time) (*model.QueueStats, error) {
	const query = `SELECT
            COUNT(*) FILTER (WHERE status=$1),
            COUNT(*) FILTER (WHERE status=$2 AND completed_at >= $3)
        FROM print_orders`
	var stats model.QueueStats
	err := r.storage.pool.QueryRow(ctx, query,
		model.OrderStatusPending, model.OrderStatusCompleted, dayStart,
	).Scan(&stats.PendingCount, &stats.CompletedToday)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *orderRepository) PurgeTerminal(ctx context.Context, before time.Time) (int64, error) {
	const query = `DELETE FROM print_orders
        WHERE status <> $1 AND COALESCE(completed_at, submitted_at) < $2`
	tag, err := r.storage.pool.Exec(ctx, query, model.OrderStatusPending, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// --- StatusRepository implementation ---

func scanStatus(row pgx.Row) (*model.ServiceStatus, error) {
	var (
		status    model.ServiceStatus
		stoppedAt *time.Time
	)
	if err := row.Scan(&status.Active, &status.Message, &stoppedAt, &status.StoppedBy); err != nil {
		return nil, err
	}
	status.StoppedAt = stoppedAt
	return &status, nil
}

func (r *statusRepository) Get(ctx context.Context) (*model.ServiceStatus, error) {
	const query = `SELECT active, message, stopped_at, stopped_by FROM service_status WHERE id`
	return scanStatus(r.storage.pool.QueryRow(ctx, query))
}

func (r *statusRepository) Stop(ctx context.Context, message, stoppedBy string, at time.Time) (*model.ServiceStatus, error) {
	const query = `UPDATE service_status
        SET active=FALSE, message=$1, stopped_at=$2, stopped_by=$3
        WHERE id
        RETURNING active, message, stopped_at, stopped_by`
	return scanStatus(r.storage.pool.QueryRow(ctx, query, message, at, stoppedBy))
}

func (r *statusRepository) Start(ctx context.Context) (*model.ServiceStatus, error) {
	const query = `UPDATE service_status
        SET active=TRUE, message='', stopped_at=NULL, stopped_by=''
        WHERE id
        RETURNING active, message, stopped_at, stopped_by`
	return scanStatus(r.storage.pool.QueryRow(ctx, query))
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
