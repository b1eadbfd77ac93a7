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

	domainErrors "github.com/khanhng/orderflow/internal/domain/errors"
	"github.com/khanhng/orderflow/internal/domain/model"
	"github.com/khanhng/orderflow/internal/domain/repository"
)

// PoolIface is the subset of pgxpool.Pool the storage uses; pgxmock
// satisfies it in tests.
type PoolIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   PoolIface
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type draftRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
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
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Drafts() repository.DraftRepository {
	return &draftRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            name TEXT NOT NULL DEFAULT '',
            roles TEXT[] NOT NULL DEFAULT '{}',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            code TEXT UNIQUE NOT NULL,
            customer_name TEXT NOT NULL,
            customer_phone TEXT NOT NULL DEFAULT '',
            customer_address TEXT NOT NULL DEFAULT '',
            order_type TEXT NOT NULL,
            status TEXT NOT NULL,
            printing_status TEXT NOT NULL,
            cutting_status TEXT NOT NULL,
            item_price BIGINT NOT NULL DEFAULT 0,
            construction_fee BIGINT NOT NULL DEFAULT 0,
            design_fee BIGINT NOT NULL DEFAULT 0,
            shipping_fee BIGINT NOT NULL DEFAULT 0,
            extra_fee BIGINT NOT NULL DEFAULT 0,
            extra_fee_note TEXT NOT NULL DEFAULT '',
            vat_included BOOLEAN NOT NULL DEFAULT FALSE,
            vat BIGINT NOT NULL DEFAULT 0,
            deposit BIGINT NOT NULL DEFAULT 0,
            total BIGINT NOT NULL DEFAULT 0,
            cod BIGINT NOT NULL DEFAULT 0,
            actual_received BIGINT NOT NULL DEFAULT 0,
            customer_pays_shipping BOOLEAN NOT NULL DEFAULT FALSE,
            shipping_method TEXT NOT NULL DEFAULT '',
            tracking_code TEXT NOT NULL DEFAULT '',
            carrier_note TEXT NOT NULL DEFAULT '',
            carrier_cost BIGINT NOT NULL DEFAULT 0,
            profit_shares JSONB NOT NULL DEFAULT '[]',
            assignments JSONB NOT NULL DEFAULT '[]',
            created_by BIGINT NOT NULL DEFAULT 0,
            version BIGINT NOT NULL DEFAULT 1,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS paintings (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            type TEXT NOT NULL,
            width INT NOT NULL DEFAULT 0,
            height INT NOT NULL DEFAULT 0,
            frame_type TEXT NOT NULL DEFAULT '',
            quantity INT NOT NULL DEFAULT 1,
            note TEXT NOT NULL DEFAULT '',
            mentions TEXT[] NOT NULL DEFAULT '{}',
            media_urls TEXT[] NOT NULL DEFAULT '{}',
            is_printed BOOLEAN NOT NULL DEFAULT FALSE,
            printed_by TEXT NOT NULL DEFAULT '',
            printed_at TIMESTAMPTZ,
            received_by_production BOOLEAN NOT NULL DEFAULT FALSE,
            production_received_by TEXT NOT NULL DEFAULT '',
            production_received_at TIMESTAMPTZ,
            received_by_packing BOOLEAN NOT NULL DEFAULT FALSE,
            packing_received_by TEXT NOT NULL DEFAULT '',
            packing_received_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS order_history (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            status TEXT NOT NULL,
            actor TEXT NOT NULL DEFAULT '',
            note TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_drafts (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            proposed_by BIGINT NOT NULL,
            proposer_name TEXT NOT NULL DEFAULT '',
            reviewed_by BIGINT,
            status TEXT NOT NULL,
            original JSONB NOT NULL,
            proposed JSONB NOT NULL,
            reviewer_note TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_paintings_order ON paintings(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_order_history_order ON order_history(order_id, created_at)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_order_drafts_pending ON order_drafts(order_id) WHERE status = 'PENDING'`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash, name string, roles model.RoleSet) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash, name, roles) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash, name, rolesToStrings(roles)).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	u.Name = name
	u.Roles = roles
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, name, roles, created_at FROM users WHERE login=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, login))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, password_hash, name, roles, created_at FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	var roles []string
	err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Name, &roles, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	u.Roles = stringsToRoles(roles)
	return &u, nil
}

func rolesToStrings(roles model.RoleSet) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}
	return out
}

func stringsToRoles(raw []string) model.RoleSet {
	out := make(model.RoleSet, 0, len(raw))
	for _, r := range raw {
		out = append(out, model.Role(r))
	}
	return out
}

// --- OrderRepository implementation ---

const orderColumns = `id, code, customer_name, customer_phone, customer_address, order_type,
       status, printing_status, cutting_status,
       item_price, construction_fee, design_fee, shipping_fee, extra_fee, extra_fee_note,
       vat_included, vat, deposit, total, cod, actual_received,
       customer_pays_shipping, shipping_method, tracking_code, carrier_note, carrier_cost,
       profit_shares, assignments, created_by, version, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	var shares, assignments []byte
	err := row.Scan(
		&o.ID, &o.Code, &o.CustomerName, &o.CustomerPhone, &o.CustomerAddress, &o.Type,
		&o.Status, &o.PrintingStatus, &o.CuttingStatus,
		&o.ItemPrice, &o.ConstructionFee, &o.DesignFee, &o.ShippingFee, &o.ExtraFee, &o.ExtraFeeNote,
		&o.VATIncluded, &o.VAT, &o.Deposit, &o.Total, &o.COD, &o.ActualReceived,
		&o.CustomerPaysShipping, &o.ShippingMethod, &o.TrackingCode, &o.CarrierNote, &o.CarrierCost,
		&shares, &assignments, &o.CreatedBy, &o.Version, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(shares) > 0 {
		if err := json.Unmarshal(shares, &o.ProfitShares); err != nil {
			return nil, fmt.Errorf("decode profit shares: %w", err)
		}
	}
	if len(assignments) > 0 {
		if err := json.Unmarshal(assignments, &o.Assignments); err != nil {
			return nil, fmt.Errorf("decode assignments: %w", err)
		}
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		shares, err := json.Marshal(order.ProfitShares)
		if err != nil {
			return err
		}
		assignments, err := json.Marshal(order.Assignments)
		if err != nil {
			return err
		}

		const query = `INSERT INTO orders (
                code, customer_name, customer_phone, customer_address, order_type,
                status, printing_status, cutting_status,
                item_price, construction_fee, design_fee, shipping_fee, extra_fee, extra_fee_note,
                vat_included, vat, deposit, total, cod, actual_received,
                customer_pays_shipping, shipping_method, tracking_code, carrier_note, carrier_cost,
                profit_shares, assignments, created_by)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28)
            RETURNING id, version, created_at, updated_at`
		err = tx.QueryRow(ctx, query,
			order.Code, order.CustomerName, order.CustomerPhone, order.CustomerAddress, order.Type,
			order.Status, order.PrintingStatus, order.CuttingStatus,
			order.ItemPrice, order.ConstructionFee, order.DesignFee, order.ShippingFee, order.ExtraFee, order.ExtraFeeNote,
			order.VATIncluded, order.VAT, order.Deposit, order.Total, order.COD, order.ActualReceived,
			order.CustomerPaysShipping, order.ShippingMethod, order.TrackingCode, order.CarrierNote, order.CarrierCost,
			shares, assignments, order.CreatedBy,
		).Scan(&order.ID, &order.Version, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}

		for i := range order.Items {
			if err := insertItemTx(ctx, tx, order.ID, &order.Items[i]); err != nil {
				return err
			}
		}
		for i := range order.History {
			entry := &order.History[i]
			entry.OrderID = order.ID
			if err := insertHistoryTx(ctx, tx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func insertItemTx(ctx context.Context, tx pgx.Tx, orderID int64, item *model.Painting) error {
	const query = `INSERT INTO paintings (
            order_id, type, width, height, frame_type, quantity, note, mentions, media_urls,
            is_printed, printed_by, printed_at,
            received_by_production, production_received_by, production_received_at,
            received_by_packing, packing_received_by, packing_received_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
        RETURNING id`
	item.OrderID = orderID
	return tx.QueryRow(ctx, query,
		orderID, item.Type, item.Width, item.Height, item.FrameType, item.Quantity, item.Note,
		item.Mentions, item.MediaURLs,
		item.IsPrinted, item.PrintedBy, item.PrintedAt,
		item.ReceivedByProduction, item.ProductionReceivedBy, item.ProductionReceivedAt,
		item.ReceivedByPacking, item.PackingReceivedBy, item.PackingReceivedAt,
	).Scan(&item.ID)
}

func updateItemTx(ctx context.Context, tx pgx.Tx, item *model.Painting) error {
	const query = `UPDATE paintings SET
            type=$1, width=$2, height=$3, frame_type=$4, quantity=$5, note=$6, mentions=$7, media_urls=$8,
            is_printed=$9, printed_by=$10, printed_at=$11,
            received_by_production=$12, production_received_by=$13, production_received_at=$14,
            received_by_packing=$15, packing_received_by=$16, packing_received_at=$17
        WHERE id=$18`
	_, err := tx.Exec(ctx, query,
		item.Type, item.Width, item.Height, item.FrameType, item.Quantity, item.Note,
		item.Mentions, item.MediaURLs,
		item.IsPrinted, item.PrintedBy, item.PrintedAt,
		item.ReceivedByProduction, item.ProductionReceivedBy, item.ProductionReceivedAt,
		item.ReceivedByPacking, item.PackingReceivedBy, item.PackingReceivedAt,
		item.ID,
	)
	return err
}

func insertHistoryTx(ctx context.Context, tx pgx.Tx, entry *model.StatusChange) error {
	const query = `INSERT INTO order_history (order_id, status, actor, note, created_at)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id`
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return tx.QueryRow(ctx, query, entry.OrderID, entry.Status, entry.Actor, entry.Note, createdAt).Scan(&entry.ID)
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadChildren(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByCode(ctx context.Context, code string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE code=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadChildren(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) loadChildren(ctx context.Context, order *model.Order) error {
	items, err := r.loadItems(ctx, order.ID)
	if err != nil {
		return err
	}
	order.Items = items

	const historyQuery = `SELECT id, order_id, status, actor, note, created_at
                          FROM order_history WHERE order_id=$1 ORDER BY created_at, id`
	rows, err := r.storage.pool.Query(ctx, historyQuery, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var h model.StatusChange
		if err := rows.Scan(&h.ID, &h.OrderID, &h.Status, &h.Actor, &h.Note, &h.CreatedAt); err != nil {
			return err
		}
		order.History = append(order.History, h)
	}
	return rows.Err()
}

const paintingColumns = `id, order_id, type, width, height, frame_type, quantity, note, mentions, media_urls,
       is_printed, printed_by, printed_at,
       received_by_production, production_received_by, production_received_at,
       received_by_packing, packing_received_by, packing_received_at`

func scanPainting(rows pgx.Rows) (model.Painting, error) {
	var p model.Painting
	err := rows.Scan(
		&p.ID, &p.OrderID, &p.Type, &p.Width, &p.Height, &p.FrameType, &p.Quantity, &p.Note,
		&p.Mentions, &p.MediaURLs,
		&p.IsPrinted, &p.PrintedBy, &p.PrintedAt,
		&p.ReceivedByProduction, &p.ProductionReceivedBy, &p.ProductionReceivedAt,
		&p.ReceivedByPacking, &p.PackingReceivedBy, &p.PackingReceivedAt,
	)
	return p, err
}

func (r *orderRepository) loadItems(ctx context.Context, orderID int64) ([]model.Painting, error) {
	query := `SELECT ` + paintingColumns + ` FROM paintings WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Painting
	for rows.Next() {
		p, err := scanPainting(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
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

	for i := range result {
		items, err := r.loadItems(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Items = items
	}
	return result, nil
}

// Update writes the aggregate back under optimistic concurrency: the order
// row only updates when the stored version matches, items are reconciled by
// presence, and new history entries are appended, all in one transaction.
func (r *orderRepository) Update(ctx context.Context, order *model.Order, expectedVersion int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		shares, err := json.Marshal(order.ProfitShares)
		if err != nil {
			return err
		}
		assignments, err := json.Marshal(order.Assignments)
		if err != nil {
			return err
		}

		const query = `UPDATE orders SET
                customer_name=$1, customer_phone=$2, customer_address=$3, order_type=$4,
                status=$5, printing_status=$6, cutting_status=$7,
                item_price=$8, construction_fee=$9, design_fee=$10, shipping_fee=$11, extra_fee=$12, extra_fee_note=$13,
                vat_included=$14, vat=$15, deposit=$16, total=$17, cod=$18, actual_received=$19,
                customer_pays_shipping=$20, shipping_method=$21, tracking_code=$22, carrier_note=$23, carrier_cost=$24,
                profit_shares=$25, assignments=$26,
                version=version+1, updated_at=NOW()
            WHERE id=$27 AND version=$28`
		tag, err := tx.Exec(ctx, query,
			order.CustomerName, order.CustomerPhone, order.CustomerAddress, order.Type,
			order.Status, order.PrintingStatus, order.CuttingStatus,
			order.ItemPrice, order.ConstructionFee, order.DesignFee, order.ShippingFee, order.ExtraFee, order.ExtraFeeNote,
			order.VATIncluded, order.VAT, order.Deposit, order.Total, order.COD, order.ActualReceived,
			order.CustomerPaysShipping, order.ShippingMethod, order.TrackingCode, order.CarrierNote, order.CarrierCost,
			shares, assignments,
			order.ID, expectedVersion,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrConflict
		}
		order.Version = expectedVersion + 1

		kept := make([]int64, 0, len(order.Items))
		for i := range order.Items {
			if order.Items[i].ID != 0 {
				kept = append(kept, order.Items[i].ID)
			}
		}
		const deleteQuery = `DELETE FROM paintings WHERE order_id=$1 AND NOT (id = ANY($2))`
		if _, err := tx.Exec(ctx, deleteQuery, order.ID, kept); err != nil {
			return err
		}

		for i := range order.Items {
			item := &order.Items[i]
			if item.ID == 0 {
				if err := insertItemTx(ctx, tx, order.ID, item); err != nil {
					return err
				}
				continue
			}
			if err := updateItemTx(ctx, tx, item); err != nil {
				return err
			}
		}

		for i := range order.History {
			entry := &order.History[i]
			if entry.ID != 0 {
				continue
			}
			entry.OrderID = order.ID
			if err := insertHistoryTx(ctx, tx, entry); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM orders WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// --- DraftRepository implementation ---

func (r *draftRepository) Save(ctx context.Context, draft *model.OrderDraft) (*model.OrderDraft, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM order_drafts WHERE order_id=$1 AND status=$2`, draft.OrderID, model.DraftStatusPending); err != nil {
			return err
		}

		original, err := json.Marshal(draft.Original)
		if err != nil {
			return err
		}
		proposed, err := json.Marshal(draft.Proposed)
		if err != nil {
			return err
		}

		const query = `INSERT INTO order_drafts (order_id, proposed_by, proposer_name, status, original, proposed, reviewer_note)
                       VALUES ($1, $2, $3, $4, $5, $6, $7)
                       RETURNING id, created_at, updated_at`
		return tx.QueryRow(ctx, query,
			draft.OrderID, draft.ProposedBy, draft.ProposerName, draft.Status, original, proposed, draft.ReviewerNote,
		).Scan(&draft.ID, &draft.CreatedAt, &draft.UpdatedAt)
	})
	if err != nil {
		return nil, err
	}
	return draft, nil
}

func (r *draftRepository) GetPending(ctx context.Context, orderID int64) (*model.OrderDraft, error) {
	const query = `SELECT id, order_id, proposed_by, proposer_name, reviewed_by, status, original, proposed, reviewer_note, created_at, updated_at
                   FROM order_drafts WHERE order_id=$1 AND status=$2`
	var d model.OrderDraft
	var original, proposed []byte
	err := r.storage.pool.QueryRow(ctx, query, orderID, model.DraftStatusPending).Scan(
		&d.ID, &d.OrderID, &d.ProposedBy, &d.ProposerName, &d.ReviewedBy, &d.Status,
		&original, &proposed, &d.ReviewerNote, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(original, &d.Original); err != nil {
		return nil, fmt.Errorf("decode original snapshot: %w", err)
	}
	if err := json.Unmarshal(proposed, &d.Proposed); err != nil {
		return nil, fmt.Errorf("decode proposed snapshot: %w", err)
	}
	return &d, nil
}

func (r *draftRepository) DeletePending(ctx context.Context, orderID int64) error {
	_, err := r.storage.pool.Exec(ctx, `DELETE FROM order_drafts WHERE order_id=$1 AND status=$2`, orderID, model.DraftStatusPending)
	return err
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
