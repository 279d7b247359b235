package flyer_db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"flyer-ingest/domain"
	"flyer-ingest/utils/sanitizer"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var dealColumns = []string{
	"id", "flyer_id", "store_name", "zip_code", "product_name", "product_brand",
	"product_category", "sale_price", "regular_price", "unit", "deal_type", "quantity",
	"valid_from", "valid_to", "confidence", "raw_text", "image_url",
}

// FlyerRepository persists flyers and their deals, one transaction per flyer.
type FlyerRepository struct {
	pool      PgxIface
	sanitizer *sanitizer.Sanitizer
	logger    *slog.Logger
	now       func() time.Time
}

func NewFlyerRepository(pool PgxIface, s *sanitizer.Sanitizer, logger *slog.Logger) *FlyerRepository {
	return &FlyerRepository{
		pool:      pool,
		sanitizer: s,
		logger:    logger,
		now:       time.Now,
	}
}

// Ping checks database connectivity.
func (r *FlyerRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *FlyerRepository) FlyerExists(ctx context.Context, flyerRunID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM flyers WHERE flyer_run_id = $1)`,
		flyerRunID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check flyer %s: %w", flyerRunID, err)
	}
	return exists, nil
}

// PersistFlyer stores a new flyer with its deals, or corrects the ZIP of the
// row already holding flyer.FlyerRunID. Deals are never added to an existing
// flyer. Any error rolls back this flyer only.
func (r *FlyerRepository) PersistFlyer(ctx context.Context, flyer domain.Flyer, deals []domain.Deal) (domain.PersistResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.PersistResult{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var existingID uuid.UUID
	var existingZip string
	err = tx.QueryRow(ctx,
		`SELECT id, zip_code FROM flyers WHERE flyer_run_id = $1 FOR UPDATE`,
		flyer.FlyerRunID,
	).Scan(&existingID, &existingZip)

	switch {
	case err == nil:
		return r.correctZip(ctx, tx, existingID, existingZip, flyer)
	case errors.Is(err, pgx.ErrNoRows):
		return r.create(ctx, tx, flyer, deals)
	default:
		return domain.PersistResult{}, fmt.Errorf("lock flyer %s: %w", flyer.FlyerRunID, err)
	}
}

func (r *FlyerRepository) correctZip(ctx context.Context, tx pgx.Tx, id uuid.UUID, currentZip string, flyer domain.Flyer) (domain.PersistResult, error) {
	result := domain.PersistResult{FlyerID: id}

	observedZip, valid := domain.ZipCodeOrPlaceholder(flyer.ZipCode)
	if !valid || observedZip == currentZip {
		if err := tx.Rollback(ctx); err != nil {
			return result, fmt.Errorf("rollback unchanged flyer: %w", err)
		}
		return result, nil
	}

	if _, err := tx.Exec(ctx,
		`UPDATE flyers SET zip_code = $1, updated_at = NOW() WHERE id = $2`,
		observedZip, id,
	); err != nil {
		return result, fmt.Errorf("correct zip for flyer %s: %w", flyer.FlyerRunID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return result, fmt.Errorf("commit zip correction: %w", err)
	}

	r.logger.InfoContext(ctx, "corrected flyer zip code",
		"flyer_run_id", flyer.FlyerRunID,
		"from", currentZip,
		"to", observedZip)
	result.ZipCorrected = true
	return result, nil
}

func (r *FlyerRepository) create(ctx context.Context, tx pgx.Tx, flyer domain.Flyer, deals []domain.Deal) (domain.PersistResult, error) {
	if flyer.ID == uuid.Nil {
		flyer.ID = uuid.New()
	}
	flyer.StoreName = r.sanitizer.SanitizeMerchantName(flyer.StoreName)

	zip, zipValid := domain.ZipCodeOrPlaceholder(flyer.ZipCode)
	flyer.ZipCode = zip
	if !zipValid {
		r.logger.WarnContext(ctx, "unusable zip code, storing placeholder",
			"flyer_run_id", flyer.FlyerRunID,
			"zip_code", zip)
	} else {
		storeID, err := r.matchStore(ctx, tx, flyer.StoreName, zip)
		if err != nil {
			return domain.PersistResult{}, err
		}
		flyer.StoreID = storeID
	}

	flyer.Status = domain.FlyerStatusPending
	flyer.ProcessedAt = nil
	if len(deals) > 0 {
		now := r.now().UTC()
		flyer.Status = domain.FlyerStatusCompleted
		flyer.ProcessedAt = &now
	}

	imageURLs := flyer.ImageURLs
	if imageURLs == nil {
		imageURLs = []string{}
	}

	var insertedID uuid.UUID
	err := tx.QueryRow(ctx, `
		INSERT INTO flyers (
			id, store_id, store_name, store_slug, flyer_run_id, flyer_name, zip_code,
			image_urls, flyer_path, valid_from, valid_to, status, processed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (flyer_run_id) DO NOTHING
		RETURNING id`,
		flyer.ID, flyer.StoreID, flyer.StoreName, flyer.StoreSlug, flyer.FlyerRunID, flyer.FlyerName, flyer.ZipCode,
		imageURLs, flyer.FlyerPath, flyer.ValidFrom, flyer.ValidTo, string(flyer.Status), flyer.ProcessedAt,
	).Scan(&insertedID)
	if errors.Is(err, pgx.ErrNoRows) {
		// Another writer inserted the same run id after our lock query.
		r.logger.InfoContext(ctx, "flyer inserted concurrently, skipping",
			"flyer_run_id", flyer.FlyerRunID)
		return domain.PersistResult{}, nil
	}
	if err != nil {
		return domain.PersistResult{}, fmt.Errorf("insert flyer %s: %w", flyer.FlyerRunID, err)
	}

	inserted, err := r.insertDeals(ctx, tx, flyer, deals)
	if err != nil {
		return domain.PersistResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.PersistResult{}, fmt.Errorf("commit flyer %s: %w", flyer.FlyerRunID, err)
	}

	r.logger.InfoContext(ctx, "persisted flyer",
		"flyer_run_id", flyer.FlyerRunID,
		"flyer_id", insertedID,
		"status", flyer.Status,
		"deals", inserted)

	return domain.PersistResult{
		FlyerID:       insertedID,
		Created:       true,
		DealsInserted: inserted,
	}, nil
}

// matchStore finds a store in zip whose name or chain contains storeName.
func (r *FlyerRepository) matchStore(ctx context.Context, tx pgx.Tx, storeName, zip string) (*uuid.UUID, error) {
	pattern := "%" + escapeLike(storeName) + "%"

	var id uuid.UUID
	err := tx.QueryRow(ctx, `
		SELECT id FROM stores
		WHERE zip_code = $1
		  AND (name ILIKE $2 OR chain_name ILIKE $2)
		ORDER BY name
		LIMIT 1`,
		zip, pattern,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("match store %q in %s: %w", storeName, zip, err)
	}
	return &id, nil
}

func (r *FlyerRepository) insertDeals(ctx context.Context, tx pgx.Tx, flyer domain.Flyer, deals []domain.Deal) (int, error) {
	if len(deals) == 0 {
		return 0, nil
	}

	rows := make([][]any, len(deals))
	for i := range deals {
		deal := deals[i]
		deal.AttachToFlyer(flyer)
		rows[i] = []any{
			deal.ID,
			deal.FlyerID,
			deal.StoreName,
			deal.ZipCode,
			deal.ProductName,
			deal.ProductBrand,
			deal.ProductCategory,
			deal.SalePrice,
			deal.RegularPrice,
			deal.Unit,
			string(deal.DealType),
			deal.Quantity,
			deal.ValidFrom,
			deal.ValidTo,
			deal.Confidence,
			deal.RawText,
			deal.ImageURL,
		}
	}

	copied, err := tx.CopyFrom(ctx, pgx.Identifier{"deals"}, dealColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("bulk insert deals for flyer %s: %w", flyer.FlyerRunID, err)
	}
	return int(copied), nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
