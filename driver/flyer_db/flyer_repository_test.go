package flyer_db

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"flyer-ingest/domain"
	"flyer-ingest/utils/sanitizer"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (*FlyerRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	repo := NewFlyerRepository(mock, sanitizer.NewSanitizer(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	repo.now = func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) }
	return repo, mock
}

func testFlyer(zip string) domain.Flyer {
	return domain.Flyer{
		ID:         uuid.New(),
		StoreName:  "ShopRite of Avenel",
		StoreSlug:  "shoprite",
		FlyerRunID: "run-7001",
		FlyerName:  "Weekly Circular",
		ZipCode:    zip,
		ImageURLs:  []string{"https://img.example.com/page_0.jpg"},
		FlyerPath:  "flyers/7001/",
		ValidFrom:  time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
		ValidTo:    time.Date(2026, 10, 22, 0, 0, 0, 0, time.UTC),
		Status:     domain.FlyerStatusPending,
	}
}

func testDeals(n int) []domain.Deal {
	deals := make([]domain.Deal, n)
	for i := range deals {
		deals[i] = domain.Deal{
			ProductName: "Bananas",
			SalePrice:   0.59,
			Unit:        "lb",
			DealType:    domain.DealTypeSale,
			Confidence:  domain.OCRConfidence,
		}
	}
	return deals
}

func TestFlyerExists(t *testing.T) {
	tests := map[string]struct {
		rows      *pgxmock.Rows
		queryErr  error
		want      bool
		expectErr bool
	}{
		"present": {
			rows: pgxmock.NewRows([]string{"exists"}).AddRow(true),
			want: true,
		},
		"absent": {
			rows: pgxmock.NewRows([]string{"exists"}).AddRow(false),
			want: false,
		},
		"query failure": {
			queryErr:  errors.New("connection reset"),
			expectErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			repo, mock := newTestRepository(t)

			expectation := mock.ExpectQuery("SELECT EXISTS").WithArgs("run-7001")
			if tc.queryErr != nil {
				expectation.WillReturnError(tc.queryErr)
			} else {
				expectation.WillReturnRows(tc.rows)
			}

			got, err := repo.FlyerExists(context.Background(), "run-7001")
			if tc.expectErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPersistFlyer_NewFlyerWithDeals(t *testing.T) {
	repo, mock := newTestRepository(t)
	flyer := testFlyer("07001")
	storeID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, zip_code FROM flyers").
		WithArgs("run-7001").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("SELECT id FROM stores").
		WithArgs("07001", "%ShopRite of Avenel%").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(storeID))
	mock.ExpectQuery("INSERT INTO flyers").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(flyer.ID))
	mock.ExpectCopyFrom(pgx.Identifier{"deals"}, dealColumns).
		WillReturnResult(3)
	mock.ExpectCommit()

	result, err := repo.PersistFlyer(context.Background(), flyer, testDeals(3))

	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.False(t, result.ZipCorrected)
	assert.Equal(t, flyer.ID, result.FlyerID)
	assert.Equal(t, 3, result.DealsInserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersistFlyer_NewFlyerWithoutDealsIsPending(t *testing.T) {
	repo, mock := newTestRepository(t)
	flyer := testFlyer("07001")

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, zip_code FROM flyers").
		WithArgs("run-7001").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("SELECT id FROM stores").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("INSERT INTO flyers").
		WithArgs(
			flyer.ID, (*uuid.UUID)(nil), "ShopRite of Avenel", "shoprite", "run-7001", "Weekly Circular", "07001",
			flyer.ImageURLs, "flyers/7001/", flyer.ValidFrom, flyer.ValidTo, "pending", (*time.Time)(nil),
		).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(flyer.ID))
	mock.ExpectCommit()

	result, err := repo.PersistFlyer(context.Background(), flyer, nil)

	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Zero(t, result.DealsInserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersistFlyer_InvalidZipStoresPlaceholder(t *testing.T) {
	repo, mock := newTestRepository(t)
	flyer := testFlyer("N/A")

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, zip_code FROM flyers").
		WithArgs("run-7001").
		WillReturnError(pgx.ErrNoRows)
	// No store lookup without a usable ZIP.
	mock.ExpectQuery("INSERT INTO flyers").
		WithArgs(
			pgxmock.AnyArg(), (*uuid.UUID)(nil), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			domain.PlaceholderZipCode,
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), "completed", pgxmock.AnyArg(),
		).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(flyer.ID))
	mock.ExpectCopyFrom(pgx.Identifier{"deals"}, dealColumns).
		WillReturnResult(1)
	mock.ExpectCommit()

	result, err := repo.PersistFlyer(context.Background(), flyer, testDeals(1))

	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, 1, result.DealsInserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersistFlyer_ConcurrentInsertIsSkipped(t *testing.T) {
	repo, mock := newTestRepository(t)
	flyer := testFlyer("07001")

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, zip_code FROM flyers").
		WithArgs("run-7001").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("SELECT id FROM stores").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("INSERT INTO flyers").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	result, err := repo.PersistFlyer(context.Background(), flyer, testDeals(2))

	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Zero(t, result.DealsInserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersistFlyer_ExistingFlyerZipCorrected(t *testing.T) {
	repo, mock := newTestRepository(t)
	flyer := testFlyer("07001")
	existingID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, zip_code FROM flyers").
		WithArgs("run-7001").
		WillReturnRows(pgxmock.NewRows([]string{"id", "zip_code"}).AddRow(existingID, "00000"))
	mock.ExpectExec("UPDATE flyers SET zip_code").
		WithArgs("07001", existingID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	result, err := repo.PersistFlyer(context.Background(), flyer, testDeals(4))

	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.True(t, result.ZipCorrected)
	assert.Equal(t, existingID, result.FlyerID)
	assert.Zero(t, result.DealsInserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersistFlyer_ExistingFlyerUnchanged(t *testing.T) {
	tests := map[string]struct {
		observedZip string
	}{
		"same zip":    {observedZip: "07001"},
		"invalid zip": {observedZip: "7001"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			repo, mock := newTestRepository(t)
			existingID := uuid.New()

			mock.ExpectBegin()
			mock.ExpectQuery("SELECT id, zip_code FROM flyers").
				WithArgs("run-7001").
				WillReturnRows(pgxmock.NewRows([]string{"id", "zip_code"}).AddRow(existingID, "07001"))
			mock.ExpectRollback()

			result, err := repo.PersistFlyer(context.Background(), testFlyer(tc.observedZip), nil)

			require.NoError(t, err)
			assert.False(t, result.Created)
			assert.False(t, result.ZipCorrected)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPersistFlyer_DealInsertFailureRollsBack(t *testing.T) {
	repo, mock := newTestRepository(t)
	flyer := testFlyer("07001")

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, zip_code FROM flyers").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("SELECT id FROM stores").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("INSERT INTO flyers").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(flyer.ID))
	mock.ExpectCopyFrom(pgx.Identifier{"deals"}, dealColumns).
		WillReturnError(errors.New("violates check constraint"))
	mock.ExpectRollback()

	_, err := repo.PersistFlyer(context.Background(), flyer, testDeals(2))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bulk insert deals")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersistFlyer_BeginFailure(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	_, err := repo.PersistFlyer(context.Background(), testFlyer("07001"), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\% Fresh\_Mart \\ Co`, escapeLike(`100% Fresh_Mart \ Co`))
}

func TestMigrate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS stores").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, Migrate(context.Background(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}
