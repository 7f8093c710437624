package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/storefront/pkg/domain/inventory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

var inventoryColumns = []string{"id", "product_id", "quantity", "location", "created_at", "updated_at"}

func TestRepository_GetByProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := New(db)
		id, productID := uuid.New(), uuid.New()
		now := time.Now().UTC()

		mock.ExpectQuery(`SELECT \* FROM "inventories" WHERE product_id = \$1`).
			WillReturnRows(sqlmock.NewRows(inventoryColumns).
				AddRow(id.String(), productID.String(), 4, "A1", now, now))

		inv, err := repo.GetByProduct(ctx, productID)
		require.NoError(t, err)
		assert.Equal(t, id, inv.ID)
		assert.Equal(t, productID, inv.ProductID)
		assert.Equal(t, 4, inv.Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing record maps to not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := New(db)

		mock.ExpectQuery(`SELECT \* FROM "inventories" WHERE product_id = \$1`).
			WillReturnRows(sqlmock.NewRows(inventoryColumns))

		_, err := repo.GetByProduct(ctx, uuid.New())
		assert.ErrorIs(t, err, inventory.ErrInventoryNotFound)
	})

	t.Run("driver error is returned as is", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := New(db)
		errConn := errors.New("connection reset")

		mock.ExpectQuery(`SELECT \* FROM "inventories"`).WillReturnError(errConn)

		_, err := repo.GetByProduct(ctx, uuid.New())
		assert.ErrorIs(t, err, errConn)
	})
}

func TestRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)
	inv, err := inventory.New(uuid.New(), 10, "A1")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "inventories" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), inv))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "inventories" (.+) VALUES (.+)`).
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.Create(context.Background(), inv), inventory.ErrInventoryAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteByProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes the record", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := New(db)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "inventories" WHERE product_id = \$1`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.DeleteByProduct(ctx, uuid.New()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing deleted maps to not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := New(db)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "inventories" WHERE product_id = \$1`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		assert.ErrorIs(t, repo.DeleteByProduct(ctx, uuid.New()), inventory.ErrInventoryNotFound)
	})
}

func TestRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)
	inv, err := inventory.New(uuid.New(), 10, "A1")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "inventories" SET (.+) WHERE id = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), inv))
	assert.NoError(t, mock.ExpectationsWereMet())
}
