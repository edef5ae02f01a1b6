package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pricebook/backend/internal/domain/pricebook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newSQLiteStore(t *testing.T) *SQLSnapshotStore {
	t.Helper()
	db, err := NewSQLiteDatabase(":memory:", nil)
	require.NoError(t, err)
	store := NewSQLSnapshotStore(db)
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// newMockDatabase creates a Database backed by sqlmock speaking the postgres dialect
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return &Database{DB: gormDB}, mock, mockDB
}

func TestSQLSnapshotStore_SQLite(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key reports not found", func(t *testing.T) {
		store := newSQLiteStore(t)

		_, err := store.Load(ctx, "store_products_v6")
		assert.ErrorIs(t, err, pricebook.ErrSnapshotNotFound)
	})

	t.Run("save then load returns payload", func(t *testing.T) {
		store := newSQLiteStore(t)

		require.NoError(t, store.Save(ctx, "store_products_v6", []byte(`[{"id":"p1"}]`)))
		got, err := store.Load(ctx, "store_products_v6")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"p1"}]`, string(got))
	})

	t.Run("save overwrites", func(t *testing.T) {
		store := newSQLiteStore(t)

		require.NoError(t, store.Save(ctx, "k", []byte(`[1]`)))
		require.NoError(t, store.Save(ctx, "k", []byte(`[2]`)))
		got, err := store.Load(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, `[2]`, string(got))
	})

	t.Run("delete removes only the key", func(t *testing.T) {
		store := newSQLiteStore(t)

		require.NoError(t, store.Save(ctx, "a", []byte(`[]`)))
		require.NoError(t, store.Save(ctx, "b", []byte(`[]`)))
		require.NoError(t, store.Delete(ctx, "a"))

		_, err := store.Load(ctx, "a")
		assert.ErrorIs(t, err, pricebook.ErrSnapshotNotFound)
		_, err = store.Load(ctx, "b")
		assert.NoError(t, err)
	})
}

func TestSQLSnapshotStore_Postgres(t *testing.T) {
	ctx := context.Background()

	t.Run("load queries by snapshot key", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "snapshots" WHERE snapshot_key = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"snapshot_key", "payload", "updated_at"}).
				AddRow("store_products_v6", `[]`, time.Now()))

		got, err := NewSQLSnapshotStore(db).Load(ctx, "store_products_v6")
		require.NoError(t, err)
		assert.Equal(t, "[]", string(got))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("save upserts on conflict", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectExec(`INSERT INTO "snapshots" .* ON CONFLICT \("snapshot_key"\) DO UPDATE SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := NewSQLSnapshotStore(db).Save(ctx, "store_products_v6", []byte(`[]`))
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver errors are wrapped", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectExec(`INSERT INTO "snapshots"`).WillReturnError(errors.New("connection reset"))

		err := NewSQLSnapshotStore(db).Save(ctx, "k", []byte(`[]`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
	})
}
