package database

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	dbdriver "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	src "github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// stubMigrator 記錄 Up/Down 呼叫並回傳預設錯誤
type stubMigrator struct {
	upErr, downErr error
	ups, downs     int
}

func (m *stubMigrator) Up() error   { m.ups++; return m.upErr }
func (m *stubMigrator) Down() error { m.downs++; return m.downErr }

func restoreMigrationSeams() {
	pgxpoolNew = pgxpool.New
	sqlOpenDB = sql.Open
	postgresWithInstanceFn = postgres.WithInstance
	iofsNewFn = iofs.New
	migrateNewWithInstance = func(sourceName string, sourceDriver src.Driver, databaseName string, databaseDriver dbdriver.Driver) (migrateInstance, error) {
		m, err := migrate.NewWithInstance(sourceName, sourceDriver, databaseName, databaseDriver)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}

// offlineMigrator 讓 newMigrator 不連線資料庫，回傳指定的 migrator
func offlineMigrator(m migrateInstance) {
	sqlOpenDB = func(string, string) (*sql.DB, error) { return sql.Open("pgx", "") }
	postgresWithInstanceFn = func(*sql.DB, *postgres.Config) (dbdriver.Driver, error) { return nil, nil }
	migrateNewWithInstance = func(string, src.Driver, string, dbdriver.Driver) (migrateInstance, error) { return m, nil }
}

func TestNewPgxPool(t *testing.T) {
	t.Cleanup(restoreMigrationSeams)

	var gotURL string
	pgxpoolNew = func(_ context.Context, url string) (*pgxpool.Pool, error) {
		gotURL = url
		return &pgxpool.Pool{}, nil
	}
	db, err := NewPgxPool(context.Background(), "postgres://localhost/links")
	require.NoError(t, err)
	require.NotNil(t, db)
	require.Equal(t, "postgres://localhost/links", gotURL)

	pgxpoolNew = func(context.Context, string) (*pgxpool.Pool, error) { return nil, errors.New("dial") }
	_, err = NewPgxPool(context.Background(), "postgres://localhost/links")
	require.EqualError(t, err, "dial")
}

func TestEmbeddedSchemaMigration(t *testing.T) {
	t.Cleanup(restoreMigrationSeams)
	m := &stubMigrator{}
	offlineMigrator(m)

	var upSQL, downSQL string
	iofsNewFn = func(fsys fs.FS, path string) (src.Driver, error) {
		require.Equal(t, "migrations", path)
		d, err := iofs.New(fsys, path)
		require.NoError(t, err)

		first, err := d.First()
		require.NoError(t, err)
		require.Equal(t, uint(1), first)
		_, err = d.Next(first)
		require.Error(t, err, "only one schema version is embedded")

		r, ident, err := d.ReadUp(first)
		require.NoError(t, err)
		require.Equal(t, "init_schema", ident)
		b, err := io.ReadAll(r)
		require.NoError(t, err)
		upSQL = string(b)

		r, _, err = d.ReadDown(first)
		require.NoError(t, err)
		b, err = io.ReadAll(r)
		require.NoError(t, err)
		downSQL = string(b)
		return d, nil
	}

	require.NoError(t, RunMigrations("postgres://localhost/links"))
	require.Equal(t, 1, m.ups)
	for _, table := range []string{"users", "categories", "links", "submissions", "visit_logs"} {
		require.Contains(t, upSQL, "CREATE TABLE IF NOT EXISTS "+table)
		require.Contains(t, downSQL, table)
	}
	require.Contains(t, upSQL, "ON DELETE RESTRICT")
}

func TestMigrationSetupFailures(t *testing.T) {
	cases := []struct {
		name string
		fail func()
	}{
		{"open", func() {
			sqlOpenDB = func(string, string) (*sql.DB, error) { return nil, errors.New("open") }
		}},
		{"driver", func() {
			postgresWithInstanceFn = func(*sql.DB, *postgres.Config) (dbdriver.Driver, error) { return nil, errors.New("driver") }
		}},
		{"source", func() {
			iofsNewFn = func(fs.FS, string) (src.Driver, error) { return nil, errors.New("source") }
		}},
		{"migrator", func() {
			migrateNewWithInstance = func(string, src.Driver, string, dbdriver.Driver) (migrateInstance, error) {
				return nil, errors.New("migrator")
			}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Cleanup(restoreMigrationSeams)
			offlineMigrator(&stubMigrator{})
			iofsNewFn = func(fs.FS, string) (src.Driver, error) { return nil, nil }
			tc.fail()
			require.EqualError(t, RunMigrations("url"), tc.name)
			require.EqualError(t, RollbackAll("url"), tc.name)
		})
	}
}

func TestMigrationDirection(t *testing.T) {
	t.Cleanup(restoreMigrationSeams)
	iofsNewFn = func(fs.FS, string) (src.Driver, error) { return nil, nil }

	t.Run("up is idempotent", func(t *testing.T) {
		m := &stubMigrator{upErr: migrate.ErrNoChange}
		offlineMigrator(m)
		require.NoError(t, RunMigrations("url"))
		require.Equal(t, 1, m.ups)
		require.Zero(t, m.downs)
	})

	t.Run("up failure", func(t *testing.T) {
		offlineMigrator(&stubMigrator{upErr: errors.New("dirty")})
		require.EqualError(t, RunMigrations("url"), "dirty")
	})

	t.Run("rollback on empty schema", func(t *testing.T) {
		m := &stubMigrator{downErr: migrate.ErrNoChange}
		offlineMigrator(m)
		require.NoError(t, RollbackAll("url"))
		require.Equal(t, 1, m.downs)
		require.Zero(t, m.ups)
	})

	t.Run("rollback failure", func(t *testing.T) {
		offlineMigrator(&stubMigrator{downErr: errors.New("locked")})
		require.EqualError(t, RollbackAll("url"), "locked")
	})
}
