package store

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

/* ---------- 假實作 ---------- */

// fakeRow 實作 pgx.Row，scan 為 nil 時不寫入任何欄位
type fakeRow struct {
	err  error
	scan func(dest ...any)
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if r.scan != nil {
		r.scan(dest...)
	}
	return nil
}

// fakeRows 實作 pgx.Rows，依序以 scan(i, dest) 填入第 i 筆
type fakeRows struct {
	n       int
	idx     int
	scan    func(i int, dest ...any)
	scanErr error
	err     error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Next() bool                                   { return r.idx < r.n }
func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	i := r.idx
	r.idx++
	if r.scan != nil {
		r.scan(i, dest...)
	}
	return nil
}
func (r *fakeRows) Values() ([]any, error) { return nil, nil }
func (r *fakeRows) RawValues() [][]byte    { return nil }
func (r *fakeRows) Conn() *pgx.Conn        { return nil }

func tag(s string) pgconn.CommandTag { return pgconn.NewCommandTag(s) }

func pgErr(code string) error { return &pgconn.PgError{Code: code} }
