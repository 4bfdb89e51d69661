package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNestedScope is returned when a scope is entered from inside another
// scope on the same request. Each request handler gets exactly one
// acquisition point; nesting is a programming error, not a runtime state.
var ErrNestedScope = errors.New("connection scope already active for this operation")

// Conn is the handle an operation works against. *sql.Conn satisfies it.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ReleasableConn is a Conn that must be returned to its pool.
type ReleasableConn interface {
	Conn
	Close() error
}

// Acquirer hands out connections. Pool adapts *sql.DB; tests substitute
// a counting fake.
type Acquirer interface {
	Acquire(ctx context.Context) (ReleasableConn, error)
}

// Pool adapts *sql.DB to the Acquirer interface.
type Pool struct {
	db *sql.DB
}

func NewPool(db *sql.DB) *Pool {
	return &Pool{db: db}
}

func (p *Pool) Acquire(ctx context.Context) (ReleasableConn, error) {
	return p.db.Conn(ctx)
}

type scopeKey struct{}

// Scope binds a connection's lifetime to one logical operation.
type Scope struct {
	pool Acquirer
}

func NewScope(pool Acquirer) *Scope {
	return &Scope{pool: pool}
}

// Run acquires one connection, invokes fn with it, and releases it exactly
// once on every exit path: normal return, business error, or panic inside
// fn. Panics are converted to errors so a fault still resolves to a single
// terminal outcome for the request.
func (s *Scope) Run(ctx context.Context, fn func(ctx context.Context, conn Conn) error) (err error) {
	if ctx.Value(scopeKey{}) != nil {
		return ErrNestedScope
	}

	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection: %w", err)
	}

	defer func() {
		closeErr := conn.Close()
		if r := recover(); r != nil {
			err = fmt.Errorf("operation panicked: %v", r)
			return
		}
		if err == nil && closeErr != nil {
			err = fmt.Errorf("releasing connection: %w", closeErr)
		}
	}()

	ctx = context.WithValue(ctx, scopeKey{}, struct{}{})

	return fn(ctx, conn)
}
