// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Database provides a database interface with query tracing.
type Database interface {
	// NamedQueryContext executes a named query against the database and returns
	// an *sqlx.Rows.
	NamedQueryContext(ctx context.Context, query string, args interface{}) (*sqlx.Rows, error)

	// NamedExecContext executes a named query against the database and returns
	// the result.
	NamedExecContext(ctx context.Context, query string, args interface{}) (sql.Result, error)

	// QueryRowxContext queries the database and returns an *sqlx.Row.
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row

	// QueryxContext queries the database and returns an *sqlx.Rows.
	QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)

	// QueryContext queries the database and returns an *sql.Rows.
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)

	// ExecContext executes a query without returning any rows.
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

var _ Database = (*database)(nil)

type database struct {
	db     *sqlx.DB
	tracer trace.Tracer
	name   string
}

// NewDatabase creates a Database instance that traces every query.
func NewDatabase(db *sqlx.DB, cfg Config, tracer trace.Tracer) Database {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("postgres")
	}
	return &database{
		db:     db,
		tracer: tracer,
		name:   cfg.Name,
	}
}

func (d *database) NamedQueryContext(ctx context.Context, query string, args interface{}) (*sqlx.Rows, error) {
	ctx, span := d.startSpan(ctx, "sql_named_query", query)
	defer span.End()
	return d.db.NamedQueryContext(ctx, query, args)
}

func (d *database) NamedExecContext(ctx context.Context, query string, args interface{}) (sql.Result, error) {
	ctx, span := d.startSpan(ctx, "sql_named_exec", query)
	defer span.End()
	return d.db.NamedExecContext(ctx, query, args)
}

func (d *database) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	ctx, span := d.startSpan(ctx, "sql_query_row", query)
	defer span.End()
	return d.db.QueryRowxContext(ctx, query, args...)
}

func (d *database) QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error) {
	ctx, span := d.startSpan(ctx, "sql_query", query)
	defer span.End()
	return d.db.QueryxContext(ctx, query, args...)
}

func (d *database) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	ctx, span := d.startSpan(ctx, "sql_query", query)
	defer span.End()
	return d.db.QueryContext(ctx, query, args...)
}

func (d *database) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	ctx, span := d.startSpan(ctx, "sql_exec", query)
	defer span.End()
	return d.db.ExecContext(ctx, query, args...)
}

func (d *database) startSpan(ctx context.Context, op, query string) (context.Context, trace.Span) {
	return d.tracer.Start(ctx, fmt.Sprintf("%s %s", op, d.name),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.name", d.name),
			attribute.String("db.statement", query),
		),
	)
}
