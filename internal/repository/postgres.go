package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"roarrealty/internal/model"
	"roarrealty/internal/query"
	"roarrealty/internal/retry"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

var dialect = goqu.Dialect("postgres")

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository opens a pool and waits for the database to answer
func NewPostgresRepository(ctx context.Context, dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	err = retry.Do(ctx, retry.DefaultConfig(), "postgres", func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return db.PingContext(pingCtx)
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Msg("connected to PostgreSQL")
	return &PostgresRepository{db: db}, nil
}

// NewPostgresRepositoryWithDB wraps an existing handle
func NewPostgresRepositoryWithDB(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// SearchProperties translates expr into a single SELECT over the properties table
func (r *PostgresRepository) SearchProperties(ctx context.Context, expr query.Expression) ([]model.PropertySummary, error) {
	sqlStr, args, err := buildSearchSQL(expr)
	if err != nil {
		return nil, fmt.Errorf("failed to build search query: %w", err)
	}

	var properties []model.PropertySummary
	if err := r.db.SelectContext(ctx, &properties, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}
	return properties, nil
}

func buildSearchSQL(expr query.Expression) (string, []interface{}, error) {
	cols := make([]interface{}, len(model.SummaryColumns))
	for i, c := range model.SummaryColumns {
		cols[i] = goqu.I(c)
	}

	where := make([]exp.Expression, 0, len(expr.Predicates))
	for _, p := range expr.Predicates {
		e, err := predicateSQL(p)
		if err != nil {
			return "", nil, err
		}
		where = append(where, e)
	}

	order := make([]exp.OrderedExpression, 0, len(expr.Sort))
	for _, o := range expr.Sort {
		col := goqu.I(string(o.Field))
		if o.Descending {
			order = append(order, col.Desc().NullsLast())
		} else {
			order = append(order, col.Asc().NullsLast())
		}
	}

	ds := dialect.From(propertiesTable).Select(cols...)
	if len(where) > 0 {
		ds = ds.Where(where...)
	}
	if len(order) > 0 {
		ds = ds.Order(order...)
	}
	if expr.Limit > 0 {
		ds = ds.Limit(uint(expr.Limit))
	}

	return ds.Prepared(true).ToSQL()
}

func predicateSQL(p query.Predicate) (exp.Expression, error) {
	switch v := p.(type) {
	case query.Pattern:
		return goqu.I(string(v.Field)).ILike(likePattern(v.Value)), nil
	case query.Equals:
		return goqu.I(string(v.Field)).Eq(v.Value), nil
	case query.PriceOverlap:
		var conds []exp.Expression
		if v.Max != nil {
			conds = append(conds, goqu.I(string(query.FieldMinPrice)).Lte(*v.Max))
		}
		if v.Min != nil {
			conds = append(conds, goqu.I(string(query.FieldMaxPrice)).Gte(*v.Min))
		}
		return goqu.And(conds...), nil
	case query.ContainsAll:
		var conds []exp.Expression
		for _, val := range v.Values {
			conds = append(conds, goqu.L(
				fmt.Sprintf("EXISTS (SELECT 1 FROM jsonb_array_elements_text(%s) AS elem WHERE elem ILIKE ?)", quoteIdent(string(v.Field))),
				likePattern(val),
			))
		}
		return goqu.And(conds...), nil
	}
	return nil, fmt.Errorf("unsupported predicate %T", p)
}

// likePattern wraps s for a substring ILIKE, matching wildcards literally
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// FilterOptions aggregates the distinct non-null values of each filter field
func (r *PostgresRepository) FilterOptions(ctx context.Context) (*model.FilterOptions, error) {
	opts := &model.FilterOptions{}

	textFields := []struct {
		column string
		dest   *[]string
	}{
		{string(query.FieldArea), &opts.Areas},
		{string(query.FieldDeveloper), &opts.Developers},
		{string(query.FieldPropertyType), &opts.PropertyTypes},
		{string(query.FieldStatus), &opts.Statuses},
	}
	for _, f := range textFields {
		values, err := r.distinctText(ctx, f.column)
		if err != nil {
			return nil, err
		}
		*f.dest = values
	}

	bedrooms, err := r.distinctBedrooms(ctx)
	if err != nil {
		return nil, err
	}
	opts.BedroomOptions = bedrooms

	return opts, nil
}

func (r *PostgresRepository) distinctText(ctx context.Context, column string) ([]string, error) {
	sqlStr, args, err := dialect.From(propertiesTable).
		Select(goqu.I(column)).
		Distinct().
		Where(goqu.I(column).IsNotNull(), goqu.I(column).Neq("")).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build distinct %s query: %w", column, err)
	}

	values := []string{}
	if err := r.db.SelectContext(ctx, &values, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch distinct %s: %w", column, err)
	}
	sort.Strings(values)
	return values, nil
}

func (r *PostgresRepository) distinctBedrooms(ctx context.Context) ([]int, error) {
	sqlStr, args, err := dialect.From(propertiesTable).
		Select(goqu.I(string(query.FieldBedrooms))).
		Distinct().
		Where(goqu.I(string(query.FieldBedrooms)).IsNotNull()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build distinct bedrooms query: %w", err)
	}

	values := []int{}
	if err := r.db.SelectContext(ctx, &values, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch distinct bedrooms: %w", err)
	}
	sort.Ints(values)
	return values, nil
}

// LogChatSearch logs a search query
func (r *PostgresRepository) LogChatSearch(ctx context.Context, entry *model.ChatSearchLog) error {
	filters, err := json.Marshal(entry.Filters)
	if err != nil {
		return fmt.Errorf("failed to encode filters: %w", err)
	}

	sqlStr, args, err := dialect.Insert(searchLogsTable).
		Rows(goqu.Record{
			"id":               entry.ID,
			"query":            entry.Query,
			"intent":           string(entry.Intent),
			"filters":          string(filters),
			"result_count":     entry.ResultCount,
			"response_time_ms": entry.ResponseTimeMs,
		}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build search log insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("failed to log search: %w", err)
	}
	return nil
}
