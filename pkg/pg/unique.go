package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/formkit/pkg/rule"
)

// UniqueRule is the rule name registered by Register.
const UniqueRule = "unique"

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Register defines the unique rule on reg. The rule takes "table.column"
// (optionally "schema.table.column") and fails when a row already holds the
// value. Query errors abort validation.
func Register(reg *rule.Registry, db Querier) {
	reg.Define(UniqueRule, Unique(db))
}

// Unique returns the unique predicate bound to db.
func Unique(db Querier) rule.Func {
	return func(in rule.Input) rule.Result {
		query, err := uniqueQuery(in.Arg(0, ""))
		if err != nil {
			return rule.Abort(err)
		}

		var exists bool
		if err := db.QueryRow(in.Context(), query, in.String()).Scan(&exists); err != nil {
			return rule.Abort(errors.Join(ErrUniqueCheckFailed, err))
		}
		return rule.Check(!exists)
	}
}

func uniqueQuery(target string) (string, error) {
	parts := strings.Split(target, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return "", fmt.Errorf("%w: got %q", ErrInvalidUniqueTarget, target)
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return "", fmt.Errorf("%w: got %q", ErrInvalidUniqueTarget, target)
		}
	}

	table := pgx.Identifier(parts[:len(parts)-1]).Sanitize()
	column := pgx.Identifier{parts[len(parts)-1]}.Sanitize()
	return fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)", table, column), nil
}
