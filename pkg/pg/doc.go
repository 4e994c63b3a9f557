// Package pg connects to PostgreSQL and provides the database backed
// unique rule.
//
// # Usage
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	pg.Register(kit.Rules(), pool)
//
// A field can then use it like any other rule:
//
//	email: required|email|unique:users.email
//
// Identifiers are quoted with pgx.Identifier and the value is always passed
// as a query parameter.
//
// # Error Handling
//
// Connect wraps ErrEmptyConnectionString, ErrFailedToParseDBConfig or
// ErrFailedToOpenDBConnection. The unique rule aborts validation, rather than
// failing the field, with ErrInvalidUniqueTarget for a malformed argument
// and ErrUniqueCheckFailed when the query errors; callers see both through
// form.ValidateContext.
package pg
