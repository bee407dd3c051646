package repository

import "github.com/Masterminds/squirrel"

// psql builds queries with PostgreSQL $n placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var nowExpr = squirrel.Expr("now()")
