// Package query composes GORM clause expressions into nil-tolerant filters,
// orderings and paging scopes.
//
// Every constructor returns a clause.Expression. Where and the boolean helpers
// skip nil operands, so optional filters can be written as functions that
// return nil when their input is absent.
package query

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Col references column name of table.
func Col(table, name string) clause.Column {
	return clause.Column{Table: table, Name: name}
}

// Eq renders col = value. A nil value renders IS NULL.
func Eq(col clause.Column, value interface{}) clause.Expression {
	return clause.Eq{Column: col, Value: value}
}

// Ne renders col <> value.
func Ne(col clause.Column, value interface{}) clause.Expression {
	return clause.Neq{Column: col, Value: value}
}

// Gt renders col > value.
func Gt(col clause.Column, value interface{}) clause.Expression {
	return clause.Gt{Column: col, Value: value}
}

// Gte renders col >= value.
func Gte(col clause.Column, value interface{}) clause.Expression {
	return clause.Gte{Column: col, Value: value}
}

// Lt renders col < value.
func Lt(col clause.Column, value interface{}) clause.Expression {
	return clause.Lt{Column: col, Value: value}
}

// Lte renders col <= value.
func Lte(col clause.Column, value interface{}) clause.Expression {
	return clause.Lte{Column: col, Value: value}
}

// Between renders col BETWEEN low AND high, bounds included.
func Between(col clause.Column, low, high interface{}) clause.Expression {
	return clause.Expr{SQL: "? BETWEEN ? AND ?", Vars: []interface{}{col, low, high}}
}

// In renders col IN (values...).
func In(col clause.Column, values ...interface{}) clause.Expression {
	return clause.Expr{SQL: "? IN ?", Vars: []interface{}{col, values}}
}

// NotIn renders col NOT IN (values...).
func NotIn(col clause.Column, values ...interface{}) clause.Expression {
	return clause.Expr{SQL: "? NOT IN ?", Vars: []interface{}{col, values}}
}

// InSub renders col IN (subquery).
func InSub(col clause.Column, sub *gorm.DB) clause.Expression {
	return clause.Expr{SQL: "? IN (?)", Vars: []interface{}{col, sub}}
}

// Sub wraps a query so it can be compared against as a scalar.
func Sub(sub *gorm.DB) clause.Expression {
	return clause.Expr{SQL: "(?)", Vars: []interface{}{sub}}
}

// Like renders col LIKE pattern.
func Like(col clause.Column, pattern string) clause.Expression {
	return clause.Like{Column: col, Value: pattern}
}

// Contains matches values containing s.
func Contains(col clause.Column, s string) clause.Expression {
	return Like(col, "%"+s+"%")
}

// StartsWith matches values beginning with s.
func StartsWith(col clause.Column, s string) clause.Expression {
	return Like(col, s+"%")
}

// IsNull renders col IS NULL.
func IsNull(col clause.Column) clause.Expression {
	return clause.Expr{SQL: "? IS NULL", Vars: []interface{}{col}}
}

// IsNotNull renders col IS NOT NULL.
func IsNotNull(col clause.Column) clause.Expression {
	return clause.Expr{SQL: "? IS NOT NULL", Vars: []interface{}{col}}
}

// Lower renders LOWER(col).
func Lower(col clause.Column) clause.Expression {
	return clause.Expr{SQL: "LOWER(?)", Vars: []interface{}{col}}
}

// Not negates expr. A nil expr stays nil.
func Not(expr clause.Expression) clause.Expression {
	if expr == nil {
		return nil
	}
	return clause.Not(expr)
}

// And joins the non-nil exprs with AND. It returns nil when none remain.
func And(exprs ...clause.Expression) clause.Expression {
	conds := compact(exprs)
	switch len(conds) {
	case 0:
		return nil
	case 1:
		return conds[0]
	default:
		return clause.And(conds...)
	}
}

// Or joins the non-nil exprs with OR. It returns nil when none remain.
func Or(exprs ...clause.Expression) clause.Expression {
	conds := compact(exprs)
	switch len(conds) {
	case 0:
		return nil
	case 1:
		return conds[0]
	default:
		return clause.Or(conds...)
	}
}

// Where applies the non-nil exprs as AND-ed conditions.
func Where(exprs ...clause.Expression) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		conds := compact(exprs)
		if len(conds) == 0 {
			return db
		}
		return db.Clauses(clause.Where{Exprs: conds})
	}
}

func compact(exprs []clause.Expression) []clause.Expression {
	conds := make([]clause.Expression, 0, len(exprs))
	for _, expr := range exprs {
		if expr != nil {
			conds = append(conds, expr)
		}
	}
	return conds
}
