package query

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Order is one ORDER BY term.
type Order struct {
	Column    clause.Column
	Desc      bool
	NullsLast bool
}

// Asc orders col ascending.
func Asc(col clause.Column) Order {
	return Order{Column: col}
}

// Desc orders col descending.
func Desc(col clause.Column) Order {
	return Order{Column: col, Desc: true}
}

// AscNullsLast orders col ascending with NULLs after every value.
func AscNullsLast(col clause.Column) Order {
	return Order{Column: col, NullsLast: true}
}

// DescNullsLast orders col descending with NULLs after every value.
func DescNullsLast(col clause.Column) Order {
	return Order{Column: col, Desc: true, NullsLast: true}
}

// columns renders NULLS LAST as a leading "col IS NULL" key, which sorts
// false before true on both PostgreSQL and SQLite.
func (o Order) columns() []clause.OrderByColumn {
	term := clause.OrderByColumn{Column: o.Column, Desc: o.Desc}
	if !o.NullsLast {
		return []clause.OrderByColumn{term}
	}
	isNull := clause.OrderByColumn{Column: clause.Column{Name: qualified(o.Column) + " IS NULL", Raw: true}}
	return []clause.OrderByColumn{isNull, term}
}

// OrderBy applies orders in sequence.
func OrderBy(orders ...Order) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		columns := make([]clause.OrderByColumn, 0, len(orders)*2)
		for _, o := range orders {
			columns = append(columns, o.columns()...)
		}
		if len(columns) == 0 {
			return db
		}
		return db.Clauses(clause.OrderBy{Columns: columns})
	}
}

// Paginate skips offset rows and returns at most limit rows.
// A non-positive limit leaves the query unbounded.
func Paginate(offset, limit int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if offset > 0 {
			db = db.Offset(offset)
		}
		if limit > 0 {
			db = db.Limit(limit)
		}
		return db
	}
}

func qualified(col clause.Column) string {
	if col.Table == "" {
		return col.Name
	}
	return col.Table + "." + col.Name
}
