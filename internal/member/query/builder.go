package query

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Builder accumulates a boolean condition step by step.
// The zero value is an empty condition that matches every row.
type Builder struct {
	expr clause.Expression
}

// NewBuilder creates a builder seeded with the non-nil exprs AND-ed together.
func NewBuilder(exprs ...clause.Expression) *Builder {
	return &Builder{expr: And(exprs...)}
}

// And appends expr with AND. A nil expr is ignored.
func (b *Builder) And(expr clause.Expression) *Builder {
	b.expr = And(b.expr, expr)
	return b
}

// Or appends expr with OR. A nil expr is ignored.
func (b *Builder) Or(expr clause.Expression) *Builder {
	b.expr = Or(b.expr, expr)
	return b
}

// HasValue reports whether any condition has been added.
func (b *Builder) HasValue() bool {
	return b.expr != nil
}

// Expression returns the accumulated condition, or nil when empty.
func (b *Builder) Expression() clause.Expression {
	return b.expr
}

// Scope applies the accumulated condition to a query.
func (b *Builder) Scope() func(*gorm.DB) *gorm.DB {
	return Where(b.expr)
}
