// Package model provides the hello entity.
package model

// Hello is a schema smoke-test entity with nothing but an id.
type Hello struct {
	ID uint `gorm:"primaryKey;column:id" json:"id"`
}

// TableName specifies the table name for GORM.
func (Hello) TableName() string {
	return "hello"
}
