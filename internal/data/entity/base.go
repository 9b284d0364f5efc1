package entity

// Base carries the auto-incrementing primary key every stored record has.
type Base struct {
	ID int64 `db:"id"`
}
