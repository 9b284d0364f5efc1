package entity

import (
	"time"
)

type Movie struct {
	Base
	Title         string    `db:"title"`
	PublishedDate time.Time `db:"published_date"`
	Director      string    `db:"director"`
	UserScore     float64   `db:"user_score"`
}
