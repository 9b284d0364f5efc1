package entity

type Group struct {
	Base
	Name string `db:"name"`
}
