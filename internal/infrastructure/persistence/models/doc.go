// Package models contains GORM persistence models. They stay separate from
// domain types so the domain package carries no ORM tags.
package models
