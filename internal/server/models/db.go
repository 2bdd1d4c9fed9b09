// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. Email is stored lower-cased.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// ShoppingList belongs to exactly one user. Name is normalized
// (trimmed, lower-cased) and unique per owner.
type ShoppingList struct {
	ID         int64
	UserID     int64
	Name       string
	NotifyDate time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Item belongs to exactly one shopping list. Name is normalized and unique
// per list. Price and Quantity are kept as the client sent them.
type Item struct {
	ID             int64
	ShoppingListID int64
	Name           string
	Price          string
	Quantity       string
	Purchased      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RevokedToken permanently invalidates one exact token string.
type RevokedToken struct {
	ID        int64
	Token     string
	RevokedAt time.Time
}
