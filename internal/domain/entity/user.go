package entity

import "time"

// User conta do sistema; partição de todos os dados fiscais.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt
	Name         string
	Email        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
