package user

import "time"

type User struct {
	ID           string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// Partition is the row-store bucket holding one row per registered user.
const Partition = "Users"

// Cell positions within a Users row.
const (
	ColID = iota
	ColName
	ColPassword
	ColCreated
	ColLastLogin
)

var PartitionHeader = []string{"ID", "Name", "Password", "Created", "LastLogin"}
