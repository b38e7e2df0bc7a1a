package domain

import "time"

type StaffRole string

const (
	StaffRoleAdmin    StaffRole = "admin"
	StaffRoleDirector StaffRole = "director"
)

type StaffMember struct {
	ID           int64
	Username     string
	Role         StaffRole
	PasswordHash string
	CreatedAt    time.Time
}
