package entity

import (
	"time"
)

// User is the aggregate root for the identity domain. There is no
// password field: accounts are claimed by username alone.
//
// Users are created at registration and never updated or deleted.
type User struct {
	ID          string
	Username    string
	AvatarURL   string
	MemberSince time.Time
}
