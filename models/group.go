package models

import "time"

type Group struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	IsPublic  bool      `json:"is_public"`
	CreatedBy int       `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`

	MemberCount int    `json:"member_count,omitempty"`
	Members     []User `json:"members,omitempty"`
}
