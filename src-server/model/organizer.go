package model

import "github.com/uptrace/bun"

type Organizer struct {
	bun.BaseModel `bun:"table:organizers"`

	ID    string `bun:"id,pk" json:"id" yaml:"id"`            // required
	Name  string `bun:"name,notnull" json:"name" yaml:"name"` // required
	Email string `bun:"email" json:"email,omitempty" yaml:"email"`
	Phone string `bun:"phone" json:"phone,omitempty" yaml:"phone"`
}
