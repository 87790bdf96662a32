package model

import "github.com/uptrace/bun"

type Location struct {
	bun.BaseModel `bun:"table:locations"`

	ID         string `bun:"id,pk" json:"id" yaml:"id"`                // required
	Name       string `bun:"name,notnull" json:"name" yaml:"name"`     // required
	Street     string `bun:"street" json:"street,omitempty" yaml:"street"`
	City       string `bun:"city" json:"city,omitempty" yaml:"city"`
	PostalCode string `bun:"postal_code" json:"postalCode,omitempty" yaml:"postal_code"`
	Country    string `bun:"country" json:"country,omitempty" yaml:"country"`
}
