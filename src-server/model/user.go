package model

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	ID          string `bun:"id,pk,notnull,unique" json:"id" yaml:"id"`
	Username    string `bun:"username,notnull" json:"username" yaml:"username"`
	ProfileName string `bun:"profile_name" json:"profileName,omitempty" yaml:"profile_name"`
}

func (u *User) Upsert(ctx context.Context, db bun.IDB) error {
	if u.ID == "" {
		return fmt.Errorf("user id is empty")
	}

	_, err := db.
		NewInsert().
		Model(u).
		On("CONFLICT (id) DO UPDATE").
		Set("username = EXCLUDED.username").
		Set("profile_name = EXCLUDED.profile_name").
		Exec(ctx)

	return err
}
