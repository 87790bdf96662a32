package model

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
)

// Models lists every table in creation order.
var Models = []interface{}{
	(*Location)(nil),
	(*Organizer)(nil),
	(*Event)(nil),
	(*Speaker)(nil),
	(*EventSpeaker)(nil),
	(*Attendee)(nil),
	(*EventAttendee)(nil),
	(*User)(nil),
}

func CreateSchema(ctx context.Context, db *bun.DB) error {
	if err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, model := range Models {
			if _, err := tx.
				NewCreateTable().
				Model(model).
				IfNotExists().
				Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("CreateSchema: %w", err)
	}

	return nil
}
