package model

import (
	"github.com/google/uuid"
)

// linkID derives the id of a link row from the ids it joins, so linking the
// same pair twice yields the same row.
func linkID(eventID, otherID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(eventID+"/"+otherID)).String()
}
