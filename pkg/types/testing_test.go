package types

import "github.com/google/uuid"

func mustUUID(value string) uuid.UUID {
	return uuid.MustParse(value)
}
