package model

import (
	"github.com/google/uuid"
)

// assignID fills a zero primary key before insert so rows get an id on every
// dialect, not only on postgres where gen_random_uuid() is available.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
