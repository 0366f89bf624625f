package model

import "github.com/google/uuid"

// MeterIndex is an old/new index pair of one utility meter
type MeterIndex struct {
	OldIndex int64 `json:"old_index"`
	NewIndex int64 `json:"new_index"`
}

// Usage is the consumed amount between the two readings.
func (m MeterIndex) Usage() int64 {
	return m.NewIndex - m.OldIndex
}

// MeterReading holds the readings of one room for a billing run.
// Either meter may be omitted.
type MeterReading struct {
	RoomID      uuid.UUID   `json:"room_id" binding:"required"`
	Electricity *MeterIndex `json:"electricity"`
	Water       *MeterIndex `json:"water"`
}
