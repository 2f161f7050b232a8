package entity

// RoomUsage is the tally parsed from the room-usage log
type RoomUsage struct {
	Counts         map[int]int `json:"counts"`
	TotalEntries   int         `json:"total_entries"`
	ValidEntries   int         `json:"valid_entries"`
	InvalidEntries []string    `json:"invalid_entries,omitempty"`
}

// NewRoomUsage returns an empty tally
func NewRoomUsage() *RoomUsage {
	return &RoomUsage{Counts: make(map[int]int)}
}

// Count returns how many discharges were logged for room
func (u *RoomUsage) Count(room int) int {
	if u == nil {
		return 0
	}
	return u.Counts[room]
}
