package components

// Room is one facility production slot. A room holds at most one active
// assignment; running the facility clears occupied rooms back to empty and
// replaces them with freshly harvested batches.
type Room struct {
	ID       uint32
	StrainID uint32 // 0 = empty
	Occupied bool

	// Cultivation configuration, keys into the config substrate/nutrient
	// tables. Empty strings mean facility defaults.
	Substrate string
	Nutrients string
}

// Clear empties the room.
func (r *Room) Clear() {
	r.StrainID = 0
	r.Occupied = false
}

// Assign puts a strain into the room.
func (r *Room) Assign(strainID uint32) {
	r.StrainID = strainID
	r.Occupied = true
}
