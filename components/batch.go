package components

// BatchStatus is the curing state of a harvested batch.
type BatchStatus uint8

const (
	BatchFresh BatchStatus = iota
	BatchCuring
	BatchDeepCuring
	BatchFinished
	BatchDestroyed
)

// String returns the display name for a batch status.
func (s BatchStatus) String() string {
	names := []string{"Fresh", "Curing", "Deep Curing", "Finished", "Destroyed"}
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// Terminal reports whether the status ends the batch's lifecycle. Terminal
// batches must be purged from the world in the same step that produced the
// status.
func (s BatchStatus) Terminal() bool {
	return s == BatchFinished || s == BatchDestroyed
}

// Batch is a harvested quantity in transit to sellable inventory.
type Batch struct {
	ID         uint32
	StrainID   uint32
	StrainName string
	Amount     int // mass units
	Season     int // season harvested
	Status     BatchStatus
	Remaining  int // season ticks left in the current curing stage
}

// Grade is a quality tier for sale pricing.
type Grade uint8

const (
	GradeFresh Grade = iota
	GradeStandard
	GradeArtisanal
)

// String returns the display name for a grade.
func (g Grade) String() string {
	names := []string{"Fresh", "Standard", "Artisanal"}
	if int(g) < len(names) {
		return names[g]
	}
	return "Unknown"
}
