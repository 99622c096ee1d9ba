package components

// FieldDescriptor describes a component field for UI display. The core
// never renders; the external UI collaborator consumes these.
type FieldDescriptor struct {
	ID           string  // Unique identifier
	Label        string  // Display name
	Format       string  // Printf format (e.g., "%d")
	Min          float32 // Minimum value (for bars)
	Max          float32 // Maximum value (for bars)
	IsBar        bool    // True to render as progress bar
	ShowWhenZero bool    // Show even when value is zero
	Group        string  // Logical grouping
}

// StrainFieldDescriptors returns metadata for Strain fields. Stats are only
// meaningful once the strain is proven.
func StrainFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "name", Label: "Name", Group: "identity", ShowWhenZero: true},
		{ID: "generation", Label: "Gen", Format: "%d", Group: "identity", ShowWhenZero: true},
		{ID: "potency", Label: "Potency", Format: "%d", Min: 1, Max: 100, IsBar: true, Group: "stats"},
		{ID: "yield", Label: "Yield", Format: "%d", Min: 1, Max: 100, IsBar: true, Group: "stats"},
		{ID: "speed", Label: "Speed", Format: "%d", Min: 1, Max: 100, IsBar: true, Group: "stats"},
		{ID: "stability", Label: "Stability", Format: "%d", Min: 0, Max: 100, IsBar: true, Group: "stats"},
		{ID: "times_grown", Label: "Grows", Format: "%d", Group: "history"},
		{ID: "on_hand_standard", Label: "Standard", Format: "%dg", Group: "inventory", ShowWhenZero: true},
		{ID: "on_hand_artisanal", Label: "Artisanal", Format: "%dg", Group: "inventory", ShowWhenZero: true},
	}
}

// BatchFieldDescriptors returns metadata for Batch fields.
func BatchFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "strain", Label: "Strain", Group: "identity", ShowWhenZero: true},
		{ID: "amount", Label: "Amount", Format: "%dg", Group: "stats", ShowWhenZero: true},
		{ID: "status", Label: "Status", Group: "stats", ShowWhenZero: true},
		{ID: "remaining", Label: "Seasons Left", Format: "%d", Group: "stats"},
	}
}
