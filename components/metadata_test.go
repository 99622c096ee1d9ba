package components

import "testing"

func checkDescriptors(t *testing.T, name string, fields []FieldDescriptor) {
	t.Helper()
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.ID == "" || f.Label == "" {
			t.Errorf("%s: descriptor %+v missing id or label", name, f)
		}
		if seen[f.ID] {
			t.Errorf("%s: duplicate descriptor id %q", name, f.ID)
		}
		seen[f.ID] = true
		if f.IsBar && f.Min >= f.Max {
			t.Errorf("%s: bar field %q has range [%v, %v]", name, f.ID, f.Min, f.Max)
		}
	}
}

func TestFieldDescriptorsConsistent(t *testing.T) {
	checkDescriptors(t, "strain", StrainFieldDescriptors())
	checkDescriptors(t, "batch", BatchFieldDescriptors())
}
