package agents

import "fmt"

// Identity names a being: First packs sex and first-name code,
// Family packs the two family-name codes. The zero Identity is empty.
type Identity struct {
	First  uint16 `json:"first"`
	Family uint16 `json:"family"`
}

// NewIdentity packs name codes into an Identity.
func NewIdentity(sex Sex, first, familyFirst, familySecond uint8) Identity {
	return Identity{
		First:  uint16(sex)<<8 | uint16(first),
		Family: uint16(familyFirst)<<8 | uint16(familySecond),
	}
}

// IsZero reports whether the identity is empty.
func (id Identity) IsZero() bool {
	return id.First == 0 && id.Family == 0
}

// Sex returns the sex encoded in the identity.
func (id Identity) Sex() Sex {
	return Sex(id.First >> 8)
}

// FirstName returns the first-name code.
func (id Identity) FirstName() uint8 {
	return uint8(id.First)
}

// FamilyFirst returns the first family-name component.
func (id Identity) FamilyFirst() uint8 {
	return uint8(id.Family >> 8)
}

// FamilySecond returns the second family-name component.
func (id Identity) FamilySecond() uint8 {
	return uint8(id.Family)
}

// SameFamily reports whether either family-name component is shared.
func (id Identity) SameFamily(o Identity) bool {
	return id.FamilyFirst() == o.FamilyFirst() || id.FamilySecond() == o.FamilySecond()
}

// Name renders the identity using the name tables.
func (id Identity) Name() string {
	if id.IsZero() {
		return ""
	}
	names := maleNames
	if id.Sex() == SexFemale {
		names = femaleNames
	}
	return fmt.Sprintf("%s %s-%s", pickName(names, id.FirstName()),
		pickName(familyNames, id.FamilyFirst()),
		pickName(familyNames, id.FamilySecond()))
}

// pickName maps a name code onto a pool. Codes that wrap around the pool
// get an ordinal so every code renders differently.
func pickName(pool []string, code uint8) string {
	name := pool[int(code)%len(pool)]
	if lap := int(code) / len(pool); lap > 0 {
		return name + " " + ordinals[lap]
	}
	return name
}

func (id Identity) String() string {
	return id.Name()
}
