package agents

// Name pools indexed by identity name codes.
var maleNames = []string{
	"Aldric", "Bram", "Cedric", "Doran", "Erik", "Finn", "Gareth",
	"Halvard", "Ivan", "Jasper", "Kael", "Leif", "Magnus", "Nils",
	"Oswin", "Per", "Quinn", "Rowan", "Stellan", "Theron", "Ulric",
	"Varen", "Wren", "Yorick", "Zander", "Arlen", "Beric", "Cade",
	"Dorian", "Edric", "Falk", "Gunnar", "Hugo", "Ivar", "Jorik",
}

var femaleNames = []string{
	"Astrid", "Brenna", "Calla", "Daria", "Elara", "Freya", "Greta",
	"Helene", "Iris", "Juno", "Kira", "Lena", "Mira", "Nessa",
	"Olwen", "Petra", "Runa", "Senna", "Thea", "Una", "Vera",
	"Willa", "Yara", "Zara", "Ava", "Birgit", "Cora", "Dagny",
	"Eira", "Fern", "Gwen", "Hilde", "Inga", "Johanna", "Katla",
}

var familyNames = []string{
	"Voss", "Thornwood", "Blackwood", "Ashford", "Ironhand", "Dunmore",
	"Greenvale", "Stormcrow", "Frostborn", "Hearthstone", "Millward",
	"Copperfield", "Ravenmoor", "Silverdale", "Wolfsbane", "Stoneheart",
	"Deepwell", "Brightwater", "Oakenshield", "Redforge", "Windholm",
	"Marshwood", "Goldhaven", "Nightingale", "Riverstone", "Steelworth",
	"Embercroft", "Holloway", "Dawnridge", "Farrow", "Wyatt", "Thatcher",
	"Briar", "Caldwell", "Frost", "Harper", "Mercer", "Ward", "Cross",
}

// ordinals tell apart codes that share a pool entry. The smallest pool has
// 35 names, so a byte-sized code wraps at most seven times.
var ordinals = [...]string{"", "II", "III", "IV", "V", "VI", "VII", "VIII"}

var relationshipNames = [...]string{
	RelationshipNone:                "",
	RelationshipSelf:                "Self",
	RelationshipMother:              "Mother",
	RelationshipFather:              "Father",
	RelationshipDaughter:            "Daughter",
	RelationshipSon:                 "Son",
	RelationshipGranddaughter:       "Granddaughter",
	RelationshipGrandson:            "Grandson",
	RelationshipSister:              "Sister",
	RelationshipBrother:             "Brother",
	RelationshipMaternalGrandmother: "Maternal Grandmother",
	RelationshipMaternalGrandfather: "Maternal Grandfather",
	RelationshipPaternalGrandmother: "Paternal Grandmother",
	RelationshipPaternalGrandfather: "Paternal Grandfather",
}

// String names the relationship kind. Other* kinds share the name of the
// corresponding own-family kind.
func (r Relationship) String() string {
	if r >= OtherMother {
		r -= OtherMother - RelationshipMother
	}
	if int(r) < len(relationshipNames) {
		return relationshipNames[r]
	}
	return "Unknown"
}
