package social

import (
	"fmt"
	"strings"

	"github.com/talgya/troop/internal/agents"
)

// ListKind selects which relationships a listing shows.
type ListKind uint8

const (
	ListFriends ListKind = iota // sentiment at or above the mean
	ListEnemies                 // sentiment below the mean
	ListMates                   // any attraction
)

var listKindNames = [...]string{"friends", "enemies", "mates"}

func (k ListKind) String() string {
	if int(k) < len(listKindNames) {
		return listKindNames[k]
	}
	return fmt.Sprintf("ListKind(%d)", k)
}

// ParseListKind parses friends, enemies or mates.
func ParseListKind(s string) (ListKind, error) {
	for i, name := range listKindNames {
		if strings.EqualFold(s, name) {
			return ListKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown listing %q (want friends, enemies or mates)", s)
}

// Entry is one line of a relationship listing.
type Entry struct {
	Slot         int                 `json:"slot"`
	Name         string              `json:"name"`
	Familiarity  uint16              `json:"familiarity"`
	FriendFoe    uint8               `json:"friend_foe"`
	Attraction   uint8               `json:"attraction"`
	Relationship agents.Relationship `json:"relationship"`
	Of           string              `json:"of,omitempty"` // whose family, for hearsay kin
	Attending    bool                `json:"attending"`
}

// Friends lists b's relationships of the given kind. It never mutates b.
func (s *Society) Friends(b *agents.Being, kind ListKind) []Entry {
	g := b.Social
	if !g.Allocated() {
		return nil
	}
	mean := s.MeanSentiment(b)
	var out []Entry
	for i := 1; i < g.Len(); i++ {
		l := g.Link(i)
		if l.IsEmpty() {
			continue
		}
		switch kind {
		case ListFriends:
			if l.FriendFoe < mean {
				continue
			}
		case ListEnemies:
			if l.FriendFoe >= mean {
				continue
			}
		case ListMates:
			if l.Attraction == 0 {
				continue
			}
		}
		e := Entry{
			Slot:         i,
			Name:         l.Met.Name(),
			Familiarity:  l.Familiarity,
			FriendFoe:    l.FriendFoe,
			Attraction:   l.Attraction,
			Relationship: l.Relationship,
			Attending:    int(b.Attention[agents.AttentionActor]) == i,
		}
		if l.Relationship > agents.RelationshipSelf && !l.Relationship.IsFamily() {
			e.Of = l.Meeter.Name()
		}
		out = append(out, e)
	}
	return out
}

// FormatEntries renders entries one per line, familiarity first, with the
// attended being in brackets.
func FormatEntries(entries []Entry) string {
	var sb strings.Builder
	for _, e := range entries {
		rel := ""
		if e.Relationship > agents.RelationshipSelf {
			if e.Of != "" {
				rel = fmt.Sprintf(" (%s of %s)", e.Relationship, e.Of)
			} else {
				rel = fmt.Sprintf(" (%s)", e.Relationship)
			}
		}
		if e.Attending {
			fmt.Fprintf(&sb, "  %05d [%s]%s\n", e.Familiarity, e.Name, rel)
		} else {
			fmt.Fprintf(&sb, "  %05d  %s%s\n", e.Familiarity, e.Name, rel)
		}
	}
	return sb.String()
}
