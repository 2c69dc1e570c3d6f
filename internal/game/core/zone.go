package core

import "fmt"

// Zone is one of the fixed locations a card can occupy. A card is in exactly
// one zone at any instant.
type Zone int

const (
	ZoneDeck Zone = iota
	ZoneHand
	ZoneBattlefield
	ZoneStack
	ZoneVoid
	ZoneBanished
)

var zoneNames = map[Zone]string{
	ZoneDeck:        "DECK",
	ZoneHand:        "HAND",
	ZoneBattlefield: "BATTLEFIELD",
	ZoneStack:       "STACK",
	ZoneVoid:        "VOID",
	ZoneBanished:    "BANISHED",
}

func (z Zone) String() string {
	if name, ok := zoneNames[z]; ok {
		return name
	}
	return fmt.Sprintf("ZONE_%d", int(z))
}

// Zones lists every zone in a fixed order, for exhaustive iteration.
func Zones() []Zone {
	return []Zone{ZoneDeck, ZoneHand, ZoneBattlefield, ZoneStack, ZoneVoid, ZoneBanished}
}
