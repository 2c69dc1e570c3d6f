package core

// Energy is the spendable resource used to play cards and pay ability costs.
// Values are never negative.
type Energy int

// Spark is a character's contribution to its controller's judgment total.
type Spark int

// Points is the victory-tracking resource. The first player to reach the
// battle's point target wins.
type Points int

// PlayerName names one of the two players in a battle.
type PlayerName int

const (
	PlayerOne PlayerName = iota
	PlayerTwo
)

// Opponent returns the other player.
func (p PlayerName) Opponent() PlayerName {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

func (p PlayerName) String() string {
	if p == PlayerOne {
		return "PLAYER_ONE"
	}
	return "PLAYER_TWO"
}
