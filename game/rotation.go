package game

// nextTeam is a strict toggle, independent of score or team size. The zero
// value maps to Team 1 so the first turn always goes to them.
func nextTeam(current TeamLabel) TeamLabel {
	if current == Team1 {
		return Team2
	}
	return Team1
}

// nextDrawer walks the member list round-robin: the entry after lastPlayed,
// wrapping at the end. An empty or unknown lastPlayed starts at position 0.
func nextDrawer(members []string, lastPlayed string) string {
	if len(members) == 0 {
		return ""
	}
	for i, id := range members {
		if id == lastPlayed {
			return members[(i+1)%len(members)]
		}
	}
	return members[0]
}
