package game

// Roster tracks who is in the session and which team they picked. Participants
// never leave once joined; a team change overwrites the previous label.
type Roster struct {
	players []Participant
	byID    map[string]int
	labels  map[string]TeamLabel
	// ids in first-assignment order, so MembersOf stays stable across
	// reassignments.
	assigned []string
}

func NewRoster() Roster {
	return Roster{
		byID:   make(map[string]int),
		labels: make(map[string]TeamLabel),
	}
}

// AddPlayer registers a participant, unassigned. Joining twice with the same
// id is a no-op; the first username wins.
func (r *Roster) AddPlayer(p Participant) {
	if _, exists := r.byID[p.ID]; exists {
		return
	}
	r.byID[p.ID] = len(r.players)
	r.players = append(r.players, p)
}

// Assign sets a participant's team label, overwriting any previous one.
func (r *Roster) Assign(id string, team TeamLabel) {
	if _, assignedBefore := r.labels[id]; !assignedBefore {
		r.assigned = append(r.assigned, id)
	}
	r.labels[id] = team
}

// MembersOf returns the ids currently carrying the given label, ordered by
// first assignment.
func (r *Roster) MembersOf(team TeamLabel) []string {
	members := []string{}
	for _, id := range r.assigned {
		if r.labels[id] == team {
			members = append(members, id)
		}
	}
	return members
}

// IsBalanced reports whether both teams have at least one member.
func (r *Roster) IsBalanced() bool {
	return len(r.MembersOf(Team1)) > 0 && len(r.MembersOf(Team2)) > 0
}

func (r *Roster) Players() []Participant {
	return r.players
}

func (r *Roster) Username(id string) string {
	if i, ok := r.byID[id]; ok {
		return r.players[i].Username
	}
	return ""
}

func (r Roster) Clone() Roster {
	c := NewRoster()
	c.players = append([]Participant(nil), r.players...)
	c.assigned = append([]string(nil), r.assigned...)
	for id, i := range r.byID {
		c.byID[id] = i
	}
	for id, label := range r.labels {
		c.labels[id] = label
	}
	return c
}
