package game

type Phase int

const (
	PhaseReady Phase = iota
	PhaseLobby
	PhaseBeforeTurn
	PhasePreTurn
	PhasePlaying
	PhaseEndOfTurn
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseLobby:
		return "lobby"
	case PhaseBeforeTurn:
		return "beforeTurn"
	case PhasePreTurn:
		return "preTurn"
	case PhasePlaying:
		return "playing"
	case PhaseEndOfTurn:
		return "endOfTurn"
	}
	return "unknown"
}

type TeamLabel string

const (
	Team1 TeamLabel = "Team 1"
	Team2 TeamLabel = "Team 2"
)

type Participant struct {
	ID       string
	Username string
}

// TeamState is one side of the match. Members is frozen at game start,
// LastPlayed drives the round-robin drawer rotation.
type TeamState struct {
	Members    []string
	Points     int
	LastPlayed string
}

// PlayState is derived from the roster when the game starts. It is never
// recomputed mid-match.
type PlayState struct {
	Team1         TeamState
	Team2         TeamState
	CurrentTeam   TeamLabel
	CurrentPlayer string
	CurrentWord   string
}

// Session is the canonical state of one game. It is a value type: the reducer
// clones it before mutating, so a Session handed out as a snapshot never
// changes underneath the reader.
type Session struct {
	ID     string
	Phase  Phase
	Roster Roster
	Play   PlayState

	// Epoch increments on every phase change. A timeout event armed under an
	// older epoch is stale and must be ignored.
	Epoch int
}

func NewSession() Session {
	return Session{Phase: PhaseReady, Roster: NewRoster()}
}

func (s Session) Clone() Session {
	c := s
	c.Roster = s.Roster.Clone()
	c.Play.Team1.Members = append([]string(nil), s.Play.Team1.Members...)
	c.Play.Team2.Members = append([]string(nil), s.Play.Team2.Members...)
	return c
}

// activeTeam returns the TeamState currently drawing. Only valid once the
// match has started.
func (s *Session) activeTeam() *TeamState {
	if s.Play.CurrentTeam == Team2 {
		return &s.Play.Team2
	}
	return &s.Play.Team1
}
