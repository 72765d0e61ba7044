package game

// Rejection reasons sent back to the submitting client. Everyone else sees
// nothing when a guard fails.
const (
	ReasonBadPhase        = "event-not-allowed-in-phase"
	ReasonUnbalancedTeams = "players-from-both-teams-required"
)

// Reducer is the game state machine: Reduce maps the current session and one
// event to the next session plus the outbound events it produced. It never
// mutates its input and has no side effects, so a full game is just a fold
// over the event sequence.
type Reducer struct {
	words WordPicker
}

func NewReducer(words WordPicker) *Reducer {
	return &Reducer{words: words}
}

func (r *Reducer) Reduce(s Session, ev Event) (Session, []Outbound) {
	if ev.Type == EventTimeout && ev.Epoch != s.Epoch {
		// Stale timer from a phase we already left.
		return s, nil
	}

	switch s.Phase {
	case PhaseReady:
		if ev.Type == EventCreateGame {
			return r.createGame(s, ev)
		}
	case PhaseLobby:
		switch ev.Type {
		case EventPlayerJoin:
			return r.playerJoin(s, ev)
		case EventChangeTeam:
			return r.changeTeam(s, ev)
		case EventStartGame:
			return r.startGame(s, ev)
		}
	case PhaseBeforeTurn:
		if ev.Type == EventStartTurn {
			return r.startTurn(s)
		}
	case PhasePreTurn:
		if ev.Type == EventTimeout {
			next := s.Clone()
			next.setPhase(PhasePlaying)
			return next, []Outbound{broadcast(makePhaseAnnouncement(EventTurn))}
		}
	case PhasePlaying:
		if ev.Type == EventTimeout {
			next := s.Clone()
			next.setPhase(PhaseEndOfTurn)
			return next, []Outbound{broadcast(makePhaseAnnouncement(EventEndOfTurn))}
		}
	case PhaseEndOfTurn:
		switch ev.Type {
		case EventSuccessful:
			return r.endTurn(s, true)
		case EventUnsuccessful:
			return r.endTurn(s, false)
		}
	}

	return s, reject(ev, ReasonBadPhase)
}

func (r *Reducer) createGame(s Session, ev Event) (Session, []Outbound) {
	next := s.Clone()
	next.ID = ev.GameID
	next.setPhase(PhaseLobby)
	return next, []Outbound{broadcast(makeGameCreated(next.ID))}
}

func (r *Reducer) playerJoin(s Session, ev Event) (Session, []Outbound) {
	next := s.Clone()
	next.Roster.AddPlayer(Participant{ID: ev.UserID, Username: ev.Username})
	return next, []Outbound{broadcast(makeGameUpdate(next))}
}

func (r *Reducer) changeTeam(s Session, ev Event) (Session, []Outbound) {
	next := s.Clone()
	next.Roster.Assign(ev.UserID, ev.Team)
	return next, []Outbound{broadcast(makeGameUpdate(next))}
}

func (r *Reducer) startGame(s Session, ev Event) (Session, []Outbound) {
	if !s.Roster.IsBalanced() {
		return s, reject(ev, ReasonUnbalancedTeams)
	}

	next := s.Clone()
	next.Play = PlayState{
		Team1: TeamState{Members: next.Roster.MembersOf(Team1)},
		Team2: TeamState{Members: next.Roster.MembersOf(Team2)},
	}
	next.setPhase(PhaseBeforeTurn)
	return next, []Outbound{
		broadcast(makeGameStarted(next)),
		broadcast(makePhaseAnnouncement(EventBeforeTurn)),
	}
}

func (r *Reducer) startTurn(s Session) (Session, []Outbound) {
	next := s.Clone()
	next.Play.CurrentTeam = nextTeam(next.Play.CurrentTeam)
	team := next.activeTeam()
	next.Play.CurrentPlayer = nextDrawer(team.Members, team.LastPlayed)
	next.Play.CurrentWord = r.words.Pick()
	next.setPhase(PhasePreTurn)

	outbound := []Outbound{broadcast(makePhaseAnnouncement(EventPreTurn))}
	outbound = append(outbound, r.turnAssignments(next)...)
	return next, outbound
}

// turnAssignments computes the role-scoped fan-out for the turn just picked:
// the drawer sees the word, their teammates see only who is drawing, and
// everyone else sees both. Delivered per participant so the word never rides
// along to a guesser.
func (r *Reducer) turnAssignments(s Session) []Outbound {
	drawer := s.Play.CurrentPlayer
	drawerName := s.Roster.Username(drawer)
	sameTeam := make(map[string]bool)
	for _, id := range s.activeTeam().Members {
		sameTeam[id] = true
	}

	outbound := make([]Outbound, 0, len(s.Roster.Players()))
	for _, p := range s.Roster.Players() {
		var turnEvent PlayerTurnEvent
		switch {
		case p.ID == drawer:
			turnEvent = PlayerTurnEvent{Type: RoleDraw, Word: s.Play.CurrentWord}
		case sameTeam[p.ID]:
			turnEvent = PlayerTurnEvent{Type: RoleGuess, PlayerDrawing: drawerName}
		default:
			turnEvent = PlayerTurnEvent{Type: RoleSpectate, PlayerDrawing: drawerName, Word: s.Play.CurrentWord}
		}
		outbound = append(outbound, sendTo(p.ID, TurnAssignments{
			Type:         EventTeam1Turn,
			GameID:       s.ID,
			PlayerEvents: map[string]PlayerTurnEvent{p.ID: turnEvent},
		}))
	}
	return outbound
}

func (r *Reducer) endTurn(s Session, successful bool) (Session, []Outbound) {
	next := s.Clone()
	team := next.activeTeam()
	team.LastPlayed = next.Play.CurrentPlayer
	next.setPhase(PhaseBeforeTurn)

	var outbound []Outbound
	if successful {
		team.Points++
		outbound = append(outbound, broadcast(makePointsUpdate(next)))
	}
	return next, append(outbound, broadcast(makePhaseAnnouncement(EventBeforeTurn)))
}

func (s *Session) setPhase(p Phase) {
	s.Phase = p
	s.Epoch++
}

// reject acknowledges a dropped event to the submitter only. Internal events
// have no submitter and are dropped silently.
func reject(ev Event, reason string) []Outbound {
	if ev.From == "" {
		return nil
	}
	return []Outbound{sendTo(ev.From, makeRejected(ev.Type, reason))}
}
