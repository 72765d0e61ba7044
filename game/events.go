package game

import "encoding/json"

// Inbound intent types accepted from clients, plus the two internal event
// types (CREATE_GAME is injected when the lobby assigns a code, TIMEOUT by the
// turn clock). The internal ones are never accepted off the wire.
const (
	EventCreateGame   = "CREATE_GAME"
	EventPlayerJoin   = "PLAYER_JOIN"
	EventChangeTeam   = "CHANGE_TEAM"
	EventStartGame    = "START_GAME"
	EventStartTurn    = "START_TURN"
	EventSuccessful   = "SUCCESSFUL"
	EventUnsuccessful = "UNSUCCESSFUL"
	EventTimeout      = "TIMEOUT"
)

// Outbound event types.
const (
	EventGameCreated  = "GAME_CREATED"
	EventGameUpdate   = "GAME_UPDATE"
	EventBeforeTurn   = "BEFORE_TURN"
	EventPreTurn      = "PRE_TURN"
	EventTurn         = "TURN"
	EventEndOfTurn    = "END_OF_TURN"
	EventTeam1Turn    = "TEAM_1_TURN"
	EventPointsUpdate = "POINTS_UPDATE"
	EventRejected     = "REJECTED"
	EventSessionSync  = "SESSION_SYNC"
)

// Per-participant roles inside a TEAM_1_TURN fan-out.
const (
	RoleDraw     = "DRAW"
	RoleGuess    = "GUESS"
	RoleSpectate = "SPECTATE"
)

// Event is a fully validated intent as the reducer sees it. From is the
// participant id of the submitting subscriber, empty for internal events.
type Event struct {
	Type     string
	From     string
	UserID   string
	Username string
	Team     TeamLabel

	// GameID is only set on CREATE_GAME, carrying the code the lobby assigned.
	GameID string

	// Epoch the timer was armed under; only set on TIMEOUT events.
	Epoch int
}

type intentWire struct {
	Type     string `json:"type"`
	UserID   string `json:"userID"`
	Username string `json:"username"`
	Team     string `json:"team"`
}

// ParseIntent deserializes and validates a raw channel message. Anything
// malformed fails here so the orchestrator only ever sees complete events.
func ParseIntent(data []byte) (Event, error) {
	var wire intentWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return Event{}, ErrMalformedIntent
	}

	ev := Event{Type: wire.Type}
	switch wire.Type {
	case EventPlayerJoin:
		if wire.Username == "" {
			return Event{}, ErrMissingUsername
		}
		ev.UserID = wire.UserID
		ev.Username = wire.Username
	case EventChangeTeam:
		if wire.UserID == "" {
			return Event{}, ErrMissingUserID
		}
		if wire.Team != string(Team1) && wire.Team != string(Team2) {
			return Event{}, ErrUnknownTeam
		}
		ev.UserID = wire.UserID
		ev.Team = TeamLabel(wire.Team)
	case EventStartGame, EventStartTurn, EventSuccessful, EventUnsuccessful:
		// no payload
	default:
		return Event{}, ErrUnknownIntent
	}
	return ev, nil
}

// Outbound is one message leaving the orchestrator. To scopes it to a single
// participant id; empty means every subscriber of the session.
type Outbound struct {
	To    string
	Event any
}

func broadcast(event any) Outbound {
	return Outbound{Event: event}
}

func sendTo(id string, event any) Outbound {
	return Outbound{To: id, Event: event}
}

// Wire payloads. Field names follow the frontend contract, hence the camelCase
// gameID / playerDrawing tags.

type PlayerInfo struct {
	Username string `json:"username"`
}

type GameSnapshot struct {
	Players map[string]PlayerInfo `json:"players"`
	Teams   map[string]TeamLabel  `json:"teams"`
}

type GameCreated struct {
	Type   string `json:"type"`
	GameID string `json:"gameID"`
}

type GameUpdate struct {
	Type   string       `json:"type"`
	GameID string       `json:"gameID"`
	Game   GameSnapshot `json:"game"`
}

type GameStarted struct {
	Type   string       `json:"type"`
	GameID string       `json:"gameID"`
	Game   GameSnapshot `json:"game"`
}

type PhaseAnnouncement struct {
	Type string `json:"type"`
}

type PlayerTurnEvent struct {
	Type          string `json:"type"`
	Word          string `json:"word,omitempty"`
	PlayerDrawing string `json:"playerDrawing,omitempty"`
}

type TurnAssignments struct {
	Type         string                     `json:"type"`
	GameID       string                     `json:"gameID"`
	PlayerEvents map[string]PlayerTurnEvent `json:"playerEvents"`
}

type PointsUpdate struct {
	Type  string `json:"type"`
	Team1 int    `json:"team1"`
	Team2 int    `json:"team2"`
}

type Rejected struct {
	Type   string `json:"type"`
	Event  string `json:"event"`
	Reason string `json:"reason"`
}

// PlaySnapshot is the match state a late joiner needs to catch up: who is
// drawing and the score, never the word.
type PlaySnapshot struct {
	CurrentTeam   TeamLabel `json:"currentTeam"`
	PlayerDrawing string    `json:"playerDrawing"`
	Team1Points   int       `json:"team1"`
	Team2Points   int       `json:"team2"`
}

type SessionSync struct {
	Type   string        `json:"type"`
	GameID string        `json:"gameID"`
	Phase  string        `json:"phase"`
	Game   GameSnapshot  `json:"game"`
	Play   *PlaySnapshot `json:"play,omitempty"`
}

func makeGameCreated(gameID string) GameCreated {
	return GameCreated{Type: EventGameCreated, GameID: gameID}
}

func makeSnapshot(roster Roster) GameSnapshot {
	snapshot := GameSnapshot{
		Players: make(map[string]PlayerInfo),
		Teams:   make(map[string]TeamLabel),
	}
	for _, p := range roster.Players() {
		snapshot.Players[p.ID] = PlayerInfo{Username: p.Username}
	}
	for _, id := range roster.assigned {
		snapshot.Teams[id] = roster.labels[id]
	}
	return snapshot
}

func makeGameUpdate(s Session) GameUpdate {
	return GameUpdate{Type: EventGameUpdate, GameID: s.ID, Game: makeSnapshot(s.Roster)}
}

func makeGameStarted(s Session) GameStarted {
	return GameStarted{Type: EventStartGame, GameID: s.ID, Game: makeSnapshot(s.Roster)}
}

func makePhaseAnnouncement(eventType string) PhaseAnnouncement {
	return PhaseAnnouncement{Type: eventType}
}

func makePointsUpdate(s Session) PointsUpdate {
	return PointsUpdate{Type: EventPointsUpdate, Team1: s.Play.Team1.Points, Team2: s.Play.Team2.Points}
}

func makeRejected(event, reason string) Rejected {
	return Rejected{Type: EventRejected, Event: event, Reason: reason}
}

func makeSessionSync(s Session) SessionSync {
	payload := SessionSync{
		Type:   EventSessionSync,
		GameID: s.ID,
		Phase:  s.Phase.String(),
		Game:   makeSnapshot(s.Roster),
	}
	if s.Phase != PhaseReady && s.Phase != PhaseLobby {
		payload.Play = &PlaySnapshot{
			CurrentTeam:   s.Play.CurrentTeam,
			PlayerDrawing: s.Roster.Username(s.Play.CurrentPlayer),
			Team1Points:   s.Play.Team1.Points,
			Team2Points:   s.Play.Team2.Points,
		}
	}
	return payload
}
