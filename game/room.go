package game

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type dataSendTask struct {
	to   Subscriber
	data []byte
}

// room hosts one session. Everything that touches the session state runs on
// the GameLoop goroutine: client events, join requests, subscriber removals
// and clock ticks all arrive through channels and are handled one at a time.
type room struct {
	id      string
	session Session
	reducer *Reducer
	lobby   Lobby

	subscribers []Subscriber

	// Turn clock: deadline of the armed phase and the epoch it was armed
	// under. A zero deadline means no timer is pending.
	deadline   time.Time
	armedEpoch int

	inbox        chan Event
	joinRequests chan roomJoinRequest
	removals     chan Subscriber
	ticks        chan time.Time
	pingPlayers  chan struct{}
	done         chan struct{}
	closeOnce    sync.Once

	// Outbound messages accumulate here during a handler and are flushed
	// afterwards, so tests can assert on exactly what a step produced.
	dataSendTasks []dataSendTask
}

func NewRoom(host Subscriber, reducer *Reducer) *room {
	r := &room{
		session:      NewSession(),
		reducer:      reducer,
		subscribers:  []Subscriber{host},
		inbox:        make(chan Event, 1024),
		joinRequests: make(chan roomJoinRequest, 32),
		removals:     make(chan Subscriber, 64),
		ticks:        make(chan time.Time, 24),
		pingPlayers:  make(chan struct{}, 8),
		done:         make(chan struct{}),
	}
	host.SetRoom(r)
	return r
}

func (r *room) SetParentLobby(l Lobby) { r.lobby = l }
func (r *room) SetId(id string)        { r.id = id }
func (r *room) Id() string             { return r.id }

func (r *room) GameLoop() {
	// The session is born in the ready phase; assigning the code is its
	// first transition.
	r.applyEvent(Event{Type: EventCreateGame, GameID: r.id})
	r.flush()

	for {
		select {
		case ev := <-r.inbox:
			r.applyEvent(ev)
		case jreq := <-r.joinRequests:
			r.handleJoinRequest(jreq)
		case sub := <-r.removals:
			r.handleRemoveSubscriber(sub)
		case now := <-r.ticks:
			r.handleTick(now)
		case <-r.pingPlayers:
			r.handlePing()
		case <-r.done:
			r.teardown()
			return
		}
		r.flush()
	}
}

func (r *room) Submit(ev Event) {
	select {
	case r.inbox <- ev:
	case <-r.done:
	}
}

func (r *room) RequestJoin(jreq roomJoinRequest) {
	select {
	case r.joinRequests <- jreq:
	case <-r.done:
		if jreq.claim() {
			jreq.errChan <- ErrGameNotFound
		}
	}
}

func (r *room) RequestRemoval(sub Subscriber) {
	select {
	case r.removals <- sub:
	case <-r.done:
	}
}

// Tick and PingPlayers are fan-in points for the lobby's shared tickers; both
// drop on a busy room rather than stall the lobby actor.
func (r *room) Tick(now time.Time) {
	select {
	case r.ticks <- now:
	default:
	}
}

func (r *room) PingPlayers() {
	select {
	case r.pingPlayers <- struct{}{}:
	default:
	}
}

// CloseAndRelease only signals; the GameLoop goroutine does the actual
// teardown. Subscribers are never touched from outside that goroutine.
func (r *room) CloseAndRelease() {
	r.closeOnce.Do(func() { close(r.done) })
}

// teardown runs on the GameLoop goroutine as its last act: pending join
// requests are refused and every subscriber is cancelled.
func (r *room) teardown() {
	for {
		select {
		case jreq := <-r.joinRequests:
			if jreq.claim() {
				jreq.errChan <- ErrGameNotFound
			}
		default:
			for _, sub := range r.subscribers {
				sub.CancelAndRelease()
			}
			r.subscribers = nil
			return
		}
	}
}

func (r *room) applyEvent(ev Event) {
	next, outbound := r.reducer.Reduce(r.session, ev)

	if next.Epoch != r.session.Epoch {
		// Entered a new phase: rearm the clock for timed phases, disarm it
		// otherwise so a stale deadline can't fire later.
		if duration, timed := PhaseDuration(next.Phase); timed {
			r.deadline = time.Now().Add(duration)
			r.armedEpoch = next.Epoch
		} else {
			r.deadline = time.Time{}
		}
		log.Debug().Str("gameID", r.id).Stringer("phase", next.Phase).Msg("phase change")
	}

	r.session = next
	for _, out := range outbound {
		r.queue(out)
	}
}

func (r *room) handleTick(now time.Time) {
	if r.deadline.IsZero() || now.Before(r.deadline) {
		return
	}
	r.deadline = time.Time{}
	r.applyEvent(Event{Type: EventTimeout, Epoch: r.armedEpoch})
}

func (r *room) handleJoinRequest(jreq roomJoinRequest) {
	// The joiner gave up waiting; adopting it now would strand a subscriber
	// whose pumps never started.
	if !jreq.claim() {
		return
	}

	r.subscribers = append(r.subscribers, jreq.sub)
	jreq.sub.SetRoom(r)

	// Late joiners get the full current picture, so a reconnecting client can
	// resynchronize mid-match. The word is withheld; roles are only ever
	// handed out through the turn fan-out.
	r.queue(sendTo(jreq.sub.ID(), makeSessionSync(r.session)))

	jreq.errChan <- nil
	log.Info().Str("gameID", r.id).Str("username", jreq.sub.Username()).Msg("subscriber joined")
}

// handleRemoveSubscriber tears down a dead connection. The participant stays
// in the roster and keeps their rotation slot; only the delivery endpoint is
// gone. A room with no subscribers left is released entirely.
func (r *room) handleRemoveSubscriber(sub Subscriber) {
	for i, s := range r.subscribers {
		if s == sub {
			r.subscribers = append(r.subscribers[:i], r.subscribers[i+1:]...)
			break
		}
	}
	sub.CancelAndRelease()
	log.Info().Str("gameID", r.id).Str("username", sub.Username()).Msg("subscriber left")

	if len(r.subscribers) == 0 && r.lobby != nil {
		r.lobby.RemoveRoom(r.id)
	}
}

func (r *room) handlePing() {
	for _, sub := range r.subscribers {
		if err := sub.Ping(); err != nil {
			log.Debug().Str("gameID", r.id).Str("username", sub.Username()).Err(err).Msg("ping failed")
		}
	}
}

// queue resolves an outbound event to its recipients. An empty To fans out to
// every subscriber; otherwise every subscriber carrying that participant id
// gets a copy.
func (r *room) queue(out Outbound) {
	data, err := json.Marshal(out.Event)
	if err != nil {
		log.Error().Str("gameID", r.id).Err(err).Msg("failed to marshal outbound event")
		return
	}
	for _, sub := range r.subscribers {
		if out.To != "" && sub.ID() != out.To {
			continue
		}
		r.dataSendTasks = append(r.dataSendTasks, dataSendTask{to: sub, data: data})
	}
}

// flush publishes the queued messages. Failures are logged and swallowed: the
// state already advanced and delivery is at-most-once.
func (r *room) flush() {
	for _, task := range r.dataSendTasks {
		if err := task.to.Send(task.data); err != nil {
			log.Warn().Str("gameID", r.id).Str("username", task.to.Username()).Err(err).Msg("dropping undeliverable event")
		}
	}
	r.dataSendTasks = r.dataSendTasks[:0]
}
