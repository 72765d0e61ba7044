package game

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

var (
	ErrSubscriberGone = errors.New("subscriber released")
	ErrOutboxFull     = errors.New("subscriber outbox full")
)

// subscriber adapts one channel connection to the session's event queue:
// inbound messages are validated and forwarded as events, outbound events are
// written from a buffered outbox. Malformed messages are answered with a
// REJECTED directly, without ever reaching the room.
type subscriber struct {
	id          string
	username    string
	rateLimiter *rate.Limiter
	conn        ChannelConnection
	room        Room
	outbox      chan []byte
	pingChan    chan struct{}
	done        chan struct{}
	releaseOnce sync.Once
}

func NewSubscriber(id, username string, conn ChannelConnection) *subscriber {
	if id == "" {
		id = uuid.NewString()
	}
	return &subscriber{
		id:          id,
		username:    username,
		rateLimiter: rate.NewLimiter(1, 5),
		conn:        conn,
		outbox:      make(chan []byte, 256),
		pingChan:    make(chan struct{}, 1),
		done:        make(chan struct{}),
	}
}

func (s *subscriber) ID() string       { return s.id }
func (s *subscriber) Username() string { return s.username }

func (s *subscriber) SetRoom(r Room) { s.room = r }

func (s *subscriber) ReadPump() {
	defer s.room.RequestRemoval(s)

	for {
		data, err := s.conn.Read()
		if err != nil {
			return
		}

		if !s.rateLimiter.Allow() {
			log.Warn().Str("userID", s.id).Msg("dropping intent over rate limit")
			continue
		}

		ev, err := ParseIntent(data)
		if err != nil {
			rejection, _ := json.Marshal(makeRejected("", err.Error()))
			s.Send(rejection)
			continue
		}

		ev.From = s.id
		if ev.Type == EventPlayerJoin && ev.UserID == "" {
			ev.UserID = s.id
		}
		s.room.Submit(ev)
	}
}

func (s *subscriber) WritePump() {
	for {
		select {
		case data := <-s.outbox:
			if err := s.conn.Write(data); err != nil {
				return
			}
		case <-s.pingChan:
			if err := s.conn.Ping(); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}

// Send queues data for delivery. A full outbox drops the message: delivery is
// at-most-once and the session state has already moved on.
func (s *subscriber) Send(data []byte) error {
	select {
	case <-s.done:
		return ErrSubscriberGone
	default:
	}
	select {
	case s.outbox <- data:
		return nil
	default:
		return ErrOutboxFull
	}
}

func (s *subscriber) Ping() error {
	select {
	case <-s.done:
		return ErrSubscriberGone
	default:
	}
	select {
	case s.pingChan <- struct{}{}:
	default:
	}
	return nil
}

func (s *subscriber) CancelAndRelease() {
	s.releaseOnce.Do(func() {
		close(s.done)
		s.conn.Close("")
	})
}
