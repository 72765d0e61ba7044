package game

import (
	"math/rand"
	"strconv"
	"sync"
)

// Idgen issues short human-typed game codes, 4 digits by default. Codes stay
// reserved until disposed so two live sessions never share one.
type Idgen struct {
	ids    map[string]struct{}
	locker sync.Mutex
}

func NewIdGen() Idgen {
	return Idgen{ids: make(map[string]struct{})}
}

func (g *Idgen) Generate() string {
	g.locker.Lock()
	defer g.locker.Unlock()

	span := 9000
	for attempt := 0; ; attempt++ {
		// widen the code space if the short ones are exhausted
		if attempt > 0 && attempt%50 == 0 {
			span *= 10
		}
		id := strconv.Itoa(1000 + rand.Intn(span))
		if _, taken := g.ids[id]; !taken {
			g.ids[id] = struct{}{}
			return id
		}
	}
}

func (g *Idgen) Dispose(id string) {
	g.locker.Lock()
	defer g.locker.Unlock()
	delete(g.ids, id)
}
