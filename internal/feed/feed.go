package feed

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/exp/slog"
)

// Entry is one fake activity line. Entries expire out of the cache on their
// own; nothing in the round engine ever reads them.
type Entry struct {
	Player string    `json:"player"`
	Action string    `json:"action"`
	At     time.Time `json:"at"`
}

const (
	minDelay = 1500 * time.Millisecond
	maxDelay = 4 * time.Second

	recentLimit = 12
)

var players = []string{
	"Lucky7", "NightOwl", "BetMax", "RedQueen", "DiceDuke",
	"HighRoller", "GreenGoblin", "BluePhantom", "NumberNine", "SmallFry",
}

var actions = []string{
	"bet on big",
	"bet on small",
	"bet on red",
	"bet on green",
	"bet on blue",
	"picked number %d",
	"won %.1fx",
}

// Generator emits cosmetic activity on its own jittered timer, fully
// decoupled from round phases.
type Generator struct {
	log   *slog.Logger
	cache *cache.Cache
	rnd   *rand.Rand
	done  chan struct{}
	seq   int
}

func NewGenerator(log *slog.Logger, ttl time.Duration) *Generator {
	return &Generator{
		log:   log,
		cache: cache.New(ttl, 2*ttl),
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		done:  make(chan struct{}),
	}
}

func (g *Generator) Start() {
	g.log.Info("activity feed started")

	go g.loop()
}

func (g *Generator) Stop() {
	close(g.done)
}

// Recent returns the live entries, newest first, capped for display.
func (g *Generator) Recent() []Entry {
	items := g.cache.Items()

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, item.Object.(Entry))
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].At.After(entries[j].At)
	})

	if len(entries) > recentLimit {
		entries = entries[:recentLimit]
	}

	return entries
}

func (g *Generator) loop() {
	for {
		select {
		case <-g.done:
			return
		case <-time.After(g.nextDelay()):
			g.emit()
		}
	}
}

func (g *Generator) nextDelay() time.Duration {
	return minDelay + time.Duration(g.rnd.Int63n(int64(maxDelay-minDelay)))
}

func (g *Generator) emit() {
	action := actions[g.rnd.Intn(len(actions))]

	switch action {
	case "picked number %d":
		action = fmt.Sprintf(action, g.rnd.Intn(10))
	case "won %.1fx":
		multipliers := []float64{1.9, 2.8, 9.0}
		action = fmt.Sprintf(action, multipliers[g.rnd.Intn(len(multipliers))])
	}

	entry := Entry{
		Player: players[g.rnd.Intn(len(players))],
		Action: action,
		At:     time.Now(),
	}

	g.seq++
	g.cache.Set(fmt.Sprintf("entry-%d", g.seq), entry, cache.DefaultExpiration)
}
