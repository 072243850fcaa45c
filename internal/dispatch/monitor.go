package dispatch

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fleet-dispatch/backend/internal/notify"
)

// DefaultTickInterval is how often the monitor checks acceptance deadlines.
const DefaultTickInterval = time.Second

// Monitor drives the acceptance deadline checks on a fixed tick and
// announces expiries through the broadcaster.
type Monitor struct {
	cron        *cron.Cron
	board       *Board
	broadcaster *notify.Broadcaster
	interval    time.Duration
}

// NewMonitor creates an acceptance deadline monitor. broadcaster may be nil;
// interval <= 0 uses the default one-second tick.
func NewMonitor(board *Board, broadcaster *notify.Broadcaster, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Monitor{
		cron:        cron.New(cron.WithSeconds()),
		board:       board,
		broadcaster: broadcaster,
		interval:    interval,
	}
}

// Start begins the deadline tick.
func (m *Monitor) Start() {
	log.Println("Starting acceptance deadline monitor...")

	m.cron.AddFunc("@every "+m.interval.String(), func() {
		m.tick()
	})

	m.cron.Start()
	log.Println("Acceptance deadline monitor started")
}

// Stop cancels the deadline tick.
func (m *Monitor) Stop() {
	log.Println("Stopping acceptance deadline monitor...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Acceptance deadline monitor stopped")
}

// tick reverts expired assignments and announces each one.
func (m *Monitor) tick() {
	expired := m.board.ExpireOverdue()
	for _, a := range expired {
		log.Printf("Assignment %s expired: load %s returned to the board", a.ID, a.LoadID)
		if m.broadcaster != nil {
			m.broadcaster.AcceptanceExpired(a)
		}
	}
}
