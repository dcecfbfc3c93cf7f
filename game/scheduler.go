package game

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Scheduler fires the game ticks from a single goroutine, so two ticks
// never overlap. Every tick is published to the subscribers and the loop
// ends by itself once the game is over.
type Scheduler struct {
	game     *Game
	interval time.Duration

	mutex   sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
	wg      sync.WaitGroup

	subsMu sync.Mutex
	subs   map[int]chan Snapshot
	nextID int
}

func NewScheduler(game *Game, interval time.Duration) *Scheduler {
	done := make(chan struct{})
	close(done)
	return &Scheduler{
		game:     game,
		interval: interval,
		done:     done,
		subs:     make(map[int]chan Snapshot),
	}
}

// Start launches the tick loop. It is a no-op if the loop is already running.
func (s *Scheduler) Start(ctx context.Context) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.running = true
	s.cancel = cancel
	s.done = make(chan struct{})

	s.wg.Add(1)
	go s.loop(ctx, cancel, s.done)
}

// Stop ends the tick loop and waits for it to return.
func (s *Scheduler) Stop() {
	s.mutex.Lock()
	cancel := s.cancel
	s.mutex.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

// Restart stops the loop, starts a fresh run and resumes ticking.
func (s *Scheduler) Restart(ctx context.Context) {
	s.Stop()
	s.game.Reset()
	log.Info().Str("game", s.game.Snapshot().UUID).Msg("run restarted")
	s.publish(s.game.Snapshot())
	s.Start(ctx)
}

// Done is closed when the current loop has ended, either because the game
// is over or because it was stopped.
func (s *Scheduler) Done() <-chan struct{} {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.done
}

func (s *Scheduler) Running() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.running
}

func (s *Scheduler) Game() *Game {
	return s.game
}

// Subscribe returns a channel receiving a snapshot after every tick and a
// function to unsubscribe. Slow readers miss snapshots rather than block the loop.
func (s *Scheduler) Subscribe() (<-chan Snapshot, func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan Snapshot, 8)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
			close(ch)
		})
	}
}

func (s *Scheduler) publish(snap Snapshot) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

// loop owns cancel and releases the run context however the loop ends.
func (s *Scheduler) loop(ctx context.Context, cancel context.CancelFunc, done chan struct{}) {
	defer s.wg.Done()
	defer func() {
		cancel()
		s.mutex.Lock()
		s.running = false
		s.cancel = nil
		s.mutex.Unlock()
		close(done)
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.game.Update() {
				return
			}
			snap := s.game.Snapshot()
			log.Debug().
				Int("tick", snap.Tick).
				Interface("head", snap.Head()).
				Str("heading", snap.Heading.String()).
				Msg("tick")
			s.publish(snap)

			if snap.GameOver {
				log.Info().
					Str("game", snap.UUID).
					Int("ticks", snap.Tick).
					Str("cause", snap.Cause.String()).
					Msg("game over")
				return
			}
		}
	}
}
