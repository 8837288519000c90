// Package sweeper runs the recurring cleanup of expired posts.
package sweeper

import (
	"log"
	"time"

	"github.com/devsocial/backend/internal/repositories"
	"github.com/robfig/cron/v3"
)

// Sweeper deletes posts whose expiry has passed on a fixed cadence.
// Fire-and-forget: failures are logged, never retried, and do not block the
// next scheduled run.
type Sweeper struct {
	postRepository repositories.PostRepository
	schedule       string
	cron           *cron.Cron
}

// New creates a Sweeper with a cron schedule (default: every minute)
func New(postRepo repositories.PostRepository, schedule string) *Sweeper {
	return &Sweeper{
		postRepository: postRepo,
		schedule:       schedule,
		cron:           cron.New(),
	}
}

// Start registers the sweep job and starts the scheduler
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.Sweep); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("sweeper: started with schedule %q", s.schedule)
	return nil
}

// Stop stops the scheduler, waiting for a running sweep to finish
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sweep deletes every post whose expiry is in the past. Posts with no
// expiry are never touched.
func (s *Sweeper) Sweep() {
	count, err := s.postRepository.DeleteExpired(time.Now())
	if err != nil {
		log.Printf("sweeper: cleanup failed: %v", err)
		return
	}
	if count > 0 {
		log.Printf("sweeper: removed %d expired post(s)", count)
	}
}
