package services

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Sweeper promotes due scheduled posts to published. One sweep selects every
// post with status=scheduled and published_at in the past, then publishes
// each in its own atomic row update so a failure on one post never blocks
// the rest.
type Sweeper struct {
	store  SweepStore
	clock  Clock
	logger zerolog.Logger
}

func NewSweeper(store SweepStore, clock Clock) *Sweeper {
	return &Sweeper{
		store:  store,
		clock:  clock,
		logger: log.With().Str("serviceName", "sweeper").Logger(),
	}
}

// SweepFailure records one post the sweep could not promote.
type SweepFailure struct {
	PostID uint   `json:"postId"`
	Reason string `json:"reason"`
}

// SweepResult reports the outcome of a single sweep.
type SweepResult struct {
	PromotedIDs []uint         `json:"promotedIds"`
	Failures    []SweepFailure `json:"failures,omitempty"`
}

// RunSweep performs one sweep at the given time. Per-item failures are
// collected and reported after the whole batch ran; only a failure to read
// the due set aborts the sweep. The promoted posts get the sweep time as
// published_at, not their originally scheduled time, so published_at always
// says when the post actually became visible.
func (s *Sweeper) RunSweep(now time.Time) (SweepResult, error) {
	var result SweepResult

	due, err := s.store.DuePosts(now)
	if err != nil {
		return result, err
	}
	if len(due) == 0 {
		return result, nil
	}

	s.logger.Info().Int("due", len(due)).Time("now", now).Msg("sweeping scheduled posts")

	for _, post := range due {
		promoted, err := s.store.PromoteScheduled(post.ID, now)
		if err != nil {
			result.Failures = append(result.Failures, SweepFailure{PostID: post.ID, Reason: err.Error()})
			continue
		}
		if !promoted {
			// Raced a manual transition; the post is no longer scheduled.
			continue
		}
		result.PromotedIDs = append(result.PromotedIDs, post.ID)
		s.logger.Info().Uint("postId", post.ID).Msg("scheduled post published")
	}

	return result, nil
}

// Run executes one sweep at the injected clock's current time.
func (s *Sweeper) Run() (SweepResult, error) {
	return s.RunSweep(s.clock.Now())
}

// SweepScheduler drives the sweeper on a fixed once-per-minute tick. It is a
// singleton; running more than one against the same store is unsupported.
type SweepScheduler struct {
	sweeper *Sweeper
	cron    *cron.Cron
	logger  zerolog.Logger
}

func NewSweepScheduler(sweeper *Sweeper) *SweepScheduler {
	return &SweepScheduler{
		sweeper: sweeper,
		cron:    cron.New(),
		logger:  log.With().Str("serviceName", "sweepScheduler").Logger(),
	}
}

// Start registers the every-minute sweep job and starts the cron loop.
func (s *SweepScheduler) Start() error {
	_, err := s.cron.AddFunc("* * * * *", func() {
		result, err := s.sweeper.Run()
		if err != nil {
			s.logger.Error().Err(err).Msg("sweep failed to read due posts")
			return
		}
		for _, failure := range result.Failures {
			s.logger.Error().Uint("postId", failure.PostID).Str("reason", failure.Reason).Msg("failed to promote scheduled post")
		}
		if len(result.PromotedIDs) > 0 {
			s.logger.Info().Ints("promoted", toInts(result.PromotedIDs)).Msg("sweep completed")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info().Msg("sweep scheduler started")
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish.
func (s *SweepScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("sweep scheduler stopped")
}

func toInts(ids []uint) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}
