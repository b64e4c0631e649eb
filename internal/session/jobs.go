package session

import (
	"fmt"
	"log"

	"EconSim/internal/notifier"
	"EconSim/internal/snapshot"
)

// RegisterAll registers the digest and snapshot jobs. An empty spec skips the job.
func (s *Session) RegisterAll(digestCron, snapshotCron string) error {
	if digestCron != "" {
		if _, err := s.Cron.AddFunc(digestCron, s.RunDigest); err != nil {
			return fmt.Errorf("register digest task: %w", err)
		}
	}
	if snapshotCron != "" && s.snapshotPath != "" {
		if _, err := s.Cron.AddFunc(snapshotCron, func() {
			if err := s.SaveSnapshot(); err != nil {
				log.Printf("[ERROR] snapshot task: %v", err)
			}
		}); err != nil {
			return fmt.Errorf("register snapshot task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Session) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the scheduler and waits for running jobs, pending sends and
// queued recorder writes. Later commits record synchronously.
func (s *Session) Stop() {
	<-s.Cron.Stop().Done()
	s.wg.Wait()

	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		close(s.quit)
	}
	s.mu.Unlock()
	s.flush()
	log.Println("[INFO] scheduler stopped")
}

// RunDigest sends the current state together with fresh commentary.
func (s *Session) RunDigest() {
	log.Println("[INFO] running digest task")
	report := notifier.FormatState(s.State(), s.Status())

	text, err := s.narrate(s.ctx, "DIGEST", "")
	if err != nil {
		report += "\n" + notifier.FormatUnavailable(err)
	} else {
		report += "\n" + notifier.FormatCommentary("Economist commentary", text)
	}
	s.trySend(report)
}

// SaveSnapshot writes the engine snapshot to the configured path.
func (s *Session) SaveSnapshot() error {
	if s.snapshotPath == "" {
		return nil
	}
	snap := s.Snapshot()
	if err := snapshot.Save(s.snapshotPath, snap); err != nil {
		return err
	}
	log.Printf("[INFO] snapshot saved at turn %d", snap.Turn)
	return nil
}
