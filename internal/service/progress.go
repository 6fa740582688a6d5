package service

import (
	"time"

	"github.com/tubebridge/tubebridge-api/internal/domain/model"
)

// uploadSlot names one of the two file positions in a staging session.
type uploadSlot int

const (
	slotVideo uploadSlot = iota
	slotThumbnail
)

// transfer is the handle for one simulated file transfer. Closing stop asks
// the loop to exit; done is closed when it has.
type transfer struct {
	stop chan struct{}
	done chan struct{}
}

func newTransfer() *transfer {
	return &transfer{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// stopTransfer cancels a transfer and waits for its loop to finish. Must not
// be called while holding UploadService.mu: the loop takes that lock per tick.
func stopTransfer(t *transfer) {
	if t == nil {
		return
	}
	select {
	case <-t.stop:
		// already stopped
	default:
		close(t.stop)
	}
	<-t.done
}

// runTransfer advances the progress of one staged file on a fixed tick in
// fixed steps until it reaches 100, then flips Ready once and exits. It also
// exits when the transfer is cancelled or the slot no longer owns it
// (cleared, replaced, or the session was discarded).
func (s *UploadService) runTransfer(sessionID string, slot uploadSlot, t *transfer) {
	defer close(t.done)

	ticker := time.NewTicker(s.cfg.ProgressTick)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			if s.advanceProgress(sessionID, slot, t) {
				return
			}
		}
	}
}

// advanceProgress applies one progress step. It returns true when the loop
// should exit, either because the file finished or because this transfer has
// been detached from its slot.
func (s *UploadService) advanceProgress(sessionID string, slot uploadSlot, t *transfer) (finished bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return true
	}

	var file *model.StagedFile
	switch slot {
	case slotVideo:
		if sess.videoTx != t {
			return true
		}
		file = sess.state.Video
	case slotThumbnail:
		if sess.thumbTx != t {
			return true
		}
		file = sess.state.Thumbnail
	}
	if file == nil {
		return true
	}

	file.Progress += s.cfg.ProgressStep
	if file.Progress >= model.StagedProgressDone {
		file.Progress = model.StagedProgressDone
		file.Ready = true
		return true
	}
	return false
}
