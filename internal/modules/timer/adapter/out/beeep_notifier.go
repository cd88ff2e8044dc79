package out

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"tempo/internal/modules/timer/domain"
	timerout "tempo/internal/modules/timer/port/out"
)

// BeeepNotifier raises a desktop notification when a session completes.
type BeeepNotifier struct{}

func NewBeeepNotifier() timerout.Notifier {
	return &BeeepNotifier{}
}

func (n *BeeepNotifier) SessionCompleted(mode domain.Mode, activeSeconds int) error {
	title := "Focus session complete"
	body := fmt.Sprintf("You focused for %d minutes. Time for a break.", activeSeconds/60)
	if !mode.Productive() {
		title = "Break over"
		body = "Back to work."
	}
	if err := beeep.Notify(title, body, ""); err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}
	return nil
}
