package tracking

import (
	"time"

	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

type State string

const (
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

func StateOf(p models.SessionProgress) State {
	if p.IsCompleted {
		return StateCompleted
	}
	return StateInProgress
}

// AddSession advances the counter by one. It returns false and leaves p
// untouched when the counter is already completed.
func AddSession(p *models.SessionProgress, target int, today time.Time) bool {
	if p.IsCompleted {
		return false
	}
	p.SessionsCompleted++
	if p.SessionsCompleted >= target {
		p.IsCompleted = true
		d := dateOnly(today)
		p.CompletedDate = &d
	}
	return true
}

// RemoveSession undoes one session; it returns false at zero. A counter
// still at or above target afterwards is re-stamped with today.
func RemoveSession(p *models.SessionProgress, target int, today time.Time) bool {
	if p.SessionsCompleted <= 0 {
		return false
	}
	p.SessionsCompleted--
	p.CompletedDate = nil
	Reconcile(p, target, today)
	return true
}

// Reconcile recomputes the completion flag after SessionsCompleted was
// written directly. Running it twice changes nothing.
func Reconcile(p *models.SessionProgress, target int, today time.Time) {
	if p.SessionsCompleted >= target {
		if !p.IsCompleted {
			p.IsCompleted = true
		}
		if p.CompletedDate == nil {
			d := dateOnly(today)
			p.CompletedDate = &d
		}
		return
	}

	p.IsCompleted = false
	p.CompletedDate = nil
}

func Percentage(completed, target int) int {
	if target <= 0 {
		return 0
	}
	return completed * 100 / target
}

func Remaining(completed, target int) int {
	if r := target - completed; r > 0 {
		return r
	}
	return 0
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
