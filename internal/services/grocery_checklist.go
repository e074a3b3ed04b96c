package services

import (
	"sync"
	"time"
)

const checklistWeekLayout = "2006-01-02"

type groceryChecklistState struct {
	weekKey string
	order   []string
	allowed map[string]struct{}
	checked map[string]struct{}
}

// GroceryChecklist tracks which grocery lines a user ticked off while
// shopping. State lives in memory only: it is rebuilt from scratch every
// time the grocery list is recomputed, so a freshly opened list always
// starts unchecked, and it is dropped when the session closes.
type GroceryChecklist struct {
	mu     sync.Mutex
	states map[uint]*groceryChecklistState
}

func NewGroceryChecklist() *GroceryChecklist {
	return &GroceryChecklist{states: make(map[uint]*groceryChecklistState)}
}

// Reset replaces the user's checklist with the given lines, all unchecked.
func (list *GroceryChecklist) Reset(userID uint, weekStart time.Time, items []string) {
	allowed := make(map[string]struct{}, len(items))
	order := make([]string, 0, len(items))
	for _, item := range items {
		if _, duplicate := allowed[item]; duplicate {
			continue
		}
		allowed[item] = struct{}{}
		order = append(order, item)
	}

	list.mu.Lock()
	defer list.mu.Unlock()
	list.states[userID] = &groceryChecklistState{
		weekKey: weekStart.Format(checklistWeekLayout),
		order:   order,
		allowed: allowed,
		checked: make(map[string]struct{}),
	}
}

// Toggle flips the checked state of item within the user's current list.
// The second result reports whether the item belongs to that list; a
// toggle for an unknown item or a stale week changes nothing.
func (list *GroceryChecklist) Toggle(userID uint, weekStart time.Time, item string) (bool, bool) {
	list.mu.Lock()
	defer list.mu.Unlock()

	state, ok := list.states[userID]
	if !ok || state.weekKey != weekStart.Format(checklistWeekLayout) {
		return false, false
	}
	if _, known := state.allowed[item]; !known {
		return false, false
	}

	if _, checkedNow := state.checked[item]; checkedNow {
		delete(state.checked, item)
		return false, true
	}
	state.checked[item] = struct{}{}
	return true, true
}

// Snapshot lists the currently ticked lines in list order.
func (list *GroceryChecklist) Snapshot(userID uint, weekStart time.Time) []string {
	list.mu.Lock()
	defer list.mu.Unlock()

	checked := make([]string, 0)
	state, ok := list.states[userID]
	if !ok || state.weekKey != weekStart.Format(checklistWeekLayout) {
		return checked
	}
	for _, item := range state.order {
		if _, isChecked := state.checked[item]; isChecked {
			checked = append(checked, item)
		}
	}
	return checked
}

// Clear drops all checklist state held for the user.
func (list *GroceryChecklist) Clear(userID uint) {
	list.mu.Lock()
	defer list.mu.Unlock()
	delete(list.states, userID)
}

// SessionOpened implements SessionObserver. A new session starts with no
// checklist, so there is nothing to prepare.
func (list *GroceryChecklist) SessionOpened(userID uint) {}

// SessionClosed implements SessionObserver.
func (list *GroceryChecklist) SessionClosed(userID uint) {
	list.Clear(userID)
}
