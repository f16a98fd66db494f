package statemachine

import (
	"errors"
	"fmt"
	"strings"

	"food-delivery-admin/models"
)

var (
	// ErrTerminal is returned for any transition out of delivered or canceled.
	ErrTerminal = errors.New("order is in a terminal state")
	// ErrInvalidTransition is returned for edges the table does not define.
	ErrInvalidTransition = errors.New("invalid transition")
)

// Transition defines a valid state change
type Transition struct {
	From models.OrderStatus `json:"from"`
	To   models.OrderStatus `json:"to"`
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Forward path
	{From: models.StatusPending, To: models.StatusPreparing},
	{From: models.StatusPreparing, To: models.StatusOnTheWay},
	{From: models.StatusOnTheWay, To: models.StatusDelivered},
	// Any open order can be canceled
	{From: models.StatusPending, To: models.StatusCanceled},
	{From: models.StatusPreparing, To: models.StatusCanceled},
	{From: models.StatusOnTheWay, To: models.StatusCanceled},
}

var transitionMap = func() map[Transition]bool {
	m := make(map[Transition]bool, len(validTransitions))
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

// IsTerminal reports whether no transition leaves status.
func IsTerminal(status models.OrderStatus) bool {
	return status == models.StatusDelivered || status == models.StatusCanceled
}

// IsKnown reports whether status is one of the defined order statuses.
func IsKnown(status models.OrderStatus) bool {
	for _, s := range models.AllStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransition checks whether an order may move from one state to another.
// Terminal sources wrap ErrTerminal.
func CanTransition(from, to models.OrderStatus) error {
	if IsTerminal(from) {
		return fmt.Errorf("%w: %s", ErrTerminal, from)
	}
	if !IsKnown(to) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, to)
	}
	if transitionMap[Transition{From: from, To: to}] {
		return nil
	}
	return fmt.Errorf("%w: %s → %s. Valid transitions from %s are: %s",
		ErrInvalidTransition, from, to, from, describeValidFrom(from))
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	out := make([]Transition, len(validTransitions))
	copy(out, validTransitions)
	return out
}
