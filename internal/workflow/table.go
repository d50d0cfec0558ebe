package workflow

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"taskboard/internal/model"
)

// Actions a task can go through. Delete is role-gated like the rest but
// removes the task instead of moving it to another status.
const (
	ActionStart   = "start"
	ActionSubmit  = "submit"
	ActionApprove = "approve"
	ActionDeny    = "deny"
	ActionRestart = "restart"
	ActionDelete  = "delete"
)

// Actor identifies who is performing an action relative to the task:
// its owner or its director.
const (
	ActorOwner    = "owner"
	ActorDirector = "director"
)

var (
	// ErrNotAllowed is returned when (status, action, actor) has no row
	// in the transition table.
	ErrNotAllowed = errors.New("transition not allowed")
)

// Rule is one row of the transition table.
type Rule struct {
	From         string
	Action       string
	Actor        string
	To           string
	NeedsComment bool
}

// rules is the authoritative transition table. Both the status endpoint
// and the kanban move inference consult this single object so the two
// input modalities cannot diverge.
var rules = []Rule{
	{From: model.StatusAssigned, Action: ActionStart, Actor: ActorOwner, To: model.StatusInProgress},
	{From: model.StatusInProgress, Action: ActionSubmit, Actor: ActorOwner, To: model.StatusUnderReview, NeedsComment: true},
	{From: model.StatusUnderReview, Action: ActionApprove, Actor: ActorDirector, To: model.StatusCompleted},
	{From: model.StatusUnderReview, Action: ActionDeny, Actor: ActorDirector, To: model.StatusReturned, NeedsComment: true},
	{From: model.StatusReturned, Action: ActionRestart, Actor: ActorOwner, To: model.StatusInProgress},
}

// deletableFrom lists the statuses a director may delete a task from:
// every status except completed.
var deletableFrom = map[string]bool{
	model.StatusAssigned:    true,
	model.StatusInProgress:  true,
	model.StatusUnderReview: true,
	model.StatusReturned:    true,
}

// Lookup resolves (status, action, actor) to its table row.
// Delete is answered from the table as well so callers gate it the same way.
func Lookup(status, action, actor string) (Rule, error) {
	if action == ActionDelete {
		if actor == ActorDirector && deletableFrom[status] {
			return Rule{From: status, Action: ActionDelete, Actor: ActorDirector}, nil
		}
		return Rule{}, fmt.Errorf("%w: %s from %s as %s", ErrNotAllowed, action, status, actor)
	}
	for _, r := range rules {
		if r.From == status && r.Action == action && r.Actor == actor {
			return r, nil
		}
	}
	return Rule{}, fmt.Errorf("%w: %s from %s as %s", ErrNotAllowed, action, status, actor)
}

// AllowedActions returns the actions legal for a task in the given status
// as seen by the given actor. The detail panel renders exactly this set.
func AllowedActions(status, actor string) []string {
	var out []string
	for _, r := range rules {
		if r.From == status && r.Actor == actor {
			out = append(out, r.Action)
		}
	}
	if actor == ActorDirector && deletableFrom[status] {
		out = append(out, ActionDelete)
	}
	return out
}

// ActorFor maps a viewer to their actor role on a task. Ownership wins:
// a director is only the workflow "owner" of a task actually assigned
// to them. An unrelated worker gets no actor role at all.
func ActorFor(t *model.Task, userID uuid.UUID, role string) string {
	if t.OwnerID == userID {
		return ActorOwner
	}
	if role == model.RoleDirector {
		return ActorDirector
	}
	return ""
}
