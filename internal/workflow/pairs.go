package workflow

import "taskboard/internal/model"

// Move is the resolution of a kanban drag from one column to another.
// Exactly one of the three outcomes applies:
//   - Action set, RequiresInput false: fire the action directly.
//   - Action set, RequiresInput true: the action needs input (submit needs
//     a comment), so the client opens the detail panel instead of firing.
//   - Noop true: the pair is not in the table or the target column is
//     read-only; nothing is sent and nothing changes.
type Move struct {
	Action        string
	RequiresInput bool
	Noop          bool
}

type pair struct {
	from, to string
}

// movePairs maps a (source column, destination column) drag to the table
// action it stands for. under_review and completed are read-only sinks:
// no pair targets them except the submit pair, which never fires directly.
var movePairs = map[pair]Move{
	{model.StatusAssigned, model.StatusInProgress}:    {Action: ActionStart},
	{model.StatusInProgress, model.StatusUnderReview}: {Action: ActionSubmit, RequiresInput: true},
	{model.StatusReturned, model.StatusInProgress}:    {Action: ActionRestart},
}

// ResolveMove infers a transition from a kanban drag. Unknown pairs are
// no-ops, never errors: the drop is visually accepted but produces no
// request downstream.
func ResolveMove(from, to string) Move {
	if m, ok := movePairs[pair{from, to}]; ok {
		return m
	}
	return Move{Noop: true}
}

// KanbanColumns lists the five board columns in display order.
func KanbanColumns() []string {
	return []string{
		model.StatusAssigned,
		model.StatusInProgress,
		model.StatusUnderReview,
		model.StatusReturned,
		model.StatusCompleted,
	}
}

// ReadOnlyColumn reports whether a column accepts no drops at all.
func ReadOnlyColumn(status string) bool {
	return status == model.StatusUnderReview || status == model.StatusCompleted
}
