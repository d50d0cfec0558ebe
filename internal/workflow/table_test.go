package workflow_test

import (
	"testing"

	"taskboard/internal/model"
	"taskboard/internal/workflow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLookup_AllTableRows(t *testing.T) {
	cases := []struct {
		from, action, actor, to string
		needsComment            bool
	}{
		{model.StatusAssigned, workflow.ActionStart, workflow.ActorOwner, model.StatusInProgress, false},
		{model.StatusInProgress, workflow.ActionSubmit, workflow.ActorOwner, model.StatusUnderReview, true},
		{model.StatusUnderReview, workflow.ActionApprove, workflow.ActorDirector, model.StatusCompleted, false},
		{model.StatusUnderReview, workflow.ActionDeny, workflow.ActorDirector, model.StatusReturned, true},
		{model.StatusReturned, workflow.ActionRestart, workflow.ActorOwner, model.StatusInProgress, false},
	}

	for _, c := range cases {
		rule, err := workflow.Lookup(c.from, c.action, c.actor)
		assert.NoError(t, err, "%s from %s", c.action, c.from)
		assert.Equal(t, c.to, rule.To)
		assert.Equal(t, c.needsComment, rule.NeedsComment)
	}
}

func TestLookup_RejectsWrongActor(t *testing.T) {
	// The director cannot start work and the owner cannot approve it.
	_, err := workflow.Lookup(model.StatusAssigned, workflow.ActionStart, workflow.ActorDirector)
	assert.ErrorIs(t, err, workflow.ErrNotAllowed)

	_, err = workflow.Lookup(model.StatusUnderReview, workflow.ActionApprove, workflow.ActorOwner)
	assert.ErrorIs(t, err, workflow.ErrNotAllowed)
}

func TestLookup_RejectsWrongStatus(t *testing.T) {
	_, err := workflow.Lookup(model.StatusCompleted, workflow.ActionStart, workflow.ActorOwner)
	assert.ErrorIs(t, err, workflow.ErrNotAllowed)

	_, err = workflow.Lookup(model.StatusAssigned, workflow.ActionSubmit, workflow.ActorOwner)
	assert.ErrorIs(t, err, workflow.ErrNotAllowed)
}

func TestLookup_Delete(t *testing.T) {
	for _, status := range []string{
		model.StatusAssigned,
		model.StatusInProgress,
		model.StatusUnderReview,
		model.StatusReturned,
	} {
		_, err := workflow.Lookup(status, workflow.ActionDelete, workflow.ActorDirector)
		assert.NoError(t, err, "delete from %s", status)
	}

	// Completed tasks are not deletable, and owners never delete.
	_, err := workflow.Lookup(model.StatusCompleted, workflow.ActionDelete, workflow.ActorDirector)
	assert.ErrorIs(t, err, workflow.ErrNotAllowed)

	_, err = workflow.Lookup(model.StatusAssigned, workflow.ActionDelete, workflow.ActorOwner)
	assert.ErrorIs(t, err, workflow.ErrNotAllowed)
}

func TestAllowedActions_MatchTableExactly(t *testing.T) {
	cases := []struct {
		status, actor string
		want          []string
	}{
		{model.StatusAssigned, workflow.ActorOwner, []string{workflow.ActionStart}},
		{model.StatusAssigned, workflow.ActorDirector, []string{workflow.ActionDelete}},
		{model.StatusInProgress, workflow.ActorOwner, []string{workflow.ActionSubmit}},
		{model.StatusUnderReview, workflow.ActorDirector, []string{workflow.ActionApprove, workflow.ActionDeny, workflow.ActionDelete}},
		{model.StatusUnderReview, workflow.ActorOwner, nil},
		{model.StatusReturned, workflow.ActorOwner, []string{workflow.ActionRestart}},
		{model.StatusCompleted, workflow.ActorOwner, nil},
		{model.StatusCompleted, workflow.ActorDirector, nil},
	}

	for _, c := range cases {
		got := workflow.AllowedActions(c.status, c.actor)
		assert.Equal(t, c.want, got, "%s as %s", c.status, c.actor)
	}
}

func TestActorFor(t *testing.T) {
	ownerID := uuid.New()
	task := &model.Task{OwnerID: ownerID}

	assert.Equal(t, workflow.ActorOwner, workflow.ActorFor(task, ownerID, model.RoleWorker))
	assert.Equal(t, workflow.ActorDirector, workflow.ActorFor(task, uuid.New(), model.RoleDirector))
	assert.Equal(t, "", workflow.ActorFor(task, uuid.New(), model.RoleWorker))

	// A director assigned to their own task acts as its owner.
	assert.Equal(t, workflow.ActorOwner, workflow.ActorFor(task, ownerID, model.RoleDirector))
}
