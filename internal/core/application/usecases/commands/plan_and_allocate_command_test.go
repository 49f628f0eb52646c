package commands_test

import (
	"testing"

	"speedit/internal/core/application/usecases/commands"
	"speedit/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlanAndAllocateCommand_EmptyBatch(t *testing.T) {
	cmd, err := commands.NewPlanAndAllocateCommand(nil)
	require.NoError(t, err)
	assert.Empty(t, cmd.OrderIDs())
	require.NoError(t, cmd.Validate())
}

func TestNewPlanAndAllocateCommand_ExplicitBatch(t *testing.T) {
	ids := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}
	cmd, err := commands.NewPlanAndAllocateCommand(ids)
	require.NoError(t, err)
	assert.Equal(t, ids, cmd.OrderIDs())
}

func TestNewPlanAndAllocateCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewPlanAndAllocateCommand([]kernel.UUID{{}})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestPlanAndAllocateCommand_Validate_NotConstructed(t *testing.T) {
	cmd := commands.PlanAndAllocateCommand{}
	err := cmd.Validate()
	require.ErrorIs(t, err, commands.ErrPlanAndAllocateCommandIsNotConstructed)
}

func TestNewPlanAllocationCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewPlanAllocationCommand([]kernel.UUID{{}})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestPlanAllocationCommand_Validate_NotConstructed(t *testing.T) {
	cmd := commands.PlanAllocationCommand{}
	err := cmd.Validate()
	require.ErrorIs(t, err, commands.ErrPlanAllocationCommandIsNotConstructed)
}
