package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"opsdash/internal/workflow"
)

func TestStage_Next(t *testing.T) {
	require.Equal(t, workflow.StagePackaging, workflow.StageCollection.Next())
	require.Equal(t, workflow.StageDelivery, workflow.StagePackaging.Next())
	require.Equal(t, workflow.StagePricing, workflow.StageDelivery.Next())
	require.Equal(t, workflow.StagePricing, workflow.StagePricing.Next())
}

func TestStage_Advance_ForwardOnly(t *testing.T) {
	require.NoError(t, workflow.StageDelivery.Advance(workflow.StagePricing))

	require.Error(t, workflow.StagePricing.Advance(workflow.StageDelivery))
	require.Error(t, workflow.StageCollection.Advance(workflow.StageDelivery))
	require.Error(t, workflow.StageDelivery.Advance(workflow.StageDelivery))
	require.Error(t, workflow.Stage("weighing").Advance(workflow.StagePricing))
}
