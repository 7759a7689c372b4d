package qr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrforge/internal/plan"
)

func TestRequiredTier(t *testing.T) {
	assert.Equal(t, plan.Free, RequiredTier(TypeStandard))
	assert.Equal(t, plan.Free, RequiredTier(TypeMicro))
	assert.Equal(t, plan.Pro, RequiredTier(TypeCompact))
	assert.Equal(t, plan.Pro, RequiredTier(TypeCustom))
	assert.Equal(t, plan.Business, RequiredTier(TypeHolographic))
	assert.Equal(t, plan.Business, RequiredTier(TypeCube3D))
	assert.Equal(t, plan.Business, RequiredTier("qr5d"), "unknown types gate at business")
}

func TestCheckAccess(t *testing.T) {
	assert.NoError(t, CheckAccess(plan.Free, TypeStandard))
	assert.NoError(t, CheckAccess(plan.Pro, TypeCustom))
	assert.NoError(t, CheckAccess(plan.Enterprise, TypeCube3D))

	err := CheckAccess(plan.Free, TypeHolographic)
	require.Error(t, err)
	assert.True(t, IsPlanForbidden(err))

	qe, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, plan.Business, qe.RequiredPlan)
	assert.Contains(t, qe.Message, "business")

	err = CheckAccess(plan.Pro, TypeHolographic)
	assert.True(t, IsPlanForbidden(err), "pro is still below business")
}
