package container_test

import (
	"testing"

	"github.com/aretw0/metachem/pkg/container"
	"github.com/aretw0/metachem/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkForwarding(t *testing.T) {
	a := container.NewList("a", domain.KindSample)
	b := container.NewStack("b", domain.KindSample)
	link := container.NewLink("bond_sample", domain.KindSample)

	_, err := link.Read()
	assert.ErrorIs(t, err, domain.ErrNoTarget)

	require.NoError(t, link.Bind(a))
	require.NoError(t, link.Add("x"))
	snap, _ := a.Read()
	assert.Equal(t, []any{"x"}, snap.Items)

	require.NoError(t, link.Bind(b))
	require.NoError(t, link.Add("y"))
	snap, _ = a.Read()
	assert.Equal(t, []any{"x"}, snap.Items, "a must not change after rebinding")
	snap, _ = link.Read()
	assert.Equal(t, []any{"y"}, snap.Items)

	require.NoError(t, link.Remove("y"))
	assert.Equal(t, 0, b.Len())

	link.Unbind()
	assert.Nil(t, link.Target())
	assert.ErrorIs(t, link.Add("z"), domain.ErrNoTarget)
	assert.ErrorIs(t, link.Remove("z"), domain.ErrNoTarget)
}

func TestLinkBindValidation(t *testing.T) {
	link := container.NewLink("l", domain.KindSample)

	err := link.Bind(container.NewList("env", domain.KindEnvironment))
	require.ErrorIs(t, err, domain.ErrIncompatibleRole)

	assert.ErrorIs(t, link.Bind(nil), domain.ErrNoTarget)
	assert.ErrorIs(t, link.Bind(link), domain.ErrInvalidEdge)
}
