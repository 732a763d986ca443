package reference

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadCapacity(t *testing.T) {
	_, err := New(0)
	require.ErrorIs(t, err, ErrBadCapacity)
}

func TestAddFillsInOrder(t *testing.T) {
	s, err := New(3)
	require.NoError(t, err)

	require.True(t, s.Add("cat"))
	require.True(t, s.Add("dog"))
	require.Equal(t, 2, s.Len())
	require.Equal(t, []Cell{
		{Filled: true, Text: "cat"},
		{Filled: true, Text: "dog"},
		{},
	}, s.Snapshot())

	require.True(t, s.Contains("cat"))
	require.False(t, s.Contains("cow"))
	require.False(t, s.Contains(""))
}

func TestAddWhenFull(t *testing.T) {
	s, err := New(2)
	require.NoError(t, err)
	require.True(t, s.Add("a"))
	require.True(t, s.Add("b"))

	require.False(t, s.Add("c"))
	require.False(t, s.Contains("c"))
	require.Equal(t, 2, s.Len())
}

func TestResetAndSnapshotCopy(t *testing.T) {
	s, err := New(2)
	require.NoError(t, err)
	s.Add("cat")

	snap := s.Snapshot()
	snap[0].Text = "changed"
	require.True(t, s.Contains("cat"))

	s.Reset()
	require.Zero(t, s.Len())
	require.False(t, s.Contains("cat"))
	require.Equal(t, 2, s.Capacity())
	require.Equal(t, []Cell{{}, {}}, s.Snapshot())
}
