package vt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFieldsStartAndAppend(t *testing.T) {
	f := newFields()
	require.True(t, f.IsEmpty())

	f.Start(38)
	f.Append(2)
	f.Append(255)
	f.Append(0)
	f.Append(0)
	f.Start(1)

	require.Equal(t, 6, f.Len())
	groups := f.Groups()
	require.Equal(t, [][]uint16{{38, 2, 255, 0, 0}, {1}}, groups)
}

func TestFieldsEmptyGroupIsNil(t *testing.T) {
	f := newFields()
	require.Nil(t, f.Groups())
	require.True(t, f.IsEmpty())
}

func TestFieldsAppendWithNoOpenGroupActsAsStart(t *testing.T) {
	f := newFields()
	f.Append(5)
	require.Equal(t, [][]uint16{{5}}, f.Groups())
}

func TestFieldsCapsAtMaxFields(t *testing.T) {
	f := newFields()
	for i := 0; i < maxFields+10; i++ {
		f.Start(uint16(i))
	}
	require.True(t, f.IsFull())
	require.Equal(t, maxFields, f.Len())
}

func TestFieldsResetClearsGroups(t *testing.T) {
	f := newFields()
	f.Start(1)
	f.Append(2)
	f.Reset()
	require.True(t, f.IsEmpty())
	require.Nil(t, f.Groups())
}

func TestFieldsGroupsAreIndependentSnapshots(t *testing.T) {
	f := newFields()
	f.Start(1)
	first := f.Groups()
	f.Reset()
	f.Start(99)
	// Mutating the scanner after taking a snapshot must not retroactively
	// change the earlier snapshot — callers (CSI/DCS dispatch) hold onto
	// the group slice past the Reset that follows dispatch.
	require.Equal(t, [][]uint16{{1}}, first)
}

func TestFieldsString(t *testing.T) {
	f := newFields()
	require.Equal(t, "Fields{}", f.String())
	f.Start(38)
	f.Append(5)
	f.Append(230)
	require.Equal(t, "Fields{38:5:230}", f.String())
}
