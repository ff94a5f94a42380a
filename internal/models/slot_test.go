package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	// 09:00-10:30 vs 10:00-11:00 overlap by 30 minutes.
	assert.True(t, Overlaps(540, 630, 600, 660))
	// Touching intervals do not overlap: 09:00-10:00 vs 10:00-11:00.
	assert.False(t, Overlaps(540, 600, 600, 660))
	// Full containment.
	assert.True(t, Overlaps(540, 720, 600, 660))
	// Disjoint.
	assert.False(t, Overlaps(540, 600, 660, 720))
}

func TestApplyTypeDefaults(t *testing.T) {
	typ := SlotTypeB
	slot := Slot{Name: "Slot B", Type: &typ}
	slot.ApplyTypeDefaults()
	assert.Equal(t, "10:15", slot.StartTime)
	assert.Equal(t, "11:45", slot.EndTime)
}

func TestApplyTypeDefaultsKeepsExplicitTimes(t *testing.T) {
	typ := SlotTypeA
	slot := Slot{Name: "Early A", Type: &typ, StartTime: "08:00", EndTime: "09:30"}
	slot.ApplyTypeDefaults()
	assert.Equal(t, "08:00", slot.StartTime)
	assert.Equal(t, "09:30", slot.EndTime)
}

func TestApplyTypeDefaultsUntyped(t *testing.T) {
	slot := Slot{Name: "Custom"}
	slot.ApplyTypeDefaults()
	assert.Empty(t, slot.StartTime)
	assert.Empty(t, slot.EndTime)
}

func TestSlotWindow(t *testing.T) {
	slot := Slot{StartTime: "08:30", EndTime: "10:00"}
	start, end, err := slot.Window()
	require.NoError(t, err)
	assert.Equal(t, 510, start)
	assert.Equal(t, 600, end)
}
