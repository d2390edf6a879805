package command

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linkbots/servolink/pkg/servo"
)

func TestSlotTakeEmpty(t *testing.T) {
	slot := NewSlot()
	_, ok := slot.Take()
	require.False(t, ok)
}

func TestSlotLatestWins(t *testing.T) {
	slot := NewSlot()
	slot.Put(10)
	slot.Put(20)
	slot.Put(30)
	a, ok := slot.Take()
	require.True(t, ok)
	require.Equal(t, servo.Angle(30), a)
	_, ok = slot.Take()
	require.False(t, ok)
}

func TestSlotReadySignal(t *testing.T) {
	slot := NewSlot()
	select {
	case <-slot.Ready():
		t.Fatal("ready before any Put")
	default:
	}
	slot.Put(90)
	slot.Put(91)
	select {
	case <-slot.Ready():
	default:
		t.Fatal("not ready after Put")
	}
	// coalesced: one signal per ready state
	select {
	case <-slot.Ready():
		t.Fatal("spurious second signal")
	default:
	}
	a, ok := slot.Take()
	require.True(t, ok)
	require.Equal(t, servo.Angle(91), a)
}

func TestSlotReuseAfterTake(t *testing.T) {
	slot := NewSlot()
	slot.Put(1)
	<-slot.Ready()
	_, ok := slot.Take()
	require.True(t, ok)
	slot.Put(2)
	select {
	case <-slot.Ready():
	default:
		t.Fatal("not ready after reuse")
	}
	a, ok := slot.Take()
	require.True(t, ok)
	require.Equal(t, servo.Angle(2), a)
}
