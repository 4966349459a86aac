package model

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestSeatLayoutShape(t *testing.T) {
    layout := SeatLayout()
    assert.Len(t, layout, 3)
    for i, row := range layout {
        assert.Len(t, row, SeatsPerRow)
        assert.Equal(t, SeatRows[i]+"1", row[0])
        assert.Equal(t, SeatRows[i]+"10", row[len(row)-1])
    }
}

func TestValidSeatCode(t *testing.T) {
    for _, code := range []string{"S1", "M7", "U10"} {
        assert.True(t, ValidSeatCode(code), code)
    }
    for _, code := range []string{"", "S0", "S11", "X5", "s1", "M"} {
        assert.False(t, ValidSeatCode(code), code)
    }
}

func TestValidTimeSlot(t *testing.T) {
    assert.Len(t, TimeSlots, 5)
    for _, slot := range TimeSlots {
        assert.True(t, ValidTimeSlot(slot), slot)
    }
    assert.False(t, ValidTimeSlot("2:30 PM"))
    assert.False(t, ValidTimeSlot(""))
}
