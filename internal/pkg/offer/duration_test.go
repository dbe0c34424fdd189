package offer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDurationMinutes(t *testing.T) {
	parseRequest := func(input string, want int) func(t *testing.T) {
		return func(t *testing.T) {
			assert.Equal(t, want, ParseDurationMinutes(input))
		}
	}

	t.Run("hours_and_minutes", parseRequest("PT5H30M", 330))
	t.Run("minutes_only", parseRequest("PT45M", 45))
	t.Run("hours_only", parseRequest("PT2H", 120))
	t.Run("empty", parseRequest("", 0))
	t.Run("missing_prefix", parseRequest("5H30M", 0))
	t.Run("garbage", parseRequest("PTXYZ", 0))
	t.Run("trailing_number_without_unit", parseRequest("PT5H30", 0))
	t.Run("zero_duration", parseRequest("PT", 0))
}

func TestFormatDuration(t *testing.T) {
	formatRequest := func(minutes int, want string) func(t *testing.T) {
		return func(t *testing.T) {
			assert.Equal(t, want, FormatDuration(minutes))
		}
	}

	t.Run("hours_and_minutes", formatRequest(125, "2h 5m"))
	t.Run("whole_hours", formatRequest(120, "2h"))
	t.Run("minutes_only", formatRequest(45, "45m"))
}

func TestTimeSlotOf(t *testing.T) {
	slotRequest := func(hour int, want TimeSlot) func(t *testing.T) {
		return func(t *testing.T) {
			assert.Equal(t, want, TimeSlotOf(hour))
		}
	}

	t.Run("early_morning", slotRequest(6, SlotMorning))
	t.Run("noon_is_afternoon", slotRequest(12, SlotAfternoon))
	t.Run("late_evening", slotRequest(23, SlotNight))
	t.Run("midnight", slotRequest(0, SlotNight))
	t.Run("evening_boundary", slotRequest(17, SlotEvening))
	t.Run("night_boundary", slotRequest(21, SlotNight))
}

// Every hour of the day must map to exactly one slot.
func TestTimeSlotOf_PartitionsDay(t *testing.T) {
	counts := map[TimeSlot]int{}
	for hour := 0; hour < 24; hour++ {
		counts[TimeSlotOf(hour)]++
	}

	assert.Equal(t, 7, counts[SlotMorning])
	assert.Equal(t, 5, counts[SlotAfternoon])
	assert.Equal(t, 4, counts[SlotEvening])
	assert.Equal(t, 8, counts[SlotNight])
}

func TestDepartureHour(t *testing.T) {
	hour, ok := DepartureHour("2024-03-15T14:35:00")
	assert.True(t, ok)
	assert.Equal(t, 14, hour)

	hour, ok = DepartureHour("2024-03-15T06:00:00+07:00")
	assert.True(t, ok)
	assert.Equal(t, 6, hour)

	_, ok = DepartureHour("not-a-timestamp")
	assert.False(t, ok)
}

func TestDepartureUnix_InvalidSortsEarliest(t *testing.T) {
	assert.Equal(t, int64(0), DepartureUnix("garbage"))
	assert.Greater(t, DepartureUnix("2024-03-15T08:00:00"), int64(0))
}
