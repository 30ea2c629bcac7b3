// This file is part of ModelD.
//
// ModelD is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ModelD is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ModelD.  If not, see <https://www.gnu.org/licenses/>.

package rtc_test

import (
	"testing"
	"time"

	"github.com/modeldemu/modeld/hardware/rtc"
	"github.com/modeldemu/modeld/test"
)

func TestAlarmWildcard(t *testing.T) {
	r, pb, _ := newTestRTC(t, time.Date(2025, time.November, 1, 12, 0, 0, 0, time.UTC))

	// alarm on seconds == 30 with every other field on don't-care. the
	// compare condition fires once a minute, on the tick where the seconds
	// register reaches the alarm value
	poke(t, pb, rtc.AlarmSeconds, 0x30)
	poke(t, pb, rtc.AlarmMinutes, rtc.AlarmDontCare)
	poke(t, pb, rtc.AlarmHours, rtc.AlarmDontCare)
	poke(t, pb, rtc.AlarmDayOfMonth, rtc.AlarmDontCare)
	poke(t, pb, rtc.AlarmMonth, rtc.AlarmDontCare)

	matches := 0
	for i := 0; i < 120; i++ {
		r.Tick()
		if peek(t, pb, rtc.IntStatus)&rtc.IntCompare == rtc.IntCompare {
			matches++

			// the compare fires on the expected seconds value only
			test.Equate(t, peek(t, pb, rtc.Seconds), 0x30)
		}
		poke(t, pb, rtc.IntStatus, 0x00)
	}

	// two minutes, two matches
	test.Equate(t, matches, 2)
}

func TestAlarmExactMatch(t *testing.T) {
	r, pb, irq := newTestRTC(t, time.Date(2025, time.November, 1, 18, 43, 27, 0, time.UTC))

	// the alarm day-of-month register holds the year on this machine, so an
	// exact five field match must include the year value in that slot
	poke(t, pb, rtc.AlarmSeconds, 0x28)
	poke(t, pb, rtc.AlarmMinutes, 0x43)
	poke(t, pb, rtc.AlarmHours, 0x18)
	poke(t, pb, rtc.AlarmDayOfMonth, rtc.AlarmDontCare)
	poke(t, pb, rtc.AlarmMonth, 0x11)

	r.Tick()

	test.Equate(t, peek(t, pb, rtc.IntStatus), rtc.IntCompare)
	test.Equate(t, irq.raised, 1)
}

func TestAlarmNoMatch(t *testing.T) {
	r, pb, irq := newTestRTC(t, time.Date(2025, time.November, 1, 18, 43, 27, 0, time.UTC))

	// one field out by one, no wildcards to save it
	poke(t, pb, rtc.AlarmSeconds, 0x29)
	poke(t, pb, rtc.AlarmMinutes, 0x43)
	poke(t, pb, rtc.AlarmHours, 0x18)
	poke(t, pb, rtc.AlarmDayOfMonth, rtc.AlarmDontCare)
	poke(t, pb, rtc.AlarmMonth, 0x11)

	r.Tick()

	test.Equate(t, peek(t, pb, rtc.IntStatus), 0x00)
	test.Equate(t, irq.raised, 0)
}

func TestAlarmAllFieldsConsulted(t *testing.T) {
	r, pb, _ := newTestRTC(t, time.Date(2025, time.November, 1, 18, 43, 27, 0, time.UTC))

	// a full wildcard alarm matches on every tick
	poke(t, pb, rtc.AlarmSeconds, rtc.AlarmDontCare)
	poke(t, pb, rtc.AlarmMinutes, rtc.AlarmDontCare)
	poke(t, pb, rtc.AlarmHours, rtc.AlarmDontCare)
	poke(t, pb, rtc.AlarmDayOfMonth, rtc.AlarmDontCare)
	poke(t, pb, rtc.AlarmMonth, rtc.AlarmDontCare)

	for i := 0; i < 3; i++ {
		r.Tick()
		test.Equate(t, peek(t, pb, rtc.IntStatus)&rtc.IntCompare, rtc.IntCompare)
		poke(t, pb, rtc.IntStatus, 0x00)
	}

	// clearing one wildcard breaks the match
	poke(t, pb, rtc.AlarmMonth, 0x00)
	r.Tick()
	test.Equate(t, peek(t, pb, rtc.IntStatus), 0x00)
}
