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

package rtc

import (
	"github.com/modeldemu/modeld/hardware/rtc/bcd"
	"github.com/modeldemu/modeld/logger"
)

// yearEpoch is the calendar year represented by a zero year register. The
// DOS clock driver adds the same base when it displays the date.
const yearEpoch = 1980

// load seeds the time and date registers from the host clock. Registers
// outside the time and date group are left alone; in particular the alarm
// and interrupt control registers keep their values.
//
// The host clock always wins. There is no path by which the chip's registers
// are committed back to the host.
func (r *RTC) load() {
	now := r.tod.Now()

	// sub-second counters are not tracked
	r.regs[Milliseconds] = 0
	r.regs[Hundredths] = 0

	r.regs[Seconds] = bcd.ToBCD(now.Second())
	r.regs[Minutes] = bcd.ToBCD(now.Minute())
	r.regs[Hours] = bcd.ToBCD(now.Hour())

	// the chip numbers weekdays 1 to 7 and months 1 to 12. time.Weekday is
	// zero based, time.Month is not
	r.regs[DayOfWeek] = bcd.ToBCD(int(now.Weekday()) + 1)
	r.regs[DayOfMonth] = bcd.ToBCD(now.Day())
	r.regs[Month] = bcd.ToBCD(int(now.Month()))

	if r.yearReg != NoYearRegister {
		y := (now.Year() - yearEpoch) % 100
		if y < 0 {
			y += 100
		}
		r.regs[r.yearReg] = bcd.ToBCD(y)
	}

	logger.Logf(r.env, "rtc", "clock set to %s", now.Format("2006-01-02 15:04:05"))
}

// Reset clears the entire register bank and reloads the time and date from
// the host clock. The same sequence is triggered by a write to the reset RAM
// register.
func (r *RTC) Reset() {
	for i := range r.regs {
		r.regs[i] = 0
	}
	r.load()
}
