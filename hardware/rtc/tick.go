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
)

// Tick advances the clock by one second, cascading any rollover through the
// minute, hour, day, month and year registers. Conditions enabled in the
// interrupt control register are collected into the interrupt status register
// and, if any occurred, the interrupt line is raised.
//
// Counting is decimal throughout, working directly on the BCD register
// values. The cascade stops at the first field that does not overflow.
func (r *RTC) Tick() {
	var pending uint8

	ctrl := r.regs[IntControl]

	r.regs[Seconds] = bcd.Add(r.regs[Seconds], 1)
	if ctrl&IntSecond != 0 {
		pending |= IntSecond
	}

	if r.regs[Seconds] >= bcd.ToBCD(60) {
		r.regs[Seconds] = bcd.ToBCD(0)
		r.regs[Minutes] = bcd.Add(r.regs[Minutes], 1)
		if ctrl&IntMinute != 0 {
			pending |= IntMinute
		}

		if r.regs[Minutes] >= bcd.ToBCD(60) {
			r.regs[Minutes] = bcd.ToBCD(0)
			r.regs[Hours] = bcd.Add(r.regs[Hours], 1)
			if ctrl&IntHour != 0 {
				pending |= IntHour
			}

			if r.regs[Hours] >= bcd.ToBCD(24) {
				r.regs[Hours] = bcd.ToBCD(0)

				r.regs[DayOfWeek] = bcd.Add(r.regs[DayOfWeek], 1)
				if ctrl&IntDay != 0 {
					pending |= IntDay
				}
				if r.regs[DayOfWeek] > bcd.ToBCD(7) {
					r.regs[DayOfWeek] = bcd.ToBCD(1)
					if ctrl&IntWeek != 0 {
						pending |= IntWeek
					}
				}

				// the month length depends on the live month and year
				// registers, so leap years are honoured for the current
				// cycle
				r.regs[DayOfMonth] = bcd.Add(r.regs[DayOfMonth], 1)
				mon := bcd.FromBCD(r.regs[Month])
				year := yearEpoch
				if r.yearReg != NoYearRegister {
					year += bcd.FromBCD(r.regs[r.yearReg])
				}

				if bcd.FromBCD(r.regs[DayOfMonth]) > daysInMonth(mon, year) {
					r.regs[DayOfMonth] = bcd.ToBCD(1)
					r.regs[Month] = bcd.Add(r.regs[Month], 1)
					if ctrl&IntMonth != 0 {
						pending |= IntMonth
					}

					if r.regs[Month] > bcd.ToBCD(12) {
						r.regs[Month] = bcd.ToBCD(1)

						if r.yearReg != NoYearRegister {
							r.regs[r.yearReg] = bcd.Add(r.regs[r.yearReg], 1)

							// century rollover. 99 wraps to 00, there is no
							// higher order storage
							if r.regs[r.yearReg] >= bcd.ToBCD(100) {
								r.regs[r.yearReg] = bcd.ToBCD(0)
							}
						}
					}
				}
			}
		}
	}

	if r.alarmMatch() {
		pending |= IntCompare
	}

	if pending != 0 {
		r.regs[IntStatus] |= pending
		if r.irq != nil {
			r.irq.Raise()
		}
	}
}

// fieldMatch compares a live register to its alarm counterpart. A field
// matches if the values are equal or if the don't-care bits are set in the
// alarm register.
func (r *RTC) fieldMatch(alarm int) bool {
	return r.regs[alarm-AlarmSeconds+Seconds] == r.regs[alarm] ||
		r.regs[alarm]&AlarmDontCare == AlarmDontCare
}

// alarmMatch reports whether every alarm field matches its live register.
// The day-of-week and sub-second fields are not part of the compare. Note
// that on this machine the day-of-month alarm register doubles as the year
// store, so that comparison is in practice against the year value - the DOS
// driver sets the don't-care bits when it programs an alarm.
func (r *RTC) alarmMatch() bool {
	return r.fieldMatch(AlarmSeconds) &&
		r.fieldMatch(AlarmMinutes) &&
		r.fieldMatch(AlarmHours) &&
		r.fieldMatch(AlarmDayOfMonth) &&
		r.fieldMatch(AlarmMonth)
}

var daysPerMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// daysInMonth for months numbered 1 to 12. February length follows the full
// Gregorian leap rule, so the year 2000 is a leap year while 2100 is not.
func daysInMonth(month int, year int) int {
	if month == 2 && leapYear(year) {
		return 29
	}
	return daysPerMonth[month-1]
}

func leapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
