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

// Package bcd handles the binary-coded-decimal encoding used by the MM58167
// clock registers. Each nibble of a BCD byte holds one decimal digit, so the
// decimal number 59 is encoded as 0x59.
//
// The functions in this package assume well formed BCD input. The clock
// registers are kept in range by construction so malformed values (a nibble
// of 10 or more) never appear in practice.
package bcd

// ToBCD encodes a decimal number in the range 0 to 99 as a BCD byte.
func ToBCD(n int) uint8 {
	return uint8(((n / 10) << 4) | (n % 10))
}

// FromBCD decodes a BCD byte, treating each nibble as a decimal digit.
func FromBCD(b uint8) int {
	return int(b>>4)*10 + int(b&0x0f)
}

// Add increments a BCD byte by the specified number of decimal steps,
// carrying between nibbles. For example Add(0x09, 1) is 0x10 and not 0x0a.
func Add(b uint8, step int) uint8 {
	return ToBCD(FromBCD(b) + step)
}
