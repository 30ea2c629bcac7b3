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

package version

// The name to use when referring to the application
const ApplicationName = "ModelD"

// if version is empty then the project was probably not built using the
// makefile
var version string

// Version returns the version string for the project. the version string is
// set at build time
func Version() string {
	if version == "" {
		return "unreleased"
	}
	return version
}
