/*
 * Copyright (C) 2025 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package pex

// ModuleName is the name of this module.
const ModuleName = "PEX"

// Config holds the config for the PEX engine
type Config struct {
	// Workers is the maximum number of goroutines evaluating (input descriptor, credential) pairs in parallel.
	Workers int `koanf:"workers"`
	// ParallelThreshold is the minimum number of pairs before evaluation is done in parallel.
	ParallelThreshold int `koanf:"parallelthreshold"`
	// Definitions is the path of a JSON file mapping scopes to presentation definitions.
	Definitions string `koanf:"definitions"`
	// StoreSubmissions specifies whether produced presentation submissions are stored, so they can be retrieved by id.
	StoreSubmissions bool `koanf:"storesubmissions"`
}

// DefaultConfig returns a fresh Config filled with default values
func DefaultConfig() Config {
	return Config{
		Workers:           1,
		ParallelThreshold: 64,
		StoreSubmissions:  true,
	}
}
