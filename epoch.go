/*
Copyright 2023 Alexander Bartolomey (github@alexanderbartolomey.de)

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package fit

import "time"

// fitEpochOffset is the number of seconds between the Unix epoch and the
// FIT epoch (1989-12-31T00:00:00Z).
const fitEpochOffset = 631065600

// Epoch converts raw FIT timestamp field values to time.Time. It is never
// applied automatically during decoding: timestamp conversion is optional
// post-processing, not part of the core decode path, so callers opt in
// explicitly.
type Epoch struct{}

// ToTime converts a raw FIT timestamp (seconds since the FIT epoch) to a
// UTC time.Time.
func (Epoch) ToTime(timestamp uint32) time.Time {
	return time.Unix(int64(timestamp)+fitEpochOffset, 0).UTC()
}

// applyCompressedOffset reconstructs a full timestamp from the previous
// full timestamp and a 5-bit compressed time offset, rolling over every 32
// seconds.
func applyCompressedOffset(previous uint32, offset uint8) uint32 {
	const mask = 0x1F
	last5 := previous & mask
	if uint32(offset) >= last5 {
		return (previous &^ uint32(mask)) + uint32(offset)
	}
	return (previous &^ uint32(mask)) + uint32(offset) + 0x20
}
