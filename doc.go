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

/*
Package fit decodes Garmin FIT (Flexible and Interoperable Data Transfer)
files: a binary, self-describing, streaming record format used by fitness
devices to record activities, workouts, settings, and telemetry.

# Overview

A FIT stream is a 12- or 14-byte header, a body of records, and a trailing
CRC-16. The body alternates between definition records, which declare the
shape of the data records that follow for a given local message type, and
data records, which carry the values described by the most recently seen
definition for their local message type. At most 16 local message types
(4 for compressed-timestamp records) are bound at any point in the stream.

Definitions resolve field numbers and base types against a static,
in-memory protocol profile (package profile/message and profile/basetype):
a dictionary derived from Garmin's published FIT profile, mapping a global
message number and field number to a name, optional scale/offset/units,
and optional subfield aliasing rules. An unresolved global message number
is not an error; its data lands under a message name of "unknown_<N>".

Developer-defined fields, introduced by a stream itself via
field_description (global message 206) and developer_data_id (global
message 207) records, are resolved against a runtime registry rather than
the static profile.

# Usage

	files, err := fit.Decode(r)
	if err != nil {
		// A decode error is always fatal to the whole stream; there is
		// no partial result to fall back to.
	}
	for _, record := range files[0].Messages["record"] {
		hr, _ := record.Get("heart_rate")
		_ = hr
	}

Decode always returns a slice, since a single physical file may concatenate
multiple self-contained FIT streams back to back (see Decoder).

# Scope

This package is the decoder only. It does not write FIT files, fetch them
over a network, or expand the "components" sub-protocol that decomposes a
packed integer field into several named sub-values — all explicitly out of
scope, matching the system this package was modeled on.
*/
package fit
