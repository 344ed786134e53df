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

// Package message holds the static FIT message and field profile tables: the
// dictionary that maps a global message number and a field number inside it
// to a human-readable name, scale/offset, units, and subfield aliasing
// rules. The decoder consumes this table; it never writes to it.
package message

import "sync"

// Ref names a field and the numeric value it must carry for a Subfield to
// apply.
type Ref struct {
	FieldName   string
	ValueNumber int64
}

// Subfield aliases a field's already-decoded value under a second name when
// one of Refs matches the corresponding field's stored value, e.g. the
// file_id message's "product" field is also exposed as "garmin_product"
// when "manufacturer" decoded to the value naming Garmin.
type Subfield struct {
	Name string
	Refs []Ref
}

// FieldProfile describes one field number inside a message.
type FieldProfile struct {
	Number     uint8
	Name       string
	Scale      *float64
	ScaleArray []float64
	Offset     *float64
	Units      string
	Array      bool
	Components []string
	Subfields  []Subfield
}

// MessageProfile describes one FIT global message number.
type MessageProfile struct {
	Number uint16
	Name   string
	Group  string
	Fields map[uint8]FieldProfile
}

func scale(v float64) *float64  { return &v }
func offset(v float64) *float64 { return &v }

// registry is the built-in table; only Register (used by LoadOverlay)
// changes it. Lookup caches a per-number clone after first use and hands
// each caller its own copy, so callers can't corrupt it by mutating a
// returned Fields map.
var registry = map[uint16]MessageProfile{
	0: { // file_id
		Number: 0,
		Name:   "file_id",
		Group:  "common",
		Fields: map[uint8]FieldProfile{
			0: {Number: 0, Name: "type"},
			1: {Number: 1, Name: "manufacturer"},
			2: {Number: 2, Name: "product", Subfields: []Subfield{
				{Name: "garmin_product", Refs: []Ref{{FieldName: "manufacturer", ValueNumber: 15}}},
			}},
			3: {Number: 3, Name: "serial_number"},
			4: {Number: 4, Name: "time_created"},
		},
	},
	18: { // session
		Number: 18,
		Name:   "session",
		Group:  "activity",
		Fields: map[uint8]FieldProfile{
			253: {Number: 253, Name: "timestamp"},
			2:   {Number: 2, Name: "start_time"},
			7:   {Number: 7, Name: "total_elapsed_time", Scale: scale(1000)},
			8:   {Number: 8, Name: "total_timer_time", Scale: scale(1000)},
			9:   {Number: 9, Name: "total_distance", Scale: scale(100)},
			11:  {Number: 11, Name: "total_calories"},
			14:  {Number: 14, Name: "avg_speed", Scale: scale(1000)},
			15:  {Number: 15, Name: "max_speed", Scale: scale(1000)},
			16:  {Number: 16, Name: "avg_heart_rate"},
			17:  {Number: 17, Name: "max_heart_rate"},
			18:  {Number: 18, Name: "avg_cadence"},
			19:  {Number: 19, Name: "max_cadence"},
		},
	},
	19: { // lap
		Number: 19,
		Name:   "lap",
		Group:  "activity",
		Fields: map[uint8]FieldProfile{
			253: {Number: 253, Name: "timestamp"},
			2:   {Number: 2, Name: "start_time"},
			7:   {Number: 7, Name: "total_elapsed_time", Scale: scale(1000)},
			8:   {Number: 8, Name: "total_timer_time", Scale: scale(1000)},
			9:   {Number: 9, Name: "total_distance", Scale: scale(100)},
			15:  {Number: 15, Name: "avg_heart_rate"},
			16:  {Number: 16, Name: "max_heart_rate"},
		},
	},
	20: { // record
		Number: 20,
		Name:   "record",
		Group:  "activity",
		Fields: map[uint8]FieldProfile{
			253: {Number: 253, Name: "timestamp"},
			0:   {Number: 0, Name: "position_lat"},
			1:   {Number: 1, Name: "position_long"},
			2:   {Number: 2, Name: "altitude", Scale: scale(5), Offset: offset(500)},
			3:   {Number: 3, Name: "heart_rate"},
			4:   {Number: 4, Name: "cadence"},
			5:   {Number: 5, Name: "distance", Scale: scale(100)},
			6:   {Number: 6, Name: "speed", Scale: scale(1000)},
			7:   {Number: 7, Name: "power"},
			13:  {Number: 13, Name: "temperature"},
		},
	},
	21: { // event
		Number: 21,
		Name:   "event",
		Group:  "activity",
		Fields: map[uint8]FieldProfile{
			253: {Number: 253, Name: "timestamp"},
			0:   {Number: 0, Name: "event"},
			1:   {Number: 1, Name: "event_type"},
			2:   {Number: 2, Name: "data16"},
			3:   {Number: 3, Name: "data"},
			4:   {Number: 4, Name: "event_group"},
		},
	},
	23: { // device_info
		Number: 23,
		Name:   "device_info",
		Group:  "device",
		Fields: map[uint8]FieldProfile{
			253: {Number: 253, Name: "timestamp"},
			0:   {Number: 0, Name: "device_index"},
			1:   {Number: 1, Name: "device_type"},
			2:   {Number: 2, Name: "manufacturer"},
			3:   {Number: 3, Name: "serial_number"},
			4:   {Number: 4, Name: "product"},
			5:   {Number: 5, Name: "software_version", Scale: scale(100)},
			6:   {Number: 6, Name: "hardware_version"},
		},
	},
	34: { // activity
		Number: 34,
		Name:   "activity",
		Group:  "activity",
		Fields: map[uint8]FieldProfile{
			253: {Number: 253, Name: "timestamp"},
			0:   {Number: 0, Name: "total_timer_time", Scale: scale(1000)},
			1:   {Number: 1, Name: "num_sessions"},
			2:   {Number: 2, Name: "type"},
			3:   {Number: 3, Name: "event"},
			4:   {Number: 4, Name: "event_type"},
			5:   {Number: 5, Name: "local_timestamp"},
		},
	},
	206: { // field_description
		Number: 206,
		Name:   "field_description",
		Group:  "developer",
		Fields: map[uint8]FieldProfile{
			0:  {Number: 0, Name: "developer_data_index"},
			1:  {Number: 1, Name: "field_definition_number"},
			2:  {Number: 2, Name: "fit_base_type_id"},
			3:  {Number: 3, Name: "field_name"},
			4:  {Number: 4, Name: "array"},
			5:  {Number: 5, Name: "components"},
			6:  {Number: 6, Name: "scale"},
			7:  {Number: 7, Name: "offset"},
			8:  {Number: 8, Name: "units"},
			9:  {Number: 9, Name: "bits"},
			10: {Number: 10, Name: "accumulate"},
			14: {Number: 14, Name: "native_mesg_num"},
			15: {Number: 15, Name: "native_field_num"},
		},
	},
	207: { // developer_data_id
		Number: 207,
		Name:   "developer_data_id",
		Group:  "developer",
		Fields: map[uint8]FieldProfile{
			0: {Number: 0, Name: "developer_id"},
			1: {Number: 1, Name: "application_id"},
			2: {Number: 2, Name: "manufacturer_id"},
			3: {Number: 3, Name: "developer_data_index"},
			4: {Number: 4, Name: "application_version"},
		},
	},
}

var fileTypeNames = map[uint64]string{
	1:  "device",
	2:  "settings",
	3:  "sport",
	4:  "activity",
	5:  "workout",
	6:  "course",
	7:  "schedules",
	9:  "weight",
	10: "totals",
	11: "goals",
	14: "blood_pressure",
	15: "monitoring_a",
	20: "activity_summary",
	28: "monitoring_daily",
	32: "monitoring_b",
	34: "segment",
	35: "segment_list",
}

var (
	cache      sync.Map // uint16 -> MessageProfile
	registryMu sync.RWMutex
)

// Lookup returns the MessageProfile registered for number, and false if
// number names no known FIT global message. A miss is not an error: the
// decoder falls back to bucketing the message under a synthetic name.
func Lookup(number uint16) (MessageProfile, bool) {
	if v, ok := cache.Load(number); ok {
		return cloneProfile(v.(MessageProfile)), true
	}
	registryMu.RLock()
	raw, ok := registry[number]
	registryMu.RUnlock()
	if !ok {
		return MessageProfile{}, false
	}
	clone := cloneProfile(raw)
	actual, _ := cache.LoadOrStore(number, clone)
	return cloneProfile(actual.(MessageProfile)), true
}

// NameOf is a convenience wrapper around Lookup for the common case of
// wanting only the message's name.
func NameOf(number uint16) (string, bool) {
	mp, ok := Lookup(number)
	if !ok {
		return "", false
	}
	return mp.Name, true
}

// FileTypeName resolves a file_id "type" field value to its name, as
// consulted by DecodeFileType.
func FileTypeName(code uint64) (string, bool) {
	name, ok := fileTypeNames[code]
	return name, ok
}

func cloneProfile(p MessageProfile) MessageProfile {
	fields := make(map[uint8]FieldProfile, len(p.Fields))
	for k, v := range p.Fields {
		fields[k] = v
	}
	p.Fields = fields
	return p
}

// Register installs or overrides a MessageProfile at runtime, used by
// LoadOverlay to merge supplementary profile data. It invalidates any
// cached clone for that number.
func Register(p MessageProfile) {
	registryMu.Lock()
	registry[p.Number] = p
	registryMu.Unlock()
	cache.Delete(p.Number)
}
