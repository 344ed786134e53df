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

import (
	"fmt"

	"github.com/marcelblijleven/fittie/profile/message"
)

// DataMessage is one decoded data record: a bag of named field values plus
// the order in which they were produced (profile fields in declaration
// order, then subfield aliases, then developer fields).
type DataMessage struct {
	Fields map[string]interface{}

	order      []string
	components []string
}

// Get returns the named field's value and whether it was present at all
// (a present-but-invalid field is reported as ok=true, value=nil).
func (m *DataMessage) Get(name string) (interface{}, bool) {
	v, ok := m.Fields[name]
	return v, ok
}

// FieldNames returns the field names in decode order.
func (m *DataMessage) FieldNames() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// ComponentFields returns the names of fields whose profile declares
// components that this decoder does not expand; the raw value is still
// stored under the field's own name.
func (m *DataMessage) ComponentFields() []string {
	return m.components
}

func decodeDataMessage(def *DefinitionMessage, devData *developerDataRegistry, s *byteStream) (*DataMessage, error) {
	mp, known := message.Lookup(def.GlobalMessageType)

	dm := &DataMessage{Fields: make(map[string]interface{}, len(def.Fields)+len(def.DeveloperFields))}
	var subfielded []message.FieldProfile

	for _, fd := range def.Fields {
		val, err := readFieldValue(fd, def.Endian, s)
		if err != nil {
			return nil, err
		}

		name := fmt.Sprintf("field_%d", fd.Number)
		if known {
			if fp, ok := mp.Fields[fd.Number]; ok {
				name = fp.Name
				if fp.Scale != nil || fp.Offset != nil || fp.ScaleArray != nil {
					val = applyScaleOffset(val, fp.Scale, fp.ScaleArray, fp.Offset)
				}
				if len(fp.Subfields) > 0 {
					subfielded = append(subfielded, fp)
				}
				if len(fp.Components) > 0 {
					dm.components = append(dm.components, fp.Name)
				}
			}
		}

		dm.Fields[name] = val
		dm.order = append(dm.order, name)
	}

	for _, fp := range subfielded {
		parent, ok := dm.Fields[fp.Name]
		if !ok {
			continue
		}
		for _, sf := range fp.Subfields {
			if subfieldApplies(dm, sf) {
				dm.Fields[sf.Name] = parent
				dm.order = append(dm.order, sf.Name)
			}
		}
	}

	for _, dfd := range def.DeveloperFields {
		desc, err := devData.FieldDescription(dfd.DeveloperDataIndex, dfd.Number)
		if err != nil {
			return nil, missingFieldDescription(s.Tell(), dfd.DeveloperDataIndex, dfd.Number)
		}
		fakeFD := FieldDefinition{Number: dfd.Number, Size: dfd.Size, BaseType: desc.BaseType}
		val, err := readFieldValue(fakeFD, def.Endian, s)
		if err != nil {
			return nil, err
		}
		dm.Fields[desc.FieldName] = val
		dm.order = append(dm.order, desc.FieldName)
	}

	return dm, nil
}

func subfieldApplies(dm *DataMessage, sf message.Subfield) bool {
	for _, ref := range sf.Refs {
		v, ok := dm.Fields[ref.FieldName]
		if !ok {
			continue
		}
		if n, ok := toInt64(v); ok && n == ref.ValueNumber {
			return true
		}
	}
	return false
}

// applyScaleOffset implements value' = value/scale - offset, recursing into
// arrays. When scaleArr is set, its length must match the array length; on
// a mismatch the value is left unscaled rather than treated as an error.
func applyScaleOffset(v interface{}, scale *float64, scaleArr []float64, offset *float64) interface{} {
	if v == nil {
		return nil
	}

	off := 0.0
	if offset != nil {
		off = *offset
	}

	if arr, ok := v.([]interface{}); ok {
		if scaleArr != nil {
			if len(scaleArr) != len(arr) {
				return v
			}
			out := make([]interface{}, len(arr))
			for i, e := range arr {
				out[i] = scaleScalar(e, scaleArr[i], off)
			}
			return out
		}
		s := 1.0
		if scale != nil {
			s = *scale
		}
		out := make([]interface{}, len(arr))
		for i, e := range arr {
			out[i] = scaleScalar(e, s, off)
		}
		return out
	}

	s := 1.0
	if scale != nil {
		s = *scale
	}
	return scaleScalar(v, s, off)
}

func scaleScalar(v interface{}, scale, offset float64) interface{} {
	f, ok := toFloat64(v)
	if !ok {
		return v
	}
	if scale == 0 {
		scale = 1
	}
	return f/scale - offset
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}
