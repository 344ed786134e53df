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

package message

import (
	"io"

	"gopkg.in/yaml.v3"
)

// overlayField is the YAML-facing shape of a FieldProfile. Scale/offset are
// plain float64 in the document; a zero value means "not set", matching the
// profile's own default-scale-1/default-offset-0 convention.
type overlayField struct {
	Number     uint8      `yaml:"number"`
	Name       string     `yaml:"name"`
	Scale      float64    `yaml:"scale,omitempty"`
	ScaleArray []float64  `yaml:"scale_array,omitempty"`
	Offset     float64    `yaml:"offset,omitempty"`
	Units      string     `yaml:"units,omitempty"`
	Array      bool       `yaml:"array,omitempty"`
	Components []string   `yaml:"components,omitempty"`
	Subfields  []Subfield `yaml:"subfields,omitempty"`
}

type overlayMessage struct {
	Number uint16         `yaml:"number"`
	Name   string         `yaml:"name"`
	Group  string         `yaml:"group,omitempty"`
	Fields []overlayField `yaml:"fields"`
}

// overlayDocument is the top-level shape read/written by LoadOverlay and
// WriteOverlay: a named set of supplementary message profiles.
type overlayDocument struct {
	Name     string           `yaml:"name"`
	Messages []overlayMessage `yaml:"messages"`
}

// LoadOverlay reads supplementary message profiles from r and registers
// each one, overriding any built-in entry with the same global message
// number. It is the mechanism by which a caller extends the static profile
// table with vendor-specific or newly-assigned messages without patching
// this package.
func LoadOverlay(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc overlayDocument
	if err := dec.Decode(&doc); err != nil {
		return err
	}

	for _, m := range doc.Messages {
		fields := make(map[uint8]FieldProfile, len(m.Fields))
		for _, f := range m.Fields {
			fp := FieldProfile{
				Number:     f.Number,
				Name:       f.Name,
				Units:      f.Units,
				Array:      f.Array,
				Components: f.Components,
				Subfields:  f.Subfields,
			}
			if f.Scale != 0 {
				fp.Scale = scale(f.Scale)
			}
			if f.Offset != 0 {
				fp.Offset = offset(f.Offset)
			}
			if len(f.ScaleArray) > 0 {
				fp.ScaleArray = f.ScaleArray
			}
			fields[f.Number] = fp
		}
		Register(MessageProfile{Number: m.Number, Name: m.Name, Group: m.Group, Fields: fields})
	}
	return nil
}

// WriteOverlay serializes the given message profiles to w, in the format
// LoadOverlay reads back.
func WriteOverlay(w io.Writer, name string, profiles []MessageProfile) error {
	doc := overlayDocument{Name: name}
	for _, mp := range profiles {
		om := overlayMessage{Number: mp.Number, Name: mp.Name, Group: mp.Group}
		for _, fp := range mp.Fields {
			of := overlayField{
				Number:     fp.Number,
				Name:       fp.Name,
				Units:      fp.Units,
				Array:      fp.Array,
				Components: fp.Components,
				Subfields:  fp.Subfields,
				ScaleArray: fp.ScaleArray,
			}
			if fp.Scale != nil {
				of.Scale = *fp.Scale
			}
			if fp.Offset != nil {
				of.Offset = *fp.Offset
			}
			om.Fields = append(om.Fields, of)
		}
		doc.Messages = append(doc.Messages, om)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return enc.Encode(doc)
}
