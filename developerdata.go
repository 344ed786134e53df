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
	"sync"

	"github.com/marcelblijleven/fittie/profile/basetype"
)

// FieldDescription is a developer-defined field's identity, registered at
// runtime from a field_description (206) message.
type FieldDescription struct {
	DeveloperDataIndex    uint8
	FieldDefinitionNumber uint8
	FieldName             string
	BaseType              basetype.BaseType
	Units                 string
}

// DeveloperDataSource is the identity information registered from a
// developer_data_id (207) message, together with every field description
// that names it.
type DeveloperDataSource struct {
	Identity     map[string]interface{}
	Descriptions map[uint8]FieldDescription
}

// developerDataRegistry is the mutex-guarded two-level map binding
// (developer_data_index, field_definition_number) to a FieldDescription,
// populated as 207/206 messages are seen in the stream.
type developerDataRegistry struct {
	mu      sync.RWMutex
	sources map[uint8]*DeveloperDataSource
}

func newDeveloperDataRegistry() *developerDataRegistry {
	return &developerDataRegistry{sources: make(map[uint8]*DeveloperDataSource)}
}

func (r *developerDataRegistry) registerSource(index uint8, identity map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	src, ok := r.sources[index]
	if !ok {
		src = &DeveloperDataSource{Descriptions: make(map[uint8]FieldDescription)}
		r.sources[index] = src
	}
	src.Identity = identity
}

func (r *developerDataRegistry) registerDescription(index uint8, desc FieldDescription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	src, ok := r.sources[index]
	if !ok {
		src = &DeveloperDataSource{Descriptions: make(map[uint8]FieldDescription)}
		r.sources[index] = src
	}
	src.Descriptions[desc.FieldDefinitionNumber] = desc
}

// FieldDescription looks up a previously registered developer field. It
// fails if either the developer data source or the specific field
// description has not yet been seen in the stream; both must be
// registered before a developer field referencing them can be resolved.
func (r *developerDataRegistry) FieldDescription(index, number uint8) (FieldDescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src, ok := r.sources[index]
	if !ok || src.Identity == nil {
		return FieldDescription{}, fmt.Errorf("unknown developer data index %d", index)
	}
	desc, ok := src.Descriptions[number]
	if !ok {
		return FieldDescription{}, fmt.Errorf("unknown developer field %d for index %d", number, index)
	}
	return desc, nil
}

// Snapshot returns a shallow copy of the registered sources, for attaching
// to a DecodedFile.
func (r *developerDataRegistry) Snapshot() map[uint8]DeveloperDataSource {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[uint8]DeveloperDataSource, len(r.sources))
	for k, v := range r.sources {
		out[k] = *v
	}
	return out
}
