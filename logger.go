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
	"context"

	"github.com/go-logr/logr"
)

// Log is the package-level logger consulted by the decoder for V(1)
// diagnostics (truncated field tolerance, compressed timestamps seen before
// any full timestamp, each decoded stream) when the context carries no
// logger. It defaults to a discarding sink.
//
// Decode is synchronous and single-threaded per call, so there is no
// goroutine that could observe Log before a caller has a chance to call
// SetLogger; a plain package variable is enough.
var Log = logr.Discard()

// SetLogger installs l as the package-level logger.
func SetLogger(l logr.Logger) {
	Log = l
}

// FromContext returns the logger carried by ctx, falling back to Log.
func FromContext(ctx context.Context, keysAndValues ...interface{}) logr.Logger {
	log := Log
	if ctx != nil {
		if logger, err := logr.FromContext(ctx); err == nil {
			log = logger
		}
	}
	return log.WithValues(keysAndValues...)
}

// IntoContext returns a copy of ctx carrying l, retrievable with FromContext.
func IntoContext(ctx context.Context, l logr.Logger) context.Context {
	return logr.NewContext(ctx, l)
}
