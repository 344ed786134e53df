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

import "github.com/prometheus/client_golang/prometheus"

// Package-level, unregistered metric collectors: the decoder observes them
// unconditionally, and it is left to the consumer to register them with a
// prometheus.Registerer.
var (
	FilesDecodedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fit_decoder_files_decoded_total",
		Help: "Total number of FIT streams successfully decoded, including chained streams within one file",
	})
	DecodeErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fit_decoder_errors_total",
		Help: "Total number of fatal decode errors",
	})
	DecodeDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fit_decoder_duration_seconds",
		Help:    "Duration of decoding a single chained FIT stream",
		Buckets: prometheus.DefBuckets,
	})
	MessagesDecodedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fit_decoder_messages_decoded_total",
		Help: "Total number of data messages decoded, labelled by message name (or unknown_<N>)",
	}, []string{"message"})
	ProfileMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fit_decoder_profile_misses_total",
		Help: "Total number of data messages whose global message number had no profile entry",
	})
)
