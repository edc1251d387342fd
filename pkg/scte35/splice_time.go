// Copyright 2021 Comcast Cable Communications Management, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or   implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package scte35

import "encoding/xml"

// SpliceTime carries an optional PTS value. When PTSTime is nil,
// time_specified_flag is 0 and the splice point is signaled without a time.
type SpliceTime struct {
	XMLName xml.Name `xml:"http://www.scte.org/schemas/35 SpliceTime" json:"-"`
	PTSTime *uint64  `xml:"ptsTime,attr,omitempty" json:"ptsTime,omitempty"`
}

// TimeSpecifiedFlag returns the time_specified_flag.
func (t *SpliceTime) TimeSpecifiedFlag() bool {
	return t != nil && t.PTSTime != nil
}

// BreakDuration carries the duration of an avail signaled by splice_insert().
type BreakDuration struct {
	XMLName    xml.Name `xml:"http://www.scte.org/schemas/35 BreakDuration" json:"-"`
	AutoReturn bool     `xml:"autoReturn,attr" json:"autoReturn"`
	// Duration holds a 33-bit unsigned count of 90KHz clock ticks.
	Duration uint64 `xml:"duration,attr" json:"duration"`
}
