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

import (
	"encoding/xml"
	"fmt"

	"github.com/bamiaux/iobit"
)

const (
	// TimeSignalType is the splice_command_type for time_signal().
	TimeSignalType = 0x06
)

// NewTimeSignal constructs a time_signal() command carrying the given
// pts_time.
func NewTimeSignal(ptsTime uint64) *TimeSignal {
	return &TimeSignal{
		SpliceTime: SpliceTime{PTSTime: &ptsTime},
	}
}

// TimeSignal provides a time-synchronized delivery mechanism: the unique
// payload of the message is carried by the splice descriptor(s) that
// accompany it, most commonly a segmentation_descriptor.
type TimeSignal struct {
	XMLName    xml.Name   `xml:"http://www.scte.org/schemas/35 TimeSignal" json:"-"`
	JSONType   uint32     `xml:"-" json:"type"`
	SpliceTime SpliceTime `xml:"http://www.scte.org/schemas/35 SpliceTime" json:"spliceTime"`
}

// Type returns the splice_command_type.
func (cmd *TimeSignal) Type() uint32 {
	cmd.JSONType = TimeSignalType
	return TimeSignalType
}

// decode a binary time_signal.
func (cmd *TimeSignal) decode(b []byte) error {
	r := iobit.NewReader(b)
	timeSpecifiedFlag := r.Bit()
	if timeSpecifiedFlag {
		r.Skip(6) // reserved
		ptsTime := r.Uint64(33)
		cmd.SpliceTime.PTSTime = &ptsTime
	} else {
		r.Skip(7) // reserved
	}

	if err := readerError(r); err != nil {
		return fmt.Errorf("time_signal: %w", err)
	}
	return nil
}

// encode this time_signal to binary.
func (cmd *TimeSignal) encode() ([]byte, error) {
	buf := make([]byte, cmd.length())

	iow := iobit.NewWriter(buf)
	if cmd.SpliceTime.TimeSpecifiedFlag() {
		iow.PutBit(true)
		iow.PutUint32(6, Reserved)
		iow.PutUint64(33, *cmd.SpliceTime.PTSTime)
	} else {
		iow.PutBit(false)
		iow.PutUint32(7, Reserved)
	}

	err := iow.Flush()
	return buf, err
}

// length returns the splice_command_length.
func (cmd *TimeSignal) length() int {
	length := 1 // time_specified_flag
	if cmd.SpliceTime.TimeSpecifiedFlag() {
		length += 6  // reserved
		length += 33 // pts_time
	} else {
		length += 7 // reserved
	}
	return length / 8
}

// writeTo the given table.
func (cmd *TimeSignal) writeTo(t *table) {
	t.row(0, "time_signal() {", nil)
	t.row(1, "time_specified_flag", cmd.SpliceTime.TimeSpecifiedFlag())
	if cmd.SpliceTime.TimeSpecifiedFlag() {
		t.row(1, "pts_time", *cmd.SpliceTime.PTSTime)
	}
	t.row(0, "}", nil)
}
