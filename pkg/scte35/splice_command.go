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

// SpliceCommand is implemented by each of the six splice_command() payload
// kinds a splice_info_section may carry.
type SpliceCommand interface {
	// Type returns the splice_command_type.
	Type() uint32
	// decode updates this SpliceCommand from binary.
	decode(b []byte) error
	// encode returns the binary representation of this SpliceCommand.
	encode() ([]byte, error)
	// length returns the splice_command_length.
	length() int
	// writeTo appends this SpliceCommand's description to the given table.
	writeTo(t *table)
}

// NewSpliceCommand constructs a new SpliceCommand for the given
// splice_command_type. Unrecognized types are carried as a PrivateCommand so
// decode/encode round-trips even for values this package does not
// semantically interpret.
func NewSpliceCommand(spliceCommandType uint32) SpliceCommand {
	switch spliceCommandType {
	case SpliceNullType:
		return &SpliceNull{}
	case SpliceScheduleType:
		return &SpliceSchedule{}
	case SpliceInsertType:
		return &SpliceInsert{}
	case TimeSignalType:
		return &TimeSignal{}
	case BandwidthReservationType:
		return &BandwidthReservation{}
	default:
		return &PrivateCommand{commandType: spliceCommandType}
	}
}

// decodeSpliceCommand constructs and decodes a SpliceCommand of the given
// type from binary.
func decodeSpliceCommand(spliceCommandType uint32, b []byte) (SpliceCommand, error) {
	sc := NewSpliceCommand(spliceCommandType)
	if err := sc.decode(b); err != nil {
		return sc, err
	}
	return sc, nil
}
