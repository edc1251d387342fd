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
)

const (
	// BandwidthReservationType is the splice_command_type for
	// bandwidth_reservation().
	BandwidthReservationType = 0x07
)

// BandwidthReservation reserves bandwidth in a multiplex. It differs from
// splice_null() only so that it can be distinguished and stripped out by
// equipment that needs to reclaim the reserved bandwidth before delivery.
type BandwidthReservation struct {
	XMLName  xml.Name `xml:"http://www.scte.org/schemas/35 BandwidthReservation" json:"-"`
	JSONType uint32   `xml:"-" json:"type"`
}

// Type returns the splice_command_type.
func (cmd *BandwidthReservation) Type() uint32 {
	cmd.JSONType = BandwidthReservationType
	return BandwidthReservationType
}

// decode a binary bandwidth_reservation.
func (cmd *BandwidthReservation) decode(b []byte) error {
	if len(b) > 0 {
		return fmt.Errorf("bandwidth_reservation: %w", ErrBufferOverflow)
	}
	return nil
}

// encode this bandwidth_reservation to binary.
func (cmd *BandwidthReservation) encode() ([]byte, error) {
	return nil, nil
}

// length returns the splice_command_length.
func (cmd *BandwidthReservation) length() int {
	return 0
}

// writeTo the given table.
func (cmd *BandwidthReservation) writeTo(t *table) {
	t.row(0, "bandwidth_reservation() {}", nil)
}
