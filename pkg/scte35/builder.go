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
	"errors"
	"fmt"
	"time"
)

const (
	max12Bit = 0xFFF
	max33Bit = (uint64(1) << 33) - 1
	max40Bit = (uint64(1) << 40) - 1

	// maxMPUPrivateBytes is the largest private_data a Multipart Identifier
	// UPID can carry: the descriptor's 255-byte length budget minus the
	// 4-byte format_identifier that precedes it.
	maxMPUPrivateBytes = 255 - 4
)

var (
	// ErrMissingRequiredField indicates a builder's Build was called before a
	// required field was set.
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrFieldOutOfRange indicates a builder input exceeds the wire field's
	// bit width.
	ErrFieldOutOfRange = errors.New("field out of range")
	// ErrInvalidFieldLength indicates a fixed-length UPID was given the wrong
	// number of bytes.
	ErrInvalidFieldLength = errors.New("invalid field length")
	// ErrInvalidComponentCount indicates a component list exceeded the
	// 255-entry limit the 8-bit component_count field can carry.
	ErrInvalidComponentCount = errors.New("invalid component count")
	// ErrInvalidFieldValue indicates a builder input failed a value-level
	// check (non-ASCII text, an empty URI, oversized private data).
	ErrInvalidFieldValue = errors.New("invalid field value")
	// ErrInvalidUpidStructure indicates a MID UPID was asked to embed
	// another MID; this core caps MID nesting at depth 1.
	ErrInvalidUpidStructure = errors.New("invalid upid structure")
)

// outOfRange reports a value that exceeds a wire field's bit width.
func outOfRange(field string, max uint64) error {
	return fmt.Errorf("%s: %w (max %d)", field, ErrFieldOutOfRange, max)
}

// missingRequired reports a Build() called before a required field was set.
func missingRequired(field string) error {
	return fmt.Errorf("%s: %w", field, ErrMissingRequiredField)
}

// invalidLength reports a fixed-length field given the wrong byte count.
func invalidLength(field string, expected, actual int) error {
	return fmt.Errorf("%s: %w (expected %d, got %d)", field, ErrInvalidFieldLength, expected, actual)
}

// invalidValue reports a value-level validation failure.
func invalidValue(field, reason string) error {
	return fmt.Errorf("%s: %w (%s)", field, ErrInvalidFieldValue, reason)
}

// isASCII reports whether every byte of b is in the 7-bit ASCII range.
func isASCII(b []byte) bool {
	for _, c := range b {
		if c > 127 {
			return false
		}
	}
	return true
}

// SpliceInfoSectionBuilder constructs a SpliceInfoSection from high-level
// intent, validating every input as it is supplied rather than deferring
// validation to Build. It is single-use: Build consumes the builder so a
// caller cannot mutate a value that has already been returned.
type SpliceInfoSectionBuilder struct {
	sis *SpliceInfoSection
	err error
}

// NewSpliceInfoSectionBuilder returns an empty SpliceInfoSectionBuilder.
func NewSpliceInfoSectionBuilder() *SpliceInfoSectionBuilder {
	return &SpliceInfoSectionBuilder{sis: &SpliceInfoSection{}}
}

// PTSAdjustment sets pts_adjustment, a 33-bit tick count.
func (b *SpliceInfoSectionBuilder) PTSAdjustment(ticks uint64) *SpliceInfoSectionBuilder {
	if b.err != nil {
		return b
	}
	if ticks > max33Bit {
		b.err = outOfRange("pts_adjustment", max33Bit)
		return b
	}
	b.sis.PTSAdjustment = ticks
	return b
}

// Tier sets the 12-bit authorization tier.
func (b *SpliceInfoSectionBuilder) Tier(tier uint32) *SpliceInfoSectionBuilder {
	if b.err != nil {
		return b
	}
	if tier > max12Bit {
		b.err = outOfRange("tier", max12Bit)
		return b
	}
	b.sis.Tier = tier
	return b
}

// SpliceNull sets the command to splice_null().
func (b *SpliceInfoSectionBuilder) SpliceNull() *SpliceInfoSectionBuilder {
	if b.err != nil {
		return b
	}
	b.sis.SpliceCommand = &SpliceNull{}
	return b
}

// SpliceInsert sets the command to the given splice_insert().
func (b *SpliceInfoSectionBuilder) SpliceInsert(cmd *SpliceInsert) *SpliceInfoSectionBuilder {
	if b.err != nil {
		return b
	}
	if cmd == nil {
		b.err = missingRequired("splice_insert")
		return b
	}
	b.sis.SpliceCommand = cmd
	return b
}

// TimeSignal sets the command to time_signal() carrying the given wall-clock
// offset, converted to ticks.
func (b *SpliceInfoSectionBuilder) TimeSignal(ptsTime time.Duration) *SpliceInfoSectionBuilder {
	if b.err != nil {
		return b
	}
	ticks := DurationToTicks(ptsTime)
	if ticks > max33Bit {
		b.err = outOfRange("time_signal.pts_time", max33Bit)
		return b
	}
	b.sis.SpliceCommand = NewTimeSignal(ticks)
	return b
}

// BandwidthReservation sets the command to bandwidth_reservation().
func (b *SpliceInfoSectionBuilder) BandwidthReservation() *SpliceInfoSectionBuilder {
	if b.err != nil {
		return b
	}
	b.sis.SpliceCommand = &BandwidthReservation{}
	return b
}

// PrivateCommand sets the command to private_command() carrying the given
// identifier and payload.
func (b *SpliceInfoSectionBuilder) PrivateCommand(identifier uint32, payload []byte) *SpliceInfoSectionBuilder {
	if b.err != nil {
		return b
	}
	b.sis.SpliceCommand = &PrivateCommand{Identifier: identifier, PrivateBytes: payload}
	return b
}

// AddDescriptor appends a splice_descriptor(). Descriptor order is
// semantically significant and preserved.
func (b *SpliceInfoSectionBuilder) AddDescriptor(sd SpliceDescriptor) *SpliceInfoSectionBuilder {
	if b.err != nil {
		return b
	}
	if sd == nil {
		b.err = missingRequired("splice_descriptor")
		return b
	}
	b.sis.SpliceDescriptors = append(b.sis.SpliceDescriptors, sd)
	return b
}

// Build validates the accumulated state and returns the finished
// SpliceInfoSection. The builder must not be reused afterward.
func (b *SpliceInfoSectionBuilder) Build() (*SpliceInfoSection, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.sis.SpliceCommand == nil {
		return nil, missingRequired("splice_command")
	}
	sis := b.sis
	b.sis = nil
	return sis, nil
}

// SpliceInsertBuilder constructs a SpliceInsert, validating mode selection
// (immediate, program splice at a PTS, or component splice) as it is set.
type SpliceInsertBuilder struct {
	cmd *SpliceInsert
	err error
}

// NewSpliceInsertBuilder returns a SpliceInsertBuilder for the given
// splice_event_id.
func NewSpliceInsertBuilder(eventID uint32) *SpliceInsertBuilder {
	return &SpliceInsertBuilder{cmd: &SpliceInsert{SpliceEventID: eventID}}
}

// CancelEvent builds a splice_event_cancel_indicator=1 value: every other
// field is ignored on encode once this is set.
func (b *SpliceInsertBuilder) CancelEvent() *SpliceInsertBuilder {
	if b.err != nil {
		return b
	}
	b.cmd.SpliceEventCancelIndicator = true
	return b
}

// Immediate selects splice_immediate_flag=1: the splice point is signaled
// with no associated PTS.
func (b *SpliceInsertBuilder) Immediate() *SpliceInsertBuilder {
	if b.err != nil {
		return b
	}
	b.cmd.SpliceImmediateFlag = true
	b.cmd.Program = &SpliceInsertProgram{}
	return b
}

// AtPTS selects program splice mode at the given wall-clock offset,
// converted to ticks.
func (b *SpliceInsertBuilder) AtPTS(pts time.Duration) *SpliceInsertBuilder {
	if b.err != nil {
		return b
	}
	ticks := DurationToTicks(pts)
	if ticks > max33Bit {
		b.err = outOfRange("splice_insert.pts_time", max33Bit)
		return b
	}
	b.cmd.Program = NewSpliceInsertProgram(ticks)
	return b
}

// ComponentSplice selects component splice mode, signaling the splice point
// independently on each listed component. Up to 255 components are allowed.
func (b *SpliceInsertBuilder) ComponentSplice(components []SpliceInsertComponent) *SpliceInsertBuilder {
	if b.err != nil {
		return b
	}
	if len(components) > 255 {
		b.err = fmt.Errorf("%w (max 255, got %d)", ErrInvalidComponentCount, len(components))
		return b
	}
	for _, c := range components {
		if c.SpliceTime.TimeSpecifiedFlag() && *c.SpliceTime.PTSTime > max33Bit {
			b.err = outOfRange("splice_insert.components[].pts_time", max33Bit)
			return b
		}
	}
	b.cmd.Program = nil
	b.cmd.Components = components
	return b
}

// Duration sets break_duration() from a wall-clock duration, range-checked
// against the 33-bit duration field.
func (b *SpliceInsertBuilder) Duration(d time.Duration) *SpliceInsertBuilder {
	if b.err != nil {
		return b
	}
	ticks := DurationToTicks(d)
	if ticks > max33Bit {
		b.err = outOfRange("break_duration.duration", max33Bit)
		return b
	}
	if b.cmd.BreakDuration == nil {
		b.cmd.BreakDuration = &BreakDuration{}
	}
	b.cmd.BreakDuration.Duration = ticks
	return b
}

// AutoReturn sets break_duration()'s auto_return flag.
func (b *SpliceInsertBuilder) AutoReturn(autoReturn bool) *SpliceInsertBuilder {
	if b.err != nil {
		return b
	}
	if b.cmd.BreakDuration == nil {
		b.cmd.BreakDuration = &BreakDuration{}
	}
	b.cmd.BreakDuration.AutoReturn = autoReturn
	return b
}

// OutOfNetwork sets out_of_network_indicator.
func (b *SpliceInsertBuilder) OutOfNetwork(outOfNetwork bool) *SpliceInsertBuilder {
	if b.err != nil {
		return b
	}
	b.cmd.OutOfNetworkIndicator = outOfNetwork
	return b
}

// UniqueProgramID sets the 16-bit unique_program_id.
func (b *SpliceInsertBuilder) UniqueProgramID(id uint32) *SpliceInsertBuilder {
	if b.err != nil {
		return b
	}
	if id > 0xFFFF {
		b.err = outOfRange("unique_program_id", 0xFFFF)
		return b
	}
	b.cmd.UniqueProgramID = id
	return b
}

// Avail sets avail_num and avails_expected, each an 8-bit field.
func (b *SpliceInsertBuilder) Avail(num, expected uint32) *SpliceInsertBuilder {
	if b.err != nil {
		return b
	}
	if num > 0xFF {
		b.err = outOfRange("avail_num", 0xFF)
		return b
	}
	if expected > 0xFF {
		b.err = outOfRange("avails_expected", 0xFF)
		return b
	}
	b.cmd.AvailNum = num
	b.cmd.AvailsExpected = expected
	return b
}

// Build validates the accumulated state and returns the finished
// SpliceInsert.
func (b *SpliceInsertBuilder) Build() (*SpliceInsert, error) {
	if b.err != nil {
		return nil, b.err
	}
	cmd := b.cmd
	if !cmd.SpliceEventCancelIndicator && cmd.Program == nil && cmd.Components == nil {
		return nil, missingRequired("splice_insert.splice_mode (Immediate, AtPTS, or ComponentSplice)")
	}
	b.cmd = nil
	return cmd, nil
}

// SegmentationDescriptorBuilder constructs a SegmentationDescriptor.
type SegmentationDescriptorBuilder struct {
	sd  *SegmentationDescriptor
	err error
}

// NewSegmentationDescriptorBuilder returns a SegmentationDescriptorBuilder
// for the given segmentation_event_id.
func NewSegmentationDescriptorBuilder(eventID uint32) *SegmentationDescriptorBuilder {
	return &SegmentationDescriptorBuilder{sd: &SegmentationDescriptor{SegmentationEventID: eventID}}
}

// CancelEvent builds a segmentation_event_cancel_indicator=1 value.
func (b *SegmentationDescriptorBuilder) CancelEvent() *SegmentationDescriptorBuilder {
	if b.err != nil {
		return b
	}
	b.sd.SegmentationEventCancelIndicator = true
	return b
}

// Duration sets segmentation_duration from a wall-clock duration,
// range-checked against the 40-bit duration field.
func (b *SegmentationDescriptorBuilder) Duration(d time.Duration) *SegmentationDescriptorBuilder {
	if b.err != nil {
		return b
	}
	ticks := DurationToTicks(d)
	if ticks > max40Bit {
		b.err = outOfRange("segmentation_duration", max40Bit)
		return b
	}
	b.sd.SegmentationDuration = &ticks
	return b
}

// DeliveryRestrictions sets the delivery restriction flags, clearing
// delivery_not_restricted_flag.
func (b *SegmentationDescriptorBuilder) DeliveryRestrictions(dr DeliveryRestrictions) *SegmentationDescriptorBuilder {
	if b.err != nil {
		return b
	}
	if dr.DeviceRestrictions > DeviceRestrictionsNone {
		b.err = outOfRange("device_restrictions", DeviceRestrictionsNone)
		return b
	}
	b.sd.DeliveryRestrictions = &dr
	return b
}

// NoRestrictions sets delivery_not_restricted_flag=1.
func (b *SegmentationDescriptorBuilder) NoRestrictions() *SegmentationDescriptorBuilder {
	if b.err != nil {
		return b
	}
	b.sd.DeliveryRestrictions = nil
	return b
}

// Components sets the component list, switching program_segmentation_flag
// to 0. Up to 255 components are allowed.
func (b *SegmentationDescriptorBuilder) Components(components []SegmentationDescriptorComponent) *SegmentationDescriptorBuilder {
	if b.err != nil {
		return b
	}
	if len(components) > 255 {
		b.err = fmt.Errorf("%w (max 255, got %d)", ErrInvalidComponentCount, len(components))
		return b
	}
	for _, c := range components {
		if c.PTSOffset > max33Bit {
			b.err = outOfRange("component[].pts_offset", max33Bit)
			return b
		}
	}
	b.sd.Components = components
	return b
}

// UPID sets the descriptor's segmentation_upid() to the given typed value,
// most often built by one of the New*UPID constructors below.
func (b *SegmentationDescriptorBuilder) UPID(upid SegmentationUPID) *SegmentationDescriptorBuilder {
	if b.err != nil {
		return b
	}
	b.sd.SegmentationUPIDs = []SegmentationUPID{upid}
	return b
}

// UPIDs sets the descriptor's segmentation_upid() to a MID() concatenating
// the given typed values; two or more are required. A MID may not itself
// embed a MID: this core caps nesting at depth 1.
func (b *SegmentationDescriptorBuilder) UPIDs(upids ...SegmentationUPID) *SegmentationDescriptorBuilder {
	if b.err != nil {
		return b
	}
	if len(upids) < 2 {
		b.err = invalidValue("mid.upids", "requires at least two embedded UPIDs")
		return b
	}
	for _, u := range upids {
		if u.Type == SegmentationUPIDTypeMID {
			b.err = ErrInvalidUpidStructure
			return b
		}
	}
	b.sd.SegmentationUPIDs = upids
	return b
}

// Type sets segmentation_type_id.
func (b *SegmentationDescriptorBuilder) Type(typeID uint32) *SegmentationDescriptorBuilder {
	if b.err != nil {
		return b
	}
	if typeID > 0xFF {
		b.err = outOfRange("segmentation_type_id", 0xFF)
		return b
	}
	b.sd.SegmentationTypeID = typeID
	return b
}

// Segment sets segment_num and segments_expected, each an 8-bit field.
func (b *SegmentationDescriptorBuilder) Segment(num, expected uint32) *SegmentationDescriptorBuilder {
	if b.err != nil {
		return b
	}
	if num > 0xFF {
		b.err = outOfRange("segment_num", 0xFF)
		return b
	}
	if expected > 0xFF {
		b.err = outOfRange("segments_expected", 0xFF)
		return b
	}
	b.sd.SegmentNum = num
	b.sd.SegmentsExpected = expected
	return b
}

// SubSegment sets sub_segment_num and sub_segments_expected. Build rejects
// this unless segmentation_type_id is one of the six values that carry
// sub-segment fields.
func (b *SegmentationDescriptorBuilder) SubSegment(num, expected uint32) *SegmentationDescriptorBuilder {
	if b.err != nil {
		return b
	}
	if num > 0xFF {
		b.err = outOfRange("sub_segment_num", 0xFF)
		return b
	}
	if expected > 0xFF {
		b.err = outOfRange("sub_segments_expected", 0xFF)
		return b
	}
	b.sd.SubSegmentNum = &num
	b.sd.SubSegmentsExpected = &expected
	return b
}

// Build validates the accumulated state and returns the finished
// SegmentationDescriptor.
func (b *SegmentationDescriptorBuilder) Build() (*SegmentationDescriptor, error) {
	if b.err != nil {
		return nil, b.err
	}
	sd := b.sd
	if sd.SubSegmentNum != nil && !sd.hasSubSegment() {
		return nil, invalidValue("sub_segment_num", "segmentation_type_id does not carry sub-segment fields")
	}
	b.sd = nil
	return sd, nil
}

// NewNoneUPID returns the empty segmentation_upid() (type Not Used, 0
// bytes).
func NewNoneUPID() SegmentationUPID {
	return SegmentationUPID{Type: SegmentationUPIDTypeNotUsed}
}

// NewAdIDUPID returns an Ad-ID segmentation_upid(): exactly 12 ASCII bytes.
func NewAdIDUPID(adID string) (SegmentationUPID, error) {
	b := []byte(adID)
	if len(b) != 12 {
		return SegmentationUPID{}, invalidLength("ad_id", 12, len(b))
	}
	if !isASCII(b) {
		return SegmentationUPID{}, invalidValue("ad_id", "must be ASCII")
	}
	return NewSegmentationUPID(SegmentationUPIDTypeAdID, b), nil
}

// NewTIDUPID returns a TID segmentation_upid(): exactly 12 ASCII bytes.
func NewTIDUPID(tid string) (SegmentationUPID, error) {
	b := []byte(tid)
	if len(b) != 12 {
		return SegmentationUPID{}, invalidLength("tid", 12, len(b))
	}
	if !isASCII(b) {
		return SegmentationUPID{}, invalidValue("tid", "must be ASCII")
	}
	return NewSegmentationUPID(SegmentationUPIDTypeTID, b), nil
}

// NewUMIDUPID returns a UMID segmentation_upid(): exactly 32 raw bytes.
func NewUMIDUPID(umid []byte) (SegmentationUPID, error) {
	if len(umid) != 32 {
		return SegmentationUPID{}, invalidLength("umid", 32, len(umid))
	}
	return NewSegmentationUPID(SegmentationUPIDTypeUMID, umid), nil
}

// NewISANUPID returns an ISAN segmentation_upid(): exactly 12 raw bytes.
func NewISANUPID(isan []byte) (SegmentationUPID, error) {
	if len(isan) != 12 {
		return SegmentationUPID{}, invalidLength("isan", 12, len(isan))
	}
	return NewSegmentationUPID(SegmentationUPIDTypeISAN, isan), nil
}

// NewAiringIDUPID returns an Airing ID (TI) segmentation_upid(): an 8-byte
// big-endian 64-bit value.
func NewAiringIDUPID(airingID uint64) (SegmentationUPID, error) {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[7-i] = byte(airingID >> (8 * i))
	}
	return NewSegmentationUPID(SegmentationUPIDTypeTI, b), nil
}

// NewEIDRUPID returns an EIDR segmentation_upid() from a 12-byte raw EIDR
// value, rendered to its canonical "10.NNNN/XXXX-XXXX-XXXX-XXXX-XXXX" form.
func NewEIDRUPID(eidr []byte) (SegmentationUPID, error) {
	if len(eidr) != 12 {
		return SegmentationUPID{}, invalidLength("eidr", 12, len(eidr))
	}
	return NewSegmentationUPID(SegmentationUPIDTypeEIDR, eidr), nil
}

// NewMPUUPID returns an MPU() segmentation_upid(): a 4-byte
// format_identifier followed by up to 251 bytes of private data.
func NewMPUUPID(formatIdentifier uint32, privateData []byte) (SegmentationUPID, error) {
	if len(privateData) > maxMPUPrivateBytes {
		return SegmentationUPID{}, invalidValue("mpu.private_data", fmt.Sprintf("exceeds %d bytes", maxMPUPrivateBytes))
	}
	b := make([]byte, 4, 4+len(privateData))
	for i := 0; i < 4; i++ {
		b[3-i] = byte(formatIdentifier >> (8 * i))
	}
	b = append(b, privateData...)
	return NewSegmentationUPID(SegmentationUPIDTypeMPU, b), nil
}

// NewURIUPID returns a URI segmentation_upid(): 1 to 255 UTF-8 bytes.
func NewURIUPID(uri string) (SegmentationUPID, error) {
	b := []byte(uri)
	if len(b) == 0 {
		return SegmentationUPID{}, invalidValue("uri", "must not be empty")
	}
	if len(b) > 255 {
		return SegmentationUPID{}, invalidValue("uri", "exceeds 255 bytes")
	}
	return NewSegmentationUPID(SegmentationUPIDTypeURI, b), nil
}

// NewUUIDUPID returns a UUID segmentation_upid(): exactly 16 raw bytes.
func NewUUIDUPID(uuid []byte) (SegmentationUPID, error) {
	if len(uuid) != 16 {
		return SegmentationUPID{}, invalidLength("uuid", 16, len(uuid))
	}
	return NewSegmentationUPID(SegmentationUPIDTypeUUID, uuid), nil
}

