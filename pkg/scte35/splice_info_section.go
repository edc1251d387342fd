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
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"time"

	"github.com/bamiaux/iobit"
)

const (
	// TableID is the table_id of every splice_info_section.
	TableID = 0xFC
	// SectionSyntaxIndicator is the fixed section_syntax_indicator.
	SectionSyntaxIndicator = false
	// PrivateIndicator is the fixed private_indicator.
	PrivateIndicator = false

	// SAPType1 is the sap_type for SAP Type 1.
	SAPType1 = 0x0
	// SAPType2 is the sap_type for SAP Type 2.
	SAPType2 = 0x1
	// SAPType3 is the sap_type for SAP Type 3.
	SAPType3 = 0x2
	// SAPTypeNotSpecified is the sap_type for a signal with no specified SAP
	// Type.
	SAPTypeNotSpecified = 0x3

	// maxSectionLength is the largest section_length ANSI/SCTE 35 permits
	// (0xFFD, two less than the 12-bit field's maximum of 0xFFF).
	maxSectionLength = 0xFFD

	// legacySpliceCommandLength is the sentinel splice_command_length some
	// early encoders wrote instead of the command's true encoded length.
	legacySpliceCommandLength = 0xFFF
)

// SpliceInfoSection is the top-level splice_info_section(), the complete
// cue message carried in an MPEG transport stream or delivered out of band
// as a standalone section.
type SpliceInfoSection struct {
	XMLName xml.Name `xml:"http://www.scte.org/schemas/35 SpliceInfoSection" json:"-"`

	SAPType             uint32          `xml:"sapType,attr" json:"sapType"`
	PreRollMilliSeconds uint32          `xml:"preRollMilliSeconds,attr,omitempty" json:"preRollMilliSeconds,omitempty"`
	Tier                uint32          `xml:"tier,attr" json:"tier"`
	PTSAdjustment       uint64          `xml:"ptsAdjustment,attr" json:"ptsAdjustment"`
	ProtocolVersion     uint32          `xml:"protocolVersion,attr" json:"protocolVersion"`
	EncryptedPacket     EncryptedPacket `xml:"encryptedPacket" json:"encryptedPacket"`

	SpliceCommand     SpliceCommand     `xml:"-" json:"-"`
	SpliceDescriptors SpliceDescriptors `xml:"-" json:"-"`
}

// Base64 returns the section's Encode()d form, base64 encoded.
func (sis *SpliceInfoSection) Base64() (string, error) {
	b, err := sis.Encode()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// Hex returns the section's Encode()d form, hexadecimal encoded.
func (sis *SpliceInfoSection) Hex() (string, error) {
	b, err := sis.Encode()
	if err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(b), nil
}

// Decode updates this SpliceInfoSection from its binary representation.
func (sis *SpliceInfoSection) Decode(b []byte, opts ...DecodeOption) error {
	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	r := iobit.NewReader(b)
	r.Skip(8) // table_id

	r.Skip(1) // section_syntax_indicator
	r.Skip(1) // private_indicator
	sis.SAPType = r.Uint32(2)
	sectionLength := int(r.Uint32(12)) // checked against bytes_consumed below
	sis.ProtocolVersion = r.Uint32(8)

	encryptedPacketFlag := r.Bit()
	sis.EncryptedPacket.EncryptionAlgorithm = r.Uint32(6)
	if encryptedPacketFlag {
		return ErrEncryptedPacketUnsupported
	}

	sis.PTSAdjustment = r.Uint64(33)
	sis.EncryptedPacket.CWIndex = r.Uint32(8)
	sis.Tier = r.Uint32(12)

	spliceCommandLength := int(r.Uint32(12))
	spliceCommandType := r.Uint32(8)
	legacyLength := spliceCommandLength == legacySpliceCommandLength
	var spliceCommandBytes []byte
	if legacyLength {
		// Some early encoders always wrote 0xFFF instead of computing the
		// true length. Peek-decode to discover where the command actually
		// ends, then skip past it for real.
		peek := r.Peek()
		sc := NewSpliceCommand(spliceCommandType)
		if err := sc.decode(peek.LeftBytes()); err != nil && !errors.Is(err, ErrBufferOverflow) {
			return fmt.Errorf("splice_info_section: %w", err)
		}
		spliceCommandLength = sc.length()
		spliceCommandBytes = r.Bytes(spliceCommandLength)
	} else {
		spliceCommandBytes = r.Bytes(spliceCommandLength)
	}

	sc, err := decodeSpliceCommand(spliceCommandType, spliceCommandBytes)
	if err != nil {
		return fmt.Errorf("splice_info_section: %w", err)
	}
	if !legacyLength && sc.length() != spliceCommandLength {
		return fmt.Errorf("splice_info_section: %w", ErrCommandLengthMismatch)
	}
	sis.SpliceCommand = sc

	descriptorLoopLength := int(r.Uint32(16))
	sds, err := decodeSpliceDescriptors(r.Bytes(descriptorLoopLength))
	if err != nil {
		return fmt.Errorf("splice_info_section: %w", err)
	}
	sis.SpliceDescriptors = sds

	// This core writes no alignment_stuffing (it is unsupported without
	// encryption); any bytes left before the trailing CRC_32 are malformed
	// input, not legitimate padding.
	if left := r.LeftBits()/8 - 4; left > 0 {
		return fmt.Errorf("splice_info_section: %w", ErrTrailingBytes)
	}
	r.Skip(32) // crc_32

	if err := readerError(r); err != nil {
		return fmt.Errorf("splice_info_section: %w", err)
	}

	if !o.skipCRCValidation {
		if err := verifyCRC32(b); err != nil {
			return fmt.Errorf("splice_info_section: %w", err)
		}
	}

	if sectionLength != len(b)-3 {
		return fmt.Errorf("splice_info_section: %w", ErrSectionLengthMismatch)
	}

	return nil
}

// Duration returns the signal's duration, preferring SpliceInsert's
// break_duration() and falling back to the sum of every
// SegmentationDescriptor's segmentation_duration.
func (sis *SpliceInfoSection) Duration() time.Duration {
	if si, ok := sis.SpliceCommand.(*SpliceInsert); ok && si.BreakDuration != nil {
		return TicksToDuration(si.BreakDuration.Duration)
	}

	var ticks uint64
	for _, sd := range sis.SpliceDescriptors {
		if seg, ok := sd.(*SegmentationDescriptor); ok && seg.SegmentationDuration != nil {
			ticks += *seg.SegmentationDuration
		}
	}
	return TicksToDuration(ticks)
}

// EncryptedPacketFlag returns the encrypted_packet flag.
func (sis *SpliceInfoSection) EncryptedPacketFlag() bool {
	return sis.EncryptedPacket.EncryptionAlgorithm != EncryptionAlgorithmNone
}

// SAPTypeName returns the human-readable name for sap_type.
func (sis *SpliceInfoSection) SAPTypeName() string {
	switch sis.SAPType {
	case SAPType1:
		return "SAP Type 1"
	case SAPType2:
		return "SAP Type 2"
	case SAPType3:
		return "SAP Type 3"
	default:
		return "Not Specified"
	}
}

// Encode returns the binary representation of this SpliceInfoSection. The
// crc_32 is always (re)computed over the bytes actually written, and
// splice_command_length/descriptor_loop_length/section_length are always
// computed rather than carried over from Decode.
func (sis *SpliceInfoSection) Encode() ([]byte, error) {
	if sis.EncryptedPacketFlag() {
		return nil, ErrEncryptedPacketUnsupported
	}

	sectionLength := sis.sectionLength()
	if sectionLength > maxSectionLength {
		return nil, ErrSectionTooLarge
	}

	buf := make([]byte, 3+sectionLength)
	iow := iobit.NewWriter(buf)
	iow.PutUint32(8, TableID)
	iow.PutBit(SectionSyntaxIndicator)
	iow.PutBit(PrivateIndicator)
	iow.PutUint32(2, sis.SAPType)
	iow.PutUint32(12, uint32(sectionLength))
	iow.PutUint32(8, sis.ProtocolVersion)
	iow.PutBit(false) // encrypted_packet
	iow.PutUint32(6, EncryptionAlgorithmNone)
	iow.PutUint64(33, sis.PTSAdjustment)
	iow.PutUint32(8, 0) // cw_index
	iow.PutUint32(12, sis.Tier)

	if sis.SpliceCommand != nil {
		scBytes, err := sis.SpliceCommand.encode()
		if err != nil {
			return buf, err
		}
		iow.PutUint32(12, uint32(sis.SpliceCommand.length()))
		iow.PutUint32(8, sis.SpliceCommand.Type())
		if _, err := iow.Write(scBytes); err != nil {
			return buf, err
		}
	} else {
		iow.PutUint32(12, 0)
		iow.PutUint32(8, SpliceNullType)
	}

	iow.PutUint32(16, uint32(sis.descriptorLoopLength()))
	for _, sd := range sis.SpliceDescriptors {
		sdBytes, err := sd.encode()
		if err != nil {
			return buf, err
		}
		if _, err := iow.Write(sdBytes); err != nil {
			return buf, err
		}
	}

	if err := iow.Flush(); err != nil {
		return buf, err
	}

	crc := calculateCRC32(buf[:len(buf)-4])
	crcw := iobit.NewWriter(buf[len(buf)-4:])
	crcw.PutUint32(32, crc)
	if err := crcw.Flush(); err != nil {
		return buf, err
	}

	return buf, nil
}

// length returns the splice_info_section length in bytes, excluding the
// three bytes preceding section_length (table_id, section_syntax_indicator,
// private_indicator, sap_type, section_length itself) and the trailing
// crc_32.
func (sis *SpliceInfoSection) length() int {
	length := 8 // protocol_version
	length++    // encrypted_packet
	length += 6 // encryption_algorithm
	length += 33
	length += 8  // cw_index
	length += 12 // tier
	length += 12 // splice_command_length
	length += 8  // splice_command_type
	if sis.SpliceCommand != nil {
		length += sis.SpliceCommand.length() * 8
	}
	length += 16 // descriptor_loop_length
	length += sis.descriptorLoopLength() * 8
	return length / 8
}

// sectionLength returns the section_length: this SpliceInfoSection's
// length() plus the trailing four-byte crc_32.
func (sis *SpliceInfoSection) sectionLength() int {
	return sis.length() + 4
}

// descriptorLoopLength returns the descriptor_loop_length in bytes.
func (sis *SpliceInfoSection) descriptorLoopLength() int {
	length := 0
	for _, sd := range sis.SpliceDescriptors {
		length += 2 + sd.length() // splice_descriptor_tag + descriptor_length
	}
	return length
}

// Table returns a human-readable rendering of this SpliceInfoSection,
// mirroring the layout of the ANSI/SCTE 35 splice_info_section() syntax
// table.
func (sis *SpliceInfoSection) Table(prefix, indent string) string {
	t := newTable(prefix, indent)
	t.row(0, "splice_info_section() {", nil)
	t.row(1, "table_id", fmt.Sprintf("%#02x", TableID))
	t.row(1, "section_syntax_indicator", SectionSyntaxIndicator)
	t.row(1, "private_indicator", PrivateIndicator)
	t.row(1, "sap_type", fmt.Sprintf("%#x (%s)", sis.SAPType, sis.SAPTypeName()))
	t.row(1, "section_length", sis.sectionLength())
	t.row(1, "protocol_version", sis.ProtocolVersion)
	t.row(1, "encrypted_packet", sis.EncryptedPacketFlag())
	if sis.EncryptedPacketFlag() {
		t.row(1, "encryption_algorithm", fmt.Sprintf("%#02x (%s)", sis.EncryptedPacket.EncryptionAlgorithm, sis.EncryptedPacket.encryptionAlgorithmName()))
	}
	t.row(1, "pts_adjustment", sis.PTSAdjustment)
	t.row(1, "cw_index", sis.EncryptedPacket.CWIndex)
	t.row(1, "tier", fmt.Sprintf("%#03x", sis.Tier))
	t.row(1, "splice_command_length", 0)
	if sis.SpliceCommand != nil {
		t.row(1, "splice_command_type", fmt.Sprintf("%#02x", sis.SpliceCommand.Type()))
		sis.SpliceCommand.writeTo(t)
	}
	t.row(1, "descriptor_loop_length", sis.descriptorLoopLength())
	for _, sd := range sis.SpliceDescriptors {
		sd.writeTo(t)
	}
	if sis.Duration() > 0 {
		t.row(1, "duration", sis.Duration().String())
	}
	t.row(1, "crc_32", fmt.Sprintf("%#08x", 0))
	t.row(0, "}", nil)
	return t.String()
}

// MarshalJSON encodes this SpliceInfoSection to JSON.
func (sis *SpliceInfoSection) MarshalJSON() ([]byte, error) {
	scRaw, err := marshalSpliceCommand(sis.SpliceCommand)
	if err != nil {
		return nil, err
	}
	for _, sd := range sis.SpliceDescriptors {
		sd.Tag() // populates each descriptor's JSONType discriminator field
	}
	return json.Marshal(&iSIS{
		SAPType:             sis.SAPType,
		PreRollMilliSeconds: sis.PreRollMilliSeconds,
		Tier:                sis.Tier,
		PTSAdjustment:       sis.PTSAdjustment,
		ProtocolVersion:     sis.ProtocolVersion,
		EncryptedPacket:     sis.EncryptedPacket,
		SpliceCommandRaw:    scRaw,
		SpliceDescriptors:   sis.SpliceDescriptors,
		Duration:            sis.Duration().Seconds(),
	})
}

// UnmarshalJSON decodes this SpliceInfoSection from JSON.
func (sis *SpliceInfoSection) UnmarshalJSON(b []byte) error {
	raw := &iSIS{SAPType: SAPTypeNotSpecified}
	if err := json.Unmarshal(b, raw); err != nil {
		return err
	}
	sc, err := raw.spliceCommand()
	if err != nil {
		return err
	}
	sis.SAPType = raw.SAPType
	sis.PreRollMilliSeconds = raw.PreRollMilliSeconds
	sis.Tier = raw.Tier
	sis.PTSAdjustment = raw.PTSAdjustment
	sis.ProtocolVersion = raw.ProtocolVersion
	sis.EncryptedPacket = raw.EncryptedPacket
	sis.SpliceCommand = sc
	sis.SpliceDescriptors = raw.SpliceDescriptors
	return nil
}

// MarshalXML encodes this SpliceInfoSection to XML, routing SpliceCommand
// through iXMLSIS's named pointer fields since encoding/xml cannot marshal
// an interface-typed field on its own.
func (sis *SpliceInfoSection) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	raw := &iXMLSIS{
		SAPType:             sis.SAPType,
		PreRollMilliSeconds: sis.PreRollMilliSeconds,
		Tier:                sis.Tier,
		PTSAdjustment:       sis.PTSAdjustment,
		ProtocolVersion:     sis.ProtocolVersion,
		EncryptedPacket:     sis.EncryptedPacket,
		SpliceDescriptors:   sis.SpliceDescriptors,
	}
	switch cmd := sis.SpliceCommand.(type) {
	case *SpliceNull:
		raw.SpliceNull = cmd
	case *SpliceSchedule:
		raw.SpliceSchedule = cmd
	case *SpliceInsert:
		raw.SpliceInsert = cmd
	case *TimeSignal:
		raw.TimeSignal = cmd
	case *BandwidthReservation:
		raw.BandwidthReservation = cmd
	case *PrivateCommand:
		raw.PrivateCommand = cmd
	}
	start.Name = sis.XMLName
	return e.EncodeElement(raw, start)
}

// UnmarshalXML decodes this SpliceInfoSection from XML.
func (sis *SpliceInfoSection) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	raw := &iXMLSIS{SAPType: SAPTypeNotSpecified}
	if err := d.DecodeElement(raw, &start); err != nil {
		return err
	}
	sis.SAPType = raw.SAPType
	sis.PreRollMilliSeconds = raw.PreRollMilliSeconds
	sis.Tier = raw.Tier
	sis.PTSAdjustment = raw.PTSAdjustment
	sis.ProtocolVersion = raw.ProtocolVersion
	sis.EncryptedPacket = raw.EncryptedPacket
	sis.SpliceCommand = raw.spliceCommand()
	sis.SpliceDescriptors = raw.SpliceDescriptors
	return nil
}

// marshalSpliceCommand encodes a SpliceCommand to its tagged JSON
// representation, used by MarshalJSON to populate iSIS.SpliceCommandRaw.
func marshalSpliceCommand(sc SpliceCommand) (json.RawMessage, error) {
	if sc == nil {
		return nil, nil
	}
	sc.Type() // populates the command's JSONType discriminator field
	b, err := json.Marshal(sc)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// iSIS is the JSON-facing shadow of SpliceInfoSection: SpliceCommand is
// polymorphic, so it round-trips through a raw message that is re-decoded
// once its "type" field names a concrete Go type.
type iSIS struct {
	SAPType             uint32            `json:"sapType"`
	PreRollMilliSeconds uint32            `json:"preRollMilliSeconds,omitempty"`
	Tier                uint32            `json:"tier"`
	PTSAdjustment       uint64            `json:"ptsAdjustment"`
	ProtocolVersion     uint32            `json:"protocolVersion"`
	EncryptedPacket     EncryptedPacket   `json:"encryptedPacket"`
	SpliceCommandRaw    json.RawMessage   `json:"spliceCommand,omitempty"`
	SpliceDescriptors   SpliceDescriptors `json:"spliceDescriptors,omitempty"`
	Duration            float64           `json:"durationSeconds,omitempty"`
}

// spliceCommand resolves SpliceCommandRaw into a concrete SpliceCommand by
// sniffing its "type" field and constructing the matching Go type -
// including PrivateCommand's commandType carrier for any value outside the
// six ANSI/SCTE 35 defines, so an unrecognized splice_command_type survives
// a JSON round trip exactly as it does a binary one.
func (raw *iSIS) spliceCommand() (SpliceCommand, error) {
	if len(raw.SpliceCommandRaw) == 0 {
		return nil, nil
	}
	typed := &struct {
		Type uint32 `json:"type"`
	}{}
	if err := json.Unmarshal(raw.SpliceCommandRaw, typed); err != nil {
		return nil, err
	}
	sc := NewSpliceCommand(typed.Type)
	if err := json.Unmarshal(raw.SpliceCommandRaw, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// iXMLSIS is the XML-facing shadow of SpliceInfoSection. Unlike iSIS it
// names one pointer field per concrete command type directly, because
// encoding/xml cannot sniff a discriminator the way encoding/json can; a
// splice_command_type outside the six ANSI/SCTE 35 defines is carried by
// PrivateCommand, which records the observed type itself.
type iXMLSIS struct {
	SAPType             uint32          `xml:"sapType,attr"`
	PreRollMilliSeconds uint32          `xml:"preRollMilliSeconds,attr,omitempty"`
	Tier                uint32          `xml:"tier,attr"`
	PTSAdjustment       uint64          `xml:"ptsAdjustment,attr"`
	ProtocolVersion     uint32          `xml:"protocolVersion,attr"`
	EncryptedPacket     EncryptedPacket `xml:"encryptedPacket"`

	SpliceNull            *SpliceNull            `xml:"http://www.scte.org/schemas/35 SpliceNull"`
	SpliceSchedule        *SpliceSchedule        `xml:"http://www.scte.org/schemas/35 SpliceSchedule"`
	SpliceInsert          *SpliceInsert          `xml:"http://www.scte.org/schemas/35 SpliceInsert"`
	TimeSignal            *TimeSignal            `xml:"http://www.scte.org/schemas/35 TimeSignal"`
	BandwidthReservation  *BandwidthReservation  `xml:"http://www.scte.org/schemas/35 BandwidthReservation"`
	PrivateCommand        *PrivateCommand        `xml:"http://www.scte.org/schemas/35 PrivateCommand"`

	SpliceDescriptors SpliceDescriptors `xml:"http://www.scte.org/schemas/35 SpliceDescriptors"`
}

// spliceCommand resolves whichever of the named command pointer fields was
// populated by the XML decoder into a concrete SpliceCommand.
func (raw *iXMLSIS) spliceCommand() SpliceCommand {
	switch {
	case raw.SpliceNull != nil:
		return raw.SpliceNull
	case raw.SpliceSchedule != nil:
		return raw.SpliceSchedule
	case raw.SpliceInsert != nil:
		return raw.SpliceInsert
	case raw.TimeSignal != nil:
		return raw.TimeSignal
	case raw.BandwidthReservation != nil:
		return raw.BandwidthReservation
	case raw.PrivateCommand != nil:
		return raw.PrivateCommand
	default:
		return nil
	}
}
