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
	"encoding/json"
	"encoding/xml"

	"github.com/bamiaux/iobit"
)

const (
	// CUEIdentifier identifies the owner of a splice_descriptor as the ANSI/SCTE
	// 35 registered value 0x43554549, ASCII "CUEI".
	CUEIdentifier = 0x43554549
	// CUEIASCII is the ASCII rendering of CUEIdentifier.
	CUEIASCII = "CUEI"
)

// NewSpliceDescriptor returns the appropriate SpliceDescriptor for the given
// identifier and splice_descriptor_tag. Descriptors carrying an identifier
// other than CUEIdentifier, or an unrecognized tag, decode as a
// PrivateDescriptor so that round-tripping never loses information.
func NewSpliceDescriptor(identifier uint32, tag uint32) SpliceDescriptor {
	if identifier == CUEIdentifier {
		switch tag {
		case AvailDescriptorTag:
			return &AvailDescriptor{}
		case DTMFDescriptorTag:
			return &DTMFDescriptor{}
		case SegmentationDescriptorTag:
			return &SegmentationDescriptor{}
		case TimeDescriptorTag:
			return &TimeDescriptor{}
		case AudioDescriptorTag:
			return &AudioDescriptor{}
		}
	}
	return &PrivateDescriptor{Identifier: identifier, PrivateTag: tag}
}

// SpliceDescriptor is a prototype for adding new fields to the
// splice_info_section. All descriptors share the same first six bytes:
// splice_descriptor_tag, descriptor_length, and a 32-bit identifier. The
// identifier removes the need for a registration descriptor in the
// descriptor loop.
//
// Receivers should skip descriptors with an unknown identifier entirely,
// and skip descriptors with a known identifier but unrecognized tag.
type SpliceDescriptor interface {
	// Tag returns the splice_descriptor_tag.
	Tag() uint32
	decode(b []byte) error
	encode() ([]byte, error)
	length() int
	writeTo(t *table)
}

// SpliceDescriptors is a slice of SpliceDescriptor.
type SpliceDescriptors []SpliceDescriptor

// decodeSpliceDescriptors decodes the descriptor_loop() carried by b into a
// slice of SpliceDescriptor.
func decodeSpliceDescriptors(b []byte) ([]SpliceDescriptor, error) {
	r := iobit.NewReader(b)

	var sds []SpliceDescriptor
	for r.LeftBits() > 0 {
		sdr := r.Peek()
		spliceDescriptorTag := sdr.Uint32(8)
		descriptorLength := int(sdr.Uint32(8))
		identifier := sdr.Uint32(32)

		sd := NewSpliceDescriptor(identifier, spliceDescriptorTag)
		if err := sd.decode(r.Bytes(descriptorLength + 2)); err != nil {
			return sds, err
		}
		sds = append(sds, sd)
	}

	return sds, nil
}

// newSpliceDescriptorForTag returns the descriptor type registered for tag,
// assuming a CUEIdentifier owner. It backs JSON unmarshaling, where the
// 32-bit identifier isn't available to disambiguate the way it is on the
// wire; a PrivateDescriptor's own "identifier" field carries that detail
// instead.
func newSpliceDescriptorForTag(tag uint32) SpliceDescriptor {
	switch tag {
	case AvailDescriptorTag:
		return &AvailDescriptor{}
	case DTMFDescriptorTag:
		return &DTMFDescriptor{}
	case SegmentationDescriptorTag:
		return &SegmentationDescriptor{}
	case TimeDescriptorTag:
		return &TimeDescriptor{}
	case AudioDescriptorTag:
		return &AudioDescriptor{}
	default:
		return &PrivateDescriptor{PrivateTag: tag}
	}
}

// UnmarshalJSON decodes a JSON array of splice_descriptor() objects, each
// resolved to its concrete Go type by its "type" field.
func (sds *SpliceDescriptors) UnmarshalJSON(b []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return err
	}

	out := make(SpliceDescriptors, 0, len(raws))
	for _, raw := range raws {
		typed := &struct {
			Type       uint32  `json:"type"`
			Identifier *uint32 `json:"identifier"`
		}{}
		if err := json.Unmarshal(raw, typed); err != nil {
			return err
		}
		sd := newSpliceDescriptorForTag(typed.Type)
		if typed.Identifier != nil {
			sd = NewSpliceDescriptor(*typed.Identifier, typed.Type)
		}
		if err := json.Unmarshal(raw, sd); err != nil {
			return err
		}
		out = append(out, sd)
	}
	*sds = out
	return nil
}

// UnmarshalXML decodes a sequence of differently-named splice_descriptor()
// elements, each resolved to its concrete Go type by its element name.
func (sds *SpliceDescriptors) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	out := SpliceDescriptors{}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			var sd SpliceDescriptor
			switch el.Name.Local {
			case "AvailDescriptor":
				sd = &AvailDescriptor{}
			case "DTMFDescriptor":
				sd = &DTMFDescriptor{}
			case "SegmentationDescriptor":
				sd = &SegmentationDescriptor{}
			case "TimeDescriptor":
				sd = &TimeDescriptor{}
			case "AudioDescriptor":
				sd = &AudioDescriptor{}
			case "PrivateDescriptor":
				sd = &PrivateDescriptor{}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			if err := d.DecodeElement(sd, &el); err != nil {
				return err
			}
			out = append(out, sd)
		case xml.EndElement:
			if el.Name == start.Name {
				*sds = out
				return nil
			}
		}
	}
}
