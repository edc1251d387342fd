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

// Package scte35 decodes, constructs, and re-encodes SCTE-35
// splice_info_section messages: the cue tones carried in MPEG transport
// streams to mark advertising avails, program boundaries, and content
// segmentation opportunities.
package scte35

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"github.com/bamiaux/iobit"
)

const (
	// Reserved is the bit pattern used for reserved fields.
	Reserved = 0xFF

	// TicksPerSecond is the number of 90KHz clock ticks in one second.
	TicksPerSecond = 90000

	// unixEpochToGPSEpoch is the number of seconds between the Unix epoch
	// (1970-01-01T00:00:00Z) and the GPS epoch (1980-01-06T00:00:00Z).
	unixEpochToGPSEpoch = uint32(315964800)
)

var (
	// ErrBufferUnderflow indicates the decoder attempted to read beyond the
	// end of the supplied buffer.
	ErrBufferUnderflow = errors.New("buffer underflow")
	// ErrBufferOverflow indicates the decoder had bytes remaining after it
	// expected to have consumed the entire buffer.
	ErrBufferOverflow = errors.New("buffer overflow")
	// ErrUnsupportedEncoding indicates the input could not be interpreted as
	// base64 or hexadecimal.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
	// ErrCRC32Invalid indicates the computed CRC_32 did not match the value
	// carried on the wire.
	ErrCRC32Invalid = errors.New("CRC_32 is invalid")
	// ErrEncryptedPacketUnsupported indicates encrypted_packet was set;
	// this core does not decode encrypted payload bodies.
	ErrEncryptedPacketUnsupported = errors.New("encrypted splice_info_section is unsupported")
	// ErrSectionTooLarge indicates the encoded section_length would exceed
	// the 0xFFD maximum defined by ANSI/SCTE 35.
	ErrSectionTooLarge = errors.New("section_length exceeds maximum of 0xFFD")
	// ErrCommandLengthMismatch indicates splice_command_length did not
	// match the number of bytes the splice command actually decoded to.
	ErrCommandLengthMismatch = errors.New("splice_command_length does not match decoded splice command length")
	// ErrSectionLengthMismatch indicates section_length did not match the
	// number of bytes actually consumed by the section.
	ErrSectionLengthMismatch = errors.New("section_length does not match bytes consumed")
	// ErrTrailingBytes indicates bytes remained between the end of the
	// descriptor loop and the trailing crc_32; this core does not support
	// alignment stuffing.
	ErrTrailingBytes = errors.New("trailing bytes before crc_32")
)

// Logger is used to record recoverable oddities encountered while decoding
// or constructing values (a non-canonical EIDR, a short MID sub-UPID). It is
// silent by default; callers embedding this package may redirect it.
var Logger = log.New(io.Discard, "SCTE35 ", log.Ldate|log.Ltime|log.Llongfile)

// DecodeOption configures optional, build-time-style decode behavior. The
// zero value of every option leaves the default (strictest) behavior.
type DecodeOption func(*decodeOptions)

// decodeOptions holds the options a DecodeOption may set.
type decodeOptions struct {
	skipCRCValidation bool
}

// SkipCRCValidation disables crc_32 verification on Decode, trading safety
// for performance. Encode always (re)computes and writes crc_32 regardless
// of this option.
func SkipCRCValidation() DecodeOption {
	return func(o *decodeOptions) {
		o.skipCRCValidation = true
	}
}

// DecodeBase64 decodes a base64 encoded string into a SpliceInfoSection.
func DecodeBase64(s string, opts ...DecodeOption) (*SpliceInfoSection, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrUnsupportedEncoding
	}
	sis := &SpliceInfoSection{}
	if err := sis.Decode(b, opts...); err != nil {
		return sis, err
	}
	return sis, nil
}

// DecodeHex decodes a hexadecimal encoded string (optionally prefixed with
// "0x") into a SpliceInfoSection.
func DecodeHex(s string, opts ...DecodeOption) (*SpliceInfoSection, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, ErrUnsupportedEncoding
	}
	sis := &SpliceInfoSection{}
	if err := sis.Decode(b, opts...); err != nil {
		return sis, err
	}
	return sis, nil
}

// DurationToTicks converts a wall-clock duration to a count of 90KHz ticks,
// truncating toward zero as the spec's conversion formula requires.
func DurationToTicks(d time.Duration) uint64 {
	sec := uint64(d / time.Second)
	nsec := uint64(d % time.Second)
	return sec*TicksPerSecond + nsec*TicksPerSecond/uint64(time.Second)
}

// TicksToDuration converts a count of 90KHz ticks to a wall-clock duration,
// rounding up to the next nanosecond so that DurationToTicks returns the
// original count.
func TicksToDuration(ticks uint64) time.Duration {
	sec := ticks / TicksPerSecond
	rem := ticks % TicksPerSecond
	return time.Duration(sec)*time.Second + time.Duration((rem*uint64(time.Second)+TicksPerSecond-1)/TicksPerSecond)
}

// Bytes is a byte slice that (un)marshals to hexadecimal text in XML/JSON.
type Bytes []byte

// MarshalText encodes Bytes as a hexadecimal string.
func (b Bytes) MarshalText() ([]byte, error) {
	dst := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(dst, b)
	return dst, nil
}

// UnmarshalText decodes Bytes from a hexadecimal string.
func (b *Bytes) UnmarshalText(text []byte) error {
	dst := make([]byte, hex.DecodedLen(len(text)))
	if _, err := hex.Decode(dst, text); err != nil {
		return err
	}
	*b = dst
	return nil
}

// NewUTCSpliceTime returns a UTCSpliceTime for the given GPS seconds value,
// as carried by splice_schedule()'s splice_time().
func NewUTCSpliceTime(sec uint32) UTCSpliceTime {
	return UTCSpliceTime{
		Time: time.Unix(int64(sec+unixEpochToGPSEpoch), 0).UTC(),
	}
}

// UTCSpliceTime wraps a wall-clock time derived from the GPS-epoch seconds
// carried by splice_schedule().
type UTCSpliceTime struct {
	time.Time
}

// GPSSeconds returns the number of seconds since the GPS epoch.
func (t UTCSpliceTime) GPSSeconds() uint32 {
	return uint32(t.Unix()) - unixEpochToGPSEpoch
}

// readerError converts the terminal state of an iobit.Reader into an error.
func readerError(r iobit.Reader) error {
	if r.LeftBits() < 0 {
		return ErrBufferUnderflow
	}
	if r.LeftBits() > 0 {
		return ErrBufferOverflow
	}
	return nil
}
