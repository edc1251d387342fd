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

package scte35_test

import (
	"errors"
	"testing"
	"time"

	"github.com/scte35io/scte35-go/pkg/scte35"
	"github.com/stretchr/testify/require"
)

func TestSpliceInsertBuilder_Immediate(t *testing.T) {
	cmd, err := scte35.NewSpliceInsertBuilder(0x4800008F).
		OutOfNetwork(true).
		Immediate().
		AutoReturn(true).
		Duration(10 * time.Second).
		UniqueProgramID(7).
		Avail(1, 4).
		Build()
	require.NoError(t, err)

	sis, err := scte35.NewSpliceInfoSectionBuilder().
		Tier(0x0FFF).
		SpliceInsert(cmd).
		Build()
	require.NoError(t, err)

	b, err := sis.Encode()
	require.NoError(t, err)

	var decoded scte35.SpliceInfoSection
	require.NoError(t, decoded.Decode(b))
	decodedInsert, ok := decoded.SpliceCommand.(*scte35.SpliceInsert)
	require.True(t, ok)
	require.Equal(t, cmd.SpliceEventID, decodedInsert.SpliceEventID)
	require.True(t, decodedInsert.OutOfNetworkIndicator)
	require.True(t, decodedInsert.BreakDuration.AutoReturn)
	require.Equal(t, uint32(7), decodedInsert.UniqueProgramID)
	require.Equal(t, uint32(1), decodedInsert.AvailNum)
	require.Equal(t, uint32(4), decodedInsert.AvailsExpected)
	require.Equal(t, uint32(0x0FFF), decoded.Tier)
}

func TestSpliceInsertBuilder_AtPTS(t *testing.T) {
	cmd, err := scte35.NewSpliceInsertBuilder(100).
		AtPTS(scte35.TicksToDuration(0x7369C02E)).
		Build()
	require.NoError(t, err)
	require.NotNil(t, cmd.Program)
	require.True(t, cmd.Program.SpliceTime.TimeSpecifiedFlag())
}

func TestSpliceInsertBuilder_ComponentSplice(t *testing.T) {
	components := []scte35.SpliceInsertComponent{
		{Tag: 1, SpliceTime: &scte35.SpliceTime{PTSTime: uint64ptr(1000)}},
		{Tag: 2, SpliceTime: &scte35.SpliceTime{PTSTime: uint64ptr(2000)}},
		{Tag: 3, SpliceTime: &scte35.SpliceTime{PTSTime: uint64ptr(3000)}},
	}
	cmd, err := scte35.NewSpliceInsertBuilder(1).
		ComponentSplice(components).
		Build()
	require.NoError(t, err)
	require.Len(t, cmd.Components, 3)
	require.Nil(t, cmd.Program)
}

func TestSpliceInsertBuilder_CancelEvent(t *testing.T) {
	cmd, err := scte35.NewSpliceInsertBuilder(42).CancelEvent().Build()
	require.NoError(t, err)
	require.True(t, cmd.SpliceEventCancelIndicator)
}

func TestSpliceInsertBuilder_MissingMode(t *testing.T) {
	_, err := scte35.NewSpliceInsertBuilder(1).Build()
	require.ErrorIs(t, err, scte35.ErrMissingRequiredField)
}

func TestSpliceInsertBuilder_ComponentCountOverflow(t *testing.T) {
	components := make([]scte35.SpliceInsertComponent, 256)
	_, err := scte35.NewSpliceInsertBuilder(1).ComponentSplice(components).Build()
	require.ErrorIs(t, err, scte35.ErrInvalidComponentCount)
}

func TestSpliceInfoSectionBuilder_TierOutOfRange(t *testing.T) {
	_, err := scte35.NewSpliceInfoSectionBuilder().Tier(0x1000).SpliceNull().Build()
	require.ErrorIs(t, err, scte35.ErrFieldOutOfRange)
}

func TestSpliceInfoSectionBuilder_MissingCommand(t *testing.T) {
	_, err := scte35.NewSpliceInfoSectionBuilder().Build()
	require.ErrorIs(t, err, scte35.ErrMissingRequiredField)
}

func TestSpliceInfoSectionBuilder_TimeSignalRoundTrip(t *testing.T) {
	sis, err := scte35.NewSpliceInfoSectionBuilder().
		TimeSignal(10 * time.Second).
		Build()
	require.NoError(t, err)

	want := sis.SpliceCommand.(*scte35.TimeSignal).SpliceTime.PTSTime

	b, err := sis.Encode()
	require.NoError(t, err)

	var decoded scte35.SpliceInfoSection
	require.NoError(t, decoded.Decode(b))
	got := decoded.SpliceCommand.(*scte35.TimeSignal).SpliceTime.PTSTime
	require.Equal(t, *want, *got)
}

func TestSpliceInfoSectionBuilder_BandwidthReservation(t *testing.T) {
	sis, err := scte35.NewSpliceInfoSectionBuilder().BandwidthReservation().Build()
	require.NoError(t, err)
	require.IsType(t, &scte35.BandwidthReservation{}, sis.SpliceCommand)
}

func TestSpliceInfoSectionBuilder_PrivateCommand(t *testing.T) {
	sis, err := scte35.NewSpliceInfoSectionBuilder().
		PrivateCommand(0x41424344, []byte{0x01, 0x02}).
		Build()
	require.NoError(t, err)
	pc, ok := sis.SpliceCommand.(*scte35.PrivateCommand)
	require.True(t, ok)
	require.Equal(t, uint32(0x41424344), pc.Identifier)
}

func TestSegmentationDescriptorBuilder_ProviderAdStart(t *testing.T) {
	upid, err := scte35.NewAdIDUPID("ABCD1234EFGH")
	require.NoError(t, err)

	sd, err := scte35.NewSegmentationDescriptorBuilder(1).
		Duration(30 * time.Second).
		NoRestrictions().
		UPID(upid).
		Type(scte35.SegmentationTypeProviderAdStart).
		Segment(1, 2).
		Build()
	require.NoError(t, err)

	sis, err := scte35.NewSpliceInfoSectionBuilder().
		TimeSignal(0).
		AddDescriptor(sd).
		Build()
	require.NoError(t, err)

	b, err := sis.Encode()
	require.NoError(t, err)

	var decoded scte35.SpliceInfoSection
	require.NoError(t, decoded.Decode(b))
	require.Len(t, decoded.SpliceDescriptors, 1)
	decodedSD, ok := decoded.SpliceDescriptors[0].(*scte35.SegmentationDescriptor)
	require.True(t, ok)
	require.Equal(t, "ABCD1234EFGH", decodedSD.SegmentationUPIDs[0].Value)
}

func TestSegmentationDescriptorBuilder_SubSegmentRequiresCompatibleType(t *testing.T) {
	_, err := scte35.NewSegmentationDescriptorBuilder(1).
		NoRestrictions().
		Type(scte35.SegmentationTypeProgramStart).
		SubSegment(1, 2).
		Build()
	require.ErrorIs(t, err, scte35.ErrInvalidFieldValue)
}

func TestSegmentationDescriptorBuilder_SubSegmentCompatibleType(t *testing.T) {
	sd, err := scte35.NewSegmentationDescriptorBuilder(1).
		NoRestrictions().
		Type(scte35.SegmentationTypeProviderPOStart).
		SubSegment(1, 2).
		Build()
	require.NoError(t, err)
	require.NotNil(t, sd.SubSegmentNum)
}

func TestSegmentationDescriptorBuilder_DurationOutOfRange(t *testing.T) {
	_, err := scte35.NewSegmentationDescriptorBuilder(1).
		Duration(200 * 24 * time.Hour).
		Build()
	require.ErrorIs(t, err, scte35.ErrFieldOutOfRange)
}

func TestSegmentationDescriptorBuilder_Components(t *testing.T) {
	sd, err := scte35.NewSegmentationDescriptorBuilder(1).
		Components([]scte35.SegmentationDescriptorComponent{{Tag: 1, PTSOffset: 90000}}).
		Build()
	require.NoError(t, err)
	require.False(t, sd.ProgramSegmentationFlag())
}

func TestNewAdIDUPID_InvalidLength(t *testing.T) {
	_, err := scte35.NewAdIDUPID("short")
	require.ErrorIs(t, err, scte35.ErrInvalidFieldLength)
}

func TestNewAdIDUPID_NonASCII(t *testing.T) {
	_, err := scte35.NewAdIDUPID("ABCDÉ12345GH")
	// "É" encodes as two UTF-8 bytes so the string is 13 bytes, not 12;
	// construct a 12-byte non-ASCII string explicitly to exercise the
	// ASCII check on its own.
	require.Error(t, err)

	b := []byte("ABCDEFGH123\xFF")
	_, err = scte35.NewAdIDUPID(string(b))
	require.ErrorIs(t, err, scte35.ErrInvalidFieldValue)
}

func TestNewUMIDUPID_RoundTrip(t *testing.T) {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = byte(i)
	}
	upid, err := scte35.NewUMIDUPID(raw)
	require.NoError(t, err)
	require.Equal(t, scte35.SegmentationUPIDTypeUMID, upid.Type)
}

func TestNewUMIDUPID_InvalidLength(t *testing.T) {
	_, err := scte35.NewUMIDUPID(make([]byte, 10))
	require.ErrorIs(t, err, scte35.ErrInvalidFieldLength)
}

func TestNewMPUUPID_OversizedPrivateData(t *testing.T) {
	_, err := scte35.NewMPUUPID(0x41424344, make([]byte, 252))
	require.ErrorIs(t, err, scte35.ErrInvalidFieldValue)
}

func TestNewMPUUPID_RoundTrip(t *testing.T) {
	upid, err := scte35.NewMPUUPID(0x58583030, []byte("payload"))
	require.NoError(t, err)
	require.Equal(t, scte35.SegmentationUPIDTypeMPU, upid.Type)
	require.NotNil(t, upid.FormatIdentifier)
}

func TestNewURIUPID_EmptyRejected(t *testing.T) {
	_, err := scte35.NewURIUPID("")
	require.ErrorIs(t, err, scte35.ErrInvalidFieldValue)
}

func TestNewURIUPID_TooLong(t *testing.T) {
	_, err := scte35.NewURIUPID(string(make([]byte, 256)))
	require.ErrorIs(t, err, scte35.ErrInvalidFieldValue)
}

func TestNewUUIDUPID_InvalidLength(t *testing.T) {
	_, err := scte35.NewUUIDUPID(make([]byte, 8))
	require.ErrorIs(t, err, scte35.ErrInvalidFieldLength)
}

func TestSegmentationDescriptorBuilder_MIDUPIDs(t *testing.T) {
	mpu, err := scte35.NewMPUUPID(0x41424344, []byte("x"))
	require.NoError(t, err)
	uri, err := scte35.NewURIUPID("https://example.com/a")
	require.NoError(t, err)

	sd, err := scte35.NewSegmentationDescriptorBuilder(1).
		NoRestrictions().
		UPIDs(mpu, uri).
		Type(scte35.SegmentationTypeContentIdentification).
		Segment(0, 0).
		Build()
	require.NoError(t, err)
	require.Len(t, sd.SegmentationUPIDs, 2)

	sis, err := scte35.NewSpliceInfoSectionBuilder().
		TimeSignal(0).
		AddDescriptor(sd).
		Build()
	require.NoError(t, err)

	out, err := sis.Encode()
	require.NoError(t, err)

	var decoded scte35.SpliceInfoSection
	require.NoError(t, decoded.Decode(out))
	decodedSD := decoded.SpliceDescriptors[0].(*scte35.SegmentationDescriptor)
	require.Len(t, decodedSD.SegmentationUPIDs, 2)
}

func TestSegmentationDescriptorBuilder_RejectsNestedMID(t *testing.T) {
	mid := scte35.SegmentationUPID{Type: scte35.SegmentationUPIDTypeMID}
	other, err := scte35.NewURIUPID("https://example.com")
	require.NoError(t, err)

	builder := scte35.NewSegmentationDescriptorBuilder(1).UPIDs(mid, other)
	_, err = builder.Build()
	require.True(t, errors.Is(err, scte35.ErrInvalidUpidStructure))
}
