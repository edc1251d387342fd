// Copyright 2022 Adrian of Doom
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

// Package streamscan locates SCTE-35 splice_info_section payloads inside
// an MPEG transport stream and decodes them with pkg/scte35. It walks the
// PAT to find program map PIDs, walks each PMT to find elementary streams
// tagged as SCTE-35 (stream_type 0x06 or 0x86), reassembles PSI sections
// split across multiple TS packets, and hands finished sections to
// scte35.SpliceInfoSection.Decode.
package streamscan

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/scte35io/scte35-go/pkg/scte35"
)

const (
	// packetSize is the size of an MPEG-TS packet in bytes.
	packetSize = 188

	// readSize is the size of a single read when parsing files.
	readSize = 13000 * packetSize
)

// PacketData carries the transport-stream bookkeeping for a Cue: which
// packet and PID it arrived on, which program it belongs to, and the
// most recently seen PCR/PTS for that program in seconds.
type PacketData struct {
	PacketNumber int     `json:",omitempty"`
	PID          uint16  `json:",omitempty"`
	Program      uint16  `json:",omitempty"`
	PCR          float64 `json:",omitempty"`
	PTS          float64 `json:",omitempty"`
}

// Cue pairs a decoded splice_info_section with the transport-stream
// position it was found at.
type Cue struct {
	PacketData
	SpliceInfoSection *scte35.SpliceInfoSection
}

// Stream scans an MPEG transport stream for SCTE-35 splice_info_sections.
// A zero Stream is ready to use.
type Stream struct {
	// Silent suppresses the text/JSON progress output Decode writes to
	// stdout as it scans; Cues are always collected regardless.
	Silent bool

	// Cues accumulates every splice_info_section decoded during a scan.
	Cues []Cue

	pktNum       int // packet count.
	programs     []uint16
	pidToProgram map[uint16]uint16 // lookup table for pid to program
	programToPCR map[uint16]uint64 // lookup table for program to pcr
	programToPTS map[uint16]uint64 // lookup table for program to pts
	partial      map[uint16][]byte // partial manages tables spread across multiple packets by pid
	last         map[uint16][]byte // last compares current packet payload to last packet payload by pid
	PIDs
}

func (st *Stream) mkMaps() {
	st.pidToProgram = make(map[uint16]uint16)
	st.last = make(map[uint16][]byte)
	st.partial = make(map[uint16][]byte)
	st.programToPCR = make(map[uint16]uint64)
	st.programToPTS = make(map[uint16]uint64)
}

// Decode opens fname and scans it for SCTE-35 splice_info_sections.
func (st *Stream) Decode(fname string) error {
	file, err := os.Open(fname)
	if err != nil {
		return fmt.Errorf("streamscan: opening %s: %w", fname, err)
	}
	defer file.Close()
	return st.DecodeReader(file)
}

// DecodeReader scans r, an MPEG transport stream, for SCTE-35
// splice_info_sections. It reads until r returns io.EOF.
func (st *Stream) DecodeReader(r io.Reader) error {
	st.mkMaps()
	st.pktNum = 0
	buffer := make([]byte, readSize)
	for {
		bytesread, err := r.Read(buffer)
		for i := 1; i <= (bytesread / packetSize); i++ {
			end := i * packetSize
			start := end - packetSize
			pkt := buffer[start:end]
			st.pktNum++
			st.parse(pkt)
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("streamscan: reading stream: %w", err)
		}
	}
}

func (st *Stream) makePCR(prgm uint16) float64 {
	pcrb := st.programToPCR[prgm]
	return make90K(pcrb)
}

func (st *Stream) makePTS(prgm uint16) float64 {
	pts := st.programToPTS[prgm]
	return make90K(pts)
}

func (st *Stream) parsePUSI(pkt []byte) bool {
	if (pkt[1]>>6)&1 == 1 {
		if pkt[6]&1 == 1 {
			return true
		}
	}
	return false
}

func (st *Stream) parsePTS(pkt []byte, pid uint16) {
	if st.parsePUSI(pkt) {
		prgm, ok := st.pidToProgram[pid]
		if ok {
			pts := (uint64(pkt[13]) >> 1 & 7) << 30
			pts |= uint64(pkt[14]) << 22
			pts |= (uint64(pkt[15]) >> 1) << 15
			pts |= uint64(pkt[16]) << 7
			pts |= uint64(pkt[17]) >> 1
			st.programToPTS[prgm] = pts
		}
	}
}

func (st *Stream) parsePCR(pkt []byte, pid uint16) {
	if (pkt[3]>>5)&1 == 1 {
		if (pkt[5]>>4)&1 == 1 {
			pcr := uint64(pkt[6]) << 25
			pcr |= uint64(pkt[7]) << 17
			pcr |= uint64(pkt[8]) << 9
			pcr |= uint64(pkt[9]) << 1
			pcr |= uint64(pkt[10]) >> 7
			prgm := st.pidToProgram[pid]
			st.programToPCR[prgm] = pcr
		}
	}
}

// parsePayload returns the packet payload; it starts after the header
// and the adaptation field, if present.
func (st *Stream) parsePayload(pkt []byte) []byte {
	head := 4
	hasafc := (pkt[3] >> 5) & 1
	if hasafc == 1 {
		afl := int(pkt[4])
		head += afl + 1
	}
	if head > packetSize {
		head = packetSize
	}
	return pkt[head:]
}

// checkPartial appends the current packet payload to the partial table
// by pid, then realigns on sep to drop any stuffing that precedes it.
func (st *Stream) checkPartial(pay []byte, pid uint16, sep []byte) []byte {
	val, ok := st.partial[pid]
	if ok {
		pay = append(val, pay...)
	}
	return splitByIndex(pay, sep)
}

// sameAsLast compares the current packet payload to the last packet
// payload seen on pid, to skip reparsing a PSI table that hasn't changed.
func (st *Stream) sameAsLast(pay []byte, pid uint16) bool {
	val, ok := st.last[pid]
	if ok {
		if bytes.Equal(pay, val) {
			return true
		}
	}
	st.last[pid] = pay
	return false
}

// sectionDone aggregates partial tables by pid until the section is
// complete.
func (st *Stream) sectionDone(pay []byte, pid uint16, seclen uint16) bool {
	if seclen+3 > uint16(len(pay)) {
		st.partial[pid] = pay
		return false
	}
	delete(st.partial, pid)
	return true
}

// parse parses a single MPEG-TS packet based on its PID.
func (st *Stream) parse(pkt []byte) {
	pid := parsePID(pkt[1], pkt[2])
	pay := st.parsePayload(pkt)

	if pid == 0 {
		st.parsePAT(pay, pid)
	}
	if st.isPMTPID(pid) {
		st.parsePMT(pay, pid)
	}
	if st.isPCRPID(pid) {
		st.parsePCR(pkt, pid)
	} else {
		st.parsePTS(pkt, pid)
	}
	if st.isSCTE35PID(pid) {
		st.parseScte35(pay, pid)
	}
}

func (st *Stream) parsePAT(pay []byte, pid uint16) {
	if st.sameAsLast(pay, pid) {
		return
	}
	pay = st.checkPartial(pay, pid, []byte("\x00\x00"))
	if len(pay) < 1 {
		return
	}
	seclen := parseLength(pay[2], pay[3])
	if st.sectionDone(pay, pid, seclen) {
		seclen -= 5 // pay bytes 4,5,6,7,8
		idx := uint16(9)
		end := idx + seclen - 4 // 4 bytes for crc
		chunksize := uint16(4)
		for idx < end {
			prgm := parseProgram(pay[idx], pay[idx+1])
			if prgm > 0 {
				if !isIn16(st.programs, prgm) {
					st.programs = append(st.programs, prgm)
				}
				pmtpid := parsePID(pay[idx+2], pay[idx+3])
				st.addPMTPID(pmtpid)
			}
			idx += chunksize
		}
	}
}

func (st *Stream) parsePMT(pay []byte, pid uint16) {
	if st.sameAsLast(pay, pid) {
		return
	}
	pay = st.checkPartial(pay, pid, []byte("\x02"))
	if len(pay) < 1 {
		return
	}
	secinfolen := parseLength(pay[1], pay[2])
	if st.sectionDone(pay, pid, secinfolen) {
		prgm := parseProgram(pay[3], pay[4])
		pcrpid := parsePID(pay[8], pay[9])
		st.addPCRPID(pcrpid)
		proginfolen := parseLength(pay[10], pay[11])
		idx := uint16(12)
		idx += proginfolen
		silen := secinfolen - 9
		silen -= proginfolen
		st.parseStreams(silen, pay, idx, prgm)
	}
}

func (st *Stream) parseStreams(silen uint16, pay []byte, idx uint16, prgm uint16) {
	chunksize := uint16(5)
	endidx := (idx + silen) - chunksize
	for idx < endidx {
		streamtype := pay[idx]
		elpid := parsePID(pay[idx+1], pay[idx+2])
		eilen := parseLength(pay[idx+3], pay[idx+4])
		idx += chunksize
		idx += eilen
		st.pidToProgram[elpid] = prgm
		st.verifyStreamType(elpid, streamtype)
	}
}

// verifyStreamType registers elpid as an SCTE-35 PID when streamtype
// matches the SCTE-35 stream_type values (0x06 private-sections in
// scte35-populated streams, 0x86 per SCTE 35's own registration).
func (st *Stream) verifyStreamType(pid uint16, streamtype uint8) {
	if streamtype == 0x06 || streamtype == 0x86 {
		st.addSCTE35PID(pid)
	}
}

func (st *Stream) parseScte35(pay []byte, pid uint16) {
	pay = st.checkPartial(pay, pid, []byte("\xfc0"))
	if len(pay) == 0 {
		st.delSCTE35PID(pid)
		return
	}
	seclen := parseLength(pay[1], pay[2])
	if st.sectionDone(pay, pid, seclen) {
		st.emit(pay, pid)
	}
}

func (st *Stream) emit(pay []byte, pid uint16) {
	var sis scte35.SpliceInfoSection
	if err := sis.Decode(pay); err != nil {
		if !st.Silent {
			fmt.Fprintf(os.Stderr, "streamscan: pid %d: %v\n", pid, err)
		}
		return
	}
	prgm := st.pidToProgram[pid]
	packet := PacketData{
		PacketNumber: st.pktNum,
		PID:          pid,
		Program:      prgm,
		PCR:          st.makePCR(prgm),
		PTS:          st.makePTS(prgm),
	}
	cue := Cue{PacketData: packet, SpliceInfoSection: &sis}
	st.Cues = append(st.Cues, cue)
	if !st.Silent {
		b, err := sis.MarshalJSON()
		if err == nil {
			fmt.Fprintf(os.Stdout, "\nPacket %d, PID %d, Program %d:\n%s\n", packet.PacketNumber, packet.PID, packet.Program, b)
		}
	}
}

// isIn16 is a test for slice membership.
func isIn16(slice []uint16, val uint16) bool {
	for _, item := range slice {
		if item == val {
			return true
		}
	}
	return false
}

func make90K(raw uint64) float64 {
	nk := float64(raw) / 90000.0
	return float64(uint64(nk*1000000)) / 1000000
}

func parseLength(byte1 byte, byte2 byte) uint16 {
	return uint16(byte1&0xf)<<8 | uint16(byte2)
}

func parsePID(byte1 byte, byte2 byte) uint16 {
	return uint16(byte1&0x1f)<<8 | uint16(byte2)
}

func parseProgram(byte1 byte, byte2 byte) uint16 {
	return uint16(byte1)<<8 | uint16(byte2)
}

func splitByIndex(payload, sep []byte) []byte {
	idx := bytes.Index(payload, sep)
	if idx == -1 {
		return []byte("")
	}
	return payload[idx:]
}
