package streamscan

import (
	"encoding/base64"
	"testing"

	"github.com/scte35io/scte35-go/pkg/scte35"
)

func TestParseLengthAndPID(t *testing.T) {
	if got := parseLength(0x0f, 0xab); got != 0x0fab {
		t.Errorf("parseLength: got %#x, want %#x", got, 0x0fab)
	}
	if got := parsePID(0xff, 0x34); got != 0x1f34 {
		t.Errorf("parsePID: got %#x, want %#x", got, 0x1f34)
	}
	if got := parseProgram(0x01, 0x02); got != 0x0102 {
		t.Errorf("parseProgram: got %#x, want %#x", got, 0x0102)
	}
}

func TestSplitByIndex(t *testing.T) {
	payload := []byte{0x00, 0xfc, 0x30, 0x01}
	got := splitByIndex(payload, []byte("\xfc0"))
	want := []byte{0xfc, 0x30, 0x01}
	if string(got) != string(want) {
		t.Errorf("splitByIndex: got %v, want %v", got, want)
	}
	if got := splitByIndex(payload, []byte("\xff\xff")); len(got) != 0 {
		t.Errorf("splitByIndex: expected no match to return empty, got %v", got)
	}
}

func TestPIDsTracking(t *testing.T) {
	var p PIDs
	p.addPMTPID(0x1000)
	p.addPMTPID(0x1000)
	if len(p.PMTPIDs) != 1 {
		t.Fatalf("addPMTPID should dedupe, got %v", p.PMTPIDs)
	}
	if !p.isPMTPID(0x1000) || p.isPMTPID(0x1001) {
		t.Fatalf("isPMTPID mismatch: %v", p.PMTPIDs)
	}

	p.addSCTE35PID(0x1f34)
	if !p.isSCTE35PID(0x1f34) {
		t.Fatalf("expected pid registered as SCTE-35 pid")
	}
	p.delSCTE35PID(0x1f34)
	if p.isSCTE35PID(0x1f34) {
		t.Fatalf("expected pid removed from SCTE-35 pids")
	}
}

func TestStreamParsePayloadStripsAdaptationField(t *testing.T) {
	var st Stream
	pkt := make([]byte, packetSize)
	pkt[0] = 0x47
	pkt[3] = 0x30 // adaptation field + payload present
	pkt[4] = 2    // adaptation_field_length
	for i := range pkt[7:] {
		pkt[7+i] = byte(i)
	}
	got := st.parsePayload(pkt)
	if len(got) != packetSize-7 {
		t.Fatalf("parsePayload: got len %d, want %d", len(got), packetSize-7)
	}
	if got[0] != 0 {
		t.Fatalf("parsePayload: expected payload to start past adaptation field, got %v", got[:4])
	}
}

// TestStreamParseScte35Emit feeds a single known splice_insert
// splice_info_section (SCTE-35 sample 14.2) through the PID's decode path
// without going through a full PAT/PMT walk, by calling parseScte35
// directly the way parse does once a PID has been registered as
// carrying SCTE-35.
func TestStreamParseScte35Emit(t *testing.T) {
	raw, err := base64.StdEncoding.DecodeString("/DAvAAAAAAAA///wFAVIAACPf+/+c2nALv4AUsz1AAAAAAAKAAhDVUVJAAABNWLbowo=")
	if err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}

	var st Stream
	st.mkMaps()
	st.Silent = true
	st.pktNum = 1

	const pid = uint16(0x1f34)
	st.addSCTE35PID(pid)

	// A pointer_field of 0x00 precedes the section, as it would inside a
	// transport-stream payload_unit_start_indicator=1 packet.
	pay := append([]byte{0x00}, raw...)
	st.parseScte35(pay, pid)

	if len(st.Cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(st.Cues))
	}
	cue := st.Cues[0]
	if cue.PID != pid {
		t.Errorf("cue PID: got %#x, want %#x", cue.PID, pid)
	}
	insert, ok := cue.SpliceInfoSection.SpliceCommand.(*scte35.SpliceInsert)
	if !ok {
		t.Fatalf("expected *scte35.SpliceInsert, got %T", cue.SpliceInfoSection.SpliceCommand)
	}
	if insert.SpliceEventID != 0x4800008f {
		t.Errorf("SpliceEventID: got %#x, want %#x", insert.SpliceEventID, 0x4800008f)
	}
	if !st.isSCTE35PID(pid) {
		t.Errorf("expected pid to remain registered after a successful decode")
	}
}

func TestStreamParseScte35ClearsPIDOnEmptyPayload(t *testing.T) {
	var st Stream
	st.mkMaps()
	st.Silent = true

	const pid = uint16(0x1f34)
	st.addSCTE35PID(pid)
	st.parseScte35(nil, pid)

	if st.isSCTE35PID(pid) {
		t.Errorf("expected pid to be deregistered after an empty payload")
	}
	if len(st.Cues) != 0 {
		t.Errorf("expected no cues from an empty payload, got %d", len(st.Cues))
	}
}
