package engine

import (
	"bytes"
	"testing"
	"time"
)

// fakePort answers pings with reply and records everything written.
type fakePort struct {
	reply   byte
	written bytes.Buffer
	closed  bool
}

func (p *fakePort) Read(b []byte) (int, error) {
	b[0] = p.reply
	return 1, nil
}

func (p *fakePort) Write(b []byte) (int, error) {
	return p.written.Write(b)
}

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

func TestDLPHandshake(t *testing.T) {
	port := &fakePort{reply: 'Q'}
	d, err := newDLP(port)
	if err != nil {
		t.Fatal(err)
	}
	if got := port.written.Bytes(); !bytes.Equal(got, []byte{0x27, 0x5C}) {
		t.Errorf("handshake wrote %x", got)
	}

	port.written.Reset()
	if err := d.Set("12"); err != nil {
		t.Fatal(err)
	}
	if err := d.Unset("12"); err != nil {
		t.Fatal(err)
	}
	if got := port.written.String(); got != "12QW" {
		t.Errorf("wrote %q, want %q", got, "12QW")
	}

	d.Close()
	if !port.closed {
		t.Error("port not closed")
	}
}

func TestDLPBadPing(t *testing.T) {
	port := &fakePort{reply: 'x'}
	if _, err := newDLP(port); err == nil {
		t.Fatal("handshake with a silent device succeeded")
	}
	if !port.closed {
		t.Error("port left open after failed handshake")
	}
}

func TestRunTrialTriggers(t *testing.T) {
	port := &fakePort{reply: 'Q'}
	dlp, err := newDLP(port)
	if err != nil {
		t.Fatal(err)
	}
	port.written.Reset()

	e := newTestExperiment(&fakeDisplay{refresh: 60})
	e.DLP = dlp
	if _, err := e.RunTrial(TrialInfo{BarOri: Horizontal, BarDir: Positive, BarStep: 1}); err != nil {
		t.Fatal(err)
	}
	if got := port.written.String(); got != LineTrialOnset+"Q" {
		t.Errorf("trigger bytes %q", got)
	}
}

func TestDLPPulse(t *testing.T) {
	port := &fakePort{reply: 'Q'}
	d, err := newDLP(port)
	if err != nil {
		t.Fatal(err)
	}
	port.written.Reset()

	start := time.Now()
	if err := d.Pulse(LineResponse, 5*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if held := time.Since(start); held < 5*time.Millisecond {
		t.Errorf("line held for %v", held)
	}
	if got := port.written.String(); got != "2W" {
		t.Errorf("wrote %q, want %q", got, "2W")
	}
}

func TestRunTrialResponseTrigger(t *testing.T) {
	port := &fakePort{reply: 'Q'}
	dlp, err := newDLP(port)
	if err != nil {
		t.Fatal(err)
	}
	port.written.Reset()

	e := newTestExperiment(&fakeDisplay{refresh: 60, keysAt: map[int][]string{2: {"A"}}})
	e.DLP = dlp
	if _, err := e.RunTrial(TrialInfo{BarOri: Horizontal, BarDir: Positive, BarStep: 1}); err != nil {
		t.Fatal(err)
	}
	if got := port.written.String(); got != "12WQ" {
		t.Errorf("trigger bytes %q, want %q", got, "12WQ")
	}
}
