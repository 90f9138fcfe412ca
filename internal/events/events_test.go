package events

import "testing"

func TestMatchesChannelOmni(t *testing.T) {
	e := NoteOn(5, 60, 261.63, 0.8)
	if !e.MatchesChannel(NoChannel) {
		t.Error("omni filter should accept any channel")
	}
}

func TestMatchesChannelSpecific(t *testing.T) {
	e := NoteOn(5, 60, 261.63, 0.8)
	if !e.MatchesChannel(5) {
		t.Error("matching channel should be accepted")
	}
	if e.MatchesChannel(6) {
		t.Error("non-matching channel should be rejected")
	}
}

func TestAllNotesOffChannelLessReachesEveryFilter(t *testing.T) {
	e := AllNotesOff(NoChannel)
	if !e.MatchesChannel(3) {
		t.Error("channel-less AllNotesOff should reach every specific filter")
	}
	if !e.MatchesChannel(NoChannel) {
		t.Error("channel-less AllNotesOff should reach omni too")
	}
}

func TestAllNotesOffScopedToChannel(t *testing.T) {
	e := AllNotesOff(2)
	if !e.MatchesChannel(2) {
		t.Error("scoped AllNotesOff should reach its own channel")
	}
	if e.MatchesChannel(3) {
		t.Error("scoped AllNotesOff should not reach a different channel")
	}
	if !e.MatchesChannel(NoChannel) {
		t.Error("scoped AllNotesOff should still reach omni instances")
	}
}
