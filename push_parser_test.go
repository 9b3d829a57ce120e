// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package picoscan

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func collectPush(chunks [][]byte, scratch []byte, opts ...Option) ([]eventSummary, error) {
	p, err := NewPushParser(scratch, opts...)
	if err != nil {
		return nil, err
	}
	var got []eventSummary
	emit := func(e Event) error {
		got = append(got, summarize(e))
		return nil
	}
	for _, c := range chunks {
		if err := p.Write(c, emit); err != nil {
			return got, err
		}
	}
	if err := p.Finish(emit); err != nil {
		return got, err
	}
	return got, nil
}

func TestPushParserSingleChunk(t *testing.T) {
	got, err := collectPush([][]byte{[]byte(`{"ok":true}`)}, make([]byte, 32))
	if err != nil {
		t.Fatalf("collectPush: %v", err)
	}
	want := []eventSummary{
		{Kind: "StartObject"},
		{Kind: "Key", Key: "ok"},
		{Kind: "Bool", Bool: true},
		{Kind: "EndObject"},
		{Kind: "EndDocument"},
	}
	if diff := cmp.Diff(want, got, cmp.FilterPath(isPosField, cmp.Ignore())); diff != "" {
		t.Errorf("event sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestPushParserTokenSplitAcrossChunks(t *testing.T) {
	// The string token "hello\nworld" is split across three chunks, and one
	// of the two chunk boundaries lands inside the middle of an escape
	// sequence.
	chunks := [][]byte{
		[]byte(`["hel`),
		[]byte(`lo\`),
		[]byte(`nworld"]`),
	}
	got, err := collectPush(chunks, make([]byte, 32))
	if err != nil {
		t.Fatalf("collectPush: %v", err)
	}
	want := []eventSummary{
		{Kind: "StartArray"},
		{Kind: "String", Str: "hello\nworld", FromScratch: true},
		{Kind: "EndArray"},
		{Kind: "EndDocument"},
	}
	if diff := cmp.Diff(want, got, cmp.FilterPath(isPosField, cmp.Ignore())); diff != "" {
		t.Errorf("event sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestPushParserNumberSplitAcrossChunks(t *testing.T) {
	chunks := [][]byte{[]byte(`[12`), []byte(`3,4`), []byte(`56]`)}
	got, err := collectPush(chunks, make([]byte, 16))
	if err != nil {
		t.Fatalf("collectPush: %v", err)
	}
	want := []eventSummary{
		{Kind: "StartArray"},
		{Kind: "Number", NumOutcome: "Integer", NumInt: 123},
		{Kind: "Number", NumOutcome: "Integer", NumInt: 456},
		{Kind: "EndArray"},
		{Kind: "EndDocument"},
	}
	if diff := cmp.Diff(want, got, cmp.FilterPath(isPosField, cmp.Ignore())); diff != "" {
		t.Errorf("event sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestPushParserScratchFullAcrossChunkRotation(t *testing.T) {
	chunks := [][]byte{[]byte(`"abcdefgh`), []byte(`ijklmnop"`)}
	got, err := collectPush(chunks, make([]byte, 4))
	_ = got
	if err == nil {
		t.Fatal("expected a scratch-buffer-full error for a token wider than scratch")
	}
	if perr, ok := err.(*Error); !ok || perr.Kind != KindScratchBufferFull {
		t.Errorf("got %v, want *Error with Kind ScratchBufferFull", err)
	}
}

func TestPushParserEmptyChunksAreHarmless(t *testing.T) {
	chunks := [][]byte{nil, []byte(`42`), nil, {}}
	got, err := collectPush(chunks, make([]byte, 8))
	if err != nil {
		t.Fatalf("collectPush: %v", err)
	}
	want := []eventSummary{
		{Kind: "Number", NumOutcome: "Integer", NumInt: 42},
		{Kind: "EndDocument"},
	}
	if diff := cmp.Diff(want, got, cmp.FilterPath(isPosField, cmp.Ignore())); diff != "" {
		t.Errorf("event sequence mismatch (-want +got):\n%s", diff)
	}
}
