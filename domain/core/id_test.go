package core

import "testing"

func TestNewIDUnique(t *testing.T) {
	seen := map[ID]bool{}
	for i := 0; i < 100; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Fatal("empty ID generated")
		}
		if seen[id] {
			t.Fatalf("duplicate ID %s", id)
		}
		seen[id] = true
	}
}

func TestParseStudyID(t *testing.T) {
	if _, err := ParseStudyID(""); err == nil {
		t.Error("empty study ID accepted")
	}
	if _, err := ParseStudyID("  "); err == nil {
		t.Error("blank study ID accepted")
	}
	id, err := ParseStudyID("abc-123")
	if err != nil || id.String() != "abc-123" {
		t.Errorf("ParseStudyID: id=%v err=%v", id, err)
	}
}

func TestParseColumnKey(t *testing.T) {
	if _, err := ParseColumnKey(""); err == nil {
		t.Error("empty column key accepted")
	}
	key, err := ParseColumnKey("height")
	if err != nil || key.String() != "height" {
		t.Errorf("ParseColumnKey: key=%v err=%v", key, err)
	}
}
