package gpio

import (
	"errors"
	"testing"
)

func TestFakeInputPressRelease(t *testing.T) {
	in := NewFakeInput()

	if pressed, err := in.Value(); err != nil || pressed {
		t.Fatalf("initial Value: got (%v, %v), want released", pressed, err)
	}

	in.Press()
	e := <-in.Events()
	if !e.Falling {
		t.Error("press should emit a falling edge")
	}
	if e.Time.IsZero() {
		t.Error("edge should be timestamped")
	}
	if pressed, _ := in.Value(); !pressed {
		t.Error("level should be asserted after Press")
	}

	in.Release()
	e = <-in.Events()
	if e.Falling {
		t.Error("release should emit a rising edge")
	}
	if pressed, _ := in.Value(); pressed {
		t.Error("level should be deasserted after Release")
	}
}

func TestFakeInputBounceLeavesLevel(t *testing.T) {
	in := NewFakeInput()
	in.Bounce()

	e := <-in.Events()
	if !e.Falling {
		t.Error("bounce should emit a falling edge")
	}
	if pressed, _ := in.Value(); pressed {
		t.Error("bounce must not assert the level")
	}
}

func TestFakeInputReadError(t *testing.T) {
	in := NewFakeInput()
	boom := errors.New("line gone")
	in.ReadError = boom

	if _, err := in.Value(); !errors.Is(err, boom) {
		t.Errorf("got %v, want the scripted error", err)
	}
}

func TestFakeInputClose(t *testing.T) {
	in := NewFakeInput()
	if err := in.Close(); err != nil {
		t.Fatal(err)
	}
	if !in.Closed {
		t.Error("Closed not recorded")
	}
}

func TestFakeOutputRecordsWrites(t *testing.T) {
	out := NewFakeOutput()

	if _, ok := out.Last(); ok {
		t.Error("Last on a fresh output should report nothing")
	}

	out.Set(true)
	out.Set(false)
	out.Set(true)

	writes := out.Writes()
	want := []bool{true, false, true}
	if len(writes) != len(want) {
		t.Fatalf("got %v, want %v", writes, want)
	}
	for i := range want {
		if writes[i] != want[i] {
			t.Fatalf("got %v, want %v", writes, want)
		}
	}

	last, ok := out.Last()
	if !ok || !last {
		t.Errorf("Last: got (%v, %v), want (true, true)", last, ok)
	}
}

func TestFakeOutputSetError(t *testing.T) {
	out := NewFakeOutput()
	boom := errors.New("pin stuck")
	out.SetError = boom

	if err := out.Set(true); !errors.Is(err, boom) {
		t.Errorf("got %v, want the scripted error", err)
	}
	if got := out.Writes(); len(got) != 0 {
		t.Errorf("failed writes must not be recorded, got %v", got)
	}
}
