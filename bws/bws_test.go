// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bws

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
	"testing/quick"

	"github.com/ulikunitz/bwsz/sa"
)

func TestTransform(t *testing.T) {
	tests := []struct {
		in      string
		out     string
		primary int
	}{
		{"", "", 0},
		{"a", "a", 0},
		{"banana", "nnbaaa", 3},
		{"abab", "bbaa", 0},
		{"aaabbbccd", "daaabbbcc", 0},
	}
	for _, c := range tests {
		out, primary := Transform([]byte(c.in))
		if string(out) != c.out || primary != c.primary {
			t.Errorf("Transform(%q) = %q, %d; want %q, %d",
				c.in, out, primary, c.out, c.primary)
		}
		p, err := Inverse(out, primary)
		if err != nil {
			t.Fatalf("Inverse(%q, %d) error %s", out, primary, err)
		}
		if string(p) != c.in {
			t.Errorf("Inverse(%q, %d) = %q; want %q",
				out, primary, p, c.in)
		}
	}
}

func TestTransformSA(t *testing.T) {
	p := []byte("mississippi")
	s := sa.Cyclic(p)
	out := TransformSA(p, s)
	want := "pssmipissii"
	if string(out) != want {
		t.Errorf("TransformSA(%q) = %q; want %q", p, out, want)
	}
}

func roundTrip(t *testing.T, p []byte) {
	t.Helper()
	out, primary := Transform(p)
	if len(out) != len(p) {
		t.Fatalf("len(Transform(p)) = %d; want %d", len(out), len(p))
	}
	q, err := Inverse(out, primary)
	if err != nil {
		t.Fatalf("Inverse error %s", err)
	}
	if !bytes.Equal(p, q) {
		t.Fatalf("Inverse(Transform(%q)) = %q", p, q)
	}
}

func TestRepeated(t *testing.T) {
	inputs := [][]byte{
		make([]byte, 1),
		make([]byte, 777),
		bytes.Repeat([]byte("ab"), 100),
		bytes.Repeat([]byte("abc"), 101),
		bytes.Repeat([]byte{0xff, 0, 0xff}, 50),
		append(bytes.Repeat([]byte("x"), 64), 'y'),
	}
	for _, p := range inputs {
		roundTrip(t, p)
	}
}

func TestAllByteValues(t *testing.T) {
	p := make([]byte, 256*3)
	for i := range p {
		p[i] = byte(i * 7)
	}
	roundTrip(t, p)
}

func TestRandomPeriodic(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		u := make([]byte, 1+rnd.Intn(5))
		for k := range u {
			u[k] = byte('a' + rnd.Intn(3))
		}
		p := bytes.Repeat(u, 1+rnd.Intn(20))
		roundTrip(t, p)
	}
}

func TestQuick(t *testing.T) {
	f := func(p []byte) bool {
		out, primary := Transform(p)
		q, err := Inverse(out, primary)
		return err == nil && bytes.Equal(p, q)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestInversePrimary(t *testing.T) {
	tests := []struct {
		t       string
		primary int
	}{
		{"", 1},
		{"abc", -1},
		{"abc", 3},
	}
	for _, c := range tests {
		_, err := Inverse([]byte(c.t), c.primary)
		var e *ErrPrimary
		if !errors.As(err, &e) {
			t.Errorf("Inverse(%q, %d) returned error %v;"+
				" want *ErrPrimary", c.t, c.primary, err)
		}
	}
}
