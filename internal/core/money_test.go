package core

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"$24,318", 24318, true},
		{"24318", 24318, true},
		{" $1,234,567 ", 1234567, true},
		{"€7", 7, true},
		{"$0", 0, true},
		{"", 0, true},
		{"$", 0, true},
		{"-$12", -12, true},
		{"abc", 0, false},
		{"$12.5", 0, false},
		{"1 2x", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if !errors.Is(err, ErrParse) {
				t.Fatalf("%q expected ErrParse, got %v", tc.in, err)
			}
		}
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want Date
	}{
		{"2022-12-31", NewDate(2022, 12, 31)},
		{"Dec 31, 2022", NewDate(2022, 12, 31)},
		{"Sep 30, 2022", NewDate(2022, 9, 30)},
		{"June 30, 2022", NewDate(2022, 6, 30)},
		{"03/31/2021", NewDate(2021, 3, 31)},
		{" 2021/03/31 ", NewDate(2021, 3, 31)},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.in, err)
		}
		if !got.Equal(tc.want.Time) {
			t.Fatalf("%q: got %s, want %s", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"", "Q4 2022", "31.12.2022", "2022-13-01"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrParse) {
			t.Fatalf("%q: expected ErrParse, got %v", bad, err)
		}
	}
}
