package english

import "testing"

func TestPlural(t *testing.T) {
	for _, tc := range []struct {
		in, out string
	}{
		{"road", "roads"},
		{"bus stop", "bus stops"},
		{"untagged way", "untagged ways"},
		{"man made feature", "man made features"},
		{"pharmacy", "pharmacies"},
		{"bench", "benches"},
		{"address", "addresses"},
		{"", ""},
	} {
		if got := Plural(tc.in); got != tc.out {
			t.Errorf("Plural(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestArticle(t *testing.T) {
	for _, tc := range []struct {
		in, out string
	}{
		{"restaurant", "a restaurant"},
		{"apple", "an apple"},
		{"unidentified node", "an unidentified node"},
		{"untagged way", "an untagged way"},
		{"unnamed building", "an unnamed building"},
		{"university", "a university"},
		{"hour", "an hour"},
		{"one-way street", "a one-way street"},
		{"European hotel", "a European hotel"},
		{"ATM", "an ATM"},
		{"BP", "a BP"},
		{"Ikea", "an Ikea"},
		{"Starbucks", "a Starbucks"},
	} {
		if got := A(tc.in); got != tc.out {
			t.Errorf("A(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestNumberToWords(t *testing.T) {
	for _, tc := range []struct {
		in  int64
		out string
	}{
		{0, "zero"},
		{2, "two"},
		{3, "three"},
		{13, "thirteen"},
		{20, "twenty"},
		{42, "forty-two"},
		{100, "one hundred"},
		{121, "one hundred and twenty-one"},
		{1005, "one thousand and five"},
		{1234, "one thousand two hundred and thirty-four"},
		{2000000, "two million"},
		{-7, "minus seven"},
	} {
		if got := NumberToWords(tc.in); got != tc.out {
			t.Errorf("NumberToWords(%d) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestJoin(t *testing.T) {
	for _, tc := range []struct {
		in  []string
		out string
	}{
		{nil, ""},
		{[]string{"a"}, "a"},
		{[]string{"a", "c"}, "a and c"},
		{[]string{"a", "b", "c"}, "a, b, and c"},
		{[]string{"a", "b", "c", "d"}, "a, b, c, and d"},
	} {
		if got := Join(tc.in); got != tc.out {
			t.Errorf("Join(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
}
