package english

import "strings"

var ones = []string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var tens = []string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
}

var scales = []struct {
	value int64
	name  string
}{
	{1000000000000, "trillion"},
	{1000000000, "billion"},
	{1000000, "million"},
	{1000, "thousand"},
}

// NumberToWords spells out n: 3 -> "three", 121 -> "one hundred and
// twenty-one".
func NumberToWords(n int64) string {
	if n < 0 {
		return "minus " + NumberToWords(-n)
	}
	if n == 0 {
		return ones[0]
	}
	var parts []string
	for _, s := range scales {
		if n >= s.value {
			parts = append(parts, hundreds(n/s.value, false)+" "+s.name)
			n %= s.value
		}
	}
	if n > 0 {
		parts = append(parts, hundreds(n, len(parts) > 0))
	}
	return strings.Join(parts, " ")
}

// hundreds spells out 0 < n < 1000. A remainder below one hundred after
// a larger scale is joined with "and": one thousand and five.
func hundreds(n int64, and bool) string {
	var words []string
	if n >= 100 {
		words = append(words, ones[n/100], "hundred")
		n %= 100
		and = true
	}
	if n > 0 {
		if and {
			words = append(words, "and")
		}
		words = append(words, belowHundred(n))
	}
	return strings.Join(words, " ")
}

func belowHundred(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + "-" + ones[n%10]
}
