package closing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOk bool
	}{
		{in: "850 cal", want: 850, wantOk: true},
		{in: "850kcal", want: 850, wantOk: true},
		{in: " 850 ", want: 850, wantOk: true},
		{in: "1234 Cal", want: 1234, wantOk: true},
		{in: "650 KCAL", want: 650, wantOk: true},
		{in: "\t99999 kcal\n", want: 99999, wantOk: true},
		{in: "10", want: 10, wantOk: true},
		{in: "05 cal", want: 5, wantOk: true},
		{in: "400 cal", want: 400, wantOk: true},

		{in: "8500000 cal"},
		{in: "123456"},
		{in: "cal 850"},
		{in: "9 cal"},
		{in: ""},
		{in: "   "},
		{in: "850 cals"},
		{in: "850 k cal"},
		{in: "850 kcal pizza"},
		{in: "pizza 850"},
		{in: "8 50"},
		{in: "-850"},
		{in: "٨٥٠"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Detect(tt.in)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
