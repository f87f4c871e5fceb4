package types

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestHexBytes(t *testing.T) {
	c := qt.New(t)

	c.Run("String", func(c *qt.C) {
		testCases := []struct {
			name string
			in   HexBytes
			want string
		}{
			{name: "nil slice", in: nil, want: "0x"},
			{name: "empty", in: HexBytes{}, want: "0x"},
			{name: "non-empty", in: HexBytes{0x00, 0xAB, 0xCD}, want: "0x00abcd"},
		}
		for _, tc := range testCases {
			c.Run(tc.name, func(c *qt.C) {
				c.Assert(tc.in.String(), qt.Equals, tc.want)
			})
		}
	})

	c.Run("LeftPad", func(c *qt.C) {
		in := HexBytes{0x01, 0x02}
		out := in.LeftPad(4)
		c.Assert(out, qt.DeepEquals, HexBytes{0x00, 0x00, 0x01, 0x02})
		c.Assert(in.LeftPad(1), qt.DeepEquals, in)

		// padding returns a copy
		same := in.LeftPad(2)
		same[0] = 0xFF
		c.Assert(in[0], qt.Equals, byte(0x01))
	})

	c.Run("LeftTrim", func(c *qt.C) {
		c.Assert(HexBytes{0x00, 0x00, 0x05}.LeftTrim(), qt.DeepEquals, HexBytes{0x05})
		c.Assert(HexBytes{0x00}.LeftTrim(), qt.DeepEquals, HexBytes{})
	})

	c.Run("JSON", func(c *qt.C) {
		data, err := json.Marshal(HexBytes{0xde, 0xad})
		c.Assert(err, qt.IsNil)
		c.Assert(string(data), qt.Equals, `"0xdead"`)

		testCases := []struct {
			in   string
			want HexBytes
		}{
			{in: `"0xdead"`, want: HexBytes{0xde, 0xad}},
			{in: `"DEAD"`, want: HexBytes{0xde, 0xad}},
			{in: `"0x1"`, want: HexBytes{0x01}},
		}
		for _, tc := range testCases {
			var got HexBytes
			c.Assert(json.Unmarshal([]byte(tc.in), &got), qt.IsNil, qt.Commentf("input %s", tc.in))
			c.Assert(got, qt.DeepEquals, tc.want)
		}

		var got HexBytes
		c.Assert(json.Unmarshal([]byte(`"0xzz"`), &got), qt.ErrorMatches, `invalid hex string "zz".*`)
		c.Assert(got.UnmarshalJSON([]byte(`dead`)), qt.ErrorMatches, `invalid JSON string.*`)
	})

	c.Run("HexStringToHexBytesMustUnmarshal", func(c *qt.C) {
		c.Assert(HexStringToHexBytesMustUnmarshal("0x0102"), qt.DeepEquals, HexBytes{0x01, 0x02})
		c.Assert(func() { HexStringToHexBytesMustUnmarshal("nothex") }, qt.PanicMatches, `invalid hex string.*`)
	})
}

func TestHexBytesSliceOfErr(t *testing.T) {
	c := qt.New(t)
	out, err := SliceOfErr([]string{"1", "2"}, strconv.Atoi)
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.DeepEquals, []int{1, 2})

	_, err = SliceOfErr([]string{"1", "x"}, strconv.Atoi)
	var indexErr *IndexError
	c.Assert(errors.As(err, &indexErr), qt.IsTrue)
	c.Assert(indexErr.Index, qt.Equals, 1)
	c.Assert(err, qt.ErrorMatches, `element 1: .*invalid syntax`)
}
