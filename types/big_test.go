package types

import (
	"encoding/json"
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/fxamacker/cbor/v2"
)

func TestBigMarshalUnmarshalJSON(t *testing.T) {
	c := qt.New(t)
	bi := (*BigInt)(big.NewInt(1234567890))
	data, err := json.Marshal(map[string]*BigInt{"bi": bi})
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, `{"bi":"1234567890"}`)

	var unmarshaled map[string]*BigInt
	c.Assert(json.Unmarshal(data, &unmarshaled), qt.IsNil)
	c.Assert(unmarshaled["bi"].Equal(bi), qt.IsTrue)
}

func TestBigMarshalUnmarshalCBOR(t *testing.T) {
	c := qt.New(t)
	bi := (*BigInt)(big.NewInt(1234567890))
	data, err := cbor.Marshal(map[string]*BigInt{"bi": bi})
	c.Assert(err, qt.IsNil)

	var unmarshaled map[string]*BigInt
	c.Assert(cbor.Unmarshal(data, &unmarshaled), qt.IsNil)
	c.Assert(unmarshaled["bi"].Equal(bi), qt.IsTrue)
}

func TestBigUnmarshalJSONNumeric(t *testing.T) {
	c := qt.New(t)

	var biString BigInt
	c.Assert(json.Unmarshal([]byte(`"123456789"`), &biString), qt.IsNil)
	c.Assert(biString.String(), qt.Equals, "123456789")

	var biNumeric BigInt
	c.Assert(json.Unmarshal([]byte(`123456789`), &biNumeric), qt.IsNil)
	c.Assert(biNumeric.String(), qt.Equals, "123456789")

	var bad BigInt
	c.Assert(json.Unmarshal([]byte(`"12a"`), &bad), qt.IsNotNil)
}

func TestBigReduce(t *testing.T) {
	c := qt.New(t)
	p := big.NewInt(7)
	c.Assert(NewInt(10).Reduce(p).String(), qt.Equals, "3")
	c.Assert(NewInt(-1).Reduce(p).String(), qt.Equals, "6")
	c.Assert(NewInt(7).Reduce(p).String(), qt.Equals, "0")
}

func TestBigEqual(t *testing.T) {
	c := qt.New(t)
	var nilInt *BigInt
	c.Assert(nilInt.Equal(nil), qt.IsTrue)
	c.Assert(nilInt.Equal(NewInt(0)), qt.IsFalse)
	c.Assert(NewInt(5).Equal(NewInt(5)), qt.IsTrue)
	c.Assert(NewInt(256).Bytes(), qt.DeepEquals, HexBytes{0x01, 0x00})
}
