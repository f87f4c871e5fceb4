package log_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/davinci-poly/log"
)

func captureLogs(c *qt.C, level string) *bytes.Buffer {
	previous := log.Level()
	buf := new(bytes.Buffer)
	log.InitWriter(level, buf)
	c.Cleanup(func() { log.Init(previous, "stderr", nil) })
	return buf
}

func lines(c *qt.C, buf *bytes.Buffer) []map[string]any {
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]any{}
		c.Assert(json.Unmarshal([]byte(line), &m), qt.IsNil, qt.Commentf("line %q", line))
		out = append(out, m)
	}
	return out
}

func TestKeyValues(t *testing.T) {
	c := qt.New(t)
	buf := captureLogs(c, log.LogLevelDebug)

	log.Debugw("polynomial opened", "length", 4, "field", "bls12381-fr")
	log.Errorw(errors.New("boom"), "open failed")

	got := lines(c, buf)
	c.Assert(got, qt.HasLen, 2)
	c.Assert(got[0]["level"], qt.Equals, "debug")
	c.Assert(got[0]["message"], qt.Equals, "polynomial opened")
	c.Assert(got[0]["length"], qt.Equals, float64(4))
	c.Assert(got[0]["field"], qt.Equals, "bls12381-fr")
	c.Assert(got[0]["caller"], qt.Matches, `log/log_test\.go:\d+`)
	c.Assert(got[1]["error"], qt.Equals, "boom")
}

func TestLevelFilter(t *testing.T) {
	c := qt.New(t)
	buf := captureLogs(c, log.LogLevelWarn)
	c.Assert(log.Level(), qt.Equals, log.LogLevelWarn)

	log.Debug("hidden")
	log.Infof("hidden %d", 1)
	log.Warnw("shown", "n", 1)

	got := lines(c, buf)
	c.Assert(got, qt.HasLen, 1)
	c.Assert(got[0]["message"], qt.Equals, "shown")
}

func TestTimed(t *testing.T) {
	c := qt.New(t)
	buf := captureLogs(c, log.LogLevelDebug)

	log.Timed("evaluated", time.Now().Add(-time.Second), "points", 3)
	got := lines(c, buf)
	c.Assert(got, qt.HasLen, 1)
	c.Assert(got[0]["took"].(float64) >= 1000, qt.IsTrue)
	c.Assert(got[0]["points"], qt.Equals, float64(3))
}

func TestValidLevel(t *testing.T) {
	c := qt.New(t)
	c.Assert(log.ValidLevel("debug"), qt.IsTrue)
	c.Assert(log.ValidLevel("trace"), qt.IsFalse)
	c.Assert(func() { log.InitWriter("verbose", new(bytes.Buffer)) }, qt.PanicMatches, `invalid log level: "verbose"`)
}

func TestOnError(t *testing.T) {
	c := qt.New(t)
	captureLogs(c, log.LogLevelDebug)

	c.Run("error triggers handler", func(c *qt.C) {
		var got []string
		restore := log.OnError(func(msg string) { got = append(got, msg) })
		defer restore()

		log.Warn("not an error")
		log.Errorw(nil, "divide failed")
		log.Error("store failed")
		c.Assert(got, qt.DeepEquals, []string{"divide failed", "store failed"})
	})

	c.Run("restore removes the hook", func(c *qt.C) {
		var got []string
		restore := log.OnError(func(msg string) { got = append(got, msg) })
		restore()

		log.Error("after restore")
		c.Assert(got, qt.HasLen, 0)
	})
}
