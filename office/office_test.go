package office

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordLogger struct {
	debug, warn []string
}

func (l *recordLogger) Debug(msg string, _ ...any) { l.debug = append(l.debug, msg) }
func (l *recordLogger) Info(string, ...any) {}
func (l *recordLogger) Warn(msg string, _ ...any) { l.warn = append(l.warn, msg) }
func (l *recordLogger) Error(string, error, ...any) {}

func TestShapeRect(t *testing.T) {
	r := NewShapeRect(10, 20, -5, 40)
	assert.Equal(t, 0.0, r.Width)
	assert.Equal(t, 40.0, r.Height)

	r = NewShapeRect(10, 20, 100, 40)
	assert.Equal(t, 110.0, r.Right())
	assert.Equal(t, 60.0, r.Bottom())
	assert.Equal(t, 60.0, r.CenterX())
	assert.Equal(t, 40.0, r.CenterY())

	moved := r.MoveTo(0, 0)
	assert.Equal(t, ShapeRect{0, 0, 100, 40}, moved)
	assert.Equal(t, 10.0, r.Left, "MoveTo must not mutate the receiver")

	assert.True(t, r.ApproxEqual(ShapeRect{10.2, 20, 100, 39.9}, 0.5))
	assert.False(t, r.ApproxEqual(ShapeRect{11, 20, 100, 40}, 0.5))
	assert.True(t, ShapeRect{}.IsZero())
}

func TestFeatureTable(t *testing.T) {
	ft := NewFeatureTable(FeatureChart, FeatureUndoRedo, Feature(99))
	for _, f := range AllFeatures() {
		want := f == FeatureChart || f == FeatureUndoRedo
		assert.Equal(t, want, ft.Supports(f), f.String())
	}
	assert.False(t, ft.Supports(Feature(-1)))
	assert.Equal(t, "unknown", Feature(42).String())
	assert.Len(t, AllFeatures(), int(featureCount))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#FF8000", RGBColor(0xFF8000), false},
		{"00aaff", RGBColor(0x00AAFF), false},
		{"", Color{}, false},
		{"#FFF", Color{}, true},
		{"zzzzzz", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	c := NewRGB(0x12, 0x34, 0x56)
	assert.Equal(t, "123456", c.Hex())
	assert.Equal(t, uint8(0x12), c.Red())
	assert.Equal(t, uint8(0x34), c.Green())
	assert.Equal(t, uint8(0x56), c.Blue())
	assert.True(t, ThemeColorOf(ThemeAccent1).IsTheme())
	assert.False(t, ThemeColorOf(ThemeNone).Valid)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, FailureNone, Classify(nil))
	assert.Equal(t, FailureStale, Classify(fmt.Errorf("get Name: %w", ErrStale)))
	assert.Equal(t, FailureUnsupported, Classify(fmt.Errorf("get Foo: %w", ErrUnsupported)))
	assert.Equal(t, FailureOther, Classify(errors.New("boom")))
}

func TestContractError(t *testing.T) {
	err := NewContractError("distribute", ErrTooFewShapes)
	assert.ErrorIs(t, err, ErrTooFewShapes)
	var ce *ContractError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "distribute", ce.Op)
	assert.Equal(t, "distribute: too few shapes", err.Error())
}

func TestReadReturnsDefault(t *testing.T) {
	log := &recordLogger{}

	got := Read(log, "name", "fallback", func() (string, error) {
		return "", fmt.Errorf("get Name: %w", ErrUnsupported)
	})
	assert.Equal(t, "fallback", got)
	assert.Len(t, log.debug, 1)
	assert.Empty(t, log.warn)

	got = Read(log, "name", "fallback", func() (string, error) {
		return "", errors.New("rpc failure")
	})
	assert.Equal(t, "fallback", got)
	assert.Len(t, log.warn, 1)

	n := Read(log, "count", -1, func() (int, error) {
		panic("host crashed")
	})
	assert.Equal(t, -1, n)
	assert.Len(t, log.warn, 2)

	assert.Equal(t, 7, Read(nil, "ok", 0, func() (int, error) { return 7, nil }))
}

func TestWrite(t *testing.T) {
	log := &recordLogger{}
	assert.True(t, Write(log, "set", func() error { return nil }))
	assert.False(t, Write(log, "set", func() error { return ErrStale }))
	assert.False(t, Write(log, "set", func() error { panic(errors.New("x")) }))
	assert.Len(t, log.warn, 2)
}

func TestRetry(t *testing.T) {
	calls, refreshes := 0, 0
	v, err := Retry(func() (int, error) {
		calls++
		if calls == 1 {
			return 0, ErrStale
		}
		return 42, nil
	}, func() error {
		refreshes++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, refreshes)

	calls = 0
	_, err = Retry(func() (int, error) {
		calls++
		return 0, ErrStale
	}, func() error { return nil })
	assert.ErrorIs(t, err, ErrStale)
	assert.Equal(t, 2, calls, "retries exactly once")

	calls = 0
	_, err = Retry(func() (int, error) {
		calls++
		return 0, ErrUnsupported
	}, func() error { t.Fatal("refresh must not run"); return nil })
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Equal(t, 1, calls)
}

func TestNameKey(t *testing.T) {
	assert.True(t, SameName("Title 1", " title 1 "))
	// "é" precomposed vs decomposed
	assert.True(t, SameName("Café", "CAFÉ"))
	assert.False(t, SameName("Box 1", "Box 2"))
}

func TestLoggerOrNop(t *testing.T) {
	assert.IsType(t, NopLogger{}, LoggerOrNop(nil))
	l := &recordLogger{}
	assert.Same(t, l, LoggerOrNop(l))
}

func TestCommandFunc(t *testing.T) {
	var nilFn CommandFunc
	assert.False(t, nilFn.TryExecute(nil, CmdAlignLeft))
	fn := CommandFunc(func(_ Application, id string) bool { return id == CmdSelectAll })
	assert.True(t, fn.TryExecute(nil, CmdSelectAll))
	assert.False(t, fn.TryExecute(nil, CmdAlignLeft))
}

func TestRowStyleBorder(t *testing.T) {
	s := RowStyle{Top: SolidBorder(1.5, RGBColor(0)), Bottom: SolidBorder(0.75, RGBColor(0))}
	assert.True(t, s.Border(BorderTop).Visible)
	assert.Equal(t, 0.75, s.Border(BorderBottom).Weight)
	assert.False(t, s.Border(BorderLeft).Visible)
	assert.False(t, s.Border(BorderRight).Visible)
}
