package table

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/bitmatch/errors"
)

const z80YAML = `
width: 8
entries:
  - name: halt
    pattern: "01110110"
  - name: ld
    pattern: "01dddsss"
    fields: {d: dst, s: src}
  - name: rst
    pattern: "11nnn111"
    fields:
      n: vec
  - name: short
    pattern: "1?0"
    dynamic: true
`

func withObservedLogger(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Logger()
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(prev) })
	return logs
}

func TestLoadYAML(t *testing.T) {
	logs := withObservedLogger(t)

	tbl, err := LoadYAML[uint8](strings.NewReader(z80YAML))
	require.NoError(t, err)
	assert.Equal(t, 4, tbl.Len())

	d, ok := tbl.Decode(0x78)
	require.True(t, ok)
	assert.Equal(t, "ld dst=7 src=0", d.String())

	d, ok = tbl.Decode(0xD7)
	require.True(t, ok)
	assert.Equal(t, "rst vec=2", d.String())

	e, ok := tbl.Lookup("short")
	require.True(t, ok)
	assert.True(t, e.Pattern.Dynamic())

	loaded := logs.FilterMessage("table loaded").All()
	require.Len(t, loaded, 1)
	assert.Equal(t, int64(4), loaded[0].ContextMap()["entries"])

	overlaps := logs.FilterMessage("entries overlap").All()
	require.NotEmpty(t, overlaps)
	assert.Equal(t, zapcore.WarnLevel, overlaps[0].Level)
	assert.Equal(t, "halt", overlaps[0].ContextMap()["first"])
	assert.Equal(t, "ld", overlaps[0].ContextMap()["second"])
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader(z80YAML))
	require.NoError(t, err)
	assert.Equal(t, uint(8), cfg.Width)
	require.Len(t, cfg.Entries, 4)
	assert.Equal(t, map[string]string{"d": "dst", "s": "src"}, cfg.Entries[1].Fields)
	assert.True(t, cfg.Entries[3].Dynamic)

	empty, err := ParseConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty.Entries)
}

func TestLoadYAML_Errors(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		phase errors.Phase
		kind  errors.Kind
	}{
		{
			name:  "malformed",
			yaml:  "entries: [",
			phase: errors.PhaseParse,
			kind:  errors.KindInvalidData,
		},
		{
			name:  "unknown key",
			yaml:  "entries:\n  - name: a\n    patern: \"00000000\"\n",
			phase: errors.PhaseParse,
			kind:  errors.KindInvalidData,
		},
		{
			name:  "width mismatch",
			yaml:  "width: 16\nentries: []\n",
			phase: errors.PhaseLoad,
			kind:  errors.KindInvalidData,
		},
		{
			name:  "missing name",
			yaml:  "entries:\n  - pattern: \"00000000\"\n",
			phase: errors.PhaseLoad,
			kind:  errors.KindFieldMissing,
		},
		{
			name:  "long field key",
			yaml:  "entries:\n  - name: a\n    pattern: \"0000aaaa\"\n    fields: {aa: x}\n",
			phase: errors.PhaseLoad,
			kind:  errors.KindInvalidData,
		},
		{
			name:  "field key not in pattern",
			yaml:  "entries:\n  - name: a\n    pattern: \"0000aaaa\"\n    fields: {b: x}\n",
			phase: errors.PhaseLoad,
			kind:  errors.KindFieldUnknown,
		},
		{
			name:  "wrong pattern length",
			yaml:  "entries:\n  - name: a\n    pattern: \"0000\"\n",
			phase: errors.PhaseCompile,
			kind:  errors.KindLengthMismatch,
		},
		{
			name:  "duplicate",
			yaml:  "entries:\n  - name: a\n    pattern: \"00000000\"\n  - name: a\n    pattern: \"11111111\"\n",
			phase: errors.PhaseLoad,
			kind:  errors.KindDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadYAML[uint8](strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, &errors.Error{Phase: tt.phase, Kind: tt.kind}), "got %v", err)
		})
	}
}

func TestBuild_WidthOptional(t *testing.T) {
	cfg := &Config{Entries: []EntryConfig{{Name: "any", Pattern: "????????????????"}}}
	tbl, err := Build[uint16](cfg)
	require.NoError(t, err)

	_, ok := tbl.Decode(0xBEEF)
	assert.True(t, ok)
}
