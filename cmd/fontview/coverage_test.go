package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/fontview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCoverage(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	a := testAtlas(t)

	missing := checkCoverage(logger, a, fontview.DefaultConfig().WithText("AB\nBA"))
	assert.Empty(t, missing)
	assert.Empty(t, buf.String())

	missing = checkCoverage(logger, a, fontview.DefaultConfig().WithText("ABC AB"))
	assert.Equal(t, []rune{' ', 'C'}, missing)
	assert.Contains(t, buf.String(), "text has runes the atlas lacks")
	assert.Contains(t, buf.String(), "count=2")
}

func TestListGlyphs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, listGlyphs(&buf, testAtlas(t)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `U+0041 'A' col=0 row=0 uv=[0.0000,0.5000]-[0.5000,1.0000]`, lines[0])
	assert.Equal(t, `U+0042 'B' col=1 row=0 uv=[0.5000,0.5000]-[1.0000,1.0000]`, lines[1])
}
