package journal

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rustyeddy/rtracker/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestRenderEquityChart(t *testing.T) {
	t.Parallel()

	curve := []stats.Point{
		{Index: 0, Balance: 50000},
		{Index: 1, Balance: 49750},
		{Index: 2, Balance: 50185},
		{Index: 3, Balance: 50535},
	}

	png, err := RenderEquityChart(curve, 54000)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestRenderEquityChartNeedsTwoPoints(t *testing.T) {
	t.Parallel()

	_, err := RenderEquityChart([]stats.Point{{Balance: 50000}}, 54000)
	assert.Error(t, err)
}

func TestWriteEquityChart(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "equity.png")
	curve := []stats.Point{{Index: 0, Balance: 50000}, {Index: 1, Balance: 50435}}
	require.NoError(t, WriteEquityChart(path, curve, 54000))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}
