package kernels

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestFprintDrawsBox(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	var sb strings.Builder
	Fprint(&sb, m, 80)

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 4, "border, two rows, border")
	assert.True(t, strings.HasPrefix(lines[0], "┌"))
	assert.True(t, strings.HasSuffix(lines[0], "┐"))
	assert.Contains(t, lines[1], "1")
	assert.Contains(t, lines[1], "2")
	assert.True(t, strings.HasPrefix(lines[3], "└"))

	// All rows render to the same display width.
	assert.Equal(t, len([]rune(lines[1])), len([]rune(lines[2])))
}

func TestFprintTooWide(t *testing.T) {
	m := mat.NewDense(9, 9, nil)
	var sb strings.Builder
	Fprint(&sb, m, 10)
	assert.Equal(t, "Matrix too big to display\n", sb.String())
}
