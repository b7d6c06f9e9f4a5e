package pointcloud

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func posBytes(records ...[4]float32) []byte {
	var buf bytes.Buffer
	for _, rec := range records {
		for _, v := range rec {
			binary.Write(&buf, binary.BigEndian, math.Float32bits(v))
		}
	}
	return buf.Bytes()
}

func TestReadPOS(t *testing.T) {
	data := posBytes(
		[4]float32{1.5, -2.5, 3.25, 26.98},
		[4]float32{0, 0, 0, 58.93},
	)
	cloud, err := ReadPOS(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 2, cloud.Len())

	p := cloud.Point(0)
	assert.Equal(t, 1.5, p.X)
	assert.Equal(t, -2.5, p.Y)
	assert.Equal(t, 3.25, p.Z)
	assert.InDelta(t, 26.98, p.MassToCharge, 1e-5)

	assert.InDelta(t, 58.93, cloud.MassToCharge[1], 1e-5)
}

func TestReadPOS_Empty(t *testing.T) {
	cloud, err := ReadPOS(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Equal(t, 0, cloud.Len())
}

func TestReadPOS_Truncated(t *testing.T) {
	data := posBytes([4]float32{1, 2, 3, 4})
	_, err := ReadPOS(bytes.NewReader(data[:len(data)-3]))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated")
}

func TestWritePOS_RoundTrip(t *testing.T) {
	in := &Cloud{}
	in.Append(Point{X: 10.5, Y: -4.25, Z: 0.125, MassToCharge: 1.008})
	in.Append(Point{X: -1, Y: 2, Z: -3, MassToCharge: 55.85})

	var buf bytes.Buffer
	require.NoError(t, WritePOS(&buf, in))
	require.Equal(t, 2*POS_RECORD_SIZE, buf.Len())

	out, err := ReadPOS(&buf)
	require.NoError(t, err)
	require.Equal(t, in.Len(), out.Len())
	for i := 0; i < in.Len(); i++ {
		assert.InDelta(t, in.Positions[i][0], out.Positions[i][0], 1e-5)
		assert.InDelta(t, in.Positions[i][1], out.Positions[i][1], 1e-5)
		assert.InDelta(t, in.Positions[i][2], out.Positions[i][2], 1e-5)
		assert.InDelta(t, in.MassToCharge[i], out.MassToCharge[i], 1e-4)
	}
}

func TestWritePOS_RejectsNon3D(t *testing.T) {
	cloud := &Cloud{
		Positions:    [][]float64{{1, 2}},
		MassToCharge: []float64{5},
	}
	err := WritePOS(&bytes.Buffer{}, cloud)
	require.Error(t, err)
}

func TestReadCSV(t *testing.T) {
	src := "x,y,z,mz\n1.0,2.0,3.0,26.98\n4.0,5.0,6.0,58.93\n"
	cloud, err := ReadCSV(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 2, cloud.Len())
	assert.Equal(t, []float64{1, 2, 3}, cloud.Positions[0])
	assert.Equal(t, 26.98, cloud.MassToCharge[0])
}

func TestReadCSV_NoHeader(t *testing.T) {
	src := "1.0,2.0,3.0,26.98\n"
	cloud, err := ReadCSV(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 1, cloud.Len())
}

func TestReadCSV_BadValue(t *testing.T) {
	src := "1.0,2.0,3.0,26.98\n1.0,oops,3.0,26.98\n"
	_, err := ReadCSV(strings.NewReader(src))
	require.Error(t, err)
}

func TestCloudBounds(t *testing.T) {
	cloud := &Cloud{}
	cloud.Append(Point{X: -1, Y: 5, Z: 0, MassToCharge: 1})
	cloud.Append(Point{X: 3, Y: -2, Z: 10, MassToCharge: 2})

	min, max, ok := cloud.Bounds()
	require.True(t, ok)
	assert.Equal(t, []float64{-1, -2, 0}, min)
	assert.Equal(t, []float64{3, 5, 10}, max)

	lo, hi, ok := cloud.MassRange()
	require.True(t, ok)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 2.0, hi)
}

func TestCloudBounds_Empty(t *testing.T) {
	cloud := &Cloud{}
	_, _, ok := cloud.Bounds()
	assert.False(t, ok)
	_, _, ok2 := cloud.MassRange()
	assert.False(t, ok2)
}
