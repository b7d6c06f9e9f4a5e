package pointcloud

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/banshee-data/apt.report/internal/monitoring"
)

// POS file format constants.
//
// POS is the de-facto interchange format for reconstructed atom-probe
// data: a headerless stream of fixed-size records, each four IEEE-754
// single-precision floats in big-endian byte order.
const (
	POS_FLOATS_PER_RECORD = 4                         // x, y, z, mass-to-charge
	POS_RECORD_SIZE       = POS_FLOATS_PER_RECORD * 4 // 16 bytes per point
)

// ReadPOS reads a complete POS stream into a Cloud. A trailing partial
// record is an error: it means the file is truncated or not POS at all.
func ReadPOS(r io.Reader) (*Cloud, error) {
	br := bufio.NewReader(r)
	cloud := &Cloud{}
	rec := make([]byte, POS_RECORD_SIZE)
	for i := 0; ; i++ {
		_, err := io.ReadFull(br, rec)
		if err == io.EOF {
			return cloud, nil
		}
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("truncated POS record %d", i)
		}
		if err != nil {
			return nil, fmt.Errorf("read POS record %d: %w", i, err)
		}
		cloud.Append(Point{
			X:            float64(float32frombytes(rec[0:4])),
			Y:            float64(float32frombytes(rec[4:8])),
			Z:            float64(float32frombytes(rec[8:12])),
			MassToCharge: float64(float32frombytes(rec[12:16])),
		})
	}
}

// ReadPOSFile reads a POS file from disk.
func ReadPOSFile(path string) (*Cloud, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open POS file: %w", err)
	}
	defer f.Close()
	cloud, err := ReadPOS(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	monitoring.Logf("pointcloud: read %d ions from %s", cloud.Len(), path)
	return cloud, nil
}

// WritePOS writes the cloud as a POS stream. Position vectors must be
// three-dimensional; values are narrowed to float32 as the format
// requires.
func WritePOS(w io.Writer, cloud *Cloud) error {
	bw := bufio.NewWriter(w)
	rec := make([]byte, POS_RECORD_SIZE)
	for i := 0; i < cloud.Len(); i++ {
		pos := cloud.Positions[i]
		if len(pos) != 3 {
			return fmt.Errorf("point %d: POS requires 3-D positions, got %d components", i, len(pos))
		}
		float32tobytes(rec[0:4], float32(pos[0]))
		float32tobytes(rec[4:8], float32(pos[1]))
		float32tobytes(rec[8:12], float32(pos[2]))
		float32tobytes(rec[12:16], float32(cloud.MassToCharge[i]))
		if _, err := bw.Write(rec); err != nil {
			return fmt.Errorf("write POS record %d: %w", i, err)
		}
	}
	return bw.Flush()
}

func float32frombytes(b []byte) float32 {
	return math.Float32frombits(binary.BigEndian.Uint32(b))
}

func float32tobytes(b []byte, v float32) {
	binary.BigEndian.PutUint32(b, math.Float32bits(v))
}
