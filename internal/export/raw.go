package export

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Faultbox/objvarray/pkg/varray"
)

// WriteRaw writes the builder's arrays as a commented listing, one entry per
// line:
//
//	@vertexes = [
//	  0.0, 1.5, 0.0,  # 0
//	]
//
// Blocks for normals, uvs, colors and faces follow when in use.
func WriteRaw(w io.Writer, b *varray.Builder) error {
	data := b.Data()
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "@vertexes = [")
	for i, v := range data.Vertex {
		fmt.Fprintf(bw, "  %s, %s, %s,  # %d\n", formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z), i)
	}
	fmt.Fprintln(bw, "]")
	fmt.Fprintln(bw)

	if b.UseNormal() {
		fmt.Fprintln(bw, "@normals = [")
		for i, n := range data.Normal {
			fmt.Fprintf(bw, "  %s, %s, %s,  # %d\n", formatFloat(n.X), formatFloat(n.Y), formatFloat(n.Z), i)
		}
		fmt.Fprintln(bw, "]")
		fmt.Fprintln(bw)
	}

	if b.UseUV() {
		fmt.Fprintln(bw, "@uvs = [")
		for i, uv := range data.UV {
			fmt.Fprintf(bw, "  %s, %s,  # %d\n", formatFloat(uv.X), formatFloat(uv.Y), i)
		}
		fmt.Fprintln(bw, "]")
		fmt.Fprintln(bw)
	}

	if b.UseColor() {
		fmt.Fprintln(bw, "@colors = [")
		for i, c := range data.Color {
			if b.UseHexColor() {
				fmt.Fprintf(bw, "  %s,  # %d\n", formatPacked(varray.PackColor(c)), i)
				continue
			}
			fmt.Fprintf(bw, "  %s, %s, %s,  # %d\n", formatFloat(c.X), formatFloat(c.Y), formatFloat(c.Z), i)
		}
		fmt.Fprintln(bw, "]")
		fmt.Fprintln(bw)
	}

	if b.UseIndex() {
		fmt.Fprintln(bw, "@faces = [")
		for i, face := range data.Face {
			idx := make([]string, len(face))
			for j, v := range face {
				idx[j] = strconv.FormatUint(uint64(v), 10) + ","
			}
			fmt.Fprintf(bw, "  %s  # %d\n", strings.Join(idx, " "), i)
		}
		fmt.Fprintln(bw, "]")
	}

	return bw.Flush()
}

// formatFloat prints v the way the listing's consumers expect: integral
// values keep a ".0", very large or small magnitudes use an exponent whose
// mantissa always has a fraction.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	abs := math.Abs(v)
	if abs == 0 || (abs >= 1e-4 && abs < 1e16) {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	s := strconv.FormatFloat(v, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	if !strings.Contains(mant, ".") {
		mant += ".0"
	}
	return mant + "e" + exp
}

func formatPacked(c uint32) string {
	return fmt.Sprintf("0x%08X", c)
}
