package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/Faultbox/objvarray/pkg/formats"
)

const sectionRule = "# ----------------------------------------"

// WriteInfo writes a summary table of the parsed geometry.
func WriteInfo(w io.Writer, geom *formats.OBJ) error {
	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Element", "Count"})
	table.Append([]string{"Vertices", strconv.Itoa(len(geom.Vertices))})
	table.Append([]string{"UVs", strconv.Itoa(len(geom.UVs))})
	table.Append([]string{"Normals", strconv.Itoa(len(geom.Normals))})
	table.Append([]string{"Params", strconv.Itoa(len(geom.Params))})
	table.Append([]string{"Faces", strconv.Itoa(geom.Groups.FaceCount())})
	table.Append([]string{"Corners", strconv.Itoa(geom.Groups.CornerCount())})
	table.Append([]string{"Materials", strconv.Itoa(geom.Groups.Len())})
	table.Append([]string{"Skipped lines", strconv.Itoa(len(geom.Skipped))})
	table.Render()
	return nil
}

// WriteFaces lists every face grouped by material.
func WriteFaces(w io.Writer, geom *formats.OBJ) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, sectionRule)
	fmt.Fprintln(bw, "# Face")
	fmt.Fprintln(bw)
	for _, grp := range geom.Groups.Groups() {
		fmt.Fprintf(bw, "material : %s\n", grp.Material)
		for i, f := range grp.Faces {
			refs := make([]string, len(f.Refs))
			for j, r := range f.Refs {
				refs[j] = r.String()
			}
			smooth := ""
			if f.Smooth {
				smooth = " (smooth)"
			}
			fmt.Fprintf(bw, "face %d : %s%s\n", i, strings.Join(refs, " "), smooth)
		}
	}
	fmt.Fprintln(bw)
	return bw.Flush()
}

// WriteMaterials writes one table row per material.
func WriteMaterials(w io.Writer, mats *formats.MaterialTable) error {
	fmt.Fprintln(w, sectionRule)
	fmt.Fprintln(w, "# Material")
	fmt.Fprintln(w)

	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Name", "Ka", "Kd", "Ks", "Ke", "Ns", "Ni", "d", "illum", "Textures"})
	for _, m := range mats.Materials() {
		table.Append([]string{
			m.Name,
			fmtColor(m.Ambient),
			fmtColor(m.Diffuse),
			fmtColor(m.Specular),
			fmtColor(m.Emission),
			fmtScalar(m.Shininess),
			fmtScalar(m.OpticalDensity),
			fmtScalar(m.Dissolve),
			fmtInt(m.Illum),
			strings.Join(m.TexturePaths(), " "),
		})
	}
	table.Render()
	_, err := fmt.Fprintln(w)
	return err
}

// WriteTextures lists the distinct texture paths, one per line.
func WriteTextures(w io.Writer, mats *formats.MaterialTable) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, sectionRule)
	fmt.Fprintln(bw, "# Texture image list")
	fmt.Fprintln(bw)
	for _, tex := range mats.Textures() {
		fmt.Fprintln(bw, tex)
	}
	fmt.Fprintln(bw)
	return bw.Flush()
}

func fmtColor(c *formats.Color) string {
	if c == nil {
		return "-"
	}
	return fmt.Sprintf("%s %s %s", formatFloat(c.R), formatFloat(c.G), formatFloat(c.B))
}

func fmtScalar(v *float64) string {
	if v == nil {
		return "-"
	}
	return formatFloat(*v)
}

func fmtInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
