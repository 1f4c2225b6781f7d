package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli"
)

const quadOBJ = `mtllib quad.mtl
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
usemtl red
f 1 2 3
f 1 3 4
`

const quadMTL = `newmtl red
Kd 1 0 0
map_Kd red.png
`

// runApp runs the CLI with an isolated config file and returns stdout.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "objvarray.yaml")
	if err := os.WriteFile(cfgPath, []byte("logging:\n  level: error\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	origExiter := cli.OsExiter
	cli.OsExiter = func(int) {}
	t.Cleanup(func() { cli.OsExiter = origExiter })

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard

	full := append([]string{"objvarray", "--config", cfgPath}, args...)
	err := app.Run(full)
	return out.String(), err
}

func writeModel(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	objPath := filepath.Join(dir, "quad.obj")
	if err := os.WriteFile(objPath, []byte(quadOBJ), 0644); err != nil {
		t.Fatalf("failed to write obj: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "quad.mtl"), []byte(quadMTL), 0644); err != nil {
		t.Fatalf("failed to write mtl: %v", err)
	}
	return objPath
}

func TestConvertRaw(t *testing.T) {
	out, err := runApp(t, "convert", writeModel(t))
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	expected := `@vertexes = [
  0.0, 0.0, 0.0,  # 0
  1.0, 0.0, 0.0,  # 1
  1.0, 1.0, 0.0,  # 2
  0.0, 1.0, 0.0,  # 3
]

@faces = [
  0, 1, 2,  # 0
  0, 2, 3,  # 1
]
`
	if out != expected {
		t.Errorf("expected:\n%s\ngot:\n%s", expected, out)
	}
}

func TestConvertJSONHexColor(t *testing.T) {
	out, err := runApp(t, "convert", "--json", "--hex-color", "--no-index", writeModel(t))
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !strings.HasPrefix(out, `{"vertex":[0,0,0,1,0,0,1,1,0,`) {
		t.Errorf("expected expanded vertex array, got %s", out)
	}
	if !strings.Contains(out, `"color":[4294901760,4294901760,4294901760,4294901760,4294901760,4294901760]`) {
		t.Errorf("expected six packed red colors, got %s", out)
	}
	if strings.Contains(out, `"face"`) {
		t.Errorf("expected no face key in expanded mode, got %s", out)
	}
}

func TestConvertYAMLFlipX(t *testing.T) {
	out, err := runApp(t, "convert", "--yaml", "--flip-x", writeModel(t))
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !strings.Contains(out, "vertex:") || !strings.Contains(out, "- -1") {
		t.Errorf("expected yaml with negated x, got %s", out)
	}
}

func TestConvertStrictUnknownMaterial(t *testing.T) {
	dir := t.TempDir()
	objPath := filepath.Join(dir, "typo.obj")
	if err := os.WriteFile(objPath, []byte("v 0 0 0\nusemtl redd\nf 1 1 1\n"), 0644); err != nil {
		t.Fatalf("failed to write obj: %v", err)
	}

	if _, err := runApp(t, "convert", "--strict", objPath); err == nil {
		t.Error("expected error for unknown material in strict mode")
	}
	if _, err := runApp(t, "convert", objPath); err != nil {
		t.Errorf("expected unknown material to be tolerated, got %v", err)
	}
}

func TestConvertNoVarray(t *testing.T) {
	out, err := runApp(t, "convert", "--no-varray", writeModel(t))
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if out != "" {
		t.Errorf("expected no output, got %q", out)
	}
}

func TestConvertRejectsNonOBJ(t *testing.T) {
	tests := [][]string{
		{"convert"},
		{"convert", "model.fbx"},
		{"info", "a.obj", "b.obj"},
	}

	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := runApp(t, args...)
			if err == nil {
				t.Fatal("expected usage error")
			}
			if coder, ok := err.(cli.ExitCoder); !ok || coder.ExitCode() != 1 {
				t.Errorf("expected exit code 1, got %v", err)
			}
		})
	}
}

func TestConvertMissingFile(t *testing.T) {
	if _, err := runApp(t, "convert", filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("expected error for missing obj")
	}
}

func TestInfo(t *testing.T) {
	out, err := runApp(t, "info", writeModel(t))
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	for _, want := range []string{"Vertices", "material : red", "face 1 : 1 3 4", "# Texture image list"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected info to contain %q, got:\n%s", want, out)
		}
	}
}

func TestTextures(t *testing.T) {
	out, err := runApp(t, "textures", writeModel(t))
	if err != nil {
		t.Fatalf("textures failed: %v", err)
	}
	if out != "red.png\n" {
		t.Errorf("expected red.png, got %q", out)
	}
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "objvarray.yaml")

	out, err := runApp(t, "init-config", path)
	if err != nil {
		t.Fatalf("init-config failed: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("expected path in output, got %q", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected config file: %v", err)
	}
	if !strings.Contains(string(data), "axis_scale") {
		t.Errorf("expected default config content, got %s", data)
	}

	if _, err := runApp(t, "init-config", path); err == nil {
		t.Error("expected error when file exists without --force")
	}
	if _, err := runApp(t, "init-config", "--force", path); err != nil {
		t.Errorf("expected --force to overwrite, got %v", err)
	}
}
