// Package formats provides parsers for Wavefront geometry and material files.
package formats

// Note: OBJ geometry is implemented in obj.go
// Note: MTL material libraries are implemented in mtl.go
