package engine

import (
	"fmt"
	"strings"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/adze-editor/adze/pkg/brush"
	"github.com/adze-editor/adze/pkg/edit"
	"github.com/adze-editor/adze/pkg/scene"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms adze Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: uv-scale -> uv_scale
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a 3D vector.
type sexpVec3 struct {
	vec v3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.1f %.1f %.1f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpBrushRef wraps a scene.BrushID so builtins can hand brushes to
// each other.
type sexpBrushRef struct {
	id   scene.BrushID
	name string // human-readable name for error messages
}

func (b *sexpBrushRef) SexpString(ps *zygo.PrintState) string {
	if b.name != "" {
		return fmt.Sprintf("(brushref %q)", b.name)
	}
	return fmt.Sprintf("(brushref %d)", b.id)
}
func (b *sexpBrushRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value; treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a vector from a sexpVec3.
func toVec3(s zygo.Sexp) (v3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return v3.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toBrushRef extracts a BrushID from a sexpBrushRef.
func toBrushRef(s zygo.Sexp) (scene.BrushID, error) {
	if ref, ok := s.(*sexpBrushRef); ok {
		return ref.id, nil
	}
	return 0, fmt.Errorf("expected brush reference, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Shared builtin option handling
// ---------------------------------------------------------------------------

// faceOptions holds per-face metadata parsed from keyword arguments.
type faceOptions struct {
	material int
	texture  string
	uvScale  float64
	hasUV    bool
}

// parseFaceOptions reads the common :material, :texture, and :uv-scale
// keywords.
func parseFaceOptions(pa kwArgs, op string) (faceOptions, error) {
	opts := faceOptions{}
	if v, ok := pa.kw["material"]; ok {
		m, err := toInt(v)
		if err != nil {
			return opts, fmt.Errorf("%s: material: %w", op, err)
		}
		opts.material = m
	}
	if v, ok := pa.kw["texture"]; ok {
		t, err := toString(v)
		if err != nil {
			return opts, fmt.Errorf("%s: texture: %w", op, err)
		}
		opts.texture = t
	}
	if v, ok := pa.kw["uv-scale"]; ok {
		f, err := toFloat64(v)
		if err != nil {
			return opts, fmt.Errorf("%s: uv-scale: %w", op, err)
		}
		opts.uvScale = f
		opts.hasUV = true
	}
	return opts, nil
}

// apply writes the options onto every face of a brush.
func (o faceOptions) apply(b brush.Brush) brush.Brush {
	for i := range b.Faces {
		b.Faces[i].MaterialIndex = o.material
		b.Faces[i].TexturePath = o.texture
		if o.hasUV {
			b.Faces[i].UVScale = v2.Vec{X: o.uvScale, Y: o.uvScale}
		}
	}
	return b
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs all adze DSL builtins into a zygomys environment.
// The builtins operate on the provided Scene, populating it during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, s *scene.Scene, warn *warningCollector) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}

		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}

		return &sexpVec3{vec: v3.Vec{X: x, Y: y, Z: z}}, nil
	})

	// -----------------------------------------------------------------------
	// (cuboid :half (vec3 1 1 1) :at (vec3 0 0 0) :name "wall"
	//         :material 1 :texture "textures/brick" :uv-scale 0.5)
	// -----------------------------------------------------------------------
	env.AddFunction("cuboid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		half := v3.Vec{X: 0.5, Y: 0.5, Z: 0.5}
		if v, ok := pa.kw["half"]; ok {
			h, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("cuboid: half: %w", err)
			}
			if h.X <= 0 || h.Y <= 0 || h.Z <= 0 {
				return zygo.SexpNull, fmt.Errorf("cuboid: half extents must be positive, got (%g %g %g)", h.X, h.Y, h.Z)
			}
			half = h
		}

		at := v3.Vec{}
		if v, ok := pa.kw["at"]; ok {
			a, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("cuboid: at: %w", err)
			}
			at = a
		}

		brushName := ""
		if v, ok := pa.kw["name"]; ok {
			n, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("cuboid: name: %w", err)
			}
			brushName = n
		}

		opts, err := parseFaceOptions(pa, "cuboid")
		if err != nil {
			return zygo.SexpNull, err
		}

		b := opts.apply(brush.Cuboid(half.X, half.Y, half.Z))
		id := s.Add(brushName, at, b)

		return &sexpBrushRef{id: id, name: brushName}, nil
	})

	// -----------------------------------------------------------------------
	// (sphere :radius 2 :at (vec3 0 4 0) :name "dome" :material 3)
	// -----------------------------------------------------------------------
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		radius := 1.0
		if v, ok := pa.kw["radius"]; ok {
			r, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sphere: radius: %w", err)
			}
			if r <= 0 {
				return zygo.SexpNull, fmt.Errorf("sphere: radius must be positive, got %g", r)
			}
			radius = r
		}

		at := v3.Vec{}
		if v, ok := pa.kw["at"]; ok {
			a, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sphere: at: %w", err)
			}
			at = a
		}

		brushName := ""
		if v, ok := pa.kw["name"]; ok {
			n, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sphere: name: %w", err)
			}
			brushName = n
		}

		opts, err := parseFaceOptions(pa, "sphere")
		if err != nil {
			return zygo.SexpNull, err
		}

		b := opts.apply(brush.Sphere(radius))
		id := s.Add(brushName, at, b)

		return &sexpBrushRef{id: id, name: brushName}, nil
	})

	// -----------------------------------------------------------------------
	// (carve :half (vec3 2 1 2) :at (vec3 0 1 0))
	//
	// Subtracts a cuboid region from every intersecting brush in the
	// scene. Returns the number of fragments produced.
	// -----------------------------------------------------------------------
	env.AddFunction("carve", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		half := v3.Vec{X: 0.5, Y: 0.5, Z: 0.5}
		if v, ok := pa.kw["half"]; ok {
			h, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("carve: half: %w", err)
			}
			if h.X <= 0 || h.Y <= 0 || h.Z <= 0 {
				return zygo.SexpNull, fmt.Errorf("carve: half extents must be positive, got (%g %g %g)", h.X, h.Y, h.Z)
			}
			half = h
		}

		at := v3.Vec{}
		if v, ok := pa.kw["at"]; ok {
			a, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("carve: at: %w", err)
			}
			at = a
		}

		cutter := brush.TranslatedFaces(brush.Cuboid(half.X, half.Y, half.Z).Faces, at)
		cmd, ok := edit.Carve(s, cutter)
		if !ok {
			warn.add("carve removed nothing: cutter does not intersect any brush")
			return &zygo.SexpInt{Val: 0}, nil
		}

		return &zygo.SexpInt{Val: int64(len(cmd.Fragments()))}, nil
	})

	// -----------------------------------------------------------------------
	// (clip (cuboid ...) (vec3 0 0 0) (vec3 1 0 0) (vec3 0 0 1))
	//
	// Slices a brush by the plane through three points, keeping the
	// half-space behind it.
	// -----------------------------------------------------------------------
	env.AddFunction("clip", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("clip requires a brush and 3 points, got %d arguments", len(args))
		}

		id, err := toBrushRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("clip: brush: %w", err)
		}
		entry, ok := s.Get(id)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("clip: brush %d not in scene", id)
		}

		var pts [3]v3.Vec
		for i := 0; i < 3; i++ {
			p, err := toVec3(args[i+1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("clip: point %d: %w", i+1, err)
			}
			pts[i] = p
		}

		plane, ok := brush.PlaneFromPoints(pts[0], pts[1], pts[2])
		if !ok {
			return zygo.SexpNull, fmt.Errorf("clip: points are collinear")
		}

		clipped := edit.Clip(entry.Brush, plane)
		s.SetBrush(id, clipped)

		return args[0], nil
	})
}
