package scene

import (
	"errors"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// FileDef is a declarative scene file (YAML): optional gravity override plus
// the bodies to create. Example:
//
//	gravity: [0, -9.81, 0]
//	bodies:
//	  - id: ground
//	    kind: ground
//	    size: [20, 0.5, 20]
//	    color: darkgreen
//	  - id: player
//	    kind: box
//	    position: [0, 5, 0]
//	    dynamic: true
//	    color: orange
type FileDef struct {
	Gravity *[3]float32 `yaml:"gravity"`
	Bodies  []BodyDef   `yaml:"bodies"`
}

// BodyDef is one body in a scene file. Size defaults to a unit cube
// (ground: 20×0.5×20); color names map to raylib palette colors.
type BodyDef struct {
	ID       string      `yaml:"id"`
	Kind     string      `yaml:"kind"` // "box" (default) or "ground"
	Size     *[3]float32 `yaml:"size"`
	Position [3]float32  `yaml:"position"`
	Color    string      `yaml:"color"`
	Dynamic  bool        `yaml:"dynamic"`
	Mass     float32     `yaml:"mass"`
}

// GravityVector returns the file's gravity, or the given fallback when the
// file does not set one.
func (d FileDef) GravityVector(fallback rl.Vector3) rl.Vector3 {
	if d.Gravity == nil {
		return fallback
	}
	return rl.NewVector3(d.Gravity[0], d.Gravity[1], d.Gravity[2])
}

// ParseDef decodes a YAML scene definition and validates ids.
func ParseDef(data []byte) (FileDef, error) {
	var def FileDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return FileDef{}, fmt.Errorf("scene file: %w", err)
	}
	seen := make(map[string]bool, len(def.Bodies))
	for i, b := range def.Bodies {
		if b.ID == "" {
			return FileDef{}, fmt.Errorf("scene file: body %d has no id", i)
		}
		if seen[b.ID] {
			return FileDef{}, fmt.Errorf("scene file: %w: %q", ErrDuplicateID, b.ID)
		}
		seen[b.ID] = true
		switch b.Kind {
		case "", "box", "ground":
		default:
			return FileDef{}, fmt.Errorf("scene file: body %q has unknown kind %q", b.ID, b.Kind)
		}
	}
	return def, nil
}

// LoadDef reads and parses a scene file from disk.
func LoadDef(path string) (FileDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileDef{}, fmt.Errorf("scene file: %w", err)
	}
	return ParseDef(data)
}

// Apply creates every body in the definition. Per-body failures are joined
// and returned after the rest of the file has been applied.
func (s *Scene) Apply(def FileDef) error {
	var errs []error
	for _, b := range def.Bodies {
		var err error
		switch b.Kind {
		case "ground":
			err = s.CreateGround(b.ID, defSize(b, rl.NewVector3(20, 0.5, 20)), defPosition(b), Options{Color: colorByName(b.Color)})
		default:
			err = s.CreateBox(b.ID, defSize(b, rl.NewVector3(1, 1, 1)), defPosition(b), Options{
				Color:   colorByName(b.Color),
				Dynamic: b.Dynamic,
				Mass:    b.Mass,
			})
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func defSize(b BodyDef, fallback rl.Vector3) rl.Vector3 {
	if b.Size == nil {
		return fallback
	}
	return rl.NewVector3(b.Size[0], b.Size[1], b.Size[2])
}

func defPosition(b BodyDef) rl.Vector3 {
	return rl.NewVector3(b.Position[0], b.Position[1], b.Position[2])
}

// colorByName maps a small named palette to raylib colors. Unknown or empty
// names fall back to the default gray.
func colorByName(name string) rl.Color {
	switch name {
	case "red":
		return rl.Red
	case "orange":
		return rl.Orange
	case "gold":
		return rl.Gold
	case "green":
		return rl.Green
	case "darkgreen":
		return rl.DarkGreen
	case "blue":
		return rl.Blue
	case "skyblue":
		return rl.SkyBlue
	case "purple":
		return rl.Purple
	case "beige":
		return rl.Beige
	case "brown":
		return rl.Brown
	case "white":
		return rl.RayWhite
	case "gray", "":
		return defaultColor
	default:
		return defaultColor
	}
}
