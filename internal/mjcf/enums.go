package mjcf

import "fmt"

// String enumerations accepted by the format subset. Empty values mean
// "unset" and are resolved against defaults at compile time.
var (
	Integrators = enumSet("Euler", "RK4")
	Angles      = enumSet("degree", "radian")
	Coordinates = enumSet("local", "global")
	GeomTypes   = enumSet("plane", "box", "sphere", "capsule", "cylinder")
	JointTypes  = enumSet("hinge", "slide", "ball", "free")
)

func enumSet(values ...string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func checkEnum(set map[string]bool, value, element, attr string) error {
	if value == "" || set[value] {
		return nil
	}
	return fmt.Errorf("mjcf: %s: unknown %s %q", element, attr, value)
}

func (d *Document) validateEnums() error {
	if d.Compiler != nil {
		if err := checkEnum(Angles, d.Compiler.Angle, "compiler", "angle"); err != nil {
			return err
		}
		if err := checkEnum(Coordinates, d.Compiler.Coordinate, "compiler", "coordinate"); err != nil {
			return err
		}
	}
	if d.Option != nil {
		if err := checkEnum(Integrators, d.Option.Integrator, "option", "integrator"); err != nil {
			return err
		}
	}
	if d.Default != nil {
		if d.Default.Joint != nil {
			if err := checkEnum(JointTypes, d.Default.Joint.Type, "default joint", "type"); err != nil {
				return err
			}
		}
		if d.Default.Geom != nil {
			if err := checkEnum(GeomTypes, d.Default.Geom.Type, "default geom", "type"); err != nil {
				return err
			}
		}
	}

	check := func(joints []Joint, geoms []Geom) error {
		for _, j := range joints {
			if err := checkEnum(JointTypes, j.Type, elementLabel("joint", j.Name), "type"); err != nil {
				return err
			}
		}
		for _, g := range geoms {
			if err := checkEnum(GeomTypes, g.Type, elementLabel("geom", g.Name), "type"); err != nil {
				return err
			}
		}
		return nil
	}

	if err := check(nil, d.World.Geoms); err != nil {
		return err
	}
	var walk func(bodies []Body) error
	walk = func(bodies []Body) error {
		for _, b := range bodies {
			if err := check(b.Joints, b.Geoms); err != nil {
				return err
			}
			if err := walk(b.Bodies); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(d.World.Bodies)
}

func elementLabel(kind, name string) string {
	if name == "" {
		return kind
	}
	return fmt.Sprintf("%s %q", kind, name)
}
