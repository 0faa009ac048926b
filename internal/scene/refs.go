package scene

// Ref is one resolved cross-reference edge in the model.
type Ref struct {
	FromKind string
	From     string
	ToKind   string
	To       string
}

// Refs enumerates every name reference the model resolves: tendon sites
// and joints, actuator targets, sensor sites, geom materials, and
// material textures.
func (m *Model) Refs() []Ref {
	refs := make([]Ref, 0)

	for _, t := range m.Tendons {
		for _, s := range t.Sites {
			refs = append(refs, Ref{FromKind: "tendon", From: t.Name, ToKind: "site", To: s.Name})
		}
		for _, j := range t.Joints {
			refs = append(refs, Ref{FromKind: "tendon", From: t.Name, ToKind: "joint", To: j.Joint.Name})
		}
	}
	for _, a := range m.Actuators {
		if a.Tendon != nil {
			refs = append(refs, Ref{FromKind: "actuator", From: a.Name, ToKind: "tendon", To: a.Tendon.Name})
		}
		if a.Joint != nil {
			refs = append(refs, Ref{FromKind: "actuator", From: a.Name, ToKind: "joint", To: a.Joint.Name})
		}
	}
	for _, s := range m.Sensors {
		refs = append(refs, Ref{FromKind: "sensor", From: s.Name, ToKind: "site", To: s.Site.Name})
	}
	m.Walk(func(b *Body) {
		for _, g := range b.Geoms {
			if g.Material != nil {
				refs = append(refs, Ref{FromKind: "geom", From: g.Name, ToKind: "material", To: g.Material.Name})
			}
		}
	})
	for _, mat := range m.Materials {
		if mat.Texture != "" {
			refs = append(refs, Ref{FromKind: "material", From: mat.Name, ToKind: "texture", To: mat.Texture})
		}
	}

	return refs
}
