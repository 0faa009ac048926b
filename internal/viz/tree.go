package viz

import (
	"fmt"
	"strings"

	"github.com/myolab/myolab/internal/scene"
)

// Tree renders a compiled model as an indented element tree with the
// tendon, actuator, sensor, and asset sections below the body tree.
func Tree(m *scene.Model) string {
	var b strings.Builder

	name := m.Name
	if name == "" {
		name = "(unnamed)"
	}
	b.WriteString(headerStyle.Render(name) + "\n")
	b.WriteString(detailStyle.Render(fmt.Sprintf("integrator=%s timestep=%g",
		m.Options.Integrator, m.Options.Timestep)) + "\n\n")

	writeBody(&b, m.World, "")

	if len(m.Tendons) > 0 {
		b.WriteString("\n" + sectionStyle.Render("TENDONS") + "\n")
		for _, t := range m.Tendons {
			b.WriteString("  " + kindStyle.Render(t.Kind) + " " + nameStyle.Render(t.Name))
			b.WriteString(" " + detailStyle.Render(tendonPath(t)) + "\n")
		}
	}
	if len(m.Actuators) > 0 {
		b.WriteString("\n" + sectionStyle.Render("ACTUATORS") + "\n")
		for _, a := range m.Actuators {
			b.WriteString("  " + kindStyle.Render(a.Kind) + " " + nameStyle.Render(a.Name))
			b.WriteString(" " + detailStyle.Render("-> "+actuatorTarget(a)) + "\n")
		}
	}
	if len(m.Sensors) > 0 {
		b.WriteString("\n" + sectionStyle.Render("SENSORS") + "\n")
		for _, s := range m.Sensors {
			b.WriteString("  " + kindStyle.Render(s.Kind) + " " + nameStyle.Render(s.Name))
			b.WriteString(" " + detailStyle.Render("@ site "+s.Site.Name) + "\n")
		}
	}
	if len(m.Materials) > 0 || len(m.Textures) > 0 {
		b.WriteString("\n" + sectionStyle.Render("ASSETS") + "\n")
		for _, tex := range m.Textures {
			b.WriteString("  " + kindStyle.Render("texture") + " " + nameStyle.Render(tex.Name) + "\n")
		}
		for _, mat := range m.Materials {
			line := "  " + kindStyle.Render("material") + " " + nameStyle.Render(mat.Name)
			if mat.Texture != "" {
				line += " " + detailStyle.Render("-> texture "+mat.Texture)
			}
			b.WriteString(line + "\n")
		}
	}

	return b.String()
}

func writeBody(b *strings.Builder, body *scene.Body, indent string) {
	label := body.Name
	if label == "" {
		label = "(anonymous)"
	}
	b.WriteString(indent + bodyStyle.Render(label))
	if len(body.Pos) > 0 && !body.IsWorld() {
		b.WriteString(" " + detailStyle.Render("pos="+body.Pos.String()))
	}
	b.WriteString("\n")

	child := indent + "  "
	for _, j := range body.Joints {
		line := child + kindStyle.Render("joint") + " " + nameStyle.Render(j.Name) + " " + detailStyle.Render(j.Type)
		if j.Limited {
			line += " " + detailStyle.Render(fmt.Sprintf("range=[%g, %g]", j.Range[0], j.Range[1]))
		}
		b.WriteString(line + "\n")
	}
	for _, g := range body.Geoms {
		gname := g.Name
		if gname == "" {
			gname = "-"
		}
		b.WriteString(child + kindStyle.Render("geom") + " " + nameStyle.Render(gname) + " " + detailStyle.Render(geomDetail(g)) + "\n")
	}
	for _, s := range body.Sites {
		b.WriteString(child + kindStyle.Render("site") + " " + nameStyle.Render(s.Name) + " " + detailStyle.Render("pos="+s.Pos.String()) + "\n")
	}
	for _, c := range body.Children {
		writeBody(b, c, child)
	}
}

func geomDetail(g *scene.Geom) string {
	d := g.Type
	if len(g.Size) > 0 {
		d += " size=" + g.Size.String()
	}
	if g.Material != nil {
		d += " material=" + g.Material.Name
	}
	return d
}

func tendonPath(t *scene.Tendon) string {
	switch t.Kind {
	case scene.SpatialKind:
		names := make([]string, len(t.Sites))
		for i, s := range t.Sites {
			names[i] = s.Name
		}
		return strings.Join(names, " -> ")
	case scene.FixedKind:
		parts := make([]string, len(t.Joints))
		for i, tj := range t.Joints {
			parts[i] = fmt.Sprintf("%g*%s", tj.Coef, tj.Joint.Name)
		}
		return strings.Join(parts, " + ")
	}
	return ""
}

func actuatorTarget(a *scene.Actuator) string {
	if a.Tendon != nil {
		return "tendon " + a.Tendon.Name
	}
	if a.Joint != nil {
		return "joint " + a.Joint.Name
	}
	return "?"
}

// Summary is the one-screen model inspection: element counts plus the
// resolved global options, aligned with a label column.
func Summary(m *scene.Model) string {
	var b strings.Builder
	name := m.Name
	if name == "" {
		name = "(unnamed)"
	}
	b.WriteString(headerStyle.Render(name) + "\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}

	row("Integrator", m.Options.Integrator)
	row("Timestep", fmt.Sprintf("%g s", m.Options.Timestep))
	if len(m.Options.Gravity) > 0 {
		row("Gravity", m.Options.Gravity.String())
	}
	if m.Options.Iterations > 0 {
		row("Iterations", fmt.Sprintf("%d", m.Options.Iterations))
	}
	row("Angles", m.Options.AngleUnit)

	st := m.Stats()
	b.WriteString("\n")
	row("Bodies", fmt.Sprintf("%d", st.Bodies))
	row("Joints", fmt.Sprintf("%d", st.Joints))
	row("Geoms", fmt.Sprintf("%d", st.Geoms))
	row("Sites", fmt.Sprintf("%d", st.Sites))
	row("Tendons", fmt.Sprintf("%d", st.Tendons))
	row("Actuators", fmt.Sprintf("%d", st.Actuators))
	row("Sensors", fmt.Sprintf("%d", st.Sensors))
	if st.Materials > 0 || st.Textures > 0 {
		row("Assets", fmt.Sprintf("%d materials, %d textures", st.Materials, st.Textures))
	}

	return b.String()
}
