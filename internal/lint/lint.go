// Package lint flags model smells that are legal but probably not
// intended: orphaned sites and assets, limited elements without ranges,
// and suspicious global options.
package lint

import (
	"fmt"

	"github.com/myolab/myolab/internal/scene"
)

type Severity string

const (
	Warning Severity = "warning"
	Info    Severity = "info"
)

type Finding struct {
	Code     string
	Severity Severity
	Element  string
	Message  string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s: %s (%s)", f.Severity, f.Element, f.Message, f.Code)
}

// Check runs every lint rule against a compiled model.
func Check(m *scene.Model) []Finding {
	findings := make([]Finding, 0)
	findings = append(findings, unusedSites(m)...)
	findings = append(findings, unusedAssets(m)...)
	findings = append(findings, limitedWithoutRange(m)...)
	findings = append(findings, ctrlLimitedWithoutRange(m)...)
	findings = append(findings, sizelessGeoms(m)...)
	findings = append(findings, timestepBounds(m)...)
	return findings
}

func unusedSites(m *scene.Model) []Finding {
	used := make(map[string]bool)
	for _, t := range m.Tendons {
		for _, s := range t.Sites {
			used[s.Name] = true
		}
	}
	for _, s := range m.Sensors {
		used[s.Site.Name] = true
	}

	var findings []Finding
	m.Walk(func(b *scene.Body) {
		for _, s := range b.Sites {
			if s.Name == "" || used[s.Name] {
				continue
			}
			findings = append(findings, Finding{
				Code:     "unused-site",
				Severity: Info,
				Element:  fmt.Sprintf("site %q", s.Name),
				Message:  "not referenced by any tendon or sensor",
			})
		}
	})
	return findings
}

func unusedAssets(m *scene.Model) []Finding {
	usedMaterials := make(map[string]bool)
	m.Walk(func(b *scene.Body) {
		for _, g := range b.Geoms {
			if g.Material != nil {
				usedMaterials[g.Material.Name] = true
			}
		}
	})
	usedTextures := make(map[string]bool)
	for _, mat := range m.Materials {
		if usedMaterials[mat.Name] && mat.Texture != "" {
			usedTextures[mat.Texture] = true
		}
	}

	var findings []Finding
	for _, mat := range m.Materials {
		if mat.Name != "" && !usedMaterials[mat.Name] {
			findings = append(findings, Finding{
				Code:     "unused-material",
				Severity: Info,
				Element:  fmt.Sprintf("material %q", mat.Name),
				Message:  "not referenced by any geom",
			})
		}
	}
	for _, tex := range m.Textures {
		if tex.Name != "" && !usedTextures[tex.Name] {
			findings = append(findings, Finding{
				Code:     "unused-texture",
				Severity: Info,
				Element:  fmt.Sprintf("texture %q", tex.Name),
				Message:  "not referenced by any used material",
			})
		}
	}
	return findings
}

func limitedWithoutRange(m *scene.Model) []Finding {
	var findings []Finding
	m.Walk(func(b *scene.Body) {
		for _, j := range b.Joints {
			if j.Limited && j.Range == [2]float64{} {
				findings = append(findings, Finding{
					Code:     "limited-no-range",
					Severity: Warning,
					Element:  fmt.Sprintf("joint %q", j.Name),
					Message:  "limited but no range given",
				})
			}
		}
	})
	for _, t := range m.Tendons {
		if t.Limited && t.Range == [2]float64{} {
			findings = append(findings, Finding{
				Code:     "limited-no-range",
				Severity: Warning,
				Element:  fmt.Sprintf("tendon %q", t.Name),
				Message:  "limited but no range given",
			})
		}
	}
	return findings
}

func ctrlLimitedWithoutRange(m *scene.Model) []Finding {
	var findings []Finding
	for _, a := range m.Actuators {
		if a.CtrlLimited && a.CtrlRange == [2]float64{} {
			findings = append(findings, Finding{
				Code:     "ctrllimited-no-range",
				Severity: Warning,
				Element:  fmt.Sprintf("actuator %q", a.Name),
				Message:  "control limited but no ctrlrange given",
			})
		}
	}
	return findings
}

func sizelessGeoms(m *scene.Model) []Finding {
	var findings []Finding
	m.Walk(func(b *scene.Body) {
		for _, g := range b.Geoms {
			if g.Type == "plane" {
				continue
			}
			if len(g.Size) == 0 && len(g.FromTo) == 0 {
				findings = append(findings, Finding{
					Code:     "geom-no-size",
					Severity: Warning,
					Element:  fmt.Sprintf("geom %q", g.Name),
					Message:  "no size or fromto given",
				})
			}
		}
	})
	return findings
}

func timestepBounds(m *scene.Model) []Finding {
	ts := m.Options.Timestep
	if ts >= 1e-5 && ts <= 0.05 {
		return nil
	}
	return []Finding{{
		Code:     "timestep-bounds",
		Severity: Warning,
		Element:  "option",
		Message:  fmt.Sprintf("timestep %g outside [1e-5, 0.05]", ts),
	}}
}
