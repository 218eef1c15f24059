// Package ontology provides the static catalog of recognized skills.
// The catalog is hand-maintained; extraction strategies consult it to map
// skill names to their category.
package ontology

import "strings"

// SkillType categorizes a skill in the catalog.
type SkillType string

const (
	// TypeHard is a technical, tool- or language-specific skill
	TypeHard SkillType = "hard"
	// TypeSoft is an interpersonal or organizational skill
	TypeSoft SkillType = "soft"
	// TypeEmerging is a skill in a still-forming discipline
	TypeEmerging SkillType = "emerging"
)

// Skill is a single catalog entry.
type Skill struct {
	Name string
	Type SkillType
}

// catalog maps each skill type to its known skill names.
var catalog = map[SkillType][]string{
	TypeHard: {
		"Python", "JavaScript", "Java", "C++", "C#", "Go", "Rust", "TypeScript",
		"React", "Vue.js", "Angular", "Node.js", "Django", "Flask", "FastAPI",
		"PostgreSQL", "MySQL", "MongoDB", "Redis", "Docker", "Kubernetes",
		"AWS", "Azure", "GCP", "Linux", "Git", "REST APIs", "GraphQL",
	},
	TypeSoft: {
		"Leadership", "Communication", "Problem Solving", "Teamwork",
		"Project Management", "Agile", "Scrum", "Mentoring", "Teaching",
	},
	TypeEmerging: {
		"Machine Learning", "AI", "Data Science", "Blockchain", "Web3",
		"IoT", "AR/VR", "Quantum Computing", "Edge Computing",
	},
}

// byName indexes the catalog by lowercased skill name for type lookups.
var byName = func() map[string]Skill {
	m := make(map[string]Skill)
	for t, names := range catalog {
		for _, name := range names {
			m[strings.ToLower(name)] = Skill{Name: name, Type: t}
		}
	}
	return m
}()

// All returns every skill in the catalog.
func All() []Skill {
	skills := make([]Skill, 0, len(byName))
	for _, t := range []SkillType{TypeHard, TypeSoft, TypeEmerging} {
		for _, name := range catalog[t] {
			skills = append(skills, Skill{Name: name, Type: t})
		}
	}
	return skills
}

// ByType returns the skills of a single category.
func ByType(t SkillType) []Skill {
	names := catalog[t]
	skills := make([]Skill, 0, len(names))
	for _, name := range names {
		skills = append(skills, Skill{Name: name, Type: t})
	}
	return skills
}

// Lookup finds a catalog entry by name, case-insensitively.
// The returned entry carries the canonical name and type.
func Lookup(name string) (Skill, bool) {
	s, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// TypeOf returns the catalog type for a skill name, defaulting to hard
// for names outside the catalog (LLM-proposed skills land here).
func TypeOf(name string) SkillType {
	if s, ok := Lookup(name); ok {
		return s.Type
	}
	return TypeHard
}
