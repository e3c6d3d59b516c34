package domain

// Skill is one of the fixed skill badges a van-dweller can advertise.
// The set matches the skill_type enum in the database.
type Skill string

const (
	SkillMechanic     Skill = "mechanic"
	SkillPlumbing     Skill = "plumbing"
	SkillDecoration   Skill = "decoration"
	SkillConstruction Skill = "construction"
	SkillElectricity  Skill = "electricity"
	SkillCarpentry    Skill = "carpentry"
)

// AllSkills lists every skill, for forms and filters.
var AllSkills = []Skill{
	SkillMechanic,
	SkillPlumbing,
	SkillDecoration,
	SkillConstruction,
	SkillElectricity,
	SkillCarpentry,
}

// skillColors maps each skill to its badge color.
var skillColors = map[Skill]string{
	SkillMechanic:     "#E07A5F",
	SkillPlumbing:     "#81B29A",
	SkillDecoration:   "#F2CC8F",
	SkillConstruction: "#D4A373",
	SkillElectricity:  "#F4A261",
	SkillCarpentry:    "#8B4513",
}

// Valid reports whether s is a member of the enumeration.
func (s Skill) Valid() bool {
	_, ok := skillColors[s]
	return ok
}

// Color returns the badge display color, empty for unknown skills.
func (s Skill) Color() string {
	return skillColors[s]
}
