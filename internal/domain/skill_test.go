package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillValid(t *testing.T) {
	for _, s := range AllSkills {
		assert.True(t, s.Valid(), "skill %s should be valid", s)
	}
	assert.False(t, Skill("welding").Valid())
	assert.False(t, Skill("").Valid())
	assert.False(t, Skill("Mechanic").Valid())
}

func TestSkillColor(t *testing.T) {
	for _, s := range AllSkills {
		assert.NotEmpty(t, s.Color(), "skill %s should have a color", s)
	}
	assert.Equal(t, "#E07A5F", SkillMechanic.Color())
	assert.Empty(t, Skill("welding").Color())
}
