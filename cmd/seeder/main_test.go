package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDemoPlayers(t *testing.T) {
	a := demoPlayers("club1", 12, 7)
	b := demoPlayers("club1", 12, 7)

	assert.Len(t, a, 12)
	for i := range a {
		assert.Equal(t, "club1", a[i].ClubID)
		assert.Equal(t, a[i].Skill, b[i].Skill, "same seed gives same skills")
		assert.GreaterOrEqual(t, a[i].Skill, 0.5)
		assert.LessOrEqual(t, a[i].Skill, 7.0)
		assert.NotEqual(t, a[i].ID, b[i].ID)
	}
}
