package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	assert.Equal(t, Free, Parse("free"))
	assert.Equal(t, Pro, Parse("pro"))
	assert.Equal(t, Business, Parse("business"))
	assert.Equal(t, Enterprise, Parse("enterprise"))

	assert.Equal(t, Free, Parse(""))
	assert.Equal(t, Free, Parse("platinum"))
	assert.Equal(t, Free, Parse("PRO"), "matching is case sensitive")
}

func TestTierOrdering(t *testing.T) {
	ordered := []Tier{Free, Pro, Business, Enterprise}
	for i, lower := range ordered {
		for j, higher := range ordered {
			assert.Equal(t, i >= j, lower.AtLeast(higher), "%s.AtLeast(%s)", lower, higher)
		}
	}
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "free", Free.String())
	assert.Equal(t, "enterprise", Enterprise.String())
	assert.Equal(t, "free", Tier(42).String())
}
