package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouter_ExclusiveSelection(t *testing.T) {
	ctx, logs := newTestContext(t, &fakeGateway{})
	r := NewRouter(ctx)

	assert.Equal(t, SectionRecommendation, r.Section())
	assert.Equal(t, TabCharacters, r.Tab())

	r.Show(SectionAbout)
	for _, s := range Sections {
		assert.Equal(t, s == SectionAbout, r.IsActive(s), s.String())
	}

	r.ShowTab(TabAbilities)
	r.ToggleTab()
	assert.Equal(t, TabCharacters, r.Tab())

	assert.Equal(t, 3, logs.FilterMessage("section switch").Len()+logs.FilterMessage("tab switch").Len())
}

func TestRouter_IgnoresUnknownValues(t *testing.T) {
	ctx, _ := newTestContext(t, &fakeGateway{})
	r := NewRouter(ctx)

	r.Show(Section(9))
	r.ShowTab(DataTab(-1))

	assert.Equal(t, SectionRecommendation, r.Section())
	assert.Equal(t, TabCharacters, r.Tab())
	assert.Equal(t, "?", Section(9).String())
}
