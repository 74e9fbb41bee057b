package shell

import (
	"go.uber.org/zap"

	"teamforge/internal/logging"
)

// Section is a top-level view.
type Section int

const (
	SectionRecommendation Section = iota
	SectionData
	SectionAbout
)

// Sections lists every section in tab order.
var Sections = []Section{SectionRecommendation, SectionData, SectionAbout}

func (s Section) String() string {
	switch s {
	case SectionRecommendation:
		return "Recommend"
	case SectionData:
		return "Data"
	case SectionAbout:
		return "About"
	default:
		return "?"
	}
}

// DataTab is a sub-tab of the data section.
type DataTab int

const (
	TabCharacters DataTab = iota
	TabAbilities
)

// DataTabs lists every data tab in order.
var DataTabs = []DataTab{TabCharacters, TabAbilities}

func (t DataTab) String() string {
	switch t {
	case TabCharacters:
		return "Heroes"
	case TabAbilities:
		return "Skills"
	default:
		return "?"
	}
}

// Router holds the exclusive selection of a section and of a data tab.
// It never touches component state.
type Router struct {
	section Section
	tab     DataTab
	logger  *zap.Logger
}

// NewRouter starts on Recommendation with Heroes selected in Data.
func NewRouter(ctx *Context) *Router {
	return &Router{
		section: SectionRecommendation,
		tab:     TabCharacters,
		logger:  ctx.Logger(logging.CategoryRouter),
	}
}

// Show activates a section. Unknown values are ignored.
func (r *Router) Show(s Section) {
	if s < SectionRecommendation || s > SectionAbout || s == r.section {
		return
	}
	r.logger.Debug("section switch", zap.Stringer("from", r.section), zap.Stringer("to", s))
	r.section = s
}

// ShowTab activates a data tab. Unknown values are ignored.
func (r *Router) ShowTab(t DataTab) {
	if t < TabCharacters || t > TabAbilities || t == r.tab {
		return
	}
	r.logger.Debug("tab switch", zap.Stringer("from", r.tab), zap.Stringer("to", t))
	r.tab = t
}

// ToggleTab switches to the other data tab.
func (r *Router) ToggleTab() {
	if r.tab == TabCharacters {
		r.ShowTab(TabAbilities)
	} else {
		r.ShowTab(TabCharacters)
	}
}

// Section returns the active section.
func (r *Router) Section() Section { return r.section }

// Tab returns the active data tab.
func (r *Router) Tab() DataTab { return r.tab }

// IsActive reports whether s is the active section.
func (r *Router) IsActive(s Section) bool { return r.section == s }
