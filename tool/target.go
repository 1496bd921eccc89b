package tool

// Target is the quantity a drag session edits. It is one of Kerning,
// LeftSidebearing, RightSidebearing or Move.
type Target interface {
	// Layer returns the layer whose glyph owns the edit transaction.
	Layer() Layer
	isTarget()
}

// Kerning edits the kerning between First and Second.
type Kerning struct {
	First, Second Layer
}

type LeftSidebearing struct {
	L Layer
}

type RightSidebearing struct {
	L Layer
}

// Move shifts the outline of L while keeping its advance width.
type Move struct {
	L Layer
}

func (t Kerning) Layer() Layer          { return t.Second }
func (t LeftSidebearing) Layer() Layer  { return t.L }
func (t RightSidebearing) Layer() Layer { return t.L }
func (t Move) Layer() Layer             { return t.L }

func (Kerning) isTarget()          {}
func (LeftSidebearing) isTarget()  {}
func (RightSidebearing) isTarget() {}
func (Move) isTarget()             {}

func targetName(t Target) string {
	switch t.(type) {
	case Kerning:
		return "kern"
	case LeftSidebearing:
		return "LSB"
	case RightSidebearing:
		return "RSB"
	case Move:
		return "move"
	}
	return "none"
}

// Custom parameters that make a master take its metrics from another one.
const (
	ParamLinkFirstMaster = "Link Metrics With First Master"
	ParamLinkMaster      = "Link Metrics With Master"
)

// MetricsLocked reports whether the layer's metrics are linked to another
// master. A layer without master counts as locked.
func MetricsLocked(l Layer) bool {
	m := l.Master()
	if m == nil {
		return true
	}
	for _, name := range []string{ParamLinkFirstMaster, ParamLinkMaster} {
		if v, ok := m.CustomParameter(name); ok && truthy(v) {
			return true
		}
	}
	return false
}

func truthy(v interface{}) bool {
	switch v := v.(type) {
	case nil:
		return true
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		return v != "0" && v != "false"
	}
	return true
}

func sameMaster(a, b Layer) bool {
	ma, mb := a.Master(), b.Master()
	if ma == nil || mb == nil {
		return false
	}
	return ma.ID() == mb.ID()
}
