// Package office defines the host-agnostic contract that presentation editing
// code is written against: context interfaces for the application, its
// presentations, windows, slides, selections, shapes, tables and cells, plus
// the plain value types that cross that boundary.
//
// Concrete implementations live in the host packages (host/document for the
// typed in-process model, host/automation for a late-bound running
// application). Business code depends only on this package.
package office

// PlatformType identifies which host implementation backs an Application.
type PlatformType int

const (
	PlatformUnknown PlatformType = iota
	// PlatformDocument is the typed in-process presentation model.
	PlatformDocument
	// PlatformAutomation is a running application reached through late-bound dispatch.
	PlatformAutomation
)

// String returns the platform name.
func (p PlatformType) String() string {
	switch p {
	case PlatformDocument:
		return "document"
	case PlatformAutomation:
		return "automation"
	default:
		return "unknown"
	}
}

// Feature is an optional capability that a host may or may not support.
type Feature int

const (
	FeatureTableBasic Feature = iota
	FeatureTableAdvancedBorder
	FeatureChart
	FeatureChartAdvanced
	FeatureShapeAlignment
	FeatureShapeBatch
	FeatureTextAdvanced
	FeatureUndoRedo
	FeatureShortcuts

	featureCount
)

var featureNames = [featureCount]string{
	"table-basic",
	"table-advanced-border",
	"chart",
	"chart-advanced",
	"shape-alignment",
	"shape-batch",
	"text-advanced",
	"undo-redo",
	"shortcuts",
}

// String returns the feature name.
func (f Feature) String() string {
	if f < 0 || f >= featureCount {
		return "unknown"
	}
	return featureNames[f]
}

// AllFeatures returns every defined feature in declaration order.
func AllFeatures() []Feature {
	out := make([]Feature, 0, featureCount)
	for f := Feature(0); f < featureCount; f++ {
		out = append(out, f)
	}
	return out
}

// FeatureTable is a fixed truth table of supported features.
// Hosts declare one as a package-level value; it is never mutated.
type FeatureTable [featureCount]bool

// NewFeatureTable builds a table where the listed features are supported.
func NewFeatureTable(supported ...Feature) FeatureTable {
	var t FeatureTable
	for _, f := range supported {
		if f >= 0 && f < featureCount {
			t[f] = true
		}
	}
	return t
}

// Supports reports whether f is marked as supported. Unknown features are unsupported.
func (t FeatureTable) Supports(f Feature) bool {
	if f < 0 || f >= featureCount {
		return false
	}
	return t[f]
}
