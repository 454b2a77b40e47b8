package toast

// Style is the fixed look of one severity.
type Style struct {
	Icon   string // Glyph shown in the icon badge
	Accent string // CSS color used for the border, badge and countdown bar
}

// Presentation is the styling table renderers must honor.
type Presentation struct {
	Styles     map[Severity]Style
	Fallback   Severity // Severity whose style unknown severities borrow
	CloseGlyph string
}

// DefaultPresentation returns the built-in severity table.
func DefaultPresentation() Presentation {
	return Presentation{
		Styles: map[Severity]Style{
			SeveritySuccess: {Icon: "✓", Accent: "#28a745"},
			SeverityError:   {Icon: "✕", Accent: "#dc3545"},
			SeverityWarning: {Icon: "!", Accent: "#ffc107"},
			SeverityInfo:    {Icon: "i", Accent: "#17a2b8"},
		},
		Fallback:   SeverityInfo,
		CloseGlyph: "×",
	}
}

// Resolve returns the severity whose style applies to s, and that style.
// Unknown severities resolve to the fallback.
func (p Presentation) Resolve(s Severity) (Severity, Style) {
	if style, ok := p.Styles[s]; ok {
		return s, style
	}
	if style, ok := p.Styles[p.Fallback]; ok {
		return p.Fallback, style
	}
	return SeverityInfo, Style{Icon: "i", Accent: "#17a2b8"}
}
