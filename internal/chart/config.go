package chart

// StyleConfig carries the brand styling applied uniformly to every chart
// rendered in a run. All fields have defaults so callers may override only
// what they care about.
type StyleConfig struct {
	MainColor         string
	HeaderBg          string
	TextColor         string
	BorderColor       string
	BulletColor       string
	AlternateRowColor string

	TableBorderWidth     float64
	HeaderBorderWidth    float64
	OuterBorderWidth     float64
	TitleUnderlineHeight float64

	TitleFontSize  float64
	HeaderFontSize float64
	CellFontSize   float64
	DetailFontSize float64
	BulletFontSize float64

	BrandName string
	LogoPath  string
}

// StyleWithOverrides returns the default style with any non-empty overrides applied
func StyleWithOverrides(brandName, mainColor, headerBg, logoPath string) StyleConfig {
	style := DefaultStyle()
	if brandName != "" {
		style.BrandName = brandName
	}
	if mainColor != "" {
		style.MainColor = mainColor
	}
	if headerBg != "" {
		style.HeaderBg = headerBg
	}
	if logoPath != "" {
		style.LogoPath = logoPath
	}
	return style
}

// DefaultStyle returns the stock purple brand styling
func DefaultStyle() StyleConfig {
	return StyleConfig{
		MainColor:            "#8B4A9C",
		HeaderBg:             "#D1B3E0",
		TextColor:            "#000000",
		BorderColor:          "#8B4A9C",
		BulletColor:          "#8B4A9C",
		AlternateRowColor:    "#F8F8F8",
		TableBorderWidth:     11,
		HeaderBorderWidth:    18,
		OuterBorderWidth:     22,
		TitleUnderlineHeight: 4,
		TitleFontSize:        48,
		HeaderFontSize:       32,
		CellFontSize:         38,
		DetailFontSize:       32,
		BulletFontSize:       36,
	}
}
