package analysis

// Config holds every threshold and weight the engine scores with.
// The values are empirically chosen, not derived; keeping them here
// (and in the viper config tree under "analysis") lets them be tuned
// and property-tested without touching the matching logic.
type Config struct {
	// Classification gate
	MinResumeWords   int `mapstructure:"minResumeWords"`   // word count a resume must exceed
	MinIndicatorHits int `mapstructure:"minIndicatorHits"` // distinct indicator words required

	// ATS score weighting; the three weights sum to 1.0
	KeywordWeight float64 `mapstructure:"keywordWeight"`
	SectionWeight float64 `mapstructure:"sectionWeight"`
	FormatWeight  float64 `mapstructure:"formatWeight"`

	// Section quality thresholds
	WeakSpanTokens   int `mapstructure:"weakSpanTokens"`   // spans below this are weak
	StrongSpanTokens int `mapstructure:"strongSpanTokens"` // spans at or above this can be strong
	StrongSignals    int `mapstructure:"strongSignals"`    // bullet/quantifiable lines needed for strong

	// Format analyzer thresholds
	MinPreferredWords int     `mapstructure:"minPreferredWords"` // lower bound of the length band
	MaxPreferredWords int     `mapstructure:"maxPreferredWords"` // upper bound of the length band
	GoodBulletRatio   float64 `mapstructure:"goodBulletRatio"`   // bullet lines / content lines for full credit
	SomeBulletRatio   float64 `mapstructure:"someBulletRatio"`   // partial credit threshold
	MaxUnbrokenRunes  int     `mapstructure:"maxUnbrokenRunes"`  // lines longer than this look like table dumps
}

// DefaultConfig returns the engine defaults. The classification gate
// (5 of 10 indicator words, 100-word minimum) and the 40/30/30 score
// weighting are preserved from the behavior this engine replaces.
func DefaultConfig() Config {
	return Config{
		MinResumeWords:   100,
		MinIndicatorHits: 5,

		KeywordWeight: 0.40,
		SectionWeight: 0.30,
		FormatWeight:  0.30,

		WeakSpanTokens:   20,
		StrongSpanTokens: 60,
		StrongSignals:    3,

		MinPreferredWords: 200,
		MaxPreferredWords: 1100,
		GoodBulletRatio:   0.15,
		SomeBulletRatio:   0.05,
		MaxUnbrokenRunes:  400,
	}
}

// normalize fills zero values with defaults so a partially populated
// Config (for example from an incomplete config file) stays usable.
func (c Config) normalize() Config {
	def := DefaultConfig()
	if c.MinResumeWords <= 0 {
		c.MinResumeWords = def.MinResumeWords
	}
	if c.MinIndicatorHits <= 0 {
		c.MinIndicatorHits = def.MinIndicatorHits
	}
	if c.KeywordWeight <= 0 && c.SectionWeight <= 0 && c.FormatWeight <= 0 {
		c.KeywordWeight = def.KeywordWeight
		c.SectionWeight = def.SectionWeight
		c.FormatWeight = def.FormatWeight
	}
	if c.WeakSpanTokens <= 0 {
		c.WeakSpanTokens = def.WeakSpanTokens
	}
	if c.StrongSpanTokens <= 0 {
		c.StrongSpanTokens = def.StrongSpanTokens
	}
	if c.StrongSignals <= 0 {
		c.StrongSignals = def.StrongSignals
	}
	if c.MinPreferredWords <= 0 {
		c.MinPreferredWords = def.MinPreferredWords
	}
	if c.MaxPreferredWords <= 0 {
		c.MaxPreferredWords = def.MaxPreferredWords
	}
	if c.GoodBulletRatio <= 0 {
		c.GoodBulletRatio = def.GoodBulletRatio
	}
	if c.SomeBulletRatio <= 0 {
		c.SomeBulletRatio = def.SomeBulletRatio
	}
	if c.MaxUnbrokenRunes <= 0 {
		c.MaxUnbrokenRunes = def.MaxUnbrokenRunes
	}
	return c
}
