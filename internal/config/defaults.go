package config

// Default configuration values.
const (
	DefaultPlatform   = "ansi"
	DefaultOutput     = "auto"
	DefaultLogLevel   = "info"
	DefaultVocabulary = VocabularyStandard
)

// Vocabulary names accepted by the vocabulary key.
const (
	VocabularyStandard = "standard"
	VocabularyLegacy   = "legacy"
)

// Output formats accepted by the output key.
const (
	OutputAuto = "auto"
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// defaults returns the lowest-priority configuration layer.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"platform":   DefaultPlatform,
		"output":     DefaultOutput,
		"log_level":  DefaultLogLevel,
		"vocabulary": DefaultVocabulary,
	}
}
