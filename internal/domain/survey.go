package domain

// SurveyEntry is one user's full set of survey answers, stored as a single
// JSON document keyed by question key. Re-submitting replaces the document.
type SurveyEntry struct {
	ID              int64                  `json:"-" db:"id"`
	DiscordUsername string                 `json:"discord_username" db:"discord_username"`
	Responses       map[string]interface{} `json:"responses" db:"responses"`
}

// SurveyQuestion describes one question of the dynamic survey form.
type SurveyQuestion struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Type     string   `json:"type"` // text, radio, checkbox
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
}

// SurveySection groups questions; locked sections are gated by the consumer.
type SurveySection struct {
	Title     string           `json:"title"`
	Locked    bool             `json:"locked"`
	Questions []SurveyQuestion `json:"questions"`
}

// SurveyDefinition is the full survey structure served to clients, which
// render the form from it dynamically.
type SurveyDefinition struct {
	Sections []SurveySection `json:"sections"`
}

// SurveyResults maps question key -> answer -> count. Checkbox answers
// (lists) count each selected option; radio and text answers count once.
type SurveyResults map[string]map[string]int
