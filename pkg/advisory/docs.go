package advisory

// Documentation links attached to advisories. Kept in one place so the
// validator, readers and CLI agree on where each finding points.
const (
	DocsComponents     = "https://rasa.com/docs/rasa/components"
	DocsPolicies       = "https://rasa.com/docs/rasa/policies"
	DocsRules          = "https://rasa.com/docs/rasa/rules"
	DocsDefaultActions = "https://rasa.com/docs/rasa/default-actions"
	DocsTrainingData   = "https://rasa.com/docs/rasa/training-data-format"
)
