package dialogue

import "fmt"

// Rule-policy config keys relevant to domain compatibility.
const (
	keyEnableFallback     = "enable_fallback_prediction"
	keyFallbackActionName = "core_fallback_action_name"
)

// CheckRulePolicyDomainCompatibility validates a rule policy's config
// against the domain. Fallback prediction is on by default; when active,
// the configured fallback action must exist in the domain, otherwise the
// policy would predict an action the assistant cannot run.
func CheckRulePolicyDomainCompatibility(config map[string]any, d *Domain) error {
	enabled := true
	if v, ok := config[keyEnableFallback].(bool); ok {
		enabled = v
	}
	if !enabled {
		return nil
	}

	fallback := ActionDefaultFallback
	if v, ok := config[keyFallbackActionName].(string); ok && v != "" {
		fallback = v
	}

	if !d.HasAction(fallback) {
		return fmt.Errorf("%w: fallback action %q configured for the rule "+
			"policy is not defined in the domain", ErrInvalidDomain, fallback)
	}
	return nil
}
