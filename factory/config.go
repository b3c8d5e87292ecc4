/*
Package factory provides JSON to engine-configuration conversion.

PURPOSE:
  Converts a JSON tuning document into validated engine configuration.
  This keeps the regulation constants adjustable without code changes:
  a prevention officer can ship a different target or reweighted
  composite as a config file, and the factory builds the proper structs.

JSON SCHEMA:
  {
    "normalization": {
      "monthly": 16666.67,
      "quarterly": 50000,
      "yearly": 200000
    },
    "compliance_target": 85,
    "weights": {
      "IART": 5, "OPAS": 3, "IDPS": 2, "IDS": 3,
      "IENTS": 1, "IOSEA": 4, "ICAI": 4
    }
  }

  Every section is optional; omitted values keep the IESS CD 513
  defaults. Unknown weight codes and non-positive constants are
  rejected rather than silently ignored.

USAGE:
  cfg, err := factory.ParseEngineConfig(raw)
  reactiveEngine := reactive.NewEngine(cfg.Constants)
  proactiveEngine := proactive.NewEngineWithWeights(cfg.Target, cfg.Weights)

SEE ALSO:
  - indicator/config.go: The default constants and target
  - proactive/catalog.go: The weight catalog overrides apply to
*/
package factory

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/preventia/indicator-engine/indicator"
	"github.com/preventia/indicator-engine/proactive"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// EngineConfigJSON is the JSON representation of the engine tuning.
type EngineConfigJSON struct {
	Normalization    *NormalizationJSON `json:"normalization,omitempty"`
	ComplianceTarget *float64           `json:"compliance_target,omitempty"`
	Weights          map[string]int     `json:"weights,omitempty"`
}

// NormalizationJSON carries the period K constants. Zero or omitted
// fields keep their defaults.
type NormalizationJSON struct {
	Monthly   float64 `json:"monthly,omitempty"`
	Quarterly float64 `json:"quarterly,omitempty"`
	Yearly    float64 `json:"yearly,omitempty"`
}

// =============================================================================
// PARSED CONFIGURATION
// =============================================================================

// EngineConfig is the validated tuning both engines are built from.
type EngineConfig struct {
	Constants indicator.NormalizationConstants
	Target    float64
	Weights   map[string]int // composite weight overrides, nil when untouched
}

// DefaultEngineConfig returns the IESS CD 513 defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Constants: indicator.DefaultConstants(),
		Target:    indicator.DefaultComplianceTarget,
	}
}

// ParseEngineConfig parses and validates a JSON tuning document.
// Defaults fill everything the document leaves out.
func ParseEngineConfig(data []byte) (EngineConfig, error) {
	var doc EngineConfigJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return EngineConfig{}, fmt.Errorf("%w: %v", indicator.ErrInvalidConfig, err)
	}

	cfg := DefaultEngineConfig()

	if doc.Normalization != nil {
		n := doc.Normalization
		if n.Monthly < 0 || n.Quarterly < 0 || n.Yearly < 0 {
			return EngineConfig{}, fmt.Errorf("%w: normalization constants must be positive", indicator.ErrInvalidConfig)
		}
		if n.Monthly > 0 {
			cfg.Constants.Monthly = n.Monthly
		}
		if n.Quarterly > 0 {
			cfg.Constants.Quarterly = n.Quarterly
		}
		if n.Yearly > 0 {
			cfg.Constants.Yearly = n.Yearly
		}
	}

	if doc.ComplianceTarget != nil {
		t := *doc.ComplianceTarget
		if t <= 0 || t > 100 {
			return EngineConfig{}, fmt.Errorf("%w: compliance_target must be in (0, 100], got %v", indicator.ErrInvalidConfig, t)
		}
		cfg.Target = t
	}

	if len(doc.Weights) > 0 {
		known := proactive.DefaultWeights()
		for code, w := range doc.Weights {
			if _, ok := known[code]; !ok {
				return EngineConfig{}, fmt.Errorf("%w: unknown indicator code %q in weights", indicator.ErrInvalidConfig, code)
			}
			if w < 0 {
				return EngineConfig{}, fmt.Errorf("%w: weight for %s must not be negative", indicator.ErrInvalidConfig, code)
			}
		}
		cfg.Weights = doc.Weights
	}

	return cfg, nil
}
