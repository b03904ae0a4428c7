package jetdqm

import "fmt"

// JetType selects how the analyzer interprets its jet collection.
type JetType string

const (
	JetTypeCalo    JetType = "calo"
	JetTypePF      JetType = "pf"
	JetTypeMiniAOD JetType = "miniaod"
)

// Validate rejects jet types the analyzer does not know.
func (t JetType) Validate() error {
	switch t {
	case JetTypeCalo, JetTypePF, JetTypeMiniAOD:
		return nil
	default:
		return fmt.Errorf("invalid jet type: %q (must be calo, pf, or miniaod)", string(t))
	}
}
