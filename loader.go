package emvqr

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// LoadMerchantFromJSON unmarshals a merchant profile, applies defaults and
// validates it.
func LoadMerchantFromJSON(data []byte) (Merchant, error) {
	var m Merchant
	if err := json.Unmarshal(data, &m); err != nil {
		return Merchant{}, fmt.Errorf("failed to parse merchant config: %w", err)
	}
	return finishLoad(m)
}

// LoadMerchantFromYAML is LoadMerchantFromJSON for YAML documents.
func LoadMerchantFromYAML(data []byte) (Merchant, error) {
	var m Merchant
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Merchant{}, fmt.Errorf("failed to parse merchant config: %w", err)
	}
	return finishLoad(m)
}

func finishLoad(m Merchant) (Merchant, error) {
	m = m.WithDefaults()
	if err := m.Validate(); err != nil {
		return Merchant{}, err
	}
	return m, nil
}
