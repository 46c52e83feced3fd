package profile

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/sirosfoundation/go-finmsg/pkg/model"
)

// Profile names the elements a message family must carry to pass
// structural validation.
type Profile struct {
	Family           model.Family `yaml:"family"`
	RequiredElements []string     `yaml:"required"`
	Description      string       `yaml:"description,omitempty"`
}

// Registry resolves message families to structural profiles.
type Registry struct {
	profiles map[model.Family]*Profile
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		profiles: make(map[model.Family]*Profile),
	}
}

// Register adds a profile, replacing any existing profile for the
// same family.
func (r *Registry) Register(p *Profile) {
	r.profiles[p.Family] = p
}

// Find retrieves the profile for a family, or nil when none is
// registered.
func (r *Registry) Find(family model.Family) *Profile {
	return r.profiles[family]
}

// Remove drops the profile for a family.
func (r *Registry) Remove(family model.Family) {
	delete(r.profiles, family)
}

// Families lists the registered families in lexical order.
func (r *Registry) Families() []model.Family {
	out := make([]model.Family, 0, len(r.profiles))
	for family := range r.profiles {
		out = append(out, family)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DefaultRegistry creates a registry preloaded with the well-known
// ISO 20022 families and their required top-level elements.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&Profile{
		Family:           model.FamilyPacs008,
		RequiredElements: []string{"GrpHdr", "MsgId", "CdtTrfTxInf"},
		Description:      "FI to FI customer credit transfer",
	})
	r.Register(&Profile{
		Family:           model.FamilyPain001,
		RequiredElements: []string{"GrpHdr", "MsgId", "PmtInf"},
		Description:      "Customer credit transfer initiation",
	})
	r.Register(&Profile{
		Family:           model.FamilyPain002,
		RequiredElements: []string{"GrpHdr", "MsgId", "OrgnlGrpInfAndSts"},
		Description:      "Customer payment status report",
	})
	r.Register(&Profile{
		Family:           model.FamilyCamt052,
		RequiredElements: []string{"GrpHdr", "MsgId", "Rpt"},
		Description:      "Bank to customer account report",
	})
	r.Register(&Profile{
		Family:           model.FamilyCamt053,
		RequiredElements: []string{"GrpHdr", "MsgId", "Stmt"},
		Description:      "Bank to customer statement",
	})
	r.Register(&Profile{
		Family:           model.FamilyCamt054,
		RequiredElements: []string{"GrpHdr", "MsgId", "Ntfctn"},
		Description:      "Bank to customer debit credit notification",
	})
	r.Register(&Profile{
		Family:           model.FamilyCamt056,
		RequiredElements: []string{"Assgnmt", "Undrlyg"},
		Description:      "FI to FI payment cancellation request",
	})
	r.Register(&Profile{
		Family:           model.FamilyCamt029,
		RequiredElements: []string{"Assgnmt", "Sts"},
		Description:      "Resolution of investigation",
	})
	return r
}

// registryDoc is the YAML document shape accepted by LoadRegistry.
type registryDoc struct {
	Families []*Profile `yaml:"families"`
}

// LoadRegistry unmarshals a YAML profile document and merges it over
// the defaults. Document profiles replace same-family defaults;
// families the document does not mention keep their default profile.
func LoadRegistry(data []byte) (*Registry, error) {
	var doc registryDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing profile document: %w", err)
	}

	r := DefaultRegistry()
	for i, p := range doc.Families {
		if p == nil || p.Family == "" {
			return nil, fmt.Errorf("profile entry %d: missing family", i)
		}
		r.Register(p)
	}
	return r, nil
}
