package models

type Organization struct {
	ID                               string               `json:"id"`
	Object                           string               `json:"object,omitempty"`
	Name                             string               `json:"name"`
	AllowProfilesOutsideOrganization bool                 `json:"allow_profiles_outside_organization"`
	Domains                          []OrganizationDomain `json:"domains"`
	Timestamps
}

type OrganizationDomain struct {
	ID     string `json:"id"`
	Object string `json:"object,omitempty"`
	Domain string `json:"domain"`
}

// DomainNames returns the bare domain names of the organization.
func (o Organization) DomainNames() []string {
	names := make([]string, 0, len(o.Domains))
	for _, d := range o.Domains {
		names = append(names, d.Domain)
	}
	return names
}
