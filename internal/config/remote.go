package config

import "fmt"

type Katana struct {
	APIKey    string `env:"KATANA_API_KEY,notEmpty" json:"-"`
	BaseURL   string `env:"KATANA_BASE_URL"         envDefault:"https://api.katanamrp.com/v1"`
	PageLimit int    `env:"KATANA_PAGE_LIMIT"       envDefault:"1000"`
}

type Pipedrive struct {
	APIToken      string `env:"PIPEDRIVE_API_TOKEN,notEmpty"      json:"-"`
	CompanyDomain string `env:"PIPEDRIVE_COMPANY_DOMAIN,notEmpty"`
	// BaseURL overrides the address derived from CompanyDomain.
	BaseURL     string `env:"PIPEDRIVE_BASE_URL"`
	SKUFieldKey string `env:"PIPEDRIVE_SKU_FIELD_KEY" envDefault:"43a32efde94b5e07af24690d5b8db5dc18f5680a"`
}

func (p Pipedrive) URL() string {
	if p.BaseURL != "" {
		return p.BaseURL
	}

	return fmt.Sprintf("https://%s.pipedrive.com/api/v1", p.CompanyDomain)
}
