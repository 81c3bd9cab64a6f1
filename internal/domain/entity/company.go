package entity

import "time"

type CompanyStatus string

const (
	CompanyActive     CompanyStatus = "active"
	CompanySuspended  CompanyStatus = "suspended"
	CompanyTerminated CompanyStatus = "terminated"
)

// Company is a tenant: every non-super-admin user belongs to one.
type Company struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	CountryID       string        `json:"country_id"`
	Status          CompanyStatus `json:"status"`
	BillingEmail    string        `json:"billing_email,omitempty"`
	TechnicalEmail  string        `json:"technical_email,omitempty"`
	CommercialEmail string        `json:"commercial_email,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// Country is reference data used when creating companies.
type Country struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// Document is the metadata of a file stored in the object store for a company.
type Document struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	URL         string    `json:"url"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}
