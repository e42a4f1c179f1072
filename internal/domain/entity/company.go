package entity

import "time"

// Company representa una organización/tenant del sistema. Toda la data
// (bodegas, productos, stock) está particionada por CompanyID.
type Company struct {
	ID        string
	Slug      string // subdominio: <slug>.<base> resuelve a esta empresa
	Name      string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Tipos de registro de dominio para resolución de tenant por host.
const (
	DomainKindCustom    = "custom"    // dominio propio de la empresa (empresa-a.com)
	DomainKindSubdomain = "subdomain" // subdominio del wildcard (a.tuapp.com)
)

// CompanyDomain asocia un host entrante con una empresa.
type CompanyDomain struct {
	Host      string // en minúsculas, sin puerto
	CompanyID string
	Kind      string // ver constantes DomainKind*
	CreatedAt time.Time
}

// TenantRef es la referencia mínima de tenant que viaja por request
// tras resolver el host. No es fuente de verdad: se deriva de Company.
type TenantRef struct {
	ID   string
	Slug string
	Name string
}

// Módulos SaaS disponibles (deben coincidir con el CHECK de la tabla company_modules).
const (
	ModuleInventory  = "inventory"
	ModuleAnalytics  = "analytics"
	ModulePurchasing = "purchasing"
)

// CompanyModule representa la activación de un módulo SaaS en una empresa.
type CompanyModule struct {
	ID          string
	CompanyID   string
	ModuleName  string // ver constantes Module*
	IsActive    bool
	ActivatedAt time.Time
	ExpiresAt   *time.Time // nil = sin vencimiento
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
