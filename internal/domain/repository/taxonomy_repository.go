package repository

// Tipos de término de taxonomía plana (marcas y unidades de medida).
const (
	TaxonomyBrand = "brand"
	TaxonomyUoM   = "uom"
)

// TaxonomyRepository define el puerto para las listas planas por empresa
// (marcas, unidades de medida). Son catálogos de nombres, sin entidad rica.
type TaxonomyRepository interface {
	List(companyID, kind string) ([]string, error)
	Exists(companyID, kind, name string) (bool, error)
	Add(companyID, kind, name string) error
	Rename(companyID, kind, oldName, newName string) error
}
