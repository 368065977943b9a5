package produits

// Produit is a catalog product. Prices are carried at four points: purchase
// and sale, each per case and per unit. The numeric bounds mirror the column
// types so a bad value yields a field error instead of an overflow SQLSTATE.
type Produit struct {
	ID             int64   `json:"id"`
	Ref            string  `json:"ref" validate:"required"`
	Label          string  `json:"label" validate:"required"`
	MarqueID       int64   `json:"marque_id" validate:"required,gt=0"`
	MarqueName     string  `json:"marque_name"`
	CategorieID    int64   `json:"categorie_id" validate:"required,gt=0"`
	CategorieName  string  `json:"categorie_name"`
	PrixAchatColis float64 `json:"prix_achat_colis" validate:"gte=0,lte=99999999.99"`
	PrixAchatUnite float64 `json:"prix_achat_unite" validate:"gte=0,lte=99999999.99"`
	PrixVenteColis float64 `json:"prix_vente_colis" validate:"gte=0,lte=99999999.99"`
	PrixVenteUnite float64 `json:"prix_vente_unite" validate:"gte=0,lte=99999999.99"`
	Weight         float64 `json:"weight" validate:"gte=0,lte=99999.999"`
	UnitsPerCase   int     `json:"units_per_case" validate:"gte=1,lte=9999"`
	IsActive       bool    `json:"is_active"`
	Note           string  `json:"note" validate:"max=1000"`
}
