package produits

// ProduitDetails is the payload served to purchase forms when a product is
// picked: the reference plus its case purchase price.
type ProduitDetails struct {
	Ref            string  `json:"ref"`
	PrixAchatColis float64 `json:"prix_achat_colis"`
}
