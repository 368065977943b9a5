package entrers

import "time"

// EntreeLigne is one flat storage row of the stock-in ledger. There is no BL
// header table: rows sharing a bl_number form one logical bill of lading.
type EntreeLigne struct {
	ID         int64   `json:"id"`
	ProduitID  int64   `json:"produit_id"`
	ProduitRef string  `json:"produit_ref"`
	PrixAchat  float64 `json:"prix_achat"`
	Quantite   int     `json:"quantite"`
	Shortage   *int    `json:"shortage"`
	Offert     bool    `json:"offert"`
}

// BonLivraison is the read-side aggregate over all rows sharing a bl_number.
// LineCount and Total are computed, never stored.
type BonLivraison struct {
	Numero           string       `json:"numero"`
	TransporteurID   int64        `json:"transporteur_id"`
	TransporteurName string       `json:"transporteur_name"`
	LoadDate         time.Time    `json:"load_date"`
	UnloadDate       *time.Time   `json:"unload_date"`
	UpdatedAt        time.Time    `json:"updated_at"`
	LineCount        int          `json:"line_count"`
	Total            float64      `json:"total"`
	Lignes           []EntreeLigne `json:"lignes"`
}

// LigneInput is one submitted product line of a create or update form.
type LigneInput struct {
	ProduitID  int64   `json:"produit_id" validate:"required,gt=0"`
	ProduitRef string  `json:"produit_ref"`
	PrixAchat  float64 `json:"prix_achat" validate:"gte=0"`
	Quantite   int     `json:"quantite" validate:"gte=1"`
	Shortage   *int    `json:"shortage" validate:"omitempty,gte=0"`
	Offert     bool    `json:"offert"`
}

// BonLivraisonInput is the full submitted state of a BL: the header fields
// plus a complete replacement set of lines.
type BonLivraisonInput struct {
	Numero         string       `json:"numero" validate:"required"`
	TransporteurID int64        `json:"transporteur_id" validate:"required,gt=0"`
	LoadDate       time.Time    `json:"load_date" validate:"required"`
	UnloadDate     *time.Time   `json:"unload_date"`
	Lignes         []LigneInput `json:"lignes" validate:"min=1"`
}
