package promotions

// Promotion is a "buy X of product A, get Y of product B free" offer. The
// triggering product and the offered product are distinct references; a
// promotion may also offer more of its own trigger.
type Promotion struct {
	ID                  int64  `json:"id"`
	ProduitID           int64  `json:"produit_id" validate:"required,gt=0"`
	ProduitRef          string `json:"produit_ref"`
	ProduitLabel        string `json:"produit_label"`
	OfferedProduitID    int64  `json:"offered_produit_id" validate:"required,gt=0"`
	OfferedProduitRef   string `json:"offered_produit_ref"`
	OfferedProduitLabel string `json:"offered_produit_label"`
	BuyQuantity         int    `json:"buy_quantity" validate:"gte=1"`
	FreeQuantity        int    `json:"free_quantity" validate:"gte=1"`
	IsActive            bool   `json:"is_active"`
}

// OfferedQuantity returns how many free units an order of q earns under a
// buy-x-get-y promotion. The offer repeats on every full multiple of x, so
// 13 bought at x=6,y=1 earns 2.
func OfferedQuantity(q, x, y int) int {
	if x <= 0 || y <= 0 || q < x {
		return 0
	}
	return (q / x) * y
}
