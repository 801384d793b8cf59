package dto

// PackageResponse describes a catalog entry.
type PackageResponse struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Price      int64    `json:"price"`
	Discount   int      `json:"discount"`
	FinalPrice int64    `json:"final_price"`
	Features   []string `json:"features"`
}
