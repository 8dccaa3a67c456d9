package catalog

func IsLowStock(stockQty, threshold int) bool {
	return stockQty < threshold
}
