package api

import "encoding/json"

// CellText is a string field that also accepts bare JSON numbers.
// Download requests round-trip spreadsheet cells, and clients send
// numeric cells either quoted or not.
type CellText string

func (t *CellText) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = CellText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = CellText(n.String())
	return nil
}

// CalculateRequest is the JSON body for POST /calculate.
type CalculateRequest struct {
	IngredientName string `json:"ingredient_name"`
	QuantityInput  string `json:"quantity_input"`
	PriceInput     string `json:"price_input"`
}

// UnitPricesResponse carries the numeric per-unit prices. Formatting
// (currency symbol, fixed decimals) is the client's concern here.
type UnitPricesResponse struct {
	KG float64 `json:"kg"`
	G  float64 `json:"g"`
	MG float64 `json:"mg"`
}

// CalculateResponse is the JSON body returned by POST /calculate.
type CalculateResponse struct {
	Success        bool                `json:"success"`
	Error          string              `json:"error"`
	Results        *UnitPricesResponse `json:"results"`
	IngredientName string              `json:"ingredient_name"`
}

// UploadRowPrices carries display-formatted prices for one bulk row.
type UploadRowPrices struct {
	KG string `json:"kg"`
	G  string `json:"g"`
	MG string `json:"mg"`
}

// UploadRowResponse is one per-row outcome in the POST /upload response.
type UploadRowResponse struct {
	IngredientName string           `json:"ingredient_name"`
	QuantityInput  string           `json:"quantity_input"`
	PriceInput     string           `json:"price_input"`
	Results        *UploadRowPrices `json:"results"`
	Status         string           `json:"status"`
}

// UploadResponse is the JSON body returned by POST /upload.
type UploadResponse struct {
	Success    bool                `json:"success"`
	Results    []UploadRowResponse `json:"results"`
	TotalItems int                 `json:"total_items"`
}

// DownloadRow is one previously computed outcome row sent back by the
// client for export.
type DownloadRow struct {
	IngredientName string   `json:"ingredient_name"`
	QuantityInput  CellText `json:"quantity_input"`
	PriceInput     CellText `json:"price_input"`
	PerKG          string   `json:"per_kg"`
	PerG           string   `json:"per_g"`
	PerMG          string   `json:"per_mg"`
	Status         string   `json:"status"`
}

// DownloadRequest is the JSON body for POST /download.
type DownloadRequest struct {
	Results []DownloadRow `json:"results"`
	Format  string        `json:"format"`
}
