package dto

// OverviewKPIsDTO tarjetas del dashboard.
type OverviewKPIsDTO struct {
	OnHandUnits   float64 `json:"onHandUnits"`
	ActiveSKUs    int     `json:"activeSkus"`
	Stockouts     int     `json:"stockouts"`
	NearExpiry30d int     `json:"nearExpiry30d"`
}

// TimeseriesPointDTO entradas/salidas de un día (fecha "MM-DD" como la grafica la UI).
type TimeseriesPointDTO struct {
	Date string  `json:"date"`
	In   float64 `json:"in"`
	Out  float64 `json:"out"`
	Net  float64 `json:"net"`
}

// TopProductDTO producto más movido del período.
type TopProductDTO struct {
	SKU   string  `json:"sku"`
	Name  string  `json:"name"`
	Moved float64 `json:"moved"`
}

// ABCSegmentDTO segmento ABC con su porcentaje de valor.
type ABCSegmentDTO struct {
	Segment string  `json:"segment"`
	Value   float64 `json:"value"`
}

// OverviewResponse respuesta de GET /api/analytics/overview.
type OverviewResponse struct {
	KPIs        OverviewKPIsDTO      `json:"kpis"`
	Timeseries  []TimeseriesPointDTO `json:"timeseries"`
	TopProducts []TopProductDTO      `json:"topProducts"`
	ABC         []ABCSegmentDTO      `json:"abc"`
}

// WarehouseLoadDTO existencia total por bodega.
type WarehouseLoadDTO struct {
	WarehouseID   string  `json:"warehouseId"`
	Warehouse     string  `json:"warehouse"`
	OnHand        float64 `json:"onHand"`
	LocationsUsed int     `json:"locationsUsed"`
}

// InventoryAnalyticsResponse respuesta de GET /api/analytics/inventory.
type InventoryAnalyticsResponse struct {
	Loads []WarehouseLoadDTO `json:"loads"`
	ABC   []ABCSegmentDTO    `json:"abc"`
}

// ReasonCountDTO movimientos por motivo en el período.
type ReasonCountDTO struct {
	Reason string  `json:"reason"`
	Count  int     `json:"count"`
	Units  float64 `json:"units"`
}

// OperationsAnalyticsResponse respuesta de GET /api/analytics/operations.
type OperationsAnalyticsResponse struct {
	ByReason   []ReasonCountDTO     `json:"byReason"`
	Timeseries []TimeseriesPointDTO `json:"timeseries"`
}
