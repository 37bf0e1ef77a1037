package entity

// Coordinates географические координаты в градусах
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// CostRange ориентировочная стоимость проверки в вонах
type CostRange struct {
	Min int64 `json:"min" yaml:"min"`
	Max int64 `json:"max" yaml:"max"`
}

// InspectionFacility сертифицированный центр проверки на асбест
type InspectionFacility struct {
	ID             string       `json:"id" yaml:"id"`
	Name           string       `json:"name" yaml:"name"`
	Address        string       `json:"address" yaml:"address"`
	DistanceKm     float64      `json:"distance" yaml:"distance"`
	Phone          string       `json:"phone" yaml:"phone"`
	Certified      bool         `json:"certified" yaml:"certified"`
	EstimatedCost  CostRange    `json:"estimatedCost" yaml:"estimated_cost"`
	InspectionTime string       `json:"inspectionTime" yaml:"inspection_time"`
	Rating         int          `json:"rating" yaml:"rating"`
	Coordinates    *Coordinates `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
}
