package entity

// AnalyzedImage фотография материала, закодированная в JPEG/PNG/WebP
type AnalyzedImage struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}
