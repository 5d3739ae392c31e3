package requestresponse

// PreviewResponse : содержимое документа для предпросмотра
// Для audio/video типы отдаются потоком, этот ответ используется для остальных
type PreviewResponse struct {
	Content  string `json:"content"`
	MimeType string `json:"mimeType" example:"application/pdf"`
}

// FavoriteCheckResponse : ответ проверки наличия workspace в избранном
type FavoriteCheckResponse struct {
	IsFavorited bool `json:"isFavorited" example:"true"`
}
