package requestresponse

// CreateWorkspaceRequest : тело запроса создания workspace
type CreateWorkspaceRequest struct {
	WorkspaceName string `json:"workspaceName" example:"My Project"`
	Description   string `json:"description,omitempty" example:"Design documents"`
	IsPublic      bool   `json:"isPublic" example:"false"`
}

// UpdateWorkspaceRequest : тело запроса обновления workspace
// Пустые поля не изменяются
type UpdateWorkspaceRequest struct {
	WorkspaceName string `json:"workspaceName,omitempty" example:"Renamed Project"`
	Description   string `json:"description,omitempty" example:"Updated description"`
	IsPublic      *bool  `json:"isPublic,omitempty" example:"true"`
}

// ShareWorkspaceRequest : тело запроса предоставления доступа
type ShareWorkspaceRequest struct {
	UserEmail  string `json:"userEmail" example:"colleague@example.com"`
	Permission string `json:"permission" example:"viewer"`
}

// RevokeShareRequest : тело запроса отзыва доступа
type RevokeShareRequest struct {
	UserEmail string `json:"userEmail" example:"colleague@example.com"`
}
