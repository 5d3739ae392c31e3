package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Роли доступа к workspace
const (
	RoleOwner  = "owner"
	RoleEditor = "editor"
	RoleViewer = "viewer"
	RoleNone   = ""
)

// WorkspacePermission : grant вида (email, роль) для не-владельца
type WorkspacePermission struct {
	UserEmail  string `bson:"userEmail" json:"userEmail"`
	Permission string `bson:"permission" json:"permission"`
}

type Workspace struct {
	ID            primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	WorkspaceName string                `bson:"workspaceName" json:"workspaceName"`
	Description   string                `bson:"description,omitempty" json:"description,omitempty"`
	UserID        string                `bson:"userId" json:"userId"`
	UserEmail     string                `bson:"userEmail" json:"userEmail"`
	IsPublic      bool                  `bson:"isPublic" json:"isPublic"`
	Deleted       bool                  `bson:"deleted" json:"deleted"`
	Documents     []primitive.ObjectID  `bson:"documents" json:"documents"`
	Permissions   []WorkspacePermission `bson:"permissions" json:"permissions"`
	CreatedAt     time.Time             `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time             `bson:"updatedAt" json:"updatedAt"`
}

// ResolveRole : возвращает роль пользователя в workspace
// Владелец всегда owner, независимо от содержимого grant-списка
func (w *Workspace) ResolveRole(userID, email string) string {
	if w.UserID == userID || w.UserEmail == email {
		return RoleOwner
	}
	for _, p := range w.Permissions {
		if p.UserEmail == email {
			return p.Permission
		}
	}
	return RoleNone
}

// HasGrant : есть ли у email запись в grant-списке
func (w *Workspace) HasGrant(email string) bool {
	for _, p := range w.Permissions {
		if p.UserEmail == email {
			return true
		}
	}
	return false
}

// RankedWorkspace : workspace с числом добавлений в избранное,
// результат aggregation-запроса списка публичных workspace
type RankedWorkspace struct {
	Workspace     `bson:",inline"`
	FavoriteCount int `bson:"favoriteCount" json:"favoriteCount"`
}

// WorkspaceView : workspace вместе с его документами и ролью запрашивающего
type WorkspaceView struct {
	Workspace *Workspace `json:"workspace"`
	Documents []Document `json:"documents"`
	Role      string     `json:"role,omitempty"`
}
