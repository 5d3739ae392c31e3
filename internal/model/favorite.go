package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite : пара (пользователь, workspace)
// Инвариант: не больше одной записи на пару (userId, workspaceId)
type Favorite struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	WorkspaceID primitive.ObjectID `bson:"workspaceId" json:"workspaceId"`
	FavoritedAt time.Time          `bson:"favoritedAt" json:"favoritedAt"`
}

// Permission : нормализованное представление grant для обратного поиска
// ("workspace, которыми поделились со мной")
type Permission struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserEmail   string             `bson:"userEmail" json:"userEmail"`
	WorkspaceID primitive.ObjectID `bson:"workspaceId" json:"workspaceId"`
	Permission  string             `bson:"permission" json:"permission"`
}
