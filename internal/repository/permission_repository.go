package repository

import (
	"context"

	"dms-web-server/config"
	"dms-web-server/internal/model"
	"dms-web-server/internal/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PermissionRepository : нормализованная копия grant-списков для обратного
// поиска "workspace, которыми поделились со мной"
type PermissionRepository struct {
	collection *mongo.Collection
}

func NewPermissionRepository(m *config.Mongo) *PermissionRepository {
	return &PermissionRepository{collection: m.DB.Collection("permissions")}
}

// Upsert : создаёт или обновляет запись (email, workspace)
func (r *PermissionRepository) Upsert(ctx context.Context, userEmail string, workspaceID primitive.ObjectID, permission string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"userEmail": userEmail, "workspaceId": workspaceID},
		bson.M{"$set": bson.M{"permission": permission}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return util.LogError("[PermissionRepo] не удалось сохранить permission", err)
	}
	return nil
}

// Remove : удаляет запись (email, workspace)
func (r *PermissionRepository) Remove(ctx context.Context, userEmail string, workspaceID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"userEmail": userEmail, "workspaceId": workspaceID})
	if err != nil {
		return util.LogError("[PermissionRepo] не удалось удалить permission", err)
	}
	return nil
}

// ListByEmail : все grants пользователя
func (r *PermissionRepository) ListByEmail(ctx context.Context, userEmail string) ([]model.Permission, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userEmail": userEmail})
	if err != nil {
		return nil, util.LogError("[PermissionRepo] не удалось получить permissions", err)
	}
	defer cursor.Close(ctx)

	permissions := []model.Permission{}
	if err := cursor.All(ctx, &permissions); err != nil {
		return nil, util.LogError("[PermissionRepo] ошибка чтения permissions", err)
	}
	return permissions, nil
}
