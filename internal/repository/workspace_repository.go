package repository

import (
	"context"
	"time"

	"dms-web-server/config"
	"dms-web-server/internal/model"
	"dms-web-server/internal/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type WorkspaceRepository struct {
	collection *mongo.Collection
}

func NewWorkspaceRepository(m *config.Mongo) *WorkspaceRepository {
	return &WorkspaceRepository{collection: m.DB.Collection("workspaces")}
}

// Create : сохраняет новый workspace
func (r *WorkspaceRepository) Create(ctx context.Context, workspace *model.Workspace) (*model.Workspace, error) {
	now := time.Now()
	workspace.CreatedAt = now
	workspace.UpdatedAt = now
	if workspace.Documents == nil {
		workspace.Documents = []primitive.ObjectID{}
	}
	if workspace.Permissions == nil {
		workspace.Permissions = []model.WorkspacePermission{}
	}

	result, err := r.collection.InsertOne(ctx, workspace)
	if err != nil {
		return nil, util.LogError("[WorkspaceRepo] ошибка вставки workspace", err)
	}

	workspace.ID = result.InsertedID.(primitive.ObjectID)
	return workspace, nil
}

// FindByID : ищет workspace по id, включая мягко удалённые
func (r *WorkspaceRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Workspace, error) {
	var workspace model.Workspace
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&workspace)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, util.LogError("[WorkspaceRepo] ошибка поиска workspace", err)
	}
	return &workspace, nil
}

// ListByOwner : workspace владельца с заданным deleted-флагом
func (r *WorkspaceRepository) ListByOwner(ctx context.Context, userID string, deleted bool) ([]model.Workspace, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"userId": userID, "deleted": deleted},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, util.LogError("[WorkspaceRepo] не удалось получить список workspace", err)
	}
	defer cursor.Close(ctx)

	workspaces := []model.Workspace{}
	if err := cursor.All(ctx, &workspaces); err != nil {
		return nil, util.LogError("[WorkspaceRepo] ошибка чтения списка workspace", err)
	}
	return workspaces, nil
}

// ListPublicRanked : публичные workspace, ранжированные по числу добавлений
// в избранное, при равенстве — по убыванию даты создания
// Подсчёт выполняется aggregation-пайплайном, не инкрементально
func (r *WorkspaceRepository) ListPublicRanked(ctx context.Context) ([]model.RankedWorkspace, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "isPublic", Value: true}, {Key: "deleted", Value: false}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "favorites"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "workspaceId"},
			{Key: "as", Value: "favorites"},
		}}},
		{{Key: "$addFields", Value: bson.D{{Key: "favoriteCount", Value: bson.D{{Key: "$size", Value: "$favorites"}}}}}},
		{{Key: "$project", Value: bson.D{{Key: "favorites", Value: 0}}}},
		{{Key: "$sort", Value: bson.D{{Key: "favoriteCount", Value: -1}, {Key: "createdAt", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, util.LogError("[WorkspaceRepo] ошибка ранжирования публичных workspace", err)
	}
	defer cursor.Close(ctx)

	ranked := []model.RankedWorkspace{}
	if err := cursor.All(ctx, &ranked); err != nil {
		return nil, util.LogError("[WorkspaceRepo] ошибка чтения ранжированного списка", err)
	}
	return ranked, nil
}

// ListRecent : недавние workspace владельца по убыванию updatedAt
func (r *WorkspaceRepository) ListRecent(ctx context.Context, userID string, limit int64) ([]model.Workspace, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"userId": userID, "deleted": false},
		options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}).SetLimit(limit),
	)
	if err != nil {
		return nil, util.LogError("[WorkspaceRepo] не удалось получить недавние workspace", err)
	}
	defer cursor.Close(ctx)

	workspaces := []model.Workspace{}
	if err := cursor.All(ctx, &workspaces); err != nil {
		return nil, util.LogError("[WorkspaceRepo] ошибка чтения недавних workspace", err)
	}
	return workspaces, nil
}

// ListByIDs : workspace по набору id, без мягко удалённых
func (r *WorkspaceRepository) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Workspace, error) {
	if len(ids) == 0 {
		return []model.Workspace{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}, "deleted": false})
	if err != nil {
		return nil, util.LogError("[WorkspaceRepo] не удалось получить workspace по списку id", err)
	}
	defer cursor.Close(ctx)

	workspaces := []model.Workspace{}
	if err := cursor.All(ctx, &workspaces); err != nil {
		return nil, util.LogError("[WorkspaceRepo] ошибка чтения workspace по списку id", err)
	}
	return workspaces, nil
}

// UpdateMeta : обновляет скалярные поля и поднимает updatedAt
// Пустые значения не затирают существующие
func (r *WorkspaceRepository) UpdateMeta(ctx context.Context, id primitive.ObjectID, name, description string, isPublic *bool) error {
	set := bson.M{"updatedAt": time.Now()}
	if name != "" {
		set["workspaceName"] = name
	}
	if description != "" {
		set["description"] = description
	}
	if isPublic != nil {
		set["isPublic"] = *isPublic
	}

	_, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return util.LogError("[WorkspaceRepo] не удалось обновить workspace", err)
	}
	return nil
}

// SetDeleted : переключает флаг мягкого удаления
func (r *WorkspaceRepository) SetDeleted(ctx context.Context, id primitive.ObjectID, deleted bool) error {
	_, err := r.collection.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"deleted": deleted, "updatedAt": time.Now()},
	})
	if err != nil {
		return util.LogError("[WorkspaceRepo] не удалось переключить флаг удаления", err)
	}
	return nil
}

// DeleteByID : физически удаляет строку workspace
func (r *WorkspaceRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return util.LogError("[WorkspaceRepo] не удалось удалить workspace", err)
	}
	return nil
}

// AddGrant : атомарный append-if-not-present в grant-список
// Возвращает false, если email уже держит grant
func (r *WorkspaceRepository) AddGrant(ctx context.Context, id primitive.ObjectID, userEmail, permission string) (bool, error) {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "permissions.userEmail": bson.M{"$ne": userEmail}},
		bson.M{
			"$push": bson.M{"permissions": model.WorkspacePermission{UserEmail: userEmail, Permission: permission}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return false, util.LogError("[WorkspaceRepo] не удалось добавить grant", err)
	}
	return result.ModifiedCount > 0, nil
}

// RemoveGrant : атомарно убирает grant по email
// Членство стоит в фильтре: сопутствующий $set всегда меняет документ,
// поэтому ModifiedCount не отличил бы пустой $pull от реального
// Возвращает false, если grant не был найден
func (r *WorkspaceRepository) RemoveGrant(ctx context.Context, id primitive.ObjectID, userEmail string) (bool, error) {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "permissions.userEmail": userEmail},
		bson.M{
			"$pull": bson.M{"permissions": bson.M{"userEmail": userEmail}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return false, util.LogError("[WorkspaceRepo] не удалось убрать grant", err)
	}
	return result.MatchedCount > 0, nil
}

// AddDocument : атомарно добавляет ссылку на документ
func (r *WorkspaceRepository) AddDocument(ctx context.Context, id, documentID primitive.ObjectID) error {
	_, err := r.collection.UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"documents": documentID},
		"$set":      bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return util.LogError("[WorkspaceRepo] не удалось добавить документ в workspace", err)
	}
	return nil
}

// RemoveDocument : атомарно убирает ссылку на документ
func (r *WorkspaceRepository) RemoveDocument(ctx context.Context, id, documentID primitive.ObjectID) error {
	_, err := r.collection.UpdateByID(ctx, id, bson.M{
		"$pull": bson.M{"documents": documentID},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return util.LogError("[WorkspaceRepo] не удалось убрать документ из workspace", err)
	}
	return nil
}
