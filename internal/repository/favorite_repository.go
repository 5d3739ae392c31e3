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

type FavoriteRepository struct {
	collection *mongo.Collection
}

func NewFavoriteRepository(m *config.Mongo) *FavoriteRepository {
	return &FavoriteRepository{collection: m.DB.Collection("favorites")}
}

// EnsureIndexes : уникальный индекс на пару (userId, workspaceId)
// Инвариант одной записи на пару держит БД, а не приложение
func (r *FavoriteRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "workspaceId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return util.LogError("[FavoriteRepo] не удалось создать индекс", err)
	}
	return nil
}

// Add : добавляет пару в избранное
// Возвращает false при нарушении уникального индекса (уже в избранном)
func (r *FavoriteRepository) Add(ctx context.Context, favorite *model.Favorite) (bool, error) {
	favorite.FavoritedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, favorite)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, util.LogError("[FavoriteRepo] ошибка добавления в избранное", err)
	}
	return true, nil
}

// Remove : убирает пару из избранного
// Возвращает false, если записи не было
func (r *FavoriteRepository) Remove(ctx context.Context, userID string, workspaceID primitive.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID, "workspaceId": workspaceID})
	if err != nil {
		return false, util.LogError("[FavoriteRepo] ошибка удаления из избранного", err)
	}
	return result.DeletedCount > 0, nil
}

// ListByUser : все записи избранного пользователя
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]model.Favorite, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, util.LogError("[FavoriteRepo] не удалось получить избранное", err)
	}
	defer cursor.Close(ctx)

	favorites := []model.Favorite{}
	if err := cursor.All(ctx, &favorites); err != nil {
		return nil, util.LogError("[FavoriteRepo] ошибка чтения избранного", err)
	}
	return favorites, nil
}

// Exists : есть ли пара в избранном
func (r *FavoriteRepository) Exists(ctx context.Context, userID string, workspaceID primitive.ObjectID) (bool, error) {
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "workspaceId": workspaceID}).Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, util.LogError("[FavoriteRepo] ошибка проверки избранного", err)
	}
	return true, nil
}
