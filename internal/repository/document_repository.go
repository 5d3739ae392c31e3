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

type DocumentRepository struct {
	collection *mongo.Collection
}

func NewDocumentRepository(m *config.Mongo) *DocumentRepository {
	return &DocumentRepository{collection: m.DB.Collection("documents")}
}

// Create : сохраняет новый документ
func (r *DocumentRepository) Create(ctx context.Context, document *model.Document) (*model.Document, error) {
	now := time.Now()
	document.CreatedAt = now
	document.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, document)
	if err != nil {
		return nil, util.LogError("[DocumentRepo] ошибка вставки документа", err)
	}

	document.ID = result.InsertedID.(primitive.ObjectID)
	return document, nil
}

// FindByID : ищет документ по id, включая мягко удалённые
func (r *DocumentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Document, error) {
	var document model.Document
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&document)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, util.LogError("[DocumentRepo] ошибка поиска документа", err)
	}
	return &document, nil
}

// ListByOwner : документы владельца с заданным deleted-флагом
func (r *DocumentRepository) ListByOwner(ctx context.Context, userID string, deleted bool) ([]model.Document, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"userId": userID, "deleted": deleted},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, util.LogError("[DocumentRepo] не удалось получить список документов", err)
	}
	defer cursor.Close(ctx)

	documents := []model.Document{}
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, util.LogError("[DocumentRepo] ошибка чтения списка документов", err)
	}
	return documents, nil
}

// ListByIDs : документы по набору id с заданным deleted-флагом
func (r *DocumentRepository) ListByIDs(ctx context.Context, ids []primitive.ObjectID, deleted bool) ([]model.Document, error) {
	if len(ids) == 0 {
		return []model.Document{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}, "deleted": deleted})
	if err != nil {
		return nil, util.LogError("[DocumentRepo] не удалось получить документы по списку id", err)
	}
	defer cursor.Close(ctx)

	documents := []model.Document{}
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, util.LogError("[DocumentRepo] ошибка чтения документов по списку id", err)
	}
	return documents, nil
}

// ListByWorkspace : все документы workspace, включая мягко удалённые
// Используется каскадным удалением workspace
func (r *DocumentRepository) ListByWorkspace(ctx context.Context, workspaceID primitive.ObjectID) ([]model.Document, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"workspace": workspaceID})
	if err != nil {
		return nil, util.LogError("[DocumentRepo] не удалось получить документы workspace", err)
	}
	defer cursor.Close(ctx)

	documents := []model.Document{}
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, util.LogError("[DocumentRepo] ошибка чтения документов workspace", err)
	}
	return documents, nil
}

// SetDeleted : переключает флаг мягкого удаления
func (r *DocumentRepository) SetDeleted(ctx context.Context, id primitive.ObjectID, deleted bool) error {
	_, err := r.collection.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"deleted": deleted, "updatedAt": time.Now()},
	})
	if err != nil {
		return util.LogError("[DocumentRepo] не удалось переключить флаг удаления", err)
	}
	return nil
}

// DeleteByID : физически удаляет строку документа
func (r *DocumentRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return util.LogError("[DocumentRepo] не удалось удалить документ", err)
	}
	return nil
}

// DeleteByWorkspace : физически удаляет все документы workspace
func (r *DocumentRepository) DeleteByWorkspace(ctx context.Context, workspaceID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"workspace": workspaceID})
	if err != nil {
		return util.LogError("[DocumentRepo] не удалось удалить документы workspace", err)
	}
	return nil
}
