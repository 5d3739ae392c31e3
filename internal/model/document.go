package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Права доступа к документу
const (
	DocPermRead  = "read"
	DocPermWrite = "write"
	DocPermAdmin = "admin"
)

// DocumentPermission : grant вида (email, право) на документ
type DocumentPermission struct {
	UserEmail  string `bson:"userEmail" json:"userEmail"`
	Permission string `bson:"permission" json:"permission"`
}

// DocumentVersion : запись истории версий
// Инвариант: длина истории равна счётчику версий
type DocumentVersion struct {
	Version   int       `bson:"version" json:"version"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
	UpdatedBy string    `bson:"updatedBy" json:"updatedBy"`
}

type Document struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	DocumentName     string               `bson:"documentName" json:"documentName"`
	Workspace        primitive.ObjectID   `bson:"workspace" json:"workspace"`
	UserID           string               `bson:"userId" json:"userId"`
	UserEmail        string               `bson:"userEmail" json:"userEmail"`
	Deleted          bool                 `bson:"deleted" json:"deleted"`
	FilePath         string               `bson:"filePath" json:"filePath"`
	FileType         string               `bson:"fileType" json:"fileType"`
	OriginalFileName string               `bson:"originalFileName" json:"originalFileName"`
	FileSize         int64                `bson:"fileSize" json:"fileSize"`
	Tags             []string             `bson:"tags,omitempty" json:"tags,omitempty"`
	Version          int                  `bson:"version" json:"version"`
	VersionHistory   []DocumentVersion    `bson:"versionHistory" json:"versionHistory"`
	Permissions      []DocumentPermission `bson:"permissions" json:"permissions"`
	CreatedAt        time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time            `bson:"updatedAt" json:"updatedAt"`
}
