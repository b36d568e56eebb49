package portal

import (
	"context"
	"errors"
	"time"

	"github.com/random-lottery/AIPortal/internal/config"
	"github.com/random-lottery/AIPortal/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

var (
	// ErrSettingsNotFound is returned by Find when the user has no document.
	ErrSettingsNotFound = errors.New("portal settings not found")
	// ErrSettingsExists is returned by Insert when the user already has a
	// document (unique constraint on user id). Callers re-fetch instead of
	// failing, which keeps concurrent first access down to one document.
	ErrSettingsExists = errors.New("portal settings already exist")
)

// SettingsRepository is the storage contract for the per-user layout
// document. Distinct engines (Mongo, Postgres) implement it; the service
// depends only on this interface.
type SettingsRepository interface {
	Find(ctx context.Context, userID string) (*PortalSettings, error)
	Insert(ctx context.Context, settings *PortalSettings) error
	Upsert(ctx context.Context, settings *PortalSettings) (*PortalSettings, error)
	EnsureIndexes(ctx context.Context) error
}

// NewSettingsRepository picks the storage engine from config. Mongo is the
// default; Postgres is dialed lazily so a Mongo-only deployment never
// opens a SQL pool.
func NewSettingsRepository(lc fx.Lifecycle, cfg *config.Config, mongodb *database.MongodbDB) (SettingsRepository, error) {
	if cfg.StorageDriver == "postgres" {
		pg, err := database.NewPostgres(lc, cfg)
		if err != nil {
			return nil, err
		}
		return NewPostgresSettingsRepository(pg), nil
	}
	return NewMongoSettingsRepository(mongodb), nil
}

type MongoSettingsRepository struct {
	Collection *mongo.Collection
}

func NewMongoSettingsRepository(mongodb *database.MongodbDB) SettingsRepository {
	return &MongoSettingsRepository{
		Collection: mongodb.DB.Collection("portal_settings"),
	}
}

func (r *MongoSettingsRepository) Find(ctx context.Context, userID string) (*PortalSettings, error) {
	var settings PortalSettings
	err := r.Collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&settings)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}
	return &settings, nil
}

func (r *MongoSettingsRepository) Insert(ctx context.Context, settings *PortalSettings) error {
	_, err := r.Collection.InsertOne(ctx, settings)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSettingsExists
		}
		return err
	}
	return nil
}

func (r *MongoSettingsRepository) Upsert(ctx context.Context, settings *PortalSettings) (*PortalSettings, error) {
	settings.UpdatedAt = time.Now()

	filter := bson.M{"user_id": settings.UserID}
	update := bson.M{
		"$set": bson.M{
			"layout":     settings.Layout,
			"theme":      settings.Theme,
			"language":   settings.Language,
			"updated_at": settings.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"user_id":    settings.UserID,
			"created_at": time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored PortalSettings
	if err := r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *MongoSettingsRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
