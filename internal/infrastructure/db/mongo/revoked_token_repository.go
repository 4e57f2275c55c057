package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/auth-service/internal/core/ports"
)

const revokedTokensCollection = "revoked_tokens"

// RevokedTokenRepository stores deny-list entries with the ledger key as _id.
// A TTL index on expires_at lets MongoDB drop dead entries on its own;
// DeleteExpired covers the gap between TTL monitor passes.
type RevokedTokenRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewRevokedTokenRepository(db *mongo.Database) *RevokedTokenRepository {
	return &RevokedTokenRepository{coll: db.Collection(revokedTokensCollection), timeout: defaultTimeout}
}

func (r *RevokedTokenRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0).SetName("ttl_expires_at"),
	})
	if err != nil {
		return storeError("ensure revoked token indexes", err)
	}
	return nil
}

// Insert upserts with $setOnInsert so a repeated revocation leaves the first entry intact.
func (r *RevokedTokenRepository) Insert(ctx context.Context, key string, expiresAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	update := bson.M{"$setOnInsert": bson.M{
		"expires_at": expiresAt,
		"revoked_at": time.Now().UTC(),
	}}
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return storeError("insert revoked token", err)
	}
	return nil
}

func (r *RevokedTokenRepository) Exists(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": key}, options.Count().SetLimit(1))
	if err != nil {
		return false, storeError("find revoked token", err)
	}
	return n > 0, nil
}

func (r *RevokedTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": before}})
	if err != nil {
		return 0, storeError("delete expired revoked tokens", err)
	}
	return res.DeletedCount, nil
}

var _ ports.RevokedTokenRepository = (*RevokedTokenRepository)(nil)
