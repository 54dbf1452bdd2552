package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/docuforge/docgen-api/internal/core/domain"
)

const auditCollection = "auth_audit"

// AuditRepository persists authentication audit events.
type AuditRepository struct {
	db *mongo.Database
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Insert(ctx context.Context, event domain.AuditEvent) error {
	doc := bson.M{
		"event_id":     event.ID,
		"kind":         event.Kind,
		"email":        event.Email,
		"outcome":      event.Outcome,
		"at":           event.At.UTC(),
		"persisted_at": time.Now().UTC(),
	}
	if event.Reason != "" {
		doc["reason"] = event.Reason
	}

	_, err := r.db.Collection(auditCollection).InsertOne(ctx, doc)
	return err
}
