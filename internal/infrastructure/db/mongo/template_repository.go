package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/docuforge/docgen-api/internal/core/domain"
)

const templatesCollection = "templates"

type TemplateRepository struct {
	coll *mongo.Collection
}

func NewTemplateRepository(db *mongo.Database) *TemplateRepository {
	return &TemplateRepository{coll: db.Collection(templatesCollection)}
}

type mongoTemplate struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Body        string             `bson:"body"`
	OwnerID     string             `bson:"owner_id"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (r *TemplateRepository) Create(ctx context.Context, tpl *domain.Template) (*domain.Template, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoTemplate{
		Name:        tpl.Name,
		Description: tpl.Description,
		Body:        tpl.Body,
		OwnerID:     tpl.OwnerID,
		CreatedAt:   tpl.CreatedAt.Unix(),
		UpdatedAt:   tpl.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: insert template: %v", domain.ErrStorageUnavailable, err)
	}

	created := *tpl
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *TemplateRepository) List(ctx context.Context, ownerID string) ([]domain.Template, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("%w: list templates: %v", domain.ErrStorageUnavailable, err)
	}
	defer cur.Close(ctx)

	var out []domain.Template
	for cur.Next(ctx) {
		var mt mongoTemplate
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode template: %w", err)
		}
		out = append(out, domain.Template{
			ID:          mt.ID.Hex(),
			Name:        mt.Name,
			Description: mt.Description,
			Body:        mt.Body,
			OwnerID:     mt.OwnerID,
			CreatedAt:   unixToTime(mt.CreatedAt),
			UpdatedAt:   unixToTime(mt.UpdatedAt),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%w: list templates: %v", domain.ErrStorageUnavailable, err)
	}
	return out, nil
}
