package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/homeservice/marketplace/internal/core/domain"
)

const collectionReservations = "reservations"

// ReservationRepository stores reservations in MongoDB. Reset replaces the
// collection contents with the seed it was built with.
type ReservationRepository struct {
	col  *mongo.Collection
	seed []domain.Reservation
}

func NewReservationRepository(db *mongo.Database, seed []domain.Reservation) *ReservationRepository {
	return &ReservationRepository{col: db.Collection(collectionReservations), seed: seed}
}

// List returns reservations in creation order.
func (r *ReservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []domain.Reservation{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var res domain.Reservation
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&res)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

// Update applies patch with a single $set and returns the document after
// the update.
func (r *ReservationRepository) Update(ctx context.Context, id string, patch domain.ReservationPatch) (*domain.Reservation, error) {
	set := setDocument(patch)
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var res domain.Reservation
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&res)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepository) Create(ctx context.Context, res domain.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, res); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateReservation
		}
		return err
	}
	return nil
}

// Reset drops every document and reinserts the seed.
func (r *ReservationRepository) Reset(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear reservations: %w", err)
	}
	if len(r.seed) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(r.seed))
	for _, s := range r.seed {
		docs = append(docs, s)
	}
	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("seed reservations: %w", err)
	}
	return nil
}

// SeedIfEmpty inserts the seed when the collection holds no documents.
func (r *ReservationRepository) SeedIfEmpty(ctx context.Context) error {
	n, err := r.col.EstimatedDocumentCount(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return r.Reset(ctx)
}

// EnsureIndexes creates necessary indexes on the reservations collection.
func (r *ReservationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
		{Keys: bson.D{{Key: "manager_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// setDocument maps the non-nil patch fields onto their bson names.
func setDocument(p domain.ReservationPatch) bson.M {
	set := bson.M{}
	if p.ManagerID != nil {
		set["manager_id"] = *p.ManagerID
	}
	if p.ServiceName != nil {
		set["service_name"] = *p.ServiceName
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.Address != nil {
		set["address"] = *p.Address
	}
	if p.ScheduledAt != nil {
		set["scheduled_at"] = *p.ScheduledAt
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Memo != nil {
		set["memo"] = *p.Memo
	}
	return set
}
