package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joshua-takyi/skillswap/internal/apperrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	SwapColName = "swaps"

	SwapFieldFromUser = "from_user_id"
	SwapFieldToUser   = "to_user_id"
	SwapFieldStatus   = "status"
)

var swapQueryFields = map[string]bool{
	SwapFieldFromUser: true,
	SwapFieldToUser:   true,
	SwapFieldStatus:   true,
}

func (mdb *MongodbRepo) swaps() (*mongo.Collection, error) {
	col, err := mdb.GetCollection(SwapColName)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err, "error getting swaps collection")
	}
	return col, nil
}

func decodeSwaps(ctx context.Context, cursor *mongo.Cursor) ([]*SwapRequest, error) {
	defer cursor.Close(ctx)

	swaps := []*SwapRequest{}
	for cursor.Next(ctx) {
		var swap SwapRequest
		if err := cursor.Decode(&swap); err != nil {
			return nil, apperrors.StoreUnavailable(err, "error decoding swap")
		}
		swaps = append(swaps, &swap)
	}
	if err := cursor.Err(); err != nil {
		return nil, apperrors.StoreUnavailable(err, "cursor error")
	}
	return swaps, nil
}

func (mdb *MongodbRepo) CreateSwap(ctx context.Context, swap *SwapRequest) (*SwapRequest, error) {
	if err := Validate.Struct(swap); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeValidation, "invalid swap request")
	}
	if err := swap.BeforeCreate(); err != nil {
		return nil, fmt.Errorf("failed to prepare swap for creation: %w", err)
	}

	col, err := mdb.swaps()
	if err != nil {
		return nil, err
	}
	if _, err := col.InsertOne(ctx, swap); err != nil {
		return nil, apperrors.StoreUnavailable(err, "failed to insert swap")
	}
	return swap, nil
}

func (mdb *MongodbRepo) GetSwap(ctx context.Context, id primitive.ObjectID) (*SwapRequest, error) {
	col, err := mdb.swaps()
	if err != nil {
		return nil, err
	}

	var swap SwapRequest
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&swap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.Newf(apperrors.CodeNotFound, "swap %s not found", id.Hex())
	}
	if err != nil {
		return nil, apperrors.StoreUnavailable(err, "failed to load swap")
	}
	return &swap, nil
}

func (mdb *MongodbRepo) ListSwapsWhere(ctx context.Context, field, value string) ([]*SwapRequest, error) {
	if !swapQueryFields[field] {
		return nil, apperrors.Newf(apperrors.CodeValidation, "cannot query swaps by %q", field)
	}

	col, err := mdb.swaps()
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := col.Find(ctx, bson.M{field: value}, opts)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err, "error finding swaps")
	}
	return decodeSwaps(ctx, cursor)
}

func (mdb *MongodbRepo) ListSwaps(ctx context.Context) ([]*SwapRequest, error) {
	col, err := mdb.swaps()
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err, "error finding swaps")
	}
	return decodeSwaps(ctx, cursor)
}

// findAndUpdate applies update only while filter still matches. A miss
// means the record changed or vanished after the caller checked it.
func (mdb *MongodbRepo) findAndUpdate(ctx context.Context, filter, update bson.M) (*SwapRequest, error) {
	col, err := mdb.swaps()
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var result SwapRequest
	err = col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.New(apperrors.CodeInvalidTransition, "swap changed concurrently")
	}
	if err != nil {
		return nil, apperrors.StoreUnavailable(err, "error updating swap")
	}
	return &result, nil
}

func (mdb *MongodbRepo) TransitionSwap(ctx context.Context, id primitive.ObjectID, from, to SwapStatus) (*SwapRequest, error) {
	filter := bson.M{"_id": id, "status": from}
	update := bson.M{
		"$set": bson.M{
			"status":     to,
			"updated_at": time.Now().UTC(),
		},
	}
	return mdb.findAndUpdate(ctx, filter, update)
}

func (mdb *MongodbRepo) AttachSwapFeedback(ctx context.Context, id primitive.ObjectID, rating int, feedback string) (*SwapRequest, error) {
	filter := bson.M{
		"_id":    id,
		"status": SwapAccepted,
		"rating": bson.M{"$exists": false},
	}
	update := bson.M{
		"$set": bson.M{
			"rating":     rating,
			"feedback":   feedback,
			"updated_at": time.Now().UTC(),
		},
	}
	return mdb.findAndUpdate(ctx, filter, update)
}

func (mdb *MongodbRepo) DeletePendingSwap(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.swaps()
	if err != nil {
		return err
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id, "status": SwapPending})
	if err != nil {
		return apperrors.StoreUnavailable(err, "error deleting swap")
	}
	if res.DeletedCount == 0 {
		return apperrors.New(apperrors.CodeInvalidTransition, "swap changed concurrently")
	}
	return nil
}

// EnsureSwapIndexes creates the indexes backing the incoming/outgoing reads.
func (mdb *MongodbRepo) EnsureSwapIndexes(ctx context.Context) error {
	col, err := mdb.swaps()
	if err != nil {
		return err
	}

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: SwapFieldToUser, Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("to_user_created_at"),
		},
		{
			Keys: bson.D{
				{Key: SwapFieldFromUser, Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("from_user_created_at"),
		},
		{
			Keys:    bson.D{{Key: SwapFieldStatus, Value: 1}},
			Options: options.Index().SetName("status"),
		},
	}

	if _, err := col.Indexes().CreateMany(ctx, indexes); err != nil {
		return apperrors.StoreUnavailable(err, "error creating swap indexes")
	}
	return nil
}
