package appointments

import (
	"booking-service/internal/app/contracts"
	"booking-service/internal/app/models"
	"booking-service/internal/pkg/constvars"
	"booking-service/internal/pkg/exceptions"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Database) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionAppointments),
	}
}

// EnsureIndexes creates the unique partial index that makes a second active
// appointment on the same date and time fail at insert. Only active
// appointments carry slotKey; cancelling unsets it.
func (r *AppointmentMongoRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "slotKey", Value: 1}},
			Options: options.Index().
				SetName(constvars.MongoIndexActiveSlot).
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"slotKey": bson.M{"$exists": true}}),
		},
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index().SetName(constvars.MongoIndexDate),
		},
		{
			Keys:    bson.D{{Key: "ownerRef", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName(constvars.MongoIndexOwnerCreatedAt),
		},
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "updatedAt", Value: -1}},
			Options: options.Index().SetName(constvars.MongoIndexDateUpdatedAt),
		},
	}

	_, err := r.Collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return exceptions.ErrMongoDBCreateIndex(err)
	}
	return nil
}

func (r *AppointmentMongoRepository) Insert(ctx context.Context, appointment *models.Appointment) error {
	appointment.SetCreatedAtUpdatedAt(time.Now().UTC())

	_, err := r.Collection.InsertOne(ctx, appointment)
	if err != nil {
		if isActiveSlotConflict(err) {
			return exceptions.ErrSlotTaken(err, appointment.Date, appointment.Time)
		}
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

// isActiveSlotConflict reports whether err is a duplicate key on the active
// slot index, as opposed to any other unique key such as _id.
func isActiveSlotConflict(err error) bool {
	return mongo.IsDuplicateKeyError(err) && strings.Contains(err.Error(), constvars.MongoIndexActiveSlot)
}

func (r *AppointmentMongoRepository) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&appointment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

// FindByDateRange returns every appointment between both dates inclusive,
// whatever its status. Dates are stored as YYYY-MM-DD so they compare
// lexically.
func (r *AppointmentMongoRepository) FindByDateRange(ctx context.Context, startDate, endDate string) ([]models.Appointment, error) {
	filter := bson.M{"date": bson.M{"$gte": startDate, "$lte": endDate}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}, {Key: "createdAt", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *AppointmentMongoRepository) FindActiveBySlot(ctx context.Context, date, clock string) ([]models.Appointment, error) {
	filter := bson.M{
		"date":   date,
		"time":   clock,
		"status": bson.M{"$in": models.ActiveAppointmentStatuses},
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
}

func (r *AppointmentMongoRepository) FindByOwner(ctx context.Context, ownerRef string) ([]models.Appointment, error) {
	filter := bson.M{"ownerRef": ownerRef}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *AppointmentMongoRepository) LatestUpdateInRange(ctx context.Context, startDate, endDate string) (time.Time, error) {
	filter := bson.M{"date": bson.M{"$gte": startDate, "$lte": endDate}}
	opts := options.FindOne().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}}).
		SetProjection(bson.M{"updatedAt": 1})

	var latest struct {
		UpdatedAt time.Time `bson:"updatedAt"`
	}
	err := r.Collection.FindOne(ctx, filter, opts).Decode(&latest)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return time.Time{}, nil
		}
		return time.Time{}, exceptions.ErrMongoDBFindDocument(err)
	}
	return latest.UpdatedAt, nil
}

func (r *AppointmentMongoRepository) UpdateStatus(ctx context.Context, id string, from, to models.AppointmentStatus, at time.Time) (*models.Appointment, error) {
	filter := bson.M{"_id": id, "status": from}
	update := bson.M{
		"$set": bson.M{
			"status":    to,
			"updatedAt": at.UTC(),
		},
	}
	if !to.IsActive() {
		update["$unset"] = bson.M{"slotKey": ""}
	}

	var appointment models.Appointment
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&appointment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &appointment, nil
}

func (r *AppointmentMongoRepository) ClaimNotification(ctx context.Context, id string, event models.NotificationEvent, at time.Time) (bool, error) {
	field := event.MarkerField()
	if field == "" {
		return false, fmt.Errorf("unknown notification event %q", event)
	}

	filter := bson.M{"_id": id, field: nil}
	update := bson.M{"$set": bson.M{field: at.UTC()}}
	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount == 1, nil
}

func (r *AppointmentMongoRepository) ReleaseNotification(ctx context.Context, id string, event models.NotificationEvent) error {
	field := event.MarkerField()
	if field == "" {
		return fmt.Errorf("unknown notification event %q", event)
	}

	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$unset": bson.M{field: ""}})
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *AppointmentMongoRepository) FindPendingNotifications(ctx context.Context, event models.NotificationEvent, olderThan time.Time, limit int) ([]models.Appointment, error) {
	var filter bson.M
	switch event {
	case models.NotificationEventCreated:
		filter = bson.M{
			"notifiedAt": nil,
			"status":     bson.M{"$ne": models.AppointmentStatusCancelled},
			"createdAt":  bson.M{"$lt": olderThan.UTC()},
		}
	case models.NotificationEventConfirmed:
		filter = bson.M{
			"confirmationNotifiedAt": nil,
			"status":                 models.AppointmentStatusConfirmed,
			"updatedAt":              bson.M{"$lt": olderThan.UTC()},
		}
	default:
		return nil, fmt.Errorf("unknown notification event %q", event)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, filter, opts)
}

func (r *AppointmentMongoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Appointment, error) {
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	appointments := make([]models.Appointment, 0)
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}
