package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/addisco/consulting-api/internal/core/domain"
	"github.com/addisco/consulting-api/internal/core/ports"
)

const consultationsCollection = "consultations"

// ConsultationRepository implements ports.ConsultationRepository on MongoDB.
type ConsultationRepository struct {
	coll *mongo.Collection
}

func NewConsultationRepository(db *mongo.Database) *ConsultationRepository {
	return &ConsultationRepository{coll: db.Collection(consultationsCollection)}
}

type noteDoc struct {
	Text      string    `bson:"text"`
	AddedBy   string    `bson:"addedBy"`
	CreatedAt time.Time `bson:"createdAt"`
}

type consultationDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	Phone        string             `bson:"phone"`
	Organization string             `bson:"organization,omitempty"`
	Service      string             `bson:"service"`
	Message      string             `bson:"message"`
	Status       string             `bson:"status"`
	Priority     string             `bson:"priority"`
	AssignedTo   string             `bson:"assignedTo,omitempty"`
	Notes        []noteDoc          `bson:"notes"`
	Source       string             `bson:"source"`
	Metadata     domain.Metadata    `bson:"metadata"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (d *consultationDoc) toDomain() *domain.Consultation {
	notes := make([]domain.Note, 0, len(d.Notes))
	for _, n := range d.Notes {
		notes = append(notes, domain.Note{Text: n.Text, AddedBy: n.AddedBy, CreatedAt: n.CreatedAt})
	}
	return &domain.Consultation{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		Phone:        d.Phone,
		Organization: d.Organization,
		Service:      domain.Service(d.Service),
		Message:      d.Message,
		Status:       domain.Status(d.Status),
		Priority:     domain.Priority(d.Priority),
		AssignedTo:   d.AssignedTo,
		Notes:        notes,
		Source:       d.Source,
		Metadata:     d.Metadata,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func consultationToDoc(c *domain.Consultation) consultationDoc {
	notes := make([]noteDoc, 0, len(c.Notes))
	for _, n := range c.Notes {
		notes = append(notes, noteDoc{Text: n.Text, AddedBy: n.AddedBy, CreatedAt: n.CreatedAt})
	}
	return consultationDoc{
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Organization: c.Organization,
		Service:      string(c.Service),
		Message:      c.Message,
		Status:       string(c.Status),
		Priority:     string(c.Priority),
		AssignedTo:   c.AssignedTo,
		Notes:        notes,
		Source:       c.Source,
		Metadata:     c.Metadata,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (r *ConsultationRepository) Create(ctx context.Context, c *domain.Consultation) (*domain.Consultation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, consultationToDoc(c))
	if err != nil {
		return nil, fmt.Errorf("insert consultation: %w", err)
	}

	created := *c
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ConsultationRepository) FindByID(ctx context.Context, id string) (*domain.Consultation, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc consultationDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrConsultationNotFound
		}
		return nil, fmt.Errorf("find consultation: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ConsultationRepository) List(ctx context.Context, filter ports.ListConsultationsFilter) ([]*domain.Consultation, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Service != "" {
		query["service"] = filter.Service
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}
	if filter.Search != "" {
		re := searchRegex(filter.Search)
		query["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"email": re},
			bson.M{"organization": re},
			bson.M{"message": re},
		}
	}
	if filter.OnlyOverdue {
		query["status"] = string(domain.StatusPending)
		query["createdAt"] = bson.M{"$lt": time.Now().UTC().Add(-domain.OverdueAfter)}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count consultations: %w", err)
	}

	sortDir := 1
	if filter.SortDesc {
		sortDir = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: filter.SortBy, Value: sortDir}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list consultations: %w", err)
	}
	defer cursor.Close(ctx)

	items, err := decodeConsultations(ctx, cursor)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *ConsultationRepository) FindByEmail(ctx context.Context, email string) ([]*domain.Consultation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx,
		bson.M{"email": email},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find consultations by email: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeConsultations(ctx, cursor)
}

func (r *ConsultationRepository) UpdateFields(ctx context.Context, id string, update ports.ConsultationUpdate) (*domain.Consultation, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Status != nil {
		set["status"] = string(*update.Status)
	}
	if update.AssignedTo != nil {
		set["assignedTo"] = *update.AssignedTo
	}
	if update.Priority != nil {
		set["priority"] = string(*update.Priority)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc consultationDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrConsultationNotFound
		}
		return nil, fmt.Errorf("update consultation: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ConsultationRepository) AddNote(ctx context.Context, id string, note domain.Note) (*domain.Consultation, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc consultationDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$push": bson.M{"notes": noteDoc{Text: note.Text, AddedBy: note.AddedBy, CreatedAt: note.CreatedAt}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrConsultationNotFound
		}
		return nil, fmt.Errorf("add note: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ConsultationRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete consultation: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrConsultationNotFound
	}
	return nil
}

func (r *ConsultationRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *ConsultationRepository) CountByStatus(ctx context.Context) (map[domain.Status]int64, error) {
	rows, err := r.groupCount(ctx, "$status")
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.Status]int64, len(rows))
	for k, v := range rows {
		counts[domain.Status(k)] = v
	}
	return counts, nil
}

func (r *ConsultationRepository) CountByService(ctx context.Context) (map[domain.Service]int64, error) {
	rows, err := r.groupCount(ctx, "$service")
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.Service]int64, len(rows))
	for k, v := range rows {
		counts[domain.Service(k)] = v
	}
	return counts, nil
}

func (r *ConsultationRepository) CountByPriority(ctx context.Context) (map[domain.Priority]int64, error) {
	rows, err := r.groupCount(ctx, "$priority")
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.Priority]int64, len(rows))
	for k, v := range rows {
		counts[domain.Priority(k)] = v
	}
	return counts, nil
}

func (r *ConsultationRepository) groupCount(ctx context.Context, field string) (map[string]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": field, "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("group count %s: %w", field, err)
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int64)
	for cursor.Next(ctx) {
		var row struct {
			Key   string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode group count: %w", err)
		}
		counts[row.Key] = row.Count
	}
	return counts, cursor.Err()
}

func (r *ConsultationRepository) CountOverdue(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{
		"status":    string(domain.StatusPending),
		"createdAt": bson.M{"$lt": cutoff},
	})
}

func (r *ConsultationRepository) Recent(ctx context.Context, n int) ([]*domain.Consultation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(int64(n)),
	)
	if err != nil {
		return nil, fmt.Errorf("recent consultations: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeConsultations(ctx, cursor)
}

func (r *ConsultationRepository) MonthlyTrend(ctx context.Context, since time.Time) ([]ports.MonthCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$createdAt"},
				"month": bson.M{"$month": "$createdAt"},
			},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id.year", Value: 1}, {Key: "_id.month", Value: 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("monthly trend: %w", err)
	}
	defer cursor.Close(ctx)

	var trend []ports.MonthCount
	for cursor.Next(ctx) {
		var row struct {
			ID struct {
				Year  int `bson:"year"`
				Month int `bson:"month"`
			} `bson:"_id"`
			Count int64 `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode trend row: %w", err)
		}
		trend = append(trend, ports.MonthCount{Year: row.ID.Year, Month: row.ID.Month, Count: row.Count})
	}
	return trend, cursor.Err()
}

func decodeConsultations(ctx context.Context, cursor *mongo.Cursor) ([]*domain.Consultation, error) {
	var items []*domain.Consultation
	for cursor.Next(ctx) {
		var doc consultationDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode consultation: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	return items, cursor.Err()
}

// EnsureIndexes creates the indexes the listing and dashboard queries rely on.
func (r *ConsultationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "service", Value: 1}}},
		{Keys: bson.D{{Key: "priority", Value: 1}}},
		{Keys: bson.D{{Key: "assignedTo", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
