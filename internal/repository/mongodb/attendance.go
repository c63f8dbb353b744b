package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type attendanceDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	EmployeeID string             `bson:"employee_id"`
	Date       string             `bson:"date"`
	Status     string             `bson:"status"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (d attendanceDocument) toEntity() attendance.Attendance {
	return attendance.Attendance{
		ID:         hexID(d.ID),
		EmployeeID: d.EmployeeID,
		Date:       d.Date,
		Status:     attendance.Status(d.Status),
		CreatedAt:  d.CreatedAt.UTC(),
	}
}

type attendanceRepositoryImpl struct {
	collection *mongo.Collection
}

func NewAttendanceRepository(db *database.MongoDB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{collection: db.Collection(database.AttendanceCollection)}
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter, limit int) ([]attendance.Attendance, error) {
	query := bson.M{}
	if filter.EmployeeID != "" {
		query["employee_id"] = filter.EmployeeID
	}

	// Dates are stored as YYYY-MM-DD strings, so range operators compare them chronologically
	dateCond := bson.M{}
	if filter.Date != "" {
		dateCond["$eq"] = filter.Date
	}
	if filter.From != "" {
		dateCond["$gte"] = filter.From
	}
	if filter.To != "" {
		dateCond["$lte"] = filter.To
	}
	if len(dateCond) > 0 {
		query["date"] = dateCond
	}

	return r.find(ctx, query, bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}}, limit)
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]attendance.Attendance, error) {
	return r.find(ctx, bson.M{"employee_id": employeeID}, bson.D{{Key: "date", Value: -1}}, limit)
}

func (r *attendanceRepositoryImpl) find(ctx context.Context, query bson.M, sort bson.D, limit int) ([]attendance.Attendance, error) {
	opts := options.Find().SetSort(sort).SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	var docs []attendanceDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	records := make([]attendance.Attendance, 0, len(docs))
	for _, doc := range docs {
		records = append(records, doc.toEntity())
	}
	return records, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (attendance.Attendance, error) {
	var doc attendanceDocument
	err := r.collection.FindOne(ctx, bson.M{"employee_id": employeeID, "date": date}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return doc.toEntity(), nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	doc := attendanceDocument{
		ID:         primitive.NewObjectID(),
		EmployeeID: record.EmployeeID,
		Date:       record.Date,
		Status:     string(record.Status),
		CreatedAt:  record.CreatedAt,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if isDuplicateOn(err, database.AttendanceEmployeeDateUniqueIndex) {
			return attendance.Attendance{}, attendance.ErrDuplicateAttendance
		}
		return attendance.Attendance{}, err
	}
	return doc.toEntity(), nil
}

// UpdateStatus implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) UpdateStatus(ctx context.Context, employeeID string, date string, status attendance.Status, markedAt time.Time) (attendance.Attendance, error) {
	update := bson.M{"$set": bson.M{
		"status":     string(status),
		"created_at": markedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc attendanceDocument
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"employee_id": employeeID, "date": date}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return doc.toEntity(), nil
}

// DeleteByEmployeeID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"employee_id": employeeID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// CountByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CountByEmployee(ctx context.Context, employeeID string) (attendance.StatusCounts, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"employee_id": employeeID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return attendance.StatusCounts{}, err
	}

	var groups []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return attendance.StatusCounts{}, err
	}

	var counts attendance.StatusCounts
	for _, g := range groups {
		counts.Total += g.Count
		switch attendance.Status(g.Status) {
		case attendance.StatusPresent:
			counts.Present += g.Count
		case attendance.StatusAbsent:
			counts.Absent += g.Count
		}
	}
	return counts, nil
}
